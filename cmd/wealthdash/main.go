package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/globalwealth/wealthdash/internal/app"
	"github.com/globalwealth/wealthdash/internal/observability"
	"github.com/globalwealth/wealthdash/internal/view"
	"github.com/globalwealth/wealthdash/internal/wealth"
	"github.com/globalwealth/wealthdash/internal/wealth/dashboard"
	"github.com/globalwealth/wealthdash/internal/wealth/export"
	wealthhttp "github.com/globalwealth/wealthdash/internal/wealth/http"
	"github.com/globalwealth/wealthdash/jobs"
	"github.com/globalwealth/wealthdash/report"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	if err := wealth.Validate(wealth.All(), cfg.DatasetTolerance); err != nil {
		logger.Error("dataset validation", slog.Any("error", err))
		os.Exit(1)
	}

	templates, err := view.NewEngine()
	if err != nil {
		logger.Error("parse templates", slog.Any("error", err))
		os.Exit(1)
	}
	builder := dashboard.NewBuilder(templates, dashboard.SVGCharts())

	metrics := observability.NewMetrics()

	var redisClient *redis.Client
	var inspector jobs.QueueInspector
	if cfg.CacheEnabled() {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn("redis ping", slog.Any("error", err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()

		asynqInspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
		defer func() {
			if err := asynqInspector.Close(); err != nil {
				logger.Warn("inspector close", slog.Any("error", err))
			}
		}()
		inspector = asynqInspector
	} else {
		logger.Info("page cache disabled, REDIS_ADDR not set")
	}

	pageCache := wealth.NewCache(redisClient, cfg.PageCacheTTL)
	pageCache.OnError(func(op string, err error) {
		metrics.ObserveCache(observability.CacheError)
		logger.Warn("page cache", slog.String("op", op), slog.Any("error", err))
	})

	reportClient := report.NewClient(cfg.GotenbergURL).WithHTTPClient(&http.Client{Timeout: cfg.AppRequestTimeout})
	pdfExporter := &export.PDFExporter{Pages: builder, Converter: reportClient}

	dashboardHandler := wealthhttp.NewHandler(logger, builder, pageCache, pdfExporter, metrics)
	dashboardHandler.WithTimeout(cfg.AppRequestTimeout)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		DashboardHandler: dashboardHandler,
		ReportHandler:    report.NewHandler(reportClient, logger),
		JobHandler:       jobs.NewHandler(inspector, logger),
		Metrics:          metrics,
		RequestLog:       !cfg.IsProduction(),
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("http server", slog.Any("error", err))
		os.Exit(1)
	}
}
