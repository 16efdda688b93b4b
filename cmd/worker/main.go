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

	"github.com/globalwealth/wealthdash/internal/app"
	"github.com/globalwealth/wealthdash/internal/observability"
	"github.com/globalwealth/wealthdash/internal/view"
	"github.com/globalwealth/wealthdash/internal/wealth/dashboard"
	"github.com/globalwealth/wealthdash/internal/wealth/export"
	"github.com/globalwealth/wealthdash/jobs"
	"github.com/globalwealth/wealthdash/report"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
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

	if !cfg.CacheEnabled() {
		logger.Error("worker requires REDIS_ADDR")
		os.Exit(1)
	}

	templates, err := view.NewEngine()
	if err != nil {
		logger.Error("parse templates", slog.Any("error", err))
		os.Exit(1)
	}
	builder := dashboard.NewBuilder(templates, dashboard.SVGCharts())
	pdfExporter := &export.PDFExporter{Pages: builder, Converter: report.NewClient(cfg.GotenbergURL).WithHTTPClient(&http.Client{Timeout: cfg.AppRequestTimeout})}

	metrics := observability.NewMetrics()
	snapshotJob := jobs.NewSnapshotJob(jobs.SnapshotConfig{
		Pages:   builder,
		PDF:     pdfExporter,
		Dir:     cfg.SnapshotDir,
		Logger:  logger,
		Metrics: metrics.Jobs(),
	})

	var cron []jobs.CronRegistration
	if cfg.SnapshotCron != "" {
		task, err := jobs.NewSnapshotTask(jobs.FormatPDF)
		if err != nil {
			logger.Error("build snapshot task", slog.Any("error", err))
			os.Exit(1)
		}
		cron = append(cron, jobs.CronRegistration{
			Spec:    cfg.SnapshotCron,
			Task:    task,
			Options: []asynq.Option{asynq.MaxRetry(3)},
		})
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskDashboardSnapshot, Handler: snapshotJob.Handle},
		},
		Cron: cron,
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	metricsServer := &http.Server{
		Addr:              cfg.WorkerMetricsAddr,
		Handler:           metrics.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("worker metrics server", slog.Any("error", err))
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	logger.Info("starting worker", slog.String("snapshot_dir", cfg.SnapshotDir), slog.Int("cron_entries", len(cron)))
	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
