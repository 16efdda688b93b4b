package wealthhttp

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/globalwealth/wealthdash/internal/observability"
	"github.com/globalwealth/wealthdash/internal/wealth"
	"github.com/globalwealth/wealthdash/internal/wealth/export"
	"github.com/globalwealth/wealthdash/report"
)

const (
	dashboardPage  = "dashboard"
	requestTimeout = 30 * time.Second
)

// PageRenderer writes the dashboard HTML.
type PageRenderer interface {
	Render(w io.Writer) error
}

// PageCache serves rendered pages, calling render on a miss.
type PageCache interface {
	Enabled() bool
	Fetch(ctx context.Context, name string, render func(context.Context) ([]byte, error)) ([]byte, bool, error)
}

// PDFService renders the dashboard to PDF bytes.
type PDFService interface {
	RenderDashboard(ctx context.Context) ([]byte, error)
}

// Recorder receives page level metrics.
type Recorder interface {
	ObservePageRender()
	ObserveCache(result string)
}

// Handler serves the dashboard page, its exports and the raw dataset.
type Handler struct {
	logger  *slog.Logger
	pages   PageRenderer
	cache   PageCache
	pdf     PDFService
	metrics Recorder
	timeout time.Duration
	csvPool sync.Pool
}

// NewHandler constructs the dashboard HTTP handler. cache, pdf and metrics may be nil.
func NewHandler(logger *slog.Logger, pages PageRenderer, cache PageCache, pdf PDFService, metrics Recorder) *Handler {
	h := &Handler{
		logger:  logger,
		pages:   pages,
		cache:   cache,
		pdf:     pdf,
		metrics: metrics,
		timeout: requestTimeout,
	}
	h.csvPool.New = func() interface{} { return new(bytes.Buffer) }
	return h
}

// WithTimeout overrides the per request deadline.
func (h *Handler) WithTimeout(d time.Duration) {
	if d > 0 {
		h.timeout = d
	}
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	page, err := h.page(ctx)
	if err != nil {
		h.handleServerError(w, "render dashboard", err)
		return
	}

	// Gzip and identity responses share this tag.
	etag := pageETag(page)
	w.Header().Set("ETag", etag)
	w.Header().Add("Vary", "Accept-Encoding")
	w.Header().Set("Cache-Control", "no-cache")
	if etagMatches(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(page); err != nil {
		h.logError("stream dashboard", err)
	}
}

func (h *Handler) page(ctx context.Context) ([]byte, error) {
	if h.pages == nil {
		return nil, errors.New("page renderer missing")
	}
	render := func(context.Context) ([]byte, error) {
		var buf bytes.Buffer
		if err := h.pages.Render(&buf); err != nil {
			return nil, err
		}
		if h.metrics != nil {
			h.metrics.ObservePageRender()
		}
		return buf.Bytes(), nil
	}
	if h.cache == nil || !h.cache.Enabled() {
		h.observeCache(observability.CacheDisabled)
		return render(ctx)
	}
	page, hit, err := h.cache.Fetch(ctx, dashboardPage, render)
	if err != nil {
		return nil, err
	}
	if hit {
		h.observeCache(observability.CacheHit)
	} else {
		h.observeCache(observability.CacheMiss)
	}
	return page, nil
}

func (h *Handler) handleCSV(w http.ResponseWriter, r *http.Request) {
	table, err := export.ParseTable(r.URL.Query().Get("table"))
	if err != nil {
		http.Error(w, "invalid table", http.StatusBadRequest)
		return
	}

	buf := h.csvPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer func() {
		buf.Reset()
		h.csvPool.Put(buf)
	}()

	if err := export.WriteTable(buf, table, wealth.All()); err != nil {
		h.handleServerError(w, "write csv", err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", table.Filename()))
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logError("stream csv", err)
	}
}

func (h *Handler) handlePDF(w http.ResponseWriter, r *http.Request) {
	if h.pdf == nil {
		h.handleServerError(w, "pdf exporter", errors.New("pdf exporter not configured"))
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	pdfBytes, err := h.pdf.RenderDashboard(ctx)
	if err != nil {
		if errors.Is(err, report.ErrUnavailable) {
			h.logError("render pdf", err)
			http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
			return
		}
		h.handleServerError(w, "render pdf", err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"wealth-dashboard.pdf\"")
	if _, err := w.Write(pdfBytes); err != nil {
		h.logError("stream pdf", err)
	}
}

func (h *Handler) handleDataset(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(wealth.All()); err != nil {
		h.logError("encode dataset", err)
	}
}

func (h *Handler) observeCache(result string) {
	if h.metrics != nil {
		h.metrics.ObserveCache(result)
	}
}

func (h *Handler) handleServerError(w http.ResponseWriter, context string, err error) {
	h.logError(context, err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (h *Handler) logError(context string, err error) {
	if h.logger != nil {
		h.logger.Error(context, slog.Any("error", err))
	}
}

// pageETag returns the weak validator for a rendered page.
func pageETag(page []byte) string {
	sum := sha256.Sum256(page)
	return `W/"` + hex.EncodeToString(sum[:]) + `"`
}

// etagMatches applies the weak comparison If-None-Match calls for.
func etagMatches(header, etag string) bool {
	opaque := strings.TrimPrefix(etag, "W/")
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == opaque {
			return true
		}
	}
	return false
}
