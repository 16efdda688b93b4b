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
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/google/go-cmp/cmp"
	"github.com/redis/go-redis/v9"

	"github.com/globalwealth/wealthdash/internal/view"
	"github.com/globalwealth/wealthdash/internal/wealth"
	"github.com/globalwealth/wealthdash/internal/wealth/dashboard"
	"github.com/globalwealth/wealthdash/report"
)

type stubPDF struct {
	data []byte
	err  error
}

func (s *stubPDF) RenderDashboard(ctx context.Context) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.data == nil {
		content := bytes.Repeat([]byte("PDF"), 400)
		s.data = append([]byte("%PDF-1.4\n"), content...)
	}
	return s.data, nil
}

type brokenPage struct{}

func (brokenPage) Render(w io.Writer) error { return errors.New("template exploded") }

type countingRecorder struct {
	mu      sync.Mutex
	renders int
	cache   map[string]int
}

func (c *countingRecorder) ObservePageRender() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.renders++
}

func (c *countingRecorder) ObserveCache(result string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cache == nil {
		c.cache = map[string]int{}
	}
	c.cache[result]++
}

func newTestHandler(t *testing.T, cache PageCache, recorder Recorder) *Handler {
	t.Helper()
	templates, err := view.NewEngine()
	if err != nil {
		t.Fatalf("parse templates: %v", err)
	}
	builder := dashboard.NewBuilder(templates, dashboard.SVGCharts())
	return NewHandler(nil, builder, cache, &stubPDF{}, recorder)
}

func newRedisCache(t *testing.T) *wealth.Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return wealth.NewCache(client, time.Hour)
}

func TestDashboardSuccess(t *testing.T) {
	handler := newTestHandler(t, nil, nil)
	rr := httptest.NewRecorder()
	handler.handleDashboard(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Fatalf("unexpected content type %s", ct)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Global Wealth Distribution Dashboard") {
		t.Fatalf("expected dashboard title in response")
	}
	if !strings.Contains(body, "<td>$226.47T</td>") {
		t.Fatalf("expected formatted wealth in response: %s", body)
	}
	sum := sha256.Sum256(rr.Body.Bytes())
	if want := `W/"` + hex.EncodeToString(sum[:]) + `"`; rr.Header().Get("ETag") != want {
		t.Fatalf("expected etag %s, got %s", want, rr.Header().Get("ETag"))
	}
	if vary := rr.Header().Get("Vary"); vary != "Accept-Encoding" {
		t.Fatalf("expected Vary: Accept-Encoding, got %q", vary)
	}
}

func TestDashboardNotModified(t *testing.T) {
	handler := newTestHandler(t, nil, nil)
	first := httptest.NewRecorder()
	handler.handleDashboard(first, httptest.NewRequest(http.MethodGet, "/", nil))
	etag := first.Header().Get("ETag")
	if etag == "" {
		t.Fatalf("expected etag header")
	}

	if !strings.HasPrefix(etag, `W/"`) {
		t.Fatalf("expected weak etag, got %s", etag)
	}

	for _, header := range []string{
		`"stale", ` + etag,
		strings.TrimPrefix(etag, "W/"),
		"*",
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("If-None-Match", header)
		rr := httptest.NewRecorder()
		handler.handleDashboard(rr, req)
		if rr.Code != http.StatusNotModified {
			t.Fatalf("expected 304 for If-None-Match %s, got %d", header, rr.Code)
		}
		if rr.Body.Len() != 0 {
			t.Fatalf("expected empty body on 304")
		}
		if rr.Header().Get("ETag") != etag {
			t.Fatalf("expected 304 to repeat the etag")
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("If-None-Match", `"stale"`)
	rr := httptest.NewRecorder()
	handler.handleDashboard(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 for stale etag, got %d", rr.Code)
	}
}

func TestDashboardServedFromCache(t *testing.T) {
	recorder := &countingRecorder{}
	handler := newTestHandler(t, newRedisCache(t), recorder)

	var bodies []string
	for i := 0; i < 2; i++ {
		rr := httptest.NewRecorder()
		handler.handleDashboard(rr, httptest.NewRequest(http.MethodGet, "/", nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
		bodies = append(bodies, rr.Body.String())
	}
	if bodies[0] != bodies[1] {
		t.Fatalf("cached page differs from fresh render")
	}
	if recorder.renders != 1 {
		t.Fatalf("expected a single render, got %d", recorder.renders)
	}
	if recorder.cache["miss"] != 1 || recorder.cache["hit"] != 1 {
		t.Fatalf("unexpected cache results %v", recorder.cache)
	}
}

func TestDashboardRenderFailure(t *testing.T) {
	handler := NewHandler(nil, brokenPage{}, nil, nil, nil)
	rr := httptest.NewRecorder()
	handler.handleDashboard(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
}

func TestCSVExport(t *testing.T) {
	handler := newTestHandler(t, nil, nil)
	rr := httptest.NewRecorder()
	handler.handleCSV(rr, httptest.NewRequest(http.MethodGet, "/export.csv", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("unexpected content type %s", ct)
	}
	if cd := rr.Header().Get("Content-Disposition"); !strings.Contains(cd, "wealth-all.csv") {
		t.Fatalf("unexpected disposition %s", cd)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Wealth Band (USD)") || !strings.Contains(body, "% of Billionaire Wealth") || !strings.Contains(body, "2027,1.5%") {
		t.Fatalf("expected every table in CSV: %s", body)
	}

	rr = httptest.NewRecorder()
	handler.handleCSV(rr, httptest.NewRequest(http.MethodGet, "/export.csv?table=historical", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if strings.Contains(rr.Body.String(), "Wealth Band") {
		t.Fatalf("expected only the historical table")
	}
}

func TestCSVUnknownTable(t *testing.T) {
	handler := newTestHandler(t, nil, nil)
	rr := httptest.NewRecorder()
	handler.handleCSV(rr, httptest.NewRequest(http.MethodGet, "/export.csv?table=people", nil))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestPDFExport(t *testing.T) {
	handler := newTestHandler(t, nil, nil)
	rr := httptest.NewRecorder()
	handler.handlePDF(rr, httptest.NewRequest(http.MethodGet, "/export.pdf", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("unexpected content type %s", ct)
	}
	if rr.Body.Len() <= 1024 {
		t.Fatalf("expected pdf body >1KB, got %d bytes", rr.Body.Len())
	}
}

func TestPDFExportFailures(t *testing.T) {
	cases := []struct {
		name string
		pdf  PDFService
		want int
	}{
		{name: "missing exporter", pdf: nil, want: http.StatusInternalServerError},
		{name: "gotenberg down", pdf: &stubPDF{err: fmt.Errorf("%w: status 503", report.ErrUnavailable)}, want: http.StatusBadGateway},
		{name: "render failure", pdf: &stubPDF{err: errors.New("template exploded")}, want: http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := newTestHandler(t, nil, nil)
			handler.pdf = tc.pdf
			rr := httptest.NewRecorder()
			handler.handlePDF(rr, httptest.NewRequest(http.MethodGet, "/export.pdf", nil))
			if rr.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rr.Code)
			}
		})
	}
}

func TestDatasetJSON(t *testing.T) {
	handler := newTestHandler(t, nil, nil)
	rr := httptest.NewRecorder()
	handler.handleDataset(rr, httptest.NewRequest(http.MethodGet, "/api/dataset", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var got wealth.Dataset
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode dataset: %v", err)
	}
	if diff := cmp.Diff(wealth.All(), got); diff != "" {
		t.Fatalf("dataset mismatch (-want +got):\n%s", diff)
	}
}

func TestExportRateLimit(t *testing.T) {
	router := chi.NewRouter()
	newTestHandler(t, nil, nil).MountRoutes(router)

	for i := 0; i < 10; i++ {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/export.csv?table=wealth", nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, rr.Code)
		}
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/export.csv?table=wealth", nil))
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("dashboard should not be export limited, got %d", rr.Code)
	}
}
