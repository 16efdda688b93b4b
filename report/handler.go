package report

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// PingStatus is the body of GET /report/ping.
type PingStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Handler reports whether Gotenberg can take PDF conversions.
type Handler struct {
	client *Client
	logger *slog.Logger
}

// NewHandler creates a report handler. logger may be nil.
func NewHandler(client *Client, logger *slog.Logger) *Handler {
	return &Handler{client: client, logger: logger}
}

// MountRoutes registers report routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/ping", h.ping)
}

func (h *Handler) ping(w http.ResponseWriter, r *http.Request) {
	status, code := PingStatus{Status: "ok"}, http.StatusOK
	if err := h.client.Ping(r.Context()); err != nil {
		if h.logger != nil {
			h.logger.Warn("gotenberg unreachable", slog.Any("error", err))
		}
		status, code = PingStatus{Status: "unavailable", Error: err.Error()}, http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(status)
}
