package httpadapter

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"adpilot/internal/core/port"
)

// Handler contains dependencies and routes. It is an inbound adapter for HTTP.
// It exposes the operator status view, the hook the inventory CRUD layer
// calls after creating a record, and the metrics and health endpoints.
type Handler struct {
	svc     port.ControllerUseCase
	logger  *slog.Logger
	router  chi.Router
	metrics http.Handler
}

// NewHandler creates a handler with all routes configured. A nil metrics
// handler serves the default prometheus registry.
func NewHandler(svc port.ControllerUseCase, metrics http.Handler, logger *slog.Logger) *Handler {
	if metrics == nil {
		metrics = promhttp.Handler()
	}
	h := &Handler{svc: svc, logger: logger, metrics: metrics}
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.handleHealth)
	r.Method(http.MethodGet, "/metrics", h.metrics)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/campaigns/{id}/status", h.handleCampaignStatus)
		r.Post("/inventory/{id}/created", h.handleInventoryCreated)
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
