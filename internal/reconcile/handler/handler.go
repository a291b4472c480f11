package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"crmsync/internal/reconcile/models"
)

// Service defines the interface for reconciliation operations.
type Service interface {
	Run(ctx context.Context) (models.RunReport, error)
	LastReport() (models.RunReport, bool)
}

// Handler exposes reconciliation over HTTP. It stays thin: decode, delegate,
// encode.
type Handler struct {
	logger  *slog.Logger
	service Service
}

// New creates a new reconcile Handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: service}
}

// Register registers the reconcile routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/reconcile/run", h.handleRun)
	r.Get("/reconcile/last", h.handleLast)
}

func (h *Handler) handleRun(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	report, err := h.service.Run(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "reconciliation run failed", "error", err.Error())
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "reconciliation run failed"})
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *Handler) handleLast(w http.ResponseWriter, r *http.Request) {
	report, ok := h.service.LastReport()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no completed run"})
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
