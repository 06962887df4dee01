package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers the signal analysis routes. The caller mounts
// these under the shared /ai group.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/analyze-signal", h.HandleAnalyzeSignal)
	r.Post("/analyze-batch-signals", h.HandleAnalyzeBatch)
}
