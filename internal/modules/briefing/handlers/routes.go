package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers the briefing routes. The caller mounts these
// under the shared /ai group.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/generate-market-strategy", h.HandleGenerateStrategy)
	r.Post("/generate-live-hype-briefing", h.HandleGenerateBriefing)
	r.Get("/voice-options", h.HandleVoiceOptions)
}
