package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all market board routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/markets", func(r chi.Router) {
		r.Get("/", h.HandleListMarkets)
		r.Get("/ws", h.HandleStream)
	})
}
