package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all trading routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/trading", func(r chi.Router) {
		r.Post("/select-market", h.HandleSelectMarket)
		r.Post("/place-trade", h.HandlePlaceTrade)
	})
}
