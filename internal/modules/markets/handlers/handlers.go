// Package handlers provides HTTP handlers for the market board.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/hypewire/hypewire/internal/modules/markets"
)

// streamInterval is how often a websocket connection receives a refreshed
// board.
const streamInterval = 3 * time.Second

// Handler handles market board HTTP requests
type Handler struct {
	generator *markets.Generator
	log       zerolog.Logger
}

// NewHandler creates a new markets handler
func NewHandler(generator *markets.Generator, log zerolog.Logger) *Handler {
	return &Handler{
		generator: generator,
		log:       log.With().Str("handler", "markets").Logger(),
	}
}

// HandleListMarkets handles GET /api/markets
func (h *Handler) HandleListMarkets(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.generator.Markets())
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
