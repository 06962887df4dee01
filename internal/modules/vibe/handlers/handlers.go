// Package handlers provides HTTP handlers for crowd sentiment analysis.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/hypewire/hypewire/internal/modules/vibe"
)

// Handler handles vibe analysis HTTP requests
type Handler struct {
	service *vibe.Service
	log     zerolog.Logger
}

// NewHandler creates a new vibe handler
func NewHandler(service *vibe.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "vibe").Logger(),
	}
}

// AnalyzeVibeRequest carries the text to score
type AnalyzeVibeRequest struct {
	Text string `json:"text"`
}

// AnalyzeVibeResponse is the browser contract: the analysis plus the
// derived alert, if any.
type AnalyzeVibeResponse struct {
	Vibe  vibe.VibeAnalysis `json:"vibe"`
	Alert vibe.VibeAlert    `json:"alert"`
}

// HandleAnalyzeVibe handles POST /api/ai/analyze-vibe
func (h *Handler) HandleAnalyzeVibe(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeVibeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Text == "" {
		h.writeError(w, http.StatusBadRequest, "Text is required")
		return
	}

	result, alert := h.service.AnalyzeVibe(r.Context(), req.Text)
	if result.Degraded {
		h.log.Warn().Str("reason", result.Reason).Msg("Vibe analysis degraded to local heuristic")
	}

	h.writeJSON(w, http.StatusOK, AnalyzeVibeResponse{
		Vibe:  result.Value,
		Alert: alert,
	})
}

// Helper methods

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// writeError writes an error response
func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{
		"error": message,
	})
}
