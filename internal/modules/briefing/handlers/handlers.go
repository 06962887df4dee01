// Package handlers provides HTTP handlers for strategy and briefing
// generation.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/hypewire/hypewire/internal/domain"
	"github.com/hypewire/hypewire/internal/modules/briefing"
	"github.com/hypewire/hypewire/internal/modules/vibe"
)

// Handler handles briefing HTTP requests
type Handler struct {
	service *briefing.Service
	log     zerolog.Logger
}

// NewHandler creates a new briefing handler
func NewHandler(service *briefing.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "briefing").Logger(),
	}
}

// StrategyRequest carries the inputs for a market strategy
type StrategyRequest struct {
	Topic           string             `json:"topic"`
	Signals         []domain.RawSignal `json:"signals"`
	CurrentMomentum float64            `json:"currentMomentum"`
	VibeData        *vibe.VibeAnalysis `json:"vibeData,omitempty"`
}

// BriefingRequest carries the markets to narrate and an optional voice name
type BriefingRequest struct {
	Markets []briefing.MarketBriefingInput `json:"markets"`
	Voice   string                         `json:"voice,omitempty"`
}

// HandleGenerateStrategy handles POST /api/ai/generate-market-strategy
func (h *Handler) HandleGenerateStrategy(w http.ResponseWriter, r *http.Request) {
	var req StrategyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Topic == "" {
		h.writeError(w, http.StatusBadRequest, "Topic is required")
		return
	}

	result := h.service.GenerateMarketStrategy(r.Context(), req.Topic, req.Signals, req.CurrentMomentum, req.VibeData)
	if result.Degraded {
		h.log.Warn().Str("reason", result.Reason).Str("topic", req.Topic).Msg("Strategy degraded to template")
	}

	h.writeJSON(w, http.StatusOK, result.Value)
}

// HandleGenerateBriefing handles POST /api/ai/generate-live-hype-briefing
func (h *Handler) HandleGenerateBriefing(w http.ResponseWriter, r *http.Request) {
	var req BriefingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if len(req.Markets) == 0 {
		h.writeError(w, http.StatusBadRequest, "No markets provided")
		return
	}

	result, err := h.service.GenerateLiveHypeBriefing(r.Context(), req.Markets, req.Voice)
	if err != nil {
		h.log.Error().Err(err).Msg("Briefing generation failed")
		h.writeError(w, http.StatusBadGateway, "Audio briefing unavailable right now, try again shortly")
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}

// HandleVoiceOptions handles GET /api/ai/voice-options
func (h *Handler) HandleVoiceOptions(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"voices":  briefing.VoiceOptions(),
		"default": briefing.DefaultVoice,
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
