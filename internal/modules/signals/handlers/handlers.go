// Package handlers provides HTTP handlers for signal analysis.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/hypewire/hypewire/internal/domain"
	"github.com/hypewire/hypewire/internal/modules/signals"
)

// Handler handles signal analysis HTTP requests
type Handler struct {
	service *signals.Service
	log     zerolog.Logger
}

// NewHandler creates a new signals handler
func NewHandler(service *signals.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "signals").Logger(),
	}
}

// AnalyzeSignalRequest wraps a single raw signal
type AnalyzeSignalRequest struct {
	Signal domain.RawSignal `json:"signal"`
}

// AnalyzeBatchRequest wraps an ordered list of raw signals
type AnalyzeBatchRequest struct {
	Signals []domain.RawSignal `json:"signals"`
}

// HandleAnalyzeSignal handles POST /api/ai/analyze-signal
func (h *Handler) HandleAnalyzeSignal(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeSignalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Signal.ID == "" {
		h.writeError(w, http.StatusBadRequest, "Signal id is required")
		return
	}

	analyzed := h.service.AnalyzeSignal(r.Context(), req.Signal)
	h.writeJSON(w, http.StatusOK, analyzed.SignalAnalysis)
}

// HandleAnalyzeBatch handles POST /api/ai/analyze-batch-signals
func (h *Handler) HandleAnalyzeBatch(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if len(req.Signals) == 0 {
		h.writeError(w, http.StatusBadRequest, "No signals provided")
		return
	}

	h.writeJSON(w, http.StatusOK, h.service.AnalyzeBatch(r.Context(), req.Signals))
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
