// Package auth provides session stub endpoints. There is no real account
// system: the dashboard always sees the same demo trader with a fresh
// session id per process.
package auth

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// User is the demo account shown in the dashboard header.
type User struct {
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	SessionID string    `json:"sessionId"`
	LoggedIn  bool      `json:"loggedIn"`
	Since     time.Time `json:"since"`
}

// Handler handles auth HTTP requests
type Handler struct {
	user User
	log  zerolog.Logger
}

// NewHandler creates a new auth handler
func NewHandler(log zerolog.Logger) *Handler {
	return &Handler{
		user: User{
			UserID:    uuid.NewString(),
			Username:  "demo_trader",
			SessionID: uuid.NewString(),
			LoggedIn:  true,
			Since:     time.Now().UTC(),
		},
		log: log.With().Str("handler", "auth").Logger(),
	}
}

// HandleMe handles GET /api/auth/me
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.user)
}

// HandleLogout handles POST /api/auth/logout
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.log.Info().Str("session_id", h.user.SessionID).Msg("Logout requested")
	h.writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// RegisterRoutes registers all auth routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Get("/me", h.HandleMe)
		r.Post("/logout", h.HandleLogout)
	})
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
