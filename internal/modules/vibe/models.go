package vibe

// VibeAnalysis is the joy/anxiety emotion reading for a piece of text.
// The remote path and the local fallback heuristic produce the identical
// shape; all scores are 0-100 integers.
type VibeAnalysis struct {
	Joy             int            `json:"joy"`
	Anxiety         int            `json:"anxiety"`
	Confidence      int            `json:"confidence"`
	DominantEmotion string         `json:"dominantEmotion"`
	Emotions        map[string]int `json:"emotions"`
}

// AlertType classifies a VibeAnalysis for the dashboard.
type AlertType string

const (
	AlertNone       AlertType = "none"
	AlertVolatility AlertType = "volatility"
	AlertHype       AlertType = "hype"
)

// VibeAlert is derived from a VibeAnalysis, never stored.
type VibeAlert struct {
	Type      AlertType `json:"type"`
	Intensity int       `json:"intensity"`
	Message   string    `json:"message"`
}
