package briefing

import "github.com/hypewire/hypewire/internal/domain"

// MarketBriefingInput is one market as supplied by the caller per briefing
// request; not persisted.
type MarketBriefingInput struct {
	Topic       string  `json:"topic"`
	Momentum    float64 `json:"momentum"`
	Change24h   float64 `json:"change24h"`
	Volume      string  `json:"volume"`
	HypeScore   int     `json:"hypeScore"`
	HypeSummary string  `json:"hypeSummary,omitempty"`
}

// Strategy is the structured market-strategy record.
type Strategy struct {
	Summary             string                `json:"summary"`
	MomentumDirection   string                `json:"momentumDirection"`
	RecommendedDuration domain.DurationBucket `json:"recommendedDuration"`
	Rationale           string                `json:"rationale"`
	RiskLevel           string                `json:"riskLevel"`
}

// GeneratedScript is a narration script with spoken-length metadata.
type GeneratedScript struct {
	Text              string  `json:"text"`
	WordCount         int     `json:"wordCount"`
	EstimatedDuration float64 `json:"estimatedDuration"` // seconds
}

// BriefingResult is the full response of a live hype briefing: the script
// plus the synthesized audio.
type BriefingResult struct {
	Script            string  `json:"script"`
	WordCount         int     `json:"wordCount"`
	EstimatedDuration float64 `json:"estimatedDuration"`
	AudioURL          string  `json:"audioUrl"`
	AudioBase64       string  `json:"audioBase64"`
	Model             string  `json:"model"`
	Voice             string  `json:"voice"`
	GenerationTimeMs  int64   `json:"generationTimeMs"`
}
