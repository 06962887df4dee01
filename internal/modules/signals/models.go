package signals

import "github.com/hypewire/hypewire/internal/domain"

// SignalAnalysis is the structured analysis derived from one raw signal.
// Never mutated after creation.
type SignalAnalysis struct {
	CoreEvent         string                `json:"coreEvent"`
	Actors            []string              `json:"actors"`
	HypeSummary       string                `json:"hypeSummary"`
	IsNoise           bool                  `json:"isNoise"`
	Confidence        int                   `json:"confidence"`
	SuggestedDuration domain.DurationBucket `json:"suggestedDuration"`
	Rationale         string                `json:"rationale"`
}

// AnalyzedSignal pairs an analysis with the id of the signal it was derived
// from. The batch response is a list of these in input order.
type AnalyzedSignal struct {
	SignalID string `json:"signalId"`
	SignalAnalysis
}
