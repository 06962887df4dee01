package events

// EventData is the interface that all event data types must implement
// This allows for type-safe event data while maintaining flexibility
type EventData interface {
	// EventType returns the event type this data is associated with
	EventType() EventType
}

// VibeAlertData contains data for VibeAlertRaised events
type VibeAlertData struct {
	AlertType string `json:"alertType"` // volatility | hype
	Intensity int    `json:"intensity"`
	Message   string `json:"message"`
}

// EventType returns the event type for VibeAlertData
func (d *VibeAlertData) EventType() EventType {
	return VibeAlertRaised
}

// TradePlacedData contains data for TradePlaced events
type TradePlacedData struct {
	TradeID         string  `json:"tradeId"`
	MarketID        string  `json:"marketId"`
	Topic           string  `json:"topic"`
	Direction       string  `json:"direction"`
	Amount          float64 `json:"amount"`
	EstimatedReturn float64 `json:"estimatedReturn"`
}

// EventType returns the event type for TradePlacedData
func (d *TradePlacedData) EventType() EventType {
	return TradePlaced
}

// BriefingGeneratedData contains data for BriefingGenerated events
type BriefingGeneratedData struct {
	WordCount        int    `json:"wordCount"`
	Voice            string `json:"voice"`
	Model            string `json:"model"`
	GenerationTimeMs int64  `json:"generationTimeMs"`
}

// EventType returns the event type for BriefingGeneratedData
func (d *BriefingGeneratedData) EventType() EventType {
	return BriefingGenerated
}

// SignalsAnalyzedData contains data for SignalsAnalyzed events
type SignalsAnalyzedData struct {
	Requested int `json:"requested"`
	Degraded  int `json:"degraded"`
}

// EventType returns the event type for SignalsAnalyzedData
func (d *SignalsAnalyzedData) EventType() EventType {
	return SignalsAnalyzed
}
