package trading

import (
	"time"

	"github.com/hypewire/hypewire/internal/domain"
)

// SelectMarketRequest carries the market card the user picked.
type SelectMarketRequest struct {
	MarketID  string  `json:"marketId"`
	Topic     string  `json:"topic"`
	Category  string  `json:"category"`
	Momentum  float64 `json:"momentum"`
	Change24h float64 `json:"change24h"`
	Volume    string  `json:"volume"`
	HypeScore int     `json:"hypeScore"`
}

// SelectMarketResponse echoes the submitted market plus a server timestamp.
type SelectMarketResponse struct {
	SelectMarketRequest
	SelectedAt time.Time `json:"selectedAt"`
}

// PlaceTradeRequest is a mock trade submission.
type PlaceTradeRequest struct {
	SelectMarketRequest
	Direction domain.Direction      `json:"direction"`
	Duration  domain.DurationBucket `json:"duration"`
	Amount    float64               `json:"amount"`
}

// TradeRecord exists only for the duration of one request/response cycle -
// there is no storage.
type TradeRecord struct {
	TradeID         string                `json:"tradeId"`
	MarketID        string                `json:"marketId"`
	Topic           string                `json:"topic"`
	Direction       domain.Direction      `json:"direction"`
	Duration        domain.DurationBucket `json:"duration"`
	Amount          float64               `json:"amount"`
	EstimatedReturn float64               `json:"estimatedReturn"`
	ExpiresAt       time.Time             `json:"expiresAt"`
}
