// Package trading implements the mock trading calculations. All operations
// are pure request/response computations with no shared mutable state.
package trading

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/hypewire/hypewire/internal/domain"
	"github.com/hypewire/hypewire/internal/events"
)

const tradeIDPrefix = "TRD"

const idSuffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Service computes mock trades
type Service struct {
	bus *events.Bus
	log zerolog.Logger

	// Injected clock, replaced in tests.
	now func() time.Time
}

// NewService creates a new mock trading service
func NewService(bus *events.Bus, log zerolog.Logger) *Service {
	return &Service{
		bus: bus,
		log: log.With().Str("service", "trading").Logger(),
		now: time.Now,
	}
}

// SelectMarket echoes the submitted market with a server timestamp. Always
// succeeds.
func (s *Service) SelectMarket(req SelectMarketRequest) SelectMarketResponse {
	return SelectMarketResponse{
		SelectMarketRequest: req,
		SelectedAt:          s.now(),
	}
}

// PlaceTrade computes the estimated return and expiry for a mock trade. The
// only validation is a positive amount and in-range direction/duration.
func (s *Service) PlaceTrade(req PlaceTradeRequest) (*TradeRecord, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}
	if !req.Direction.Valid() {
		return nil, fmt.Errorf("direction must be long or short")
	}
	if !req.Duration.Valid() {
		return nil, fmt.Errorf("duration must be one of 30m, 1h, 3h")
	}

	var baseReturn float64
	if req.Direction == domain.DirectionLong {
		baseReturn = req.Momentum * 0.01
	} else {
		baseReturn = (100 - req.Momentum) * 0.01
	}

	now := s.now()
	record := &TradeRecord{
		TradeID:         s.newTradeID(now),
		MarketID:        req.MarketID,
		Topic:           req.Topic,
		Direction:       req.Direction,
		Duration:        req.Duration,
		Amount:          req.Amount,
		EstimatedReturn: round2(req.Amount * (1 + baseReturn)),
		ExpiresAt:       now.Add(req.Duration.Window()),
	}

	if s.bus != nil {
		s.bus.Publish(&events.TradePlacedData{
			TradeID:         record.TradeID,
			MarketID:        record.MarketID,
			Topic:           record.Topic,
			Direction:       string(record.Direction),
			Amount:          record.Amount,
			EstimatedReturn: record.EstimatedReturn,
		})
	}

	s.log.Info().
		Str("trade_id", record.TradeID).
		Str("market_id", record.MarketID).
		Str("direction", string(record.Direction)).
		Float64("amount", record.Amount).
		Float64("estimated_return", record.EstimatedReturn).
		Msg("Mock trade placed")

	return record, nil
}

// newTradeID builds ids like TRD-1735689600000-k3x9qz.
func (s *Service) newTradeID(now time.Time) string {
	suffix := make([]byte, 6)
	for i := range suffix {
		suffix[i] = idSuffixAlphabet[rand.Intn(len(idSuffixAlphabet))]
	}
	return fmt.Sprintf("%s-%d-%s", tradeIDPrefix, now.UnixMilli(), suffix)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
