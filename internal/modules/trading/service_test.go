package trading

import (
	"regexp"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hypewire/hypewire/internal/domain"
	"github.com/hypewire/hypewire/internal/events"
)

func newFixedService(t *testing.T, at time.Time) *Service {
	t.Helper()
	svc := NewService(nil, zerolog.Nop())
	svc.now = func() time.Time { return at }
	return svc
}

func placeReq(momentum float64, direction domain.Direction, duration domain.DurationBucket, amount float64) PlaceTradeRequest {
	return PlaceTradeRequest{
		SelectMarketRequest: SelectMarketRequest{
			MarketID: "mkt-1",
			Topic:    "AI Robots",
			Momentum: momentum,
		},
		Direction: direction,
		Duration:  duration,
		Amount:    amount,
	}
}

func TestPlaceTradeLongReturnMath(t *testing.T) {
	svc := newFixedService(t, time.Now())

	record, err := svc.PlaceTrade(placeReq(94, domain.DirectionLong, domain.Duration1h, 100))
	require.NoError(t, err)
	assert.Equal(t, 194.00, record.EstimatedReturn)
}

func TestPlaceTradeShortReturnMath(t *testing.T) {
	svc := newFixedService(t, time.Now())

	record, err := svc.PlaceTrade(placeReq(65, domain.DirectionShort, domain.Duration1h, 50))
	require.NoError(t, err)
	assert.Equal(t, 67.50, record.EstimatedReturn)
}

func TestPlaceTradeExpiryMath(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := newFixedService(t, at)

	cases := map[domain.DurationBucket]time.Duration{
		domain.Duration30m: 30 * time.Minute,
		domain.Duration1h:  time.Hour,
		domain.Duration3h:  3 * time.Hour,
	}
	for bucket, window := range cases {
		record, err := svc.PlaceTrade(placeReq(50, domain.DirectionLong, bucket, 10))
		require.NoError(t, err)
		assert.Equal(t, at.Add(window), record.ExpiresAt, "bucket %s", bucket)
	}
}

func TestPlaceTradeIDFormat(t *testing.T) {
	at := time.UnixMilli(1735689600000)
	svc := newFixedService(t, at)

	record, err := svc.PlaceTrade(placeReq(50, domain.DirectionLong, domain.Duration30m, 10))
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^TRD-1735689600000-[a-z0-9]{6}$`), record.TradeID)
}

func TestPlaceTradeValidation(t *testing.T) {
	svc := newFixedService(t, time.Now())

	_, err := svc.PlaceTrade(placeReq(50, domain.DirectionLong, domain.Duration30m, 0))
	assert.ErrorContains(t, err, "amount")

	_, err = svc.PlaceTrade(placeReq(50, domain.DirectionLong, domain.Duration30m, -10))
	assert.ErrorContains(t, err, "amount")

	_, err = svc.PlaceTrade(placeReq(50, "hold", domain.Duration30m, 10))
	assert.ErrorContains(t, err, "direction")

	_, err = svc.PlaceTrade(placeReq(50, domain.DirectionShort, "2h", 10))
	assert.ErrorContains(t, err, "duration")
}

func TestPlaceTradeRounding(t *testing.T) {
	svc := newFixedService(t, time.Now())

	// 33.33 * (1 + 0.333) = 44.42889 -> 44.43
	record, err := svc.PlaceTrade(placeReq(33.3, domain.DirectionLong, domain.Duration1h, 33.33))
	require.NoError(t, err)
	assert.Equal(t, 44.43, record.EstimatedReturn)
}

func TestSelectMarketEchoesWithTimestamp(t *testing.T) {
	at := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	svc := newFixedService(t, at)

	req := SelectMarketRequest{MarketID: "mkt-7", Topic: "Sports Upset", Momentum: 78, HypeScore: 72}
	resp := svc.SelectMarket(req)
	assert.Equal(t, req, resp.SelectMarketRequest)
	assert.Equal(t, at, resp.SelectedAt)
}

func TestPlaceTradePublishesEvent(t *testing.T) {
	bus := events.NewBus()
	var got []*events.Event
	unsub := bus.Subscribe(func(e *events.Event) { got = append(got, e) })
	defer unsub()

	svc := NewService(bus, zerolog.Nop())
	record, err := svc.PlaceTrade(placeReq(94, domain.DirectionLong, domain.Duration1h, 100))
	require.NoError(t, err)

	require.Len(t, got, 1)
	data := got[0].Data.(*events.TradePlacedData)
	assert.Equal(t, record.TradeID, data.TradeID)
	assert.Equal(t, 194.00, data.EstimatedReturn)
}
