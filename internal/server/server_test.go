package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hypewire/hypewire/internal/config"
	"github.com/hypewire/hypewire/internal/events"
	"github.com/hypewire/hypewire/internal/modules/auth"
	"github.com/hypewire/hypewire/internal/modules/briefing"
	briefinghandlers "github.com/hypewire/hypewire/internal/modules/briefing/handlers"
	"github.com/hypewire/hypewire/internal/modules/markets"
	marketshandlers "github.com/hypewire/hypewire/internal/modules/markets/handlers"
	"github.com/hypewire/hypewire/internal/modules/signals"
	signalshandlers "github.com/hypewire/hypewire/internal/modules/signals/handlers"
	"github.com/hypewire/hypewire/internal/modules/trading"
	tradinghandlers "github.com/hypewire/hypewire/internal/modules/trading/handlers"
	"github.com/hypewire/hypewire/internal/modules/vibe"
	vibehandlers "github.com/hypewire/hypewire/internal/modules/vibe/handlers"
	"github.com/hypewire/hypewire/internal/queue"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	log := zerolog.Nop()
	bus := events.NewBus()
	q := queue.New(time.Millisecond, log)

	signalsService := signals.NewService(nil, bus, log)
	vibeService := vibe.NewService(nil, bus, log)
	briefingService := briefing.NewService(nil, nil, bus, log)
	tradingService := trading.NewService(bus, log)
	generator := markets.NewGenerator(42)

	return New(Config{
		Log:    log,
		Config: &config.Config{Port: 8080},
		Bus:    bus,
		Queue:  q,

		Signals:  signalshandlers.NewHandler(signalsService, log),
		Vibe:     vibehandlers.NewHandler(vibeService, log),
		Briefing: briefinghandlers.NewHandler(briefingService, log),
		Trading:  tradinghandlers.NewHandler(tradingService, log),
		Markets:  marketshandlers.NewHandler(generator, log),
		Auth:     auth.NewHandler(log),
	})
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestListMarketsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/markets", nil)
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var cards []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cards))
	assert.NotEmpty(t, cards)
	assert.Contains(t, cards[0], "marketId")
	assert.Contains(t, cards[0], "hypeScore")
}

func TestPlaceTradeEndToEnd(t *testing.T) {
	srv := newTestServer(t)

	body := []byte(`{"marketId":"mkt-ai-robots","topic":"AI Robots","momentum":94,"direction":"long","duration":"30m","amount":100}`)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/trading/place-trade", bytes.NewReader(body))
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var record trading.TradeRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &record))
	assert.Equal(t, 194.0, record.EstimatedReturn)
}

func TestAuthMeEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "demo_trader")
}

func TestSystemStatusEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/system/status", nil)
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var status SystemStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "ok", status.Status)
	assert.Positive(t, status.Goroutines)
}
