package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hypewire/hypewire/internal/modules/trading"
)

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()

	service := trading.NewService(nil, zerolog.Nop())
	handler := NewHandler(service, zerolog.Nop())

	router := chi.NewRouter()
	router.Route("/api", func(r chi.Router) {
		handler.RegisterRoutes(r)
	})
	return router
}

func TestHandlePlaceTrade(t *testing.T) {
	router := newTestRouter(t)

	body, _ := json.Marshal(map[string]interface{}{
		"marketId":  "mkt-ai-robots",
		"topic":     "AI Robots",
		"momentum":  80,
		"direction": "long",
		"duration":  "1h",
		"amount":    100,
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/trading/place-trade", bytes.NewReader(body))
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var record trading.TradeRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &record))
	assert.Equal(t, 180.0, record.EstimatedReturn)
	assert.Regexp(t, `^TRD-\d+-[a-z0-9]{6}$`, record.TradeID)
}

func TestHandlePlaceTradeRejectsBadAmount(t *testing.T) {
	router := newTestRouter(t)

	body := []byte(`{"marketId":"m","momentum":50,"direction":"long","duration":"1h","amount":0}`)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/trading/place-trade", bytes.NewReader(body))
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "amount")
}

func TestHandlePlaceTradeRejectsBadBody(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/trading/place-trade", bytes.NewReader([]byte("{not json")))
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSelectMarketEchoes(t *testing.T) {
	router := newTestRouter(t)

	body := []byte(`{"marketId":"mkt-meme-coins","topic":"Meme Coins","momentum":64.5}`)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/trading/select-market", bytes.NewReader(body))
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp trading.SelectMarketResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "mkt-meme-coins", resp.MarketID)
	assert.Equal(t, 64.5, resp.Momentum)
	assert.False(t, resp.SelectedAt.IsZero())
}
