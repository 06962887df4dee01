package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"nhooyr.io/websocket"
)

// HandleStream handles GET /api/markets/ws. It pushes a refreshed board to
// the client every few seconds for as long as the connection stays open.
// No board data is produced while nobody is connected.
func (h *Handler) HandleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		h.log.Warn().Err(err).Msg("Websocket accept failed")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "stream closed")

	ctx := r.Context()
	h.log.Debug().Str("remote", r.RemoteAddr).Msg("Market stream connected")

	ticker := time.NewTicker(streamInterval)
	defer ticker.Stop()

	var tick int64
	for {
		if err := h.pushBoard(ctx, conn, tick); err != nil {
			h.log.Debug().Err(err).Msg("Market stream ended")
			return
		}
		tick++

		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "")
			return
		case <-ticker.C:
		}
	}
}

func (h *Handler) pushBoard(ctx context.Context, conn *websocket.Conn, tick int64) error {
	data, err := json.Marshal(h.generator.MarketsAt(tick))
	if err != nil {
		return err
	}

	writeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return conn.Write(writeCtx, websocket.MessageText, data)
}
