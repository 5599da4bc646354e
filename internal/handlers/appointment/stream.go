package appointment

import (
	"agenda/internal/domains/appointment/model/dto"
	"agenda/shared/constant"
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	streamWriteWait  = 10 * time.Second
	streamPongWait   = 60 * time.Second
	streamPingPeriod = streamPongWait * 9 / 10
)

func newUpgrader(allowedOrigins []string) websocket.Upgrader {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}

	if len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, constant.Asterix) {
		upgrader.CheckOrigin = func(*http.Request) bool { return true }

		return upgrader
	}

	upgrader.CheckOrigin = func(r *http.Request) bool {
		return slices.Contains(allowedOrigins, r.Header.Get("Origin"))
	}

	return upgrader
}

// Stream pushes the sorted appointment list over a websocket on every change.
// @Summary Live appointment stream
// @Description Websocket. Each frame carries the whole sorted list and the subscription status.
// @Tags Appointment
// @Success 101 {object} dto.StreamFrame
// @Router /v1/appointments/stream [get]
func (handler *Handler) Stream(w http.ResponseWriter, r *http.Request) {
	conn, err := handler.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("failed to upgrade appointment stream")

		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	go discardIncoming(conn, cancel)

	states := handler.service.Watch(ctx)
	ticker := time.NewTicker(streamPingPeriod)

	defer ticker.Stop()

	for {
		select {
		case state, ok := <-states:
			if !ok {
				return
			}

			var frame dto.StreamFrame
			frame.FromState(state)

			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))

			if err := conn.WriteJSON(frame); err != nil {
				log.Debug().Err(err).Msg("appointment stream closed")

				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))

			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

// discardIncoming keeps control frames flowing and cancels once the peer goes away.
func discardIncoming(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()

	_ = conn.SetReadDeadline(time.Now().Add(streamPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(streamPongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Msg("appointment stream read failed")
			}

			return
		}
	}
}
