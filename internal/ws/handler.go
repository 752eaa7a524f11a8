package ws

import (
	"context"
	"encoding/json"
	"time"

	"player-auction/internal/notifier"
	"player-auction/utils"

	"github.com/coder/websocket"
	"github.com/gin-gonic/gin"
)

const writeTimeout = 3 * time.Second

// ServerMessage is the wire frame pushed to subscribers. Tokens carry no
// auction payload: on every StateChanged the client re-fetches the snapshot
// endpoint, which sidesteps ordering bugs from out-of-order delta delivery.
type ServerMessage struct {
	Type  string          `json:"type"` // "StateChanged" | "Error"
	Token *notifier.Token `json:"token,omitempty"`
	Error string          `json:"error,omitempty"`
}

// SubscribeHandler upgrades the request to a websocket and streams change
// tokens for the given notifier channel until the client disconnects. A
// disconnect only removes the subscription; commits are never affected.
func SubscribeHandler(n *notifier.Notifier, channel string) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := websocket.Accept(c.Writer, c.Request, nil)
		if err != nil {
			utils.Warn("ws: accept failed", map[string]any{"error": err.Error()})
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		sub := n.Subscribe(channel)
		defer n.Unsubscribe(sub)

		utils.Info("ws: subscriber joined", map[string]any{
			"subscription_id": sub.ID,
			"channel":         channel,
		})

		// Wake the client once on join so it fetches the current snapshot.
		if err := writeMessage(c.Request.Context(), conn, ServerMessage{Type: "StateChanged"}); err != nil {
			return
		}

		// Reader goroutine: the client sends nothing meaningful, but reading
		// is what detects a disconnect and releases the subscription.
		readCtx, cancelRead := context.WithCancel(c.Request.Context())
		defer cancelRead()
		go func() {
			defer cancelRead()
			for {
				if _, _, err := conn.Read(readCtx); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case <-readCtx.Done():
				return

			case token, ok := <-sub.C:
				if !ok {
					return
				}
				msg := ServerMessage{Type: "StateChanged", Token: &token}
				if err := writeMessage(readCtx, conn, msg); err != nil {
					utils.Info("ws: subscriber dropped", map[string]any{
						"subscription_id": sub.ID,
						"error":           err.Error(),
					})
					return
				}
			}
		}
	}
}

func writeMessage(ctx context.Context, conn *websocket.Conn, msg ServerMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return conn.Write(writeCtx, websocket.MessageText, payload)
}
