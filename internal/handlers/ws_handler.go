package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/betheaakashhh/aakashbackendportfolio/internal/realtime"
	"github.com/betheaakashhh/aakashbackendportfolio/internal/utils"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = 50 * time.Second
)

// WSHandler upgrades authenticated clients onto the notification hub.
// Browsers cannot set headers on websocket requests, so the token arrives
// as a query parameter.
type WSHandler struct {
	Hub       *realtime.Hub
	JWTSecret string
}

func NewWSHandler(hub *realtime.Hub, secret string) *WSHandler {
	return &WSHandler{Hub: hub, JWTSecret: secret}
}

// Upgrade gates the connection: reject before the websocket handshake when
// the token is missing or bad.
func (h *WSHandler) Upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	claims, err := utils.ParseJWT(h.JWTSecret, c.Query("token"))
	if err != nil {
		return fiber.ErrUnauthorized
	}
	uid, err := uuid.Parse(claims.UserID)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	c.Locals("wsUserId", uid)
	return c.Next()
}

// Serve runs the connection's read and write pumps until either side closes.
func (h *WSHandler) Serve() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		uid, ok := conn.Locals("wsUserId").(uuid.UUID)
		if !ok {
			conn.Close()
			return
		}

		client := &realtime.Client{
			ID:     uuid.NewString(),
			UserID: uid,
			Conn:   realtime.NewWebSocketConn(conn),
			Send:   make(chan []byte, 16),
		}
		h.Hub.RegisterClient(client)

		done := make(chan struct{})

		// Write pump: hub events and keepalive pings.
		go func() {
			ticker := time.NewTicker(wsPingPeriod)
			defer ticker.Stop()
			for {
				select {
				case payload, open := <-client.Send:
					if !open {
						return
					}
					conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
					if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
						return
					}
				case <-ticker.C:
					conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
					if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
						return
					}
				case <-done:
					return
				}
			}
		}()

		// Read pump: the client sends nothing meaningful; reading just
		// notices pongs and disconnects.
		conn.SetReadDeadline(time.Now().Add(wsPongWait))
		conn.SetPongHandler(func(string) error {
			conn.SetReadDeadline(time.Now().Add(wsPongWait))
			return nil
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}

		close(done)
		h.Hub.UnregisterClient(client)
		conn.Close()
	})
}
