package api

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"boothtrack.in/internal/infra"
)

// InitWebsocket registers the live location feed. Clients connect to
// /ws/locations?ward=W001 (or no ward for all wards) and receive each
// newly created check-in as JSON.
func InitWebsocket(app *fiber.App, hub *infra.WsHub) {
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/locations", websocket.New(func(conn *websocket.Conn) {
		ward := conn.Query("ward", infra.WardAll)

		hub.Register <- infra.WardSubscription{Conn: conn, Ward: ward}
		defer func() {
			hub.Unregister <- conn
		}()

		// The feed is one-way; the read loop only detects disconnect.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}))
}
