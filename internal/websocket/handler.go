package websocket

import (
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ServeWs registers the connection and blocks until it closes. initial, when
// not nil, is queued before any broadcast.
func ServeWs(hub *Hub, c *websocket.Conn, userID uuid.UUID, initial []byte) {
	client := &Client{Hub: hub, Conn: c, UserID: userID, Send: make(chan []byte, 256)}
	if initial != nil {
		client.Send <- initial
	}
	if !hub.join(client) {
		c.Close()
		return
	}

	go client.writePump()
	client.readPump()
}
