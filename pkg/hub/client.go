package hub

import (
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	// writeWait is how long to wait for a write to complete.
	writeWait = 10 * time.Second

	// pongWait is how long to wait for a pong response.
	pongWait = 60 * time.Second

	// pingPeriod must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// maxMessageSize allows camera frames on the relay stream.
	maxMessageSize = 512 * 1024
)

// Client is a single websocket subscriber.
type Client struct {
	id   string
	hub  *Hub
	conn *websocket.Conn
	send chan Message

	// onMessage, when set, receives inbound binary payloads. The frame
	// relay uses it to accept camera frames pushed by the companion app.
	onMessage func(data []byte)
}

// NewClient registers a new subscriber with the hub.
func NewClient(h *Hub, conn *websocket.Conn) *Client {
	return newClient(h, conn, nil)
}

// NewIngestClient registers a subscriber whose inbound binary messages
// are forwarded to the given callback.
func NewIngestClient(h *Hub, conn *websocket.Conn, onMessage func(data []byte)) *Client {
	return newClient(h, conn, onMessage)
}

func newClient(h *Hub, conn *websocket.Conn, onMessage func(data []byte)) *Client {
	client := &Client{
		id:        uuid.NewString(),
		hub:       h,
		conn:      conn,
		send:      make(chan Message, 256),
		onMessage: onMessage,
	}
	h.register <- client
	return client
}

// ID returns the client's identifier, for logs.
func (c *Client) ID() string {
	return c.id
}

// Run starts the read and write pumps and blocks until the connection
// closes. Call it from the websocket handler.
func (c *Client) Run() {
	go c.writePump()
	c.readPump()
}

// readPump drains the connection to detect disconnects and receive
// pongs, and feeds inbound binary payloads to the ingest callback.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		msgType, data, err := c.conn.ReadMessage()
		if err != nil {
			break
		}
		if c.onMessage != nil && msgType == websocket.BinaryMessage && len(data) > 0 {
			c.onMessage(data)
		}
	}
}

// writePump is the only goroutine writing to the connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			wsType := websocket.TextMessage
			if message.Type == BinaryMessage {
				wsType = websocket.BinaryMessage
			}
			if err := c.conn.WriteMessage(wsType, message.Data); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
