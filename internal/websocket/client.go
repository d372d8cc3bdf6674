package websocket

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// subscribers only send control frames
	maxMessageSize = 512

	// sendBuffer holds a settlement run's worth of admin events
	sendBuffer = 256
)

// Client is a websocket subscriber. Events are queued by the hub and
// written by a single writer goroutine.
type Client struct {
	id      string
	channel int32
	conn    *websocket.Conn
	hub     *Hub

	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

// NewClient creates a subscriber for channel over conn
func NewClient(conn *websocket.Conn, channel int32, hub *Hub) *Client {
	return &Client{
		id:      uuid.New().String(),
		channel: channel,
		conn:    conn,
		hub:     hub,
		send:    make(chan []byte, sendBuffer),
		done:    make(chan struct{}),
	}
}

// ID returns the subscriber's id
func (c *Client) ID() string {
	return c.id
}

// Channel returns the unit number or AdminChannel
func (c *Client) Channel() int32 {
	return c.channel
}

// Send queues data without blocking
func (c *Client) Send(data []byte) error {
	select {
	case <-c.done:
		return ErrClientClosed
	default:
	}
	select {
	case c.send <- data:
		return nil
	case <-c.done:
		return ErrClientClosed
	default:
		return ErrSlowClient
	}
}

// Close stops the writer and closes the connection. It is safe to call more
// than once.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		err = c.conn.Close()
	})
	return err
}

// Serve registers the client and runs it until the peer disconnects or the
// hub drops it. The read loop only services pongs and close frames.
func (c *Client) Serve() {
	c.hub.Register(c)
	go c.writeLoop()

	defer func() {
		c.hub.Unregister(c)
		_ = c.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().
					Err(err).
					Str("client_id", c.id).
					Int32("channel", c.channel).
					Msg("WebSocket unexpected close")
			}
			return
		}
	}
}

func (c *Client) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return

		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Warn().
					Err(err).
					Str("client_id", c.id).
					Int32("channel", c.channel).
					Msg("WebSocket write error")
				_ = c.Close()
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				_ = c.Close()
				return
			}
		}
	}
}
