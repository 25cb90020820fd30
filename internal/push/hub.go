// Package push delivers push messages to connected clients over websockets.
package push

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/farmkonnect-notifier/internal/metrics"
	"github.com/aliskhannn/farmkonnect-notifier/internal/model"
)

var (
	// ErrNotConnected is returned when the user has no live connection.
	ErrNotConnected = errors.New("user has no live push connection")
	// ErrBufferFull is returned when every connection of the user is backed up.
	ErrBufferFull = errors.New("push buffer full")
)

const maxMessageSize = 512

// Options tunes connection handling.
type Options struct {
	WriteTimeout time.Duration
	PingInterval time.Duration
	SendBuffer   int
}

func (o Options) withDefaults() Options {
	if o.WriteTimeout <= 0 {
		o.WriteTimeout = 10 * time.Second
	}
	if o.PingInterval <= 0 {
		o.PingInterval = 30 * time.Second
	}
	if o.SendBuffer <= 0 {
		o.SendBuffer = 16
	}
	return o
}

// Client is one registered websocket connection.
type Client struct {
	userID string
	conn   *websocket.Conn
	send   chan model.PushMessage
	done   chan struct{}
	once   sync.Once
}

// Hub is a registry of websocket connections keyed by user ID. A user may
// hold several connections; a message goes to all of them.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]struct{}
	opts    Options
}

func NewHub(opts Options) *Hub {
	return &Hub{
		clients: make(map[string]map[*Client]struct{}),
		opts:    opts.withDefaults(),
	}
}

// Register adds conn as a connection of userID.
func (h *Hub) Register(userID string, conn *websocket.Conn) *Client {
	c := &Client{
		userID: userID,
		conn:   conn,
		send:   make(chan model.PushMessage, h.opts.SendBuffer),
		done:   make(chan struct{}),
	}

	h.mu.Lock()
	if h.clients[userID] == nil {
		h.clients[userID] = make(map[*Client]struct{})
	}
	h.clients[userID][c] = struct{}{}
	h.mu.Unlock()

	metrics.PushConnections.Inc()
	zlog.Logger.Info().Str("user_id", userID).Msg("push client connected")

	return c
}

// Unregister removes c and closes its connection. It is safe to call more
// than once.
func (h *Hub) Unregister(c *Client) {
	c.once.Do(func() {
		h.mu.Lock()
		if set, ok := h.clients[c.userID]; ok {
			delete(set, c)
			if len(set) == 0 {
				delete(h.clients, c.userID)
			}
		}
		h.mu.Unlock()

		close(c.done)
		_ = c.conn.Close()

		metrics.PushConnections.Dec()
		zlog.Logger.Info().Str("user_id", c.userID).Msg("push client disconnected")
	})
}

// Serve registers conn for userID and pumps messages until the connection
// fails or ctx is cancelled.
func (h *Hub) Serve(ctx context.Context, userID string, conn *websocket.Conn) {
	c := h.Register(userID, conn)
	defer h.Unregister(c)

	go h.writePump(c)
	go func() {
		select {
		case <-ctx.Done():
			h.Unregister(c)
		case <-c.done:
		}
	}()

	h.readPump(c)
}

// Connected returns the number of live connections of userID.
func (h *Hub) Connected(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients[userID])
}

// Deliver queues msg on every connection of msg.UserID.
func (h *Hub) Deliver(ctx context.Context, msg model.PushMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	set := h.clients[msg.UserID]
	if len(set) == 0 {
		return ErrNotConnected
	}

	queued := 0
	for c := range set {
		select {
		case c.send <- msg:
			queued++
		case <-c.done:
		default:
			zlog.Logger.Warn().Str("user_id", msg.UserID).Msg("push client buffer full, message dropped")
		}
	}

	if queued == 0 {
		return ErrBufferFull
	}

	return nil
}

// Publish delivers msg directly, retrying with strategy. It lets the hub
// stand in for the message queue when RabbitMQ is disabled.
func (h *Hub) Publish(msg model.PushMessage, strategy retry.Strategy) error {
	return retry.Do(func() error {
		return h.Deliver(context.Background(), msg)
	}, strategy)
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.RLock()
	all := make([]*Client, 0)
	for _, set := range h.clients {
		for c := range set {
			all = append(all, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range all {
		h.Unregister(c)
	}
}

func (h *Hub) writePump(c *Client) {
	ticker := time.NewTicker(h.opts.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(h.opts.WriteTimeout))
			if err := c.conn.WriteJSON(msg); err != nil {
				zlog.Logger.Warn().Err(err).Str("user_id", c.userID).Msg("failed to write push message")
				h.Unregister(c)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(h.opts.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.Unregister(c)
				return
			}
		}
	}
}

// readPump discards client frames and keeps the read deadline alive on pongs.
func (h *Hub) readPump(c *Client) {
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(2 * h.opts.PingInterval))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(2 * h.opts.PingInterval))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
