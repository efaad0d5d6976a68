package stream

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/yildirimberke/berke-terminal-dashboard/internal/render"
	"github.com/yildirimberke/berke-terminal-dashboard/pkg/logger"
)

const (
	writeWait      = 5 * time.Second
	clientBuffer   = 8
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// the dashboard is same-origin; the reverse proxy enforces the rest
	CheckOrigin: func(*http.Request) bool { return true },
}

type client struct {
	conn *websocket.Conn
	send chan render.Frame
}

// Hub fans diffed market frames out to connected websocket clients. A
// client that cannot keep up has its oldest frame dropped; only the latest
// table state matters.
type Hub struct {
	logger *logger.Logger

	mu      sync.RWMutex
	clients map[*client]struct{}
	last    *render.Frame
}

// NewHub creates an empty hub.
func NewHub(opts ...Option) *Hub {
	h := &Hub{
		logger:  logger.Nop(),
		clients: make(map[*client]struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Option configures a Hub.
type Option func(*Hub)

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(h *Hub) { h.logger = l }
}

// Broadcast queues a frame for every connected client. Slow clients lose
// older frames rather than stalling the poll loop.
func (h *Hub) Broadcast(frame render.Frame) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = &frame

	// sends stay under the lock so a concurrent disconnect cannot close a
	// channel mid-send; all sends are non-blocking
	for c := range h.clients {
		select {
		case c.send <- frame:
		default:
			// drop the oldest queued frame and retry once
			select {
			case <-c.send:
			default:
			}
			select {
			case c.send <- frame:
			default:
			}
		}
	}
}

// ClientCount reports connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// RegisterRoutes mounts the stream endpoint.
func (h *Hub) RegisterRoutes(e *echo.Echo) {
	e.GET("/ws/market", h.handleWS)
}

func (h *Hub) handleWS(ec echo.Context) error {
	conn, err := upgrader.Upgrade(ec.Response(), ec.Request(), nil)
	if err != nil {
		return err
	}

	c := &client{conn: conn, send: make(chan render.Frame, clientBuffer)}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	last := h.last
	h.mu.Unlock()

	h.logger.Debug("stream client connected")

	// a fresh client immediately gets the current table state
	if last != nil {
		select {
		case c.send <- *last:
		default:
		}
	}

	go h.writeLoop(c)
	go h.readLoop(c)
	return nil
}

func (h *Hub) writeLoop(c *client) {
	defer h.drop(c)
	for frame := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteJSON(frame); err != nil {
			// closed connection: late frames are dropped with the client
			return
		}
	}
}

// readLoop drains control frames and detects disconnects.
func (h *Hub) readLoop(c *client) {
	defer h.drop(c)
	c.conn.SetReadLimit(maxMessageSize)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) drop(c *client) {
	h.mu.Lock()
	_, present := h.clients[c]
	delete(h.clients, c)
	h.mu.Unlock()
	if present {
		close(c.send)
		_ = c.conn.Close()
		h.logger.Debug("stream client disconnected")
	}
}
