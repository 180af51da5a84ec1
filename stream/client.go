package stream

import (
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// writeWait bounds a single websocket write so one slow viewer cannot stall
// the hub.
const writeWait = 10 * time.Second

// Client is a websocket subscriber.
type Client struct {
	id     string
	conn   *websocket.Conn
	logger *log.Logger

	mu     sync.Mutex
	closed bool
}

// NewClient wraps conn with a fresh subscriber ID.
func NewClient(conn *websocket.Conn, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.Default()
	}
	return &Client{id: uuid.NewString(), conn: conn, logger: logger}
}

// ID returns the subscriber ID used in logs.
func (c *Client) ID() string { return c.id }

// Send writes one text message.
func (c *Client) Send(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return websocket.ErrCloseSent
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		c.logger.Debug("websocket send failed", "id", c.id, "err", err)
		return err
	}
	return nil
}

// Close terminates the connection.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	_ = c.conn.Close()
}

// Handler upgrades requests to websockets and registers them with a hub.
type Handler struct {
	Hub      *Hub
	Logger   *log.Logger
	upgrader websocket.Upgrader
}

// NewHandler returns a Handler for hub.
func NewHandler(hub *Hub, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{
		Hub:    hub,
		Logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the connection and blocks reading until the viewer
// disconnects. Messages from the viewer are ignored.
func (h *Handler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	conn, err := h.upgrader.Upgrade(w, req, nil)
	if err != nil {
		h.Logger.Error("websocket upgrade failed", "err", err)
		return
	}
	client := NewClient(conn, h.Logger)
	h.Hub.Register(client)
	defer h.Hub.Unregister(client)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
