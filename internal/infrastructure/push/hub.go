// Package push delivers realtime notifications to connected runners over
// WebSocket. Each runner may hold multiple connections (one per device).
package push

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/zona2/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Message is the payload pushed to a runner's open connections.
type Message struct {
	Kind  string          `json:"kind"`
	Title string          `json:"title"`
	Body  string          `json:"body"`
	Data  json.RawMessage `json:"data,omitempty"`
	At    time.Time       `json:"at"`
}

// Hub tracks connected runners and fans messages out to their connections.
type Hub struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]map[*client]struct{}

	upgrader websocket.Upgrader

	writeTimeout   time.Duration
	pingInterval   time.Duration
	sendBufferSize int

	logger *zap.Logger
	closed bool
}

type client struct {
	hub      *Hub
	runnerID uuid.UUID
	conn     *websocket.Conn
	send     chan []byte
	once     sync.Once
}

// NewHub creates a hub from push configuration
func NewHub(cfg config.PushConfig, logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}

	writeTimeout := cfg.WriteTimeout
	if writeTimeout == 0 {
		writeTimeout = 10 * time.Second
	}
	pingInterval := cfg.PingInterval
	if pingInterval == 0 {
		pingInterval = 30 * time.Second
	}
	sendBufferSize := cfg.SendBufferSize
	if sendBufferSize == 0 {
		sendBufferSize = 16
	}

	return &Hub{
		clients: make(map[uuid.UUID]map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.ReadBufferSize,
			WriteBufferSize: cfg.WriteBufferSize,
			CheckOrigin: func(r *http.Request) bool {
				// Origin is enforced by the CORS middleware up front
				return true
			},
		},
		writeTimeout:   writeTimeout,
		pingInterval:   pingInterval,
		sendBufferSize: sendBufferSize,
		logger:         logger,
	}
}

// HandleConnection upgrades the HTTP request and serves the runner's
// connection until the peer disconnects or the hub shuts down.
func (h *Hub) HandleConnection(w http.ResponseWriter, r *http.Request, runnerID uuid.UUID) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	c := &client{
		hub:      h,
		runnerID: runnerID,
		conn:     conn,
		send:     make(chan []byte, h.sendBufferSize),
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return nil
	}
	if h.clients[runnerID] == nil {
		h.clients[runnerID] = make(map[*client]struct{})
	}
	h.clients[runnerID][c] = struct{}{}
	h.mu.Unlock()

	h.logger.Debug("push connection opened", zap.String("runner_id", runnerID.String()))

	go c.writePump()
	c.readPump()
	return nil
}

// Publish sends a message to every open connection of the runner. Delivery
// is best effort: if the runner is offline the message is dropped, the
// persisted notification inbox is the durable record.
func (h *Hub) Publish(runnerID uuid.UUID, msg Message) {
	if msg.At.IsZero() {
		msg.At = time.Now()
	}

	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("failed to marshal push message", zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients[runnerID] {
		select {
		case c.send <- data:
		default:
			// Slow consumer, drop the connection rather than block
			go c.close()
		}
	}
}

// ConnectionCount returns the number of open connections for the runner
func (h *Hub) ConnectionCount(runnerID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[runnerID])
}

// Shutdown closes all connections and stops accepting new ones
func (h *Hub) Shutdown() {
	h.mu.Lock()
	h.closed = true
	var all []*client
	for _, conns := range h.clients {
		for c := range conns {
			all = append(all, c)
		}
	}
	h.clients = make(map[uuid.UUID]map[*client]struct{})
	h.mu.Unlock()

	for _, c := range all {
		c.close()
	}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns, ok := h.clients[c.runnerID]
	if !ok {
		return
	}
	delete(conns, c)
	if len(conns) == 0 {
		delete(h.clients, c.runnerID)
	}
}

func (c *client) close() {
	c.once.Do(func() {
		c.hub.remove(c)
		close(c.send)
		c.conn.Close()
	})
}

// readPump drains incoming frames so ping/pong and close frames are
// processed. Clients do not send application messages.
func (c *client) readPump() {
	defer c.close()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(c.hub.pingInterval * 2))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.hub.pingInterval * 2))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(c.hub.pingInterval)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			if !ok {
				c.conn.SetWriteDeadline(time.Now().Add(c.hub.writeTimeout))
				c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			c.conn.SetWriteDeadline(time.Now().Add(c.hub.writeTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(c.hub.writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
