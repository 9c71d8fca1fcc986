package websocket

import (
	"net/http"
	"sync"
	"time"

	"ZramManager/internal/pkg/logger"

	"github.com/gorilla/websocket"
)

var (
	// Registry singleton
	registry *Registry
	once     sync.Once
)

// Registry holds the WebSocket handlers of the status API
type Registry struct {
	mu            sync.RWMutex
	swapHandler   *Handler
	memoryHandler *Handler
}

// GetRegistry returns the WebSocket registry singleton
func GetRegistry() *Registry {
	once.Do(func() {
		registry = NewRegistry()
	})
	return registry
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{}
}

const (
	// writeWait bounds a single frame write to a client
	writeWait = 10 * time.Second
	// sendBuffer is the number of messages queued per client before it is dropped
	sendBuffer = 16
)

// Handler manages WebSocket connections. Broadcast never blocks on a client:
// each client has its own queue drained by a writer goroutine.
type Handler struct {
	clients  map[*Client]bool
	mu       sync.Mutex
	upgrader websocket.Upgrader
}

// Client represents a WebSocket client connection
type Client struct {
	conn *websocket.Conn
	send chan []byte
}

// NewHandler creates a new WebSocket handler
func NewHandler() *Handler {
	return &Handler{
		clients: make(map[*Client]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// ServeHTTP handles WebSocket connections
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("Failed to upgrade to WebSocket connection",
			logger.String("error", err.Error()))
		return
	}

	client := &Client{conn: conn, send: make(chan []byte, sendBuffer)}

	h.mu.Lock()
	h.clients[client] = true
	h.mu.Unlock()

	go client.writePump()

	defer func() {
		h.mu.Lock()
		h.removeLocked(client)
		h.mu.Unlock()
	}()

	// Clients only listen; reading detects the close
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// writePump drains the client queue until it is closed or a write fails
func (c *Client) writePump() {
	defer c.conn.Close()

	for message := range c.send {
		if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			return
		}
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			logger.Debug("Dropping WebSocket client after write error",
				logger.String("error", err.Error()))
			return
		}
	}
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
}

// removeLocked forgets the client and stops its writer. h.mu must be held.
func (h *Handler) removeLocked(client *Client) {
	if !h.clients[client] {
		return
	}
	delete(h.clients, client)
	close(client.send)
}

// Broadcast queues a message for all clients of this handler. A client whose
// queue is full is disconnected instead of stalling the caller.
func (h *Handler) Broadcast(message []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		select {
		case client.send <- message:
		default:
			logger.Warn("Dropping slow WebSocket client",
				logger.String("remote", client.conn.RemoteAddr().String()),
				logger.Int("queued", len(client.send)))
			h.removeLocked(client)
			// unblocks a writer stuck on a full TCP window
			client.conn.Close()
		}
	}
}

// ClientCount returns the number of connected clients
func (h *Handler) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// GetSwapHandler returns the handler streaming controller tick reports
func (r *Registry) GetSwapHandler() *Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.swapHandler
}

// RegisterSwapHandler sets the handler streaming controller tick reports
func (r *Registry) RegisterSwapHandler(handler *Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.swapHandler = handler
}

// GetMemoryHandler returns the memory-specific WebSocket handler
func (r *Registry) GetMemoryHandler() *Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.memoryHandler
}

// RegisterMemoryHandler sets the memory-specific WebSocket handler
func (r *Registry) RegisterMemoryHandler(handler *Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.memoryHandler = handler
}
