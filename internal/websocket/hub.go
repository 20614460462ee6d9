package websocket

import (
	"sync"

	"github.com/avirtanen/noshcart-backend/pkg/logger"
)

// Client is one live websocket connection belonging to a cart session
type Client struct {
	Hub       *Hub
	Conn      *Conn
	SessionID string
	Send      chan []byte
}

// Hub tracks live connections per cart session. A session can hold
// several connections (multiple tabs) and each gets every push.
type Hub struct {
	clients map[string][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex
}

// NewHub creates a hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string][]*Client),
		register:   make(chan *Client, 256),
		unregister: make(chan *Client, 256),
	}
}

// Run processes register/unregister events. Call it in its own
// goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.SessionID] = append(h.clients[client.SessionID], client)
			h.mu.Unlock()
			logger.Debug("WebSocket client registered", map[string]interface{}{
				"session_id": client.SessionID,
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if list, ok := h.clients[client.SessionID]; ok {
				remaining := make([]*Client, 0, len(list))
				for _, c := range list {
					if c != client {
						remaining = append(remaining, c)
					}
				}
				if len(remaining) == 0 {
					delete(h.clients, client.SessionID)
				} else {
					h.clients[client.SessionID] = remaining
				}
				close(client.Send)
			}
			h.mu.Unlock()
			logger.Debug("WebSocket client unregistered", map[string]interface{}{
				"session_id": client.SessionID,
			})
		}
	}
}

// Register enqueues a client registration
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister enqueues a client removal
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// SendToSession pushes a payload to every connection the session holds.
// A connection with a full send buffer is dropped rather than letting
// it stall the push.
func (h *Hub) SendToSession(sessionID string, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients[sessionID] {
		select {
		case client.Send <- payload:
		default:
			go h.Unregister(client)
			logger.Warn("Client send buffer full, disconnecting", map[string]interface{}{
				"session_id": sessionID,
			})
		}
	}
}
