// Package devsync pushes router state to connected browsers over
// WebSocket so the demo host can mirror server-driven navigation in
// every open tab.
package devsync

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// MessageType identifies a sync message.
type MessageType string

const (
	// TypeNavigate announces a snapshot replacement.
	TypeNavigate MessageType = "navigate"

	// TypeRender carries the freshly rendered view output.
	TypeRender MessageType = "render"
)

// Message is sent to browsers via WebSocket.
type Message struct {
	Type     MessageType `json:"type"`
	Path     string      `json:"path,omitempty"`
	Route    string      `json:"route,omitempty"`
	Fragment string      `json:"fragment,omitempty"`
	HTML     string      `json:"html,omitempty"`
}

// Hub manages WebSocket connections and broadcasts sync messages.
type Hub struct {
	clients  map[*websocket.Conn]bool
	mu       sync.RWMutex
	upgrader websocket.Upgrader
}

// NewHub creates a hub that accepts connections from any origin.
// The demo host is a local development tool, not a production surface.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// HandleWebSocket upgrades the request and holds the connection open
// until the client goes away.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, req *http.Request) {
	conn, err := h.upgrader.Upgrade(w, req, nil)
	if err != nil {
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	conn.Close()
}

// Broadcast sends a message to every connected client. Clients that
// fail to accept the write are dropped.
func (h *Hub) Broadcast(msg Message) {
	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for conn := range h.clients {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	var dead []*websocket.Conn
	for _, conn := range conns {
		if err := conn.WriteJSON(msg); err != nil {
			dead = append(dead, conn)
		}
	}

	if len(dead) > 0 {
		h.mu.Lock()
		for _, conn := range dead {
			delete(h.clients, conn)
			conn.Close()
		}
		h.mu.Unlock()
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
