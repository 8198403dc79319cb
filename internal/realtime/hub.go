// Package realtime fans portfolio snapshots and lifecycle banners out to
// connected websocket clients.
package realtime

import (
	"sync"

	"github.com/gorilla/websocket"
)

// client serializes writes to one connection. The websocket protocol allows
// a single concurrent writer, and messages arrive from both the scheduler
// goroutine and HTTP handler goroutines.
type client struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *client) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

// Hub tracks connected clients. Writes that fail drop the client.
type Hub struct {
	mu      sync.RWMutex
	clients map[*websocket.Conn]*client
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]*client)}
}

func (h *Hub) AddClient(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = &client{conn: conn}
	h.mu.Unlock()
}

func (h *Hub) RemoveClient(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	_ = conn.Close()
}

// SendJSON writes one message to a single registered connection, sharing the
// same per-client write lock as broadcasts.
func (h *Hub) SendJSON(conn *websocket.Conn, v any) {
	h.mu.RLock()
	c := h.clients[conn]
	h.mu.RUnlock()
	if c == nil {
		return
	}
	if err := c.writeJSON(v); err != nil {
		h.RemoveClient(conn)
	}
}

func (h *Hub) BroadcastJSON(v any) {
	h.mu.RLock()
	clients := make([]*client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		if err := c.writeJSON(v); err != nil {
			h.RemoveClient(c.conn)
		}
	}
}
