package categorization

import (
	"sync"

	"github.com/gorilla/websocket"

	"invoice-assistant/internal/shared/telemetry"
)

// Hub fans frames out to every websocket subscribed to a task.
type Hub struct {
	mu     sync.RWMutex
	subs   map[string]map[*websocket.Conn]struct{}
	closed map[string]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		subs:   make(map[string]map[*websocket.Conn]struct{}),
		closed: make(map[string]struct{}),
	}
}

// Subscribe registers a connection for a task. It reports false when
// CloseTask has already run for the task: no frame will ever be
// broadcast again, so the caller must replay the terminal state itself.
func (h *Hub) Subscribe(taskID string, conn *websocket.Conn) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, done := h.closed[taskID]; done {
		return false
	}
	if h.subs[taskID] == nil {
		h.subs[taskID] = make(map[*websocket.Conn]struct{})
	}
	h.subs[taskID][conn] = struct{}{}
	return true
}

// Unsubscribe removes a connection. The caller owns closing it.
func (h *Hub) Unsubscribe(taskID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs[taskID], conn)
	if len(h.subs[taskID]) == 0 {
		delete(h.subs, taskID)
	}
}

// Broadcast writes the frame to every subscriber of the task. Dead
// connections are dropped.
func (h *Hub) Broadcast(taskID string, frame Frame) {
	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.subs[taskID]))
	for c := range h.subs[taskID] {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	for _, c := range conns {
		if err := c.WriteJSON(frame); err != nil {
			telemetry.Error("ws.write_failed", map[string]any{"task_id": taskID, "error": err.Error()})
			h.Unsubscribe(taskID, c)
			_ = c.Close()
		}
	}
}

// CloseTask closes and drops every subscriber of a finished task and
// rejects future subscriptions to it.
func (h *Hub) CloseTask(taskID string) {
	h.mu.Lock()
	conns := h.subs[taskID]
	delete(h.subs, taskID)
	h.closed[taskID] = struct{}{}
	h.mu.Unlock()

	for c := range conns {
		_ = c.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "task finished"))
		_ = c.Close()
	}
}

// Subscribers reports how many connections are attached to a task.
func (h *Hub) Subscribers(taskID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[taskID])
}
