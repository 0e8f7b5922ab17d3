package websocket

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
)

// Event is a row-level change notification broadcast to all subscribers.
// Data carries the full changed row for created/updated events so clients
// can merge without a follow-up fetch; it is empty for deletes.
type Event struct {
	Type       string          `json:"type"`
	Entity     string          `json:"entity"`
	Action     string          `json:"action"`
	ID         int64           `json:"id"`
	ListID     int64           `json:"list_id,omitempty"`
	CategoryID int64           `json:"category_id,omitempty"`
	Data       json.RawMessage `json:"data,omitempty"`
}

const (
	EntityList     = "list"
	EntityItem     = "item"
	EntityCategory = "category"

	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// NewEvent builds an Event with Type derived from entity and action and
// row marshaled into Data. A row that fails to marshal is sent as a bare
// notification rather than dropped.
func NewEvent(entity, action string, id int64, row any) Event {
	ev := Event{
		Type:   fmt.Sprintf("%s_%s", entity, action),
		Entity: entity,
		Action: action,
		ID:     id,
	}
	if row != nil {
		if data, err := json.Marshal(row); err == nil {
			ev.Data = data
		}
	}
	return ev
}

// Hub maintains the set of active WebSocket subscribers and broadcasts
// change events to them.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	logger  *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		logger:  logger,
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

// Unregister removes a client from the hub and closes its send channel.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// Broadcast sends an event to all connected clients.
func (h *Hub) Broadcast(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		h.logger.Error("marshal broadcast", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			// Client buffer full — drop the event to avoid blocking
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
