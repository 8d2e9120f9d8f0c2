// Package notify broadcasts reservation lifecycle events to connected
// staff dashboard clients over a websocket, adapted from the
// register/unregister/broadcast hub pattern the teacher uses for its
// chat feature, trimmed to a single global feed: there are no rooms,
// no presence tracking, no typing indicators, because there is only
// one event stream — every admitted or cancelled reservation.
package notify

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"
)

// EventType names the kind of reservation lifecycle event.
type EventType string

const (
	EventReservationAdmitted   EventType = "reservation_admitted"
	EventReservationCancelled  EventType = "reservation_cancelled"
)

// Event is one message broadcast to every connected client.
type Event struct {
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// Hub maintains the set of connected dashboard clients and fans out
// events to all of them.
type Hub struct {
	logger *slog.Logger

	clientsMu sync.RWMutex
	clients   map[*Client]struct{}

	register   chan *Client
	unregister chan *Client
	broadcast  chan Event

	done chan struct{}
}

// NewHub builds a Hub. Call Run in its own goroutine to start it.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:     logger,
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Event, 64),
		done:       make(chan struct{}),
	}
}

// Run drives the hub's event loop until Stop is called.
func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			h.clientsMu.Lock()
			for c := range h.clients {
				c.close()
			}
			h.clients = nil
			h.clientsMu.Unlock()
			return
		case c := <-h.register:
			h.clientsMu.Lock()
			h.clients[c] = struct{}{}
			h.clientsMu.Unlock()
		case c := <-h.unregister:
			h.clientsMu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				c.close()
			}
			h.clientsMu.Unlock()
		case event := <-h.broadcast:
			h.fanOut(event)
		}
	}
}

// Stop shuts down the hub and closes every connected client.
func (h *Hub) Stop() {
	close(h.done)
}

// Publish enqueues event for broadcast to every connected client.
func (h *Hub) Publish(event Event) {
	select {
	case h.broadcast <- event:
	default:
		h.logger.Warn("notify: broadcast queue full, dropping event", "type", event.Type)
	}
}

func (h *Hub) fanOut(event Event) {
	raw, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("notify: failed to marshal event", "error", err)
		return
	}
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	for c := range h.clients {
		c.enqueue(raw)
	}
}

func (h *Hub) registerClient(c *Client) {
	h.register <- c
}

func (h *Hub) unregisterClient(c *Client) {
	h.unregister <- c
}
