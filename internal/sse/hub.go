package sse

import (
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/osse101/tidepool/internal/logger"
)

// Event represents an event sent over SSE
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Timestamp int64       `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// Client is one connected stream. An empty type set receives everything.
type Client struct {
	ID     string
	events chan Event
	types  map[string]struct{}
}

func newClient(eventTypes []string) *Client {
	c := &Client{
		ID:     uuid.NewString(),
		events: make(chan Event, ClientEventBuffer),
	}
	for _, t := range eventTypes {
		if c.types == nil {
			c.types = make(map[string]struct{}, len(eventTypes))
		}
		c.types[t] = struct{}{}
	}
	return c
}

// Events is closed when the client is unregistered or the hub stops
func (c *Client) Events() <-chan Event {
	return c.events
}

// Wants reports whether the client subscribed to eventType
func (c *Client) Wants(eventType string) bool {
	if c.types == nil {
		return true
	}
	_, ok := c.types[eventType]
	return ok
}

// Hub fans events out to connected clients from a single loop.
// A client whose buffer is full misses the event.
type Hub struct {
	clients    map[string]*Client
	mu         sync.RWMutex
	broadcast  chan Event
	register   chan *Client
	unregister chan string
	shutdown   chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
	clock      clockwork.Clock
	dropped    atomic.Uint64
}

func NewHub() *Hub {
	return NewHubWithClock(clockwork.NewRealClock())
}

// NewHubWithClock creates a hub that stamps events with clock
func NewHubWithClock(clock clockwork.Clock) *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		broadcast:  make(chan Event, BroadcastBufferSize),
		register:   make(chan *Client, ClientChannelBuffer),
		unregister: make(chan string, ClientChannelBuffer),
		shutdown:   make(chan struct{}),
		clock:      clock,
	}
}

func (h *Hub) Start() {
	h.wg.Add(1)
	go h.run()
}

// Stop ends the loop and closes every client channel. Safe to call twice.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.shutdown)
		h.wg.Wait()

		h.mu.Lock()
		defer h.mu.Unlock()
		for id, client := range h.clients {
			close(client.events)
			delete(h.clients, id)
		}
	})
}

func (h *Hub) run() {
	defer h.wg.Done()

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()
		case id := <-h.unregister:
			h.remove(id)
		case event := <-h.broadcast:
			h.deliver(event)
		case <-h.shutdown:
			return
		}
	}
}

func (h *Hub) remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if client, ok := h.clients[id]; ok {
		close(client.events)
		delete(h.clients, id)
	}
}

func (h *Hub) deliver(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		if !client.Wants(event.Type) {
			continue
		}
		select {
		case client.events <- event:
		default:
			h.dropped.Add(1)
		}
	}
}

// Register adds a client filtered to eventTypes. It returns nil once the hub is stopped.
func (h *Hub) Register(eventTypes []string) *Client {
	select {
	case <-h.shutdown:
		return nil
	default:
	}

	client := newClient(eventTypes)
	select {
	case h.register <- client:
		return client
	case <-h.shutdown:
		return nil
	}
}

func (h *Hub) Unregister(clientID string) {
	select {
	case h.unregister <- clientID:
	case <-h.shutdown:
	}
}

// Broadcast queues an event for every interested client without blocking
func (h *Hub) Broadcast(eventType string, payload interface{}) {
	select {
	case h.broadcast <- h.newEvent(uuid.NewString(), eventType, payload):
	default:
		h.dropped.Add(1)
		logger.Warn(LogMsgBroadcastDropped, "event_type", eventType)
	}
}

func (h *Hub) newEvent(id, eventType string, payload interface{}) Event {
	return Event{
		ID:        id,
		Type:      eventType,
		Timestamp: h.clock.Now().Unix(),
		Payload:   payload,
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Dropped counts deliveries lost to full buffers
func (h *Hub) Dropped() uint64 {
	return h.dropped.Load()
}

// FormatSSEMessage renders event as an id/event/data frame
func FormatSSEMessage(event Event) ([]byte, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}
	return fmt.Appendf(nil, "id: %s\nevent: %s\ndata: %s\n\n", event.ID, event.Type, data), nil
}
