package event

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Type names an engine event
type Type string

// Event is one engine notification. Payload holds a domain payload struct
// for in-process delivery and its JSON form once serialized.
type Event struct {
	Version  string            `json:"version"`
	Type     Type              `json:"type"`
	Payload  interface{}       `json:"payload"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// NodeID returns the node id recorded in metadata, or ""
func (e Event) NodeID() string {
	return e.Metadata[MetadataKeyNodeID]
}

// ErrHandlerPanicked wraps a recovered handler panic
var ErrHandlerPanicked = errors.New("event handler panicked")

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus delivers events to the handlers subscribed to their type
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus delivers events synchronously in-process
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish runs every handler for the event's type in subscription order.
// A failing or panicking handler does not stop the rest; their errors are joined.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.Type]...)
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := invoke(ctx, handler, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func invoke(ctx context.Context, handler Handler, event Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s: %v", ErrHandlerPanicked, event.Type, r)
		}
	}()
	return handler(ctx, event)
}

// Subscribe appends a handler for eventType
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// HandlerCount returns the number of handlers subscribed to eventType
func (b *MemoryBus) HandlerCount(eventType Type) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[eventType])
}
