package sse

import (
	"context"

	"github.com/osse101/tidepool/internal/event"
	"github.com/osse101/tidepool/internal/logger"
)

// StreamedEventTypes are the bus events forwarded to SSE clients
var StreamedEventTypes = []event.Type{
	event.NodeCreated,
	event.NodeStateChanged,
	event.HarvestResolved,
	event.NodeRespawned,
	event.NodeDestroyed,
}

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// Subscribe registers the forwarding handler for every streamed type
func (s *Subscriber) Subscribe() {
	names := make([]string, 0, len(StreamedEventTypes))
	for _, t := range StreamedEventTypes {
		s.bus.Subscribe(t, s.forward)
		names = append(names, string(t))
	}
	logger.Info(LogMsgSubscriberReady, "types", names)
}

// forward rebroadcasts the typed payload under the bus type name
func (s *Subscriber) forward(ctx context.Context, evt event.Event) error {
	s.hub.Broadcast(string(evt.Type), evt.Payload)
	logger.FromContext(ctx).Debug(LogMsgEventBroadcast, "event_type", evt.Type)
	return nil
}
