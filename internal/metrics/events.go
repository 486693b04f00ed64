package metrics

import (
	"context"

	"github.com/osse101/tidepool/internal/domain"
	"github.com/osse101/tidepool/internal/event"
	"github.com/osse101/tidepool/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all node events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.NodeCreated,
		event.NodeStateChanged,
		event.HarvestResolved,
		event.NodeRespawned,
		event.NodeDestroyed,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	// Always increment event counter
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	var err error
	switch evt.Type {
	case event.NodeCreated:
		err = recordNodeCreated(evt.Payload)
	case event.NodeDestroyed:
		err = recordNodeDestroyed(evt.Payload)
	case event.NodeRespawned:
		err = recordNodeRespawned(evt.Payload)
	case event.HarvestResolved:
		err = recordHarvestResolved(evt.Payload)
	}

	// A malformed payload is a metrics gap, not a publish failure
	if err != nil {
		log.Debug(LogMsgEventPayloadDecodeFailed, "type", evt.Type, "error", err)
		return nil
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}

func recordNodeCreated(raw interface{}) error {
	p, err := event.DecodePayload[domain.NodeCreatedPayload](raw)
	if err != nil {
		return err
	}
	NodesCreatedTotal.WithLabelValues(string(p.ResourceType), p.Rarity).Inc()
	LiveNodes.Inc()
	return nil
}

func recordNodeDestroyed(raw interface{}) error {
	p, err := event.DecodePayload[domain.NodeDestroyedPayload](raw)
	if err != nil {
		return err
	}
	NodesDestroyedTotal.WithLabelValues(string(p.ResourceType)).Inc()
	LiveNodes.Dec()
	if p.CancelledRespawn {
		RespawnsCancelledTotal.Inc()
	}
	return nil
}

func recordNodeRespawned(raw interface{}) error {
	p, err := event.DecodePayload[domain.NodeRespawnedPayload](raw)
	if err != nil {
		return err
	}
	trigger := TriggerFired
	if p.Forced {
		trigger = TriggerForced
	}
	RespawnsTotal.WithLabelValues(string(p.ResourceType), trigger).Inc()
	return nil
}

func recordHarvestResolved(raw interface{}) error {
	p, err := event.DecodePayload[domain.HarvestResolvedPayload](raw)
	if err != nil {
		return err
	}
	resource := string(p.ResourceType)
	outcome := p.Outcome

	result := ResultSuccess
	if !outcome.Success {
		result = string(outcome.FailureReason)
	}
	HarvestAttemptsTotal.WithLabelValues(resource, p.Rarity, result).Inc()
	HarvestStaminaCost.Observe(float64(outcome.StaminaCost))

	if !outcome.Success {
		return nil
	}
	for rt, amount := range outcome.PrimaryYield {
		HarvestYieldTotal.WithLabelValues(string(rt), YieldKindPrimary).Add(float64(amount))
	}
	for rt, amount := range outcome.BonusYield {
		HarvestYieldTotal.WithLabelValues(string(rt), YieldKindBonus).Add(float64(amount))
	}
	if outcome.RareDrop != "" {
		RareDropsTotal.WithLabelValues(resource, outcome.RareDrop).Inc()
	}
	ExperienceAwardedTotal.Add(float64(outcome.Experience))
	return nil
}
