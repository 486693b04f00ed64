package event

import (
	"time"

	"github.com/osse101/tidepool/internal/domain"
)

// Node event types
const (
	NodeCreated      Type = domain.EventTypeNodeCreated
	NodeStateChanged Type = domain.EventTypeNodeStateChanged
	HarvestResolved  Type = domain.EventTypeHarvestResolved
	NodeRespawned    Type = domain.EventTypeNodeRespawned
	NodeDestroyed    Type = domain.EventTypeNodeDestroyed
)

// MetadataKeyNodeID is set on every node event
const MetadataKeyNodeID = "node_id"

func nodeMetadata(snap domain.NodeSnapshot) map[string]string {
	return map[string]string{
		MetadataKeyNodeID: snap.ID.String(),
	}
}

// NewNodeCreatedEvent creates a node created event
func NewNodeCreatedEvent(snap domain.NodeSnapshot) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    NodeCreated,
		Payload: domain.NodeCreatedPayload{
			NodeID:       snap.ID,
			ResourceType: snap.ResourceType,
			Rarity:       snap.Rarity.Name,
			Timestamp:    snap.CreatedAt.Unix(),
		},
		Metadata: nodeMetadata(snap),
	}
}

// NewStateChangedEvent creates a node state changed event
func NewStateChangedEvent(change domain.StateChange) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    NodeStateChanged,
		Payload: change,
		Metadata: map[string]string{
			MetadataKeyNodeID: change.NodeID.String(),
		},
	}
}

// NewHarvestResolvedEvent creates a harvest resolved event
func NewHarvestResolvedEvent(snap domain.NodeSnapshot, actorID string, outcome domain.HarvestOutcome, at time.Time) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    HarvestResolved,
		Payload: domain.HarvestResolvedPayload{
			NodeID:       snap.ID,
			ActorID:      actorID,
			ResourceType: snap.ResourceType,
			Rarity:       snap.Rarity.Name,
			Outcome:      outcome,
			Timestamp:    at.Unix(),
		},
		Metadata: nodeMetadata(snap),
	}
}

// NewNodeRespawnedEvent creates a node respawned event
func NewNodeRespawnedEvent(snap domain.NodeSnapshot, forced bool, at time.Time) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    NodeRespawned,
		Payload: domain.NodeRespawnedPayload{
			NodeID:       snap.ID,
			ResourceType: snap.ResourceType,
			Forced:       forced,
			Timestamp:    at.Unix(),
		},
		Metadata: nodeMetadata(snap),
	}
}

// NewNodeDestroyedEvent creates a node destroyed event
func NewNodeDestroyedEvent(snap domain.NodeSnapshot, cancelledRespawn bool, at time.Time) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    NodeDestroyed,
		Payload: domain.NodeDestroyedPayload{
			NodeID:           snap.ID,
			ResourceType:     snap.ResourceType,
			CancelledRespawn: cancelledRespawn,
			Timestamp:        at.Unix(),
		},
		Metadata: nodeMetadata(snap),
	}
}
