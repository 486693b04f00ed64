package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event type constants used for event bus subscriptions and metrics tracking.
//
// Event types follow the pattern: <entity>.<action> (e.g., "node.created")
const (
	// EventTypeNodeCreated is published after a node is stored in the registry
	EventTypeNodeCreated = "node.created"

	// EventTypeNodeStateChanged is published for every node state transition
	EventTypeNodeStateChanged = "node.state_changed"

	// EventTypeHarvestResolved is published for every resolved harvest attempt, success or failure
	EventTypeHarvestResolved = "node.harvest_resolved"

	// EventTypeNodeRespawned is published when a node returns to available after a respawn
	EventTypeNodeRespawned = "node.respawned"

	// EventTypeNodeDestroyed is published after a node is removed from the registry
	EventTypeNodeDestroyed = "node.destroyed"
)

// NodeCreatedPayload is the payload for EventTypeNodeCreated
type NodeCreatedPayload struct {
	NodeID       uuid.UUID    `json:"node_id"`
	ResourceType ResourceType `json:"resource_type"`
	Rarity       string       `json:"rarity"`
	Timestamp    int64        `json:"timestamp"`
}

// HarvestResolvedPayload is the payload for EventTypeHarvestResolved
type HarvestResolvedPayload struct {
	NodeID       uuid.UUID      `json:"node_id"`
	ActorID      string         `json:"actor_id"`
	ResourceType ResourceType   `json:"resource_type"`
	Rarity       string         `json:"rarity"`
	Outcome      HarvestOutcome `json:"outcome"`
	Timestamp    int64          `json:"timestamp"`
}

// NodeRespawnedPayload is the payload for EventTypeNodeRespawned
type NodeRespawnedPayload struct {
	NodeID       uuid.UUID    `json:"node_id"`
	ResourceType ResourceType `json:"resource_type"`
	Forced       bool         `json:"forced"`
	Timestamp    int64        `json:"timestamp"`
}

// NodeDestroyedPayload is the payload for EventTypeNodeDestroyed
type NodeDestroyedPayload struct {
	NodeID           uuid.UUID    `json:"node_id"`
	ResourceType     ResourceType `json:"resource_type"`
	CancelledRespawn bool         `json:"cancelled_respawn"`
	Timestamp        int64        `json:"timestamp"`
}

// NewStateChange builds a StateChange stamped with at.
func NewStateChange(id uuid.UUID, oldState, newState NodeState, trigger TransitionTrigger, at time.Time) StateChange {
	return StateChange{NodeID: id, OldState: oldState, NewState: newState, Trigger: trigger, At: at}
}
