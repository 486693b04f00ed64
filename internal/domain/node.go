package domain

import (
	"time"

	"github.com/google/uuid"
)

// NodeState is the lifecycle state of a resource node.
type NodeState string

const (
	NodeStateAvailable  NodeState = "available"
	NodeStateHarvesting NodeState = "harvesting"
	NodeStateHarvested  NodeState = "harvested"
	NodeStateRespawning NodeState = "respawning"
)

// NodeStates lists every state in lifecycle order
func NodeStates() []NodeState {
	return []NodeState{NodeStateAvailable, NodeStateHarvesting, NodeStateHarvested, NodeStateRespawning}
}

// NodeSnapshot is a point-in-time copy of a node. It never aliases live node state.
type NodeSnapshot struct {
	ID                 uuid.UUID    `json:"id"`
	ResourceType       ResourceType `json:"resource_type"`
	Position           Position     `json:"position"`
	Rarity             RarityTier   `json:"rarity"`
	State              NodeState    `json:"state"`
	BaseRespawnSeconds float64      `json:"base_respawn_seconds"`
	HarvestCount       uint64       `json:"harvest_count"`
	LastHarvestedAt    *time.Time   `json:"last_harvested_at,omitempty"`
	LastHarvestedBy    string       `json:"last_harvested_by,omitempty"`
	EnhancementLevel   uint32       `json:"enhancement_level"`
	CreatedAt          time.Time    `json:"created_at"`
}

// TransitionTrigger names what caused a state change.
type TransitionTrigger string

const (
	TriggerHarvestStarted   TransitionTrigger = "harvest_started"
	TriggerHarvestSucceeded TransitionTrigger = "harvest_succeeded"
	TriggerHarvestFailed    TransitionTrigger = "harvest_failed"
	TriggerRespawnArmed     TransitionTrigger = "respawn_armed"
	TriggerRespawnFired     TransitionTrigger = "respawn_fired"
	TriggerForcedRespawn    TransitionTrigger = "forced_respawn"
)

// StateChange describes one observed node transition.
type StateChange struct {
	NodeID   uuid.UUID         `json:"node_id"`
	OldState NodeState         `json:"old_state"`
	NewState NodeState         `json:"new_state"`
	Trigger  TransitionTrigger `json:"trigger"`
	At       time.Time         `json:"at"`
}
