package event

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/tidepool/internal/domain"
)

func testSnapshot() domain.NodeSnapshot {
	return domain.NodeSnapshot{
		ID:           uuid.MustParse("7b0c5a52-2a7b-4b51-9d1e-0f5f8b3c1a10"),
		ResourceType: domain.ResourcePearl,
		Rarity:       domain.RarityTier{Name: domain.RarityRare},
		State:        domain.NodeStateAvailable,
		CreatedAt:    time.Unix(1700000000, 0),
	}
}

func TestNodeEventConstructors(t *testing.T) {
	snap := testSnapshot()
	at := time.Unix(1700000100, 0)

	created := NewNodeCreatedEvent(snap)
	assert.Equal(t, NodeCreated, created.Type)
	assert.Equal(t, EventSchemaVersion, created.Version)
	assert.Equal(t, snap.ID.String(), created.NodeID())
	assert.Equal(t, domain.NodeCreatedPayload{
		NodeID:       snap.ID,
		ResourceType: domain.ResourcePearl,
		Rarity:       domain.RarityRare,
		Timestamp:    1700000000,
	}, created.Payload)

	outcome := domain.HarvestOutcome{Success: true, RareDrop: "black_pearl"}
	resolved := NewHarvestResolvedEvent(snap, "diver-9", outcome, at)
	assert.Equal(t, HarvestResolved, resolved.Type)
	payload, err := DecodePayload[domain.HarvestResolvedPayload](resolved.Payload)
	require.NoError(t, err)
	assert.Equal(t, "diver-9", payload.ActorID)
	assert.Equal(t, "black_pearl", payload.Outcome.RareDrop)
	assert.Equal(t, int64(1700000100), payload.Timestamp)

	respawned := NewNodeRespawnedEvent(snap, true, at)
	assert.Equal(t, NodeRespawned, respawned.Type)
	assert.True(t, respawned.Payload.(domain.NodeRespawnedPayload).Forced)

	destroyed := NewNodeDestroyedEvent(snap, true, at)
	assert.Equal(t, NodeDestroyed, destroyed.Type)
	assert.True(t, destroyed.Payload.(domain.NodeDestroyedPayload).CancelledRespawn)

	change := domain.NewStateChange(snap.ID, domain.NodeStateAvailable, domain.NodeStateHarvesting, domain.TriggerHarvestStarted, at)
	changed := NewStateChangedEvent(change)
	assert.Equal(t, NodeStateChanged, changed.Type)
	assert.Equal(t, change, changed.Payload)
	assert.Equal(t, snap.ID.String(), changed.NodeID())
}

func TestDecodePayload_FromJSON(t *testing.T) {
	change := domain.NewStateChange(uuid.New(), domain.NodeStateRespawning, domain.NodeStateAvailable, domain.TriggerRespawnFired, time.Unix(1700000000, 0).UTC())

	raw, err := json.Marshal(NewStateChangedEvent(change))
	require.NoError(t, err)

	var decoded Event
	require.NoError(t, json.Unmarshal(raw, &decoded))

	got, err := DecodePayload[domain.StateChange](decoded.Payload)
	require.NoError(t, err)
	assert.Equal(t, change, got)
}

func TestMemoryBus_HandlerCount(t *testing.T) {
	bus := NewMemoryBus()
	assert.Equal(t, 0, bus.HandlerCount(NodeCreated))

	bus.Subscribe(NodeCreated, func(ctx context.Context, e Event) error { return nil })
	assert.Equal(t, 1, bus.HandlerCount(NodeCreated))
	assert.Equal(t, 0, bus.HandlerCount(NodeDestroyed))
	assert.Empty(t, Event{}.NodeID())
}
