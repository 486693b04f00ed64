// Package node implements the lifecycle state machine of a single resource node.
package node

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/osse101/tidepool/internal/domain"
	"github.com/osse101/tidepool/internal/harvest"
	"github.com/osse101/tidepool/internal/logger"
	"github.com/osse101/tidepool/internal/utils"
)

// Scheduler arms and cancels deferred respawns.
// worker.RespawnWorker is the production implementation.
type Scheduler interface {
	Schedule(id uuid.UUID, seconds float64, fire func(ctx context.Context)) time.Duration
	Cancel(id uuid.UUID) bool
}

// Observer receives every state change after the node lock is released.
// Changes of one node reach the observer one at a time, in transition order,
// even when they come from different goroutines.
type Observer func(ctx context.Context, change domain.StateChange)

// Config holds everything needed to build a Node
type Config struct {
	ID                 uuid.UUID
	ResourceType       domain.ResourceType
	Position           domain.Position
	Rarity             domain.RarityTier
	BaseRespawnSeconds float64
	EnhancementLevel   uint32

	Resolver  *harvest.Resolver
	Scheduler Scheduler
	Clock     clockwork.Clock
	Observer  Observer
}

// Node is one harvestable world object.
// Its fields change only through the transition methods below.
//
// Lock order: Node.mu is taken before any scheduler lock, never after.
type Node struct {
	mu sync.Mutex

	id                 uuid.UUID
	resourceType       domain.ResourceType
	position           domain.Position
	rarity             domain.RarityTier
	baseRespawnSeconds float64
	enhancementLevel   uint32
	createdAt          time.Time

	state           domain.NodeState
	harvestCount    uint64
	lastHarvestedAt *time.Time
	lastHarvestedBy string
	retired         bool
	// cycle identifies the armed respawn; fires carrying an older cycle are stale.
	cycle uint64

	// outbox holds changes not yet handed to the observer; delivering marks
	// the goroutine currently draining it.
	outbox     []pendingChange
	delivering bool

	resolver  *harvest.Resolver
	scheduler Scheduler
	clock     clockwork.Clock
	observer  Observer
}

type pendingChange struct {
	ctx    context.Context
	change domain.StateChange
}

// New builds an Available node.
func New(cfg Config) (*Node, error) {
	if cfg.Resolver == nil || cfg.Scheduler == nil {
		return nil, fmt.Errorf("%w: node requires a resolver and a scheduler", domain.ErrInvalidConfiguration)
	}
	if cfg.Rarity.HarvestDifficulty <= 0 {
		return nil, fmt.Errorf("%w: rarity %q has non-positive harvest difficulty", domain.ErrInvalidConfiguration, cfg.Rarity.Name)
	}
	if cfg.BaseRespawnSeconds < 0 {
		return nil, fmt.Errorf("%w: negative respawn duration %v", domain.ErrInvalidConfiguration, cfg.BaseRespawnSeconds)
	}
	if cfg.ID == uuid.Nil {
		cfg.ID = uuid.New()
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}

	return &Node{
		id:                 cfg.ID,
		resourceType:       cfg.ResourceType,
		position:           cfg.Position,
		rarity:             cfg.Rarity,
		baseRespawnSeconds: cfg.BaseRespawnSeconds,
		enhancementLevel:   cfg.EnhancementLevel,
		createdAt:          cfg.Clock.Now(),
		state:              domain.NodeStateAvailable,
		resolver:           cfg.Resolver,
		scheduler:          cfg.Scheduler,
		clock:              cfg.Clock,
		observer:           cfg.Observer,
	}, nil
}

// ID returns the node identifier
func (n *Node) ID() uuid.UUID {
	return n.id
}

// ResourceType returns the node's resource type
func (n *Node) ResourceType() domain.ResourceType {
	return n.resourceType
}

// Rarity returns the tier fixed at creation
func (n *Node) Rarity() domain.RarityTier {
	return n.rarity
}

// State returns the current state
func (n *Node) State() domain.NodeState {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state
}

// Info returns a point-in-time copy of all node fields.
func (n *Node) Info() domain.NodeSnapshot {
	n.mu.Lock()
	defer n.mu.Unlock()

	snap := domain.NodeSnapshot{
		ID:                 n.id,
		ResourceType:       n.resourceType,
		Position:           n.position,
		Rarity:             n.rarity,
		State:              n.state,
		BaseRespawnSeconds: n.baseRespawnSeconds,
		HarvestCount:       n.harvestCount,
		LastHarvestedBy:    n.lastHarvestedBy,
		EnhancementLevel:   n.enhancementLevel,
		CreatedAt:          n.createdAt,
	}
	if n.lastHarvestedAt != nil {
		at := *n.lastHarvestedAt
		snap.LastHarvestedAt = &at
	}
	return snap
}

// Harvest runs one full attempt: claim the node, resolve the outcome, then settle the state.
// A node that is not Available is rejected with ErrNodeNotAvailable before any draw is taken.
func (n *Node) Harvest(ctx context.Context, actorID string, tool domain.ToolEffectiveness, staminaPercent float64, rng utils.RandomSource) (domain.HarvestOutcome, error) {
	if err := n.beginHarvest(ctx); err != nil {
		return domain.HarvestOutcome{}, err
	}

	outcome, err := n.resolver.Resolve(harvest.Attempt{
		ResourceType:   n.resourceType,
		Rarity:         n.rarity,
		Tool:           tool,
		StaminaPercent: staminaPercent,
	}, rng)
	if err != nil {
		n.abortHarvest(ctx, err)
		return domain.HarvestOutcome{}, err
	}

	if err := n.completeHarvest(ctx, actorID, outcome); err != nil {
		return domain.HarvestOutcome{}, err
	}
	return outcome, nil
}

// beginHarvest moves Available -> Harvesting. This is the mutual-exclusion point:
// exactly one caller per cycle gets past it.
func (n *Node) beginHarvest(ctx context.Context) error {
	n.mu.Lock()
	if n.retired {
		n.mu.Unlock()
		return fmt.Errorf("%w: %s", domain.ErrNodeNotFound, n.id)
	}
	if n.state != domain.NodeStateAvailable {
		state := n.state
		n.mu.Unlock()
		return fmt.Errorf("%w: node %s is %s", domain.ErrNodeNotAvailable, n.id, state)
	}
	n.transitionLocked(ctx, domain.NodeStateHarvesting, domain.TriggerHarvestStarted)
	n.mu.Unlock()

	n.notify()
	return nil
}

// completeHarvest settles a claimed harvest. Only Harvest calls it, with the resolver's outcome.
// Success records the harvester and arms the respawn; failure returns to Available.
func (n *Node) completeHarvest(ctx context.Context, actorID string, outcome domain.HarvestOutcome) error {
	n.mu.Lock()
	if n.state != domain.NodeStateHarvesting {
		state := n.state
		n.mu.Unlock()
		return fmt.Errorf("%w: complete harvest from %s", domain.ErrInvalidTransition, state)
	}

	if !outcome.Success {
		n.transitionLocked(ctx, domain.NodeStateAvailable, domain.TriggerHarvestFailed)
		n.mu.Unlock()
		n.notify()
		return nil
	}

	now := n.clock.Now()
	n.harvestCount++
	n.lastHarvestedAt = &now
	n.lastHarvestedBy = actorID
	n.transitionLocked(ctx, domain.NodeStateHarvested, domain.TriggerHarvestSucceeded)

	// A node retired mid-harvest keeps its result but never arms a timer.
	// Neither does one whose scheduler has shut down; it stays Harvested.
	if !n.retired {
		n.cycle++
		cycle := n.cycle
		armed := n.scheduler.Schedule(n.id, n.baseRespawnSeconds, func(ctx context.Context) {
			n.respawnFired(ctx, cycle)
		})
		if armed > 0 {
			n.transitionLocked(ctx, domain.NodeStateRespawning, domain.TriggerRespawnArmed)
		} else {
			logger.FromContext(ctx).Warn(LogMsgRespawnNotArmed, "nodeID", n.id)
		}
	}
	n.mu.Unlock()

	n.notify()
	return nil
}

// abortHarvest returns a claimed node to Available when resolution could not run.
func (n *Node) abortHarvest(ctx context.Context, cause error) {
	n.mu.Lock()
	if n.state != domain.NodeStateHarvesting {
		n.mu.Unlock()
		return
	}
	n.transitionLocked(ctx, domain.NodeStateAvailable, domain.TriggerHarvestFailed)
	n.mu.Unlock()

	logger.FromContext(ctx).Error(LogMsgHarvestAborted, "nodeID", n.id, "error", cause)
	n.notify()
}

// respawnFired is the scheduler callback: Harvested/Respawning -> Available.
// Any other source state is a programming error; it is logged and the state is left alone.
func (n *Node) respawnFired(ctx context.Context, cycle uint64) {
	if err := n.respawn(ctx, cycle); err != nil {
		logger.FromContext(ctx).Error(LogMsgInvalidRespawnTrigger, "nodeID", n.id, "error", err)
	}
}

func (n *Node) respawn(ctx context.Context, cycle uint64) error {
	n.mu.Lock()
	if n.retired {
		n.mu.Unlock()
		logger.FromContext(ctx).Debug(LogMsgRespawnOnRetiredNode, "nodeID", n.id)
		return nil
	}
	if cycle != n.cycle {
		n.mu.Unlock()
		logger.FromContext(ctx).Debug(LogMsgStaleRespawn, "nodeID", n.id)
		return nil
	}
	if n.state != domain.NodeStateHarvested && n.state != domain.NodeStateRespawning {
		state := n.state
		n.mu.Unlock()
		return fmt.Errorf("%w: respawn from %s", domain.ErrInvalidTransition, state)
	}
	n.transitionLocked(ctx, domain.NodeStateAvailable, domain.TriggerRespawnFired)
	n.mu.Unlock()

	n.notify()
	return nil
}

// ForceRespawnNow cancels any pending timer and makes a harvested node Available immediately.
// It is a no-op on an Available node and is rejected while a harvest is in progress.
func (n *Node) ForceRespawnNow(ctx context.Context) error {
	n.mu.Lock()
	if n.retired {
		n.mu.Unlock()
		return fmt.Errorf("%w: %s", domain.ErrNodeNotFound, n.id)
	}
	switch n.state {
	case domain.NodeStateAvailable:
		n.mu.Unlock()
		return nil
	case domain.NodeStateHarvesting:
		n.mu.Unlock()
		return fmt.Errorf("%w: node %s is %s", domain.ErrNodeNotAvailable, n.id, domain.NodeStateHarvesting)
	}

	n.scheduler.Cancel(n.id)
	n.cycle++
	n.transitionLocked(ctx, domain.NodeStateAvailable, domain.TriggerForcedRespawn)
	n.mu.Unlock()

	n.notify()
	return nil
}

// Retire marks the node dead and cancels its pending respawn.
// It reports whether a pending respawn was cancelled. Retiring twice is a no-op.
func (n *Node) Retire() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.retired {
		return false
	}
	n.retired = true
	return n.scheduler.Cancel(n.id)
}

// Retired reports whether Retire has been called
func (n *Node) Retired() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.retired
}

// transitionLocked must be called with mu held. The change is queued for the observer
// in the same critical section, so queue order is transition order.
func (n *Node) transitionLocked(ctx context.Context, next domain.NodeState, trigger domain.TransitionTrigger) {
	change := domain.NewStateChange(n.id, n.state, next, trigger, n.clock.Now())
	n.state = next
	if n.observer != nil {
		n.outbox = append(n.outbox, pendingChange{ctx: ctx, change: change})
	}
}

// notify drains the outbox unless another goroutine already is. A change queued
// during a drain is delivered by that drain, possibly after its own caller returned.
func (n *Node) notify() {
	n.mu.Lock()
	if n.delivering || len(n.outbox) == 0 {
		n.mu.Unlock()
		return
	}
	n.delivering = true
	n.mu.Unlock()

	drained := false
	defer func() {
		if !drained {
			// observer panicked; let the next transition resume delivery
			n.mu.Lock()
			n.delivering = false
			n.mu.Unlock()
		}
	}()

	for {
		n.mu.Lock()
		batch := n.outbox
		n.outbox = nil
		if len(batch) == 0 {
			n.delivering = false
			drained = true
			n.mu.Unlock()
			return
		}
		n.mu.Unlock()

		for _, p := range batch {
			n.observer(p.ctx, p.change)
		}
	}
}
