// Package registry owns the live resource nodes and routes every external call to the right one.
package registry

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/osse101/tidepool/internal/domain"
	"github.com/osse101/tidepool/internal/economy"
	"github.com/osse101/tidepool/internal/event"
	"github.com/osse101/tidepool/internal/harvest"
	"github.com/osse101/tidepool/internal/logger"
	"github.com/osse101/tidepool/internal/metrics"
	"github.com/osse101/tidepool/internal/node"
	"github.com/osse101/tidepool/internal/provider"
	"github.com/osse101/tidepool/internal/rarity"
	"github.com/osse101/tidepool/internal/utils"
)

// StateChangeHandler is notified of every node transition.
type StateChangeHandler func(ctx context.Context, change domain.StateChange)

// RespawnScheduler arms deferred respawns. worker.RespawnWorker implements it.
type RespawnScheduler interface {
	node.Scheduler
	Shutdown(ctx context.Context) error
}

// Service defines the node registry operations
type Service interface {
	// CreateNode builds and stores a node, rolling its rarity unless WithRarity is given
	CreateNode(ctx context.Context, rt domain.ResourceType, pos domain.Position, opts ...CreateOption) (uuid.UUID, error)
	// Harvest routes one harvest attempt to the node. Rejected after Shutdown.
	Harvest(ctx context.Context, id uuid.UUID, hc domain.HarvestContext) (domain.HarvestOutcome, error)
	// Query returns a snapshot of one node
	Query(id uuid.UUID) (domain.NodeSnapshot, bool)
	// QueryAll returns snapshots of every node ordered by creation time
	QueryAll() []domain.NodeSnapshot
	// DestroyNode cancels the node's pending respawn and removes it. Reports whether it existed.
	DestroyNode(ctx context.Context, id uuid.UUID) bool
	// ForceRespawn makes a harvested node available immediately. Rejected after Shutdown.
	ForceRespawn(ctx context.Context, id uuid.UUID) (domain.NodeSnapshot, error)
	// OnStateChanged registers a listener for every node transition
	OnStateChanged(handler StateChangeHandler)
	// CountByState reports how many nodes are in each state
	CountByState() map[domain.NodeState]int
	// CheckHealth fails once Shutdown has begun
	CheckHealth(ctx context.Context) error
	// Shutdown stops accepting new nodes and harvests and cancels all pending respawns
	Shutdown(ctx context.Context) error
}

// Config wires the registry's collaborators. Bus, Clock and Random are optional.
type Config struct {
	Table    *economy.Table
	Tools    provider.ToolEffectivenessProvider
	Stamina  provider.StaminaProvider
	Respawns RespawnScheduler
	Bus      event.Bus
	Clock    clockwork.Clock
	// Random must be safe for concurrent use.
	Random utils.RandomSource
}

type service struct {
	mu     sync.RWMutex
	nodes  map[uuid.UUID]*node.Node
	closed bool

	listenersMu sync.RWMutex
	listeners   []StateChangeHandler

	table    *economy.Table
	assigner *rarity.Assigner
	resolver *harvest.Resolver
	tools    provider.ToolEffectivenessProvider
	stamina  provider.StaminaProvider
	respawns RespawnScheduler
	bus      event.Bus
	clock    clockwork.Clock
	rng      utils.RandomSource
}

// NewService creates a new node registry
func NewService(cfg Config) (Service, error) {
	return newService(cfg)
}

func newService(cfg Config) (*service, error) {
	if cfg.Table == nil || cfg.Tools == nil || cfg.Stamina == nil || cfg.Respawns == nil {
		return nil, fmt.Errorf("%w: registry requires an economy table, providers and a respawn scheduler", domain.ErrInvalidConfiguration)
	}
	assigner, err := rarity.NewAssigner(cfg.Table.Tiers())
	if err != nil {
		return nil, err
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.Random == nil {
		cfg.Random = utils.DefaultRandom()
	}

	return &service{
		nodes:    make(map[uuid.UUID]*node.Node),
		table:    cfg.Table,
		assigner: assigner,
		resolver: harvest.NewResolver(cfg.Table),
		tools:    cfg.Tools,
		stamina:  cfg.Stamina,
		respawns: cfg.Respawns,
		bus:      cfg.Bus,
		clock:    cfg.Clock,
		rng:      cfg.Random,
	}, nil
}

// CreateNode builds and stores a node
func (s *service) CreateNode(ctx context.Context, rt domain.ResourceType, pos domain.Position, opts ...CreateOption) (uuid.UUID, error) {
	log := logger.FromContext(ctx)

	o := createOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	rt = rt.Normalize()
	if rt == "" {
		return uuid.Nil, fmt.Errorf("%w: resource type is required", domain.ErrInvalidInput)
	}

	tier, err := s.pickTier(o.rarity)
	if err != nil {
		return uuid.Nil, err
	}

	respawnSeconds, err := s.table.RespawnSeconds(rt, tier)
	if err != nil {
		// A resource without economics is a data defect; make it loud.
		log.Error(LogMsgNodeConfigurationFailed, "resourceType", rt, "rarity", tier.Name, "error", err)
		return uuid.Nil, err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return uuid.Nil, domain.ErrRegistryClosed
	}

	n, err := node.New(node.Config{
		ID:                 s.newIDLocked(),
		ResourceType:       rt,
		Position:           pos,
		Rarity:             tier,
		BaseRespawnSeconds: respawnSeconds,
		EnhancementLevel:   o.enhancementLevel,
		Resolver:           s.resolver,
		Scheduler:          livenessScheduler{registry: s},
		Clock:              s.clock,
		Observer:           s.handleStateChange,
	})
	if err != nil {
		s.mu.Unlock()
		log.Error(LogMsgNodeConfigurationFailed, "resourceType", rt, "rarity", tier.Name, "error", err)
		return uuid.Nil, err
	}
	s.nodes[n.ID()] = n
	s.mu.Unlock()

	snap := n.Info()
	log.Info(LogMsgNodeCreated, "nodeID", snap.ID, "resourceType", rt, "rarity", tier.Name, "respawnSeconds", respawnSeconds)
	s.publish(ctx, event.NewNodeCreatedEvent(snap))
	return snap.ID, nil
}

// newIDLocked must be called with mu held. Identifiers are never reused while the registry lives.
func (s *service) newIDLocked() uuid.UUID {
	for {
		id := uuid.New()
		if _, taken := s.nodes[id]; !taken {
			return id
		}
	}
}

func (s *service) pickTier(name string) (domain.RarityTier, error) {
	if name == "" {
		return s.assigner.Assign(s.rng), nil
	}
	tier, ok := s.assigner.Lookup(name)
	if !ok {
		return domain.RarityTier{}, fmt.Errorf("%w: unknown rarity %q", domain.ErrInvalidInput, name)
	}
	return tier, nil
}

// Harvest routes one harvest attempt to the node. It is rejected with ErrRegistryClosed after Shutdown.
func (s *service) Harvest(ctx context.Context, id uuid.UUID, hc domain.HarvestContext) (domain.HarvestOutcome, error) {
	log := logger.FromContext(ctx)

	n, ok, err := s.lookupOpen(id)
	if err != nil {
		metrics.HarvestRejectionsTotal.WithLabelValues(rejectionClosed).Inc()
		return domain.HarvestOutcome{}, err
	}
	if !ok {
		metrics.HarvestRejectionsTotal.WithLabelValues(rejectionNotFound).Inc()
		return domain.HarvestOutcome{}, fmt.Errorf("%w: %s", domain.ErrNodeNotFound, id)
	}

	tool, err := s.tools.EffectivenessFor(ctx, hc.Tool, n.ResourceType())
	if err != nil {
		metrics.HarvestRejectionsTotal.WithLabelValues(rejectionProvider).Inc()
		return domain.HarvestOutcome{}, fmt.Errorf("tool effectiveness lookup failed: %w", err)
	}
	stamina, err := s.stamina.StaminaPercentFor(ctx, hc.ActorID)
	if err != nil {
		metrics.HarvestRejectionsTotal.WithLabelValues(rejectionProvider).Inc()
		return domain.HarvestOutcome{}, fmt.Errorf("stamina lookup failed: %w", err)
	}

	outcome, err := n.Harvest(ctx, hc.ActorID, tool, stamina, s.rng)
	if err != nil {
		s.recordRejection(ctx, id, err)
		return domain.HarvestOutcome{}, err
	}

	log.Debug(LogMsgHarvestResolved, "nodeID", id, "actorID", hc.ActorID, "success", outcome.Success, "failureReason", outcome.FailureReason)
	s.publish(ctx, event.NewHarvestResolvedEvent(n.Info(), hc.ActorID, outcome, s.clock.Now()))
	return outcome, nil
}

func (s *service) recordRejection(ctx context.Context, id uuid.UUID, err error) {
	log := logger.FromContext(ctx)
	switch {
	case errors.Is(err, domain.ErrNodeNotAvailable):
		metrics.HarvestRejectionsTotal.WithLabelValues(rejectionNotAvailable).Inc()
		log.Debug(LogMsgHarvestRejected, "nodeID", id, "error", err)
	case errors.Is(err, domain.ErrNodeNotFound):
		metrics.HarvestRejectionsTotal.WithLabelValues(rejectionNotFound).Inc()
		log.Debug(LogMsgHarvestRejected, "nodeID", id, "error", err)
	default:
		metrics.HarvestRejectionsTotal.WithLabelValues(rejectionConfig).Inc()
		log.Error(LogMsgNodeConfigurationFailed, "nodeID", id, "error", err)
	}
}

// Query returns a snapshot of one node
func (s *service) Query(id uuid.UUID) (domain.NodeSnapshot, bool) {
	n, ok := s.lookup(id)
	if !ok {
		return domain.NodeSnapshot{}, false
	}
	return n.Info(), true
}

// QueryAll returns snapshots of every node ordered by creation time, then id
func (s *service) QueryAll() []domain.NodeSnapshot {
	s.mu.RLock()
	nodes := make([]*node.Node, 0, len(s.nodes))
	for _, n := range s.nodes {
		nodes = append(nodes, n)
	}
	s.mu.RUnlock()

	snaps := make([]domain.NodeSnapshot, 0, len(nodes))
	for _, n := range nodes {
		snaps = append(snaps, n.Info())
	}
	sort.Slice(snaps, func(i, j int) bool {
		if !snaps[i].CreatedAt.Equal(snaps[j].CreatedAt) {
			return snaps[i].CreatedAt.Before(snaps[j].CreatedAt)
		}
		return snaps[i].ID.String() < snaps[j].ID.String()
	})
	return snaps
}

// DestroyNode cancels any pending respawn, then removes the node. Destroying twice is a no-op.
func (s *service) DestroyNode(ctx context.Context, id uuid.UUID) bool {
	s.mu.Lock()
	n, ok := s.nodes[id]
	if !ok {
		s.mu.Unlock()
		return false
	}
	cancelled := n.Retire()
	delete(s.nodes, id)
	s.mu.Unlock()

	snap := n.Info()
	logger.FromContext(ctx).Info(LogMsgNodeDestroyed, "nodeID", id, "state", snap.State, "cancelledRespawn", cancelled)
	s.publish(ctx, event.NewNodeDestroyedEvent(snap, cancelled, s.clock.Now()))
	return true
}

// ForceRespawn makes a harvested node available immediately
func (s *service) ForceRespawn(ctx context.Context, id uuid.UUID) (domain.NodeSnapshot, error) {
	n, ok, err := s.lookupOpen(id)
	if err != nil {
		return domain.NodeSnapshot{}, err
	}
	if !ok {
		return domain.NodeSnapshot{}, fmt.Errorf("%w: %s", domain.ErrNodeNotFound, id)
	}
	if err := n.ForceRespawnNow(ctx); err != nil {
		return domain.NodeSnapshot{}, err
	}
	return n.Info(), nil
}

// OnStateChanged registers a listener. Listeners run after the node lock is released and see
// each node's changes in transition order. A panicking listener is logged and does not affect the node.
func (s *service) OnStateChanged(handler StateChangeHandler) {
	if handler == nil {
		return
	}
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()
	s.listeners = append(s.listeners, handler)
}

// CountByState reports how many nodes are in each state
func (s *service) CountByState() map[domain.NodeState]int {
	s.mu.RLock()
	nodes := make([]*node.Node, 0, len(s.nodes))
	for _, n := range s.nodes {
		nodes = append(nodes, n)
	}
	s.mu.RUnlock()

	counts := make(map[domain.NodeState]int, len(domain.NodeStates()))
	for _, n := range nodes {
		counts[n.State()]++
	}
	return counts
}

// Shutdown stops accepting new nodes and cancels all pending respawns.
// Existing nodes stay queryable.
func (s *service) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	logger.FromContext(ctx).Info(LogMsgRegistryShuttingDown)
	return s.respawns.Shutdown(ctx)
}

// CheckHealth reports ErrRegistryClosed after Shutdown
func (s *service) CheckHealth(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return domain.ErrRegistryClosed
	}
	return nil
}

// lookupOpen is lookup for calls that would move a node; it fails once Shutdown has begun
// because no respawn can be armed after that.
func (s *service) lookupOpen(id uuid.UUID) (*node.Node, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, false, domain.ErrRegistryClosed
	}
	n, ok := s.nodes[id]
	return n, ok, nil
}

func (s *service) lookup(id uuid.UUID) (*node.Node, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.nodes[id]
	return n, ok
}

// handleStateChange is every node's observer
func (s *service) handleStateChange(ctx context.Context, change domain.StateChange) {
	s.listenersMu.RLock()
	listeners := append([]StateChangeHandler(nil), s.listeners...)
	s.listenersMu.RUnlock()

	for _, listener := range listeners {
		s.notifyListener(ctx, listener, change)
	}

	s.publish(ctx, event.NewStateChangedEvent(change))

	if change.NewState == domain.NodeStateAvailable &&
		(change.Trigger == domain.TriggerRespawnFired || change.Trigger == domain.TriggerForcedRespawn) {
		if n, ok := s.lookup(change.NodeID); ok {
			s.publish(ctx, event.NewNodeRespawnedEvent(n.Info(), change.Trigger == domain.TriggerForcedRespawn, change.At))
		}
	}
}

func (s *service) notifyListener(ctx context.Context, listener StateChangeHandler, change domain.StateChange) {
	defer func() {
		if r := recover(); r != nil {
			logger.FromContext(ctx).Error(LogMsgStateListenerPanicked, "nodeID", change.NodeID, "panic", r)
		}
	}()
	listener(ctx, change)
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgEventPublishFailed, "type", evt.Type, "error", err)
	}
}

// livenessScheduler guards every respawn callback with a registry membership check,
// so a timer that outlives its node never touches it.
type livenessScheduler struct {
	registry *service
}

func (l livenessScheduler) Schedule(id uuid.UUID, seconds float64, fire func(ctx context.Context)) time.Duration {
	return l.registry.respawns.Schedule(id, seconds, func(ctx context.Context) {
		if _, ok := l.registry.lookup(id); !ok {
			logger.FromContext(ctx).Debug(LogMsgRespawnSkippedDeadNode, "nodeID", id)
			return
		}
		fire(ctx)
	})
}

func (l livenessScheduler) Cancel(id uuid.UUID) bool {
	return l.registry.respawns.Cancel(id)
}
