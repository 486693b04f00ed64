package registry

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/tidepool/internal/domain"
	"github.com/osse101/tidepool/internal/economy"
	"github.com/osse101/tidepool/internal/event"
	"github.com/osse101/tidepool/internal/provider"
	"github.com/osse101/tidepool/internal/testing/randtest"
	"github.com/osse101/tidepool/internal/worker"
)

const (
	eventuallyWait = time.Second
	eventuallyTick = 5 * time.Millisecond
	neverWait      = 50 * time.Millisecond
)

// MockToolProvider
type MockToolProvider struct {
	mock.Mock
}

func (m *MockToolProvider) EffectivenessFor(ctx context.Context, tool *domain.ToolContext, rt domain.ResourceType) (domain.ToolEffectiveness, error) {
	args := m.Called(ctx, tool, rt)
	return args.Get(0).(domain.ToolEffectiveness), args.Error(1)
}

// MockStaminaProvider
type MockStaminaProvider struct {
	mock.Mock
}

func (m *MockStaminaProvider) StaminaPercentFor(ctx context.Context, actorID string) (float64, error) {
	args := m.Called(ctx, actorID)
	return args.Get(0).(float64), args.Error(1)
}

type eventRecorder struct {
	mu     sync.Mutex
	events []event.Event
}

func (r *eventRecorder) handle(_ context.Context, e event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *eventRecorder) types() []event.Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]event.Type, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

func (r *eventRecorder) ofType(t event.Type) []event.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []event.Event
	for _, e := range r.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

type harness struct {
	svc      *service
	clock    *clockwork.FakeClock
	respawns *worker.RespawnWorker
	stamina  *provider.StaminaTracker
	rng      *randtest.Source
	events   *eventRecorder
}

// newHarness builds a registry on a fake clock with zero respawn jitter.
// draws feed rarity rolls and harvest resolution in order.
func newHarness(t testing.TB, draws ...float64) *harness {
	t.Helper()
	clock := clockwork.NewFakeClock()
	respawns := worker.NewRespawnWorker(worker.WithClock(clock), worker.WithRandomSource(randtest.Sequence(0.5)))
	bus := event.NewMemoryBus()
	recorder := &eventRecorder{}
	for _, typ := range []event.Type{event.NodeCreated, event.NodeStateChanged, event.HarvestResolved, event.NodeRespawned, event.NodeDestroyed} {
		bus.Subscribe(typ, recorder.handle)
	}

	h := &harness{
		clock:    clock,
		respawns: respawns,
		stamina:  provider.NewStaminaTracker(provider.DefaultStaminaPercent),
		rng:      randtest.Sequence(draws...),
		events:   recorder,
	}
	svc, err := newService(Config{
		Table:    economy.Default(),
		Tools:    provider.DefaultToolCatalog(),
		Stamina:  h.stamina,
		Respawns: respawns,
		Bus:      bus,
		Clock:    clock,
		Random:   h.rng,
	})
	require.NoError(t, err)
	h.svc = svc
	t.Cleanup(func() { _ = svc.Shutdown(context.Background()) })
	return h
}

func (h *harness) state(t *testing.T, id uuid.UUID) domain.NodeState {
	t.Helper()
	snap, ok := h.svc.Query(id)
	require.True(t, ok)
	return snap.State
}

var (
	ctx    = context.Background()
	origin = domain.Position{X: 10, Y: -3, Z: 42}
	diver  = domain.HarvestContext{ActorID: "diver-1"}
)

func TestNewService_RequiresCollaborators(t *testing.T) {
	_, err := NewService(Config{Table: economy.Default()})
	assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
}

func TestCreateNode_QueryRoundTrip(t *testing.T) {
	h := newHarness(t)

	id, err := h.svc.CreateNode(ctx, "Kelp", origin, WithRarity(domain.RarityCommon))
	require.NoError(t, err)

	snap, ok := h.svc.Query(id)
	require.True(t, ok)
	assert.Equal(t, id, snap.ID)
	assert.Equal(t, domain.ResourceKelp, snap.ResourceType)
	assert.Equal(t, domain.NodeStateAvailable, snap.State)
	assert.Equal(t, domain.RarityCommon, snap.Rarity.Name)
	assert.Equal(t, uint64(0), snap.HarvestCount)
	assert.Equal(t, origin, snap.Position)
	assert.Equal(t, 60.0, snap.BaseRespawnSeconds)
	assert.Equal(t, 0, h.rng.Calls(), "explicit rarity takes no draw")

	assert.Equal(t, []event.Type{event.NodeCreated}, h.events.types())
}

func TestCreateNode_RollsRarity(t *testing.T) {
	tests := []struct {
		draw    float64
		want    string
		respawn float64
	}{
		{0.10, domain.RarityCommon, 120},
		{0.85, domain.RarityUncommon, 180},
		{0.97, domain.RarityRare, 300},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			h := newHarness(t, tt.draw)
			id, err := h.svc.CreateNode(ctx, domain.ResourceRock, origin)
			require.NoError(t, err)

			snap, _ := h.svc.Query(id)
			assert.Equal(t, tt.want, snap.Rarity.Name)
			assert.Equal(t, tt.respawn, snap.BaseRespawnSeconds)
		})
	}
}

func TestCreateNode_Options(t *testing.T) {
	h := newHarness(t)
	id, err := h.svc.CreateNode(ctx, domain.ResourcePearl, origin, WithRarity(domain.RarityRare), WithEnhancementLevel(3))
	require.NoError(t, err)

	snap, _ := h.svc.Query(id)
	assert.Equal(t, uint32(3), snap.EnhancementLevel)
	assert.Equal(t, domain.RarityRare, snap.Rarity.Name)
}

func TestCreateNode_Errors(t *testing.T) {
	h := newHarness(t)

	_, err := h.svc.CreateNode(ctx, "  ", origin)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = h.svc.CreateNode(ctx, domain.ResourceKelp, origin, WithRarity("Mythic"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = h.svc.CreateNode(ctx, "sand", origin, WithRarity(domain.RarityCommon))
	assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)

	assert.Empty(t, h.svc.QueryAll())
	assert.Empty(t, h.events.types())
}

func TestCreateNode_UniqueIDs(t *testing.T) {
	h := newHarness(t)
	seen := make(map[uuid.UUID]bool)
	for i := 0; i < 100; i++ {
		id, err := h.svc.CreateNode(ctx, domain.ResourceCoral, origin, WithRarity(domain.RarityCommon))
		require.NoError(t, err)
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestHarvest_UnknownNode(t *testing.T) {
	h := newHarness(t)

	_, err := h.svc.Harvest(ctx, uuid.New(), diver)
	assert.ErrorIs(t, err, domain.ErrNodeNotFound)
	assert.True(t, domain.IsRetryable(err))
}

func TestHarvest_RespawnCycleOnSimulatedClock(t *testing.T) {
	h := newHarness(t, 0.0, 0.99)
	id, err := h.svc.CreateNode(ctx, domain.ResourceKelp, origin, WithRarity(domain.RarityCommon))
	require.NoError(t, err)

	outcome, err := h.svc.Harvest(ctx, id, diver)
	require.NoError(t, err)
	require.True(t, outcome.Success)
	assert.Equal(t, map[domain.ResourceType]int{domain.ResourceKelp: 3}, outcome.PrimaryYield)
	assert.Equal(t, uint32(5), outcome.Experience)
	assert.Equal(t, domain.NodeStateRespawning, h.state(t, id))
	assert.True(t, h.respawns.Pending(id))

	_, err = h.svc.Harvest(ctx, id, domain.HarvestContext{ActorID: "diver-2"})
	assert.ErrorIs(t, err, domain.ErrNodeNotAvailable)

	h.clock.Advance(59 * time.Second)
	assert.Never(t, func() bool {
		snap, _ := h.svc.Query(id)
		return snap.State == domain.NodeStateAvailable
	}, neverWait, eventuallyTick)

	h.clock.Advance(time.Second)
	assert.Eventually(t, func() bool {
		snap, _ := h.svc.Query(id)
		return snap.State == domain.NodeStateAvailable
	}, eventuallyWait, eventuallyTick)

	outcome, err = h.svc.Harvest(ctx, id, domain.HarvestContext{ActorID: "diver-2"})
	require.NoError(t, err)
	assert.True(t, outcome.Success)

	snap, _ := h.svc.Query(id)
	assert.Equal(t, uint64(2), snap.HarvestCount)
	assert.Equal(t, "diver-2", snap.LastHarvestedBy)

	respawned := h.events.ofType(event.NodeRespawned)
	require.Len(t, respawned, 1)
	assert.False(t, respawned[0].Payload.(domain.NodeRespawnedPayload).Forced)
	assert.Len(t, h.events.ofType(event.HarvestResolved), 2)
}

func TestHarvest_FailureKeepsNodeAvailable(t *testing.T) {
	h := newHarness(t, 0.99)
	id, err := h.svc.CreateNode(ctx, domain.ResourceKelp, origin, WithRarity(domain.RarityCommon))
	require.NoError(t, err)

	outcome, err := h.svc.Harvest(ctx, id, diver)
	require.NoError(t, err, "a failed harvest is an outcome, not an error")
	assert.False(t, outcome.Success)
	assert.Equal(t, domain.FailureGeneric, outcome.FailureReason)

	snap, _ := h.svc.Query(id)
	assert.Equal(t, domain.NodeStateAvailable, snap.State)
	assert.Equal(t, uint64(0), snap.HarvestCount)
	assert.False(t, h.respawns.Pending(id))
}

func TestHarvest_UsesStaminaAndTool(t *testing.T) {
	h := newHarness(t, 0.99)
	id, err := h.svc.CreateNode(ctx, domain.ResourcePearl, origin, WithRarity(domain.RarityRare))
	require.NoError(t, err)

	require.NoError(t, h.stamina.Set("tired", 0.1))
	outcome, err := h.svc.Harvest(ctx, id, domain.HarvestContext{ActorID: "tired"})
	require.NoError(t, err)
	assert.Equal(t, domain.FailureInsufficientStamina, outcome.FailureReason)
	assert.Equal(t, uint32(33), outcome.StaminaCost)

	// Rare difficulty 2.0 without a tool
	outcome, err = h.svc.Harvest(ctx, id, diver)
	require.NoError(t, err)
	assert.Equal(t, domain.FailureToolRequired, outcome.FailureReason)

	withTool := domain.HarvestContext{ActorID: "diver-1", Tool: &domain.ToolContext{ToolID: "t-1", Kind: provider.ToolKindPryBar}}
	outcome, err = h.svc.Harvest(ctx, id, withTool)
	require.NoError(t, err)
	assert.Equal(t, domain.FailureGeneric, outcome.FailureReason)
	assert.Equal(t, 1.0, outcome.ToolDurabilityLoss)

	_, err = h.svc.Harvest(ctx, id, domain.HarvestContext{ActorID: "x", Tool: &domain.ToolContext{Kind: "spoon"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, domain.NodeStateAvailable, h.state(t, id))
}

func TestHarvest_ProviderErrors(t *testing.T) {
	tools := new(MockToolProvider)
	stamina := new(MockStaminaProvider)
	svc, err := newService(Config{
		Table:    economy.Default(),
		Tools:    tools,
		Stamina:  stamina,
		Respawns: worker.NewRespawnWorker(worker.WithClock(clockwork.NewFakeClock())),
		Random:   randtest.Sequence(0),
	})
	require.NoError(t, err)
	defer func() { _ = svc.Shutdown(ctx) }()

	id, err := svc.CreateNode(ctx, domain.ResourceRock, origin, WithRarity(domain.RarityCommon))
	require.NoError(t, err)

	tools.On("EffectivenessFor", mock.Anything, (*domain.ToolContext)(nil), domain.ResourceRock).
		Return(domain.BareHands(), nil)
	stamina.On("StaminaPercentFor", mock.Anything, "ghost").
		Return(0.0, errors.New("stamina service down")).Once()

	_, err = svc.Harvest(ctx, id, domain.HarvestContext{ActorID: "ghost"})
	assert.ErrorContains(t, err, "stamina service down")

	snap, _ := svc.Query(id)
	assert.Equal(t, domain.NodeStateAvailable, snap.State, "provider failure leaves the node untouched")

	stamina.On("StaminaPercentFor", mock.Anything, "ghost").Return(1.0, nil)
	outcome, err := svc.Harvest(ctx, id, domain.HarvestContext{ActorID: "ghost"})
	require.NoError(t, err)
	assert.True(t, outcome.Success)

	tools.AssertExpectations(t)
	stamina.AssertExpectations(t)
}

func TestHarvest_ConcurrentCallersOneWinner(t *testing.T) {
	h := newHarness(t, 0.0)
	id, err := h.svc.CreateNode(ctx, domain.ResourceKelp, origin, WithRarity(domain.RarityCommon))
	require.NoError(t, err)

	const callers = 16
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		wins     int
		rejected int
		start    = make(chan struct{})
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := h.svc.Harvest(ctx, id, diver)
			mu.Lock()
			defer mu.Unlock()
			if errors.Is(err, domain.ErrNodeNotAvailable) {
				rejected++
				return
			}
			assert.NoError(t, err)
			wins++
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, wins)
	assert.Equal(t, callers-1, rejected)
}

func TestDestroyNode_PendingRespawnHasNoEffect(t *testing.T) {
	h := newHarness(t, 0.0, 0.99)
	id, err := h.svc.CreateNode(ctx, domain.ResourceKelp, origin, WithRarity(domain.RarityCommon))
	require.NoError(t, err)

	var mu sync.Mutex
	var changes []domain.StateChange
	h.svc.OnStateChanged(func(_ context.Context, c domain.StateChange) {
		mu.Lock()
		defer mu.Unlock()
		changes = append(changes, c)
	})

	_, err = h.svc.Harvest(ctx, id, diver)
	require.NoError(t, err)
	require.True(t, h.respawns.Pending(id))

	mu.Lock()
	seen := len(changes)
	mu.Unlock()

	assert.True(t, h.svc.DestroyNode(ctx, id))
	assert.False(t, h.svc.DestroyNode(ctx, id), "destroy is idempotent")
	assert.False(t, h.respawns.Pending(id))

	_, ok := h.svc.Query(id)
	assert.False(t, ok)

	h.clock.Advance(5 * time.Minute)
	assert.Never(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(changes) != seen
	}, neverWait, eventuallyTick)
	assert.Empty(t, h.events.ofType(event.NodeRespawned))

	destroyed := h.events.ofType(event.NodeDestroyed)
	require.Len(t, destroyed, 1)
	assert.True(t, destroyed[0].Payload.(domain.NodeDestroyedPayload).CancelledRespawn)

	_, err = h.svc.Harvest(ctx, id, diver)
	assert.ErrorIs(t, err, domain.ErrNodeNotFound)
}

func TestDestroyNode_Unknown(t *testing.T) {
	h := newHarness(t)
	assert.False(t, h.svc.DestroyNode(ctx, uuid.New()))
	assert.Empty(t, h.events.types())
}

func TestForceRespawn(t *testing.T) {
	h := newHarness(t, 0.0, 0.99)
	id, err := h.svc.CreateNode(ctx, domain.ResourceRock, origin, WithRarity(domain.RarityCommon))
	require.NoError(t, err)

	_, err = h.svc.ForceRespawn(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNodeNotFound)

	snap, err := h.svc.ForceRespawn(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.NodeStateAvailable, snap.State)
	assert.Empty(t, h.events.ofType(event.NodeRespawned), "available node is a no-op")

	_, err = h.svc.Harvest(ctx, id, diver)
	require.NoError(t, err)

	snap, err = h.svc.ForceRespawn(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.NodeStateAvailable, snap.State)
	assert.False(t, h.respawns.Pending(id))

	respawned := h.events.ofType(event.NodeRespawned)
	require.Len(t, respawned, 1)
	assert.True(t, respawned[0].Payload.(domain.NodeRespawnedPayload).Forced)
}

func TestOnStateChanged_ListenerOrderAndPanics(t *testing.T) {
	h := newHarness(t, 0.99)

	var got []domain.NodeState
	h.svc.OnStateChanged(func(context.Context, domain.StateChange) { panic("listener bug") })
	h.svc.OnStateChanged(func(_ context.Context, c domain.StateChange) { got = append(got, c.NewState) })
	h.svc.OnStateChanged(nil)

	id, err := h.svc.CreateNode(ctx, domain.ResourceCoral, origin, WithRarity(domain.RarityCommon))
	require.NoError(t, err)
	_, err = h.svc.Harvest(ctx, id, diver)
	require.NoError(t, err)

	assert.Equal(t, []domain.NodeState{domain.NodeStateHarvesting, domain.NodeStateAvailable}, got)
	assert.Len(t, h.events.ofType(event.NodeStateChanged), 2)
}

func TestQueryAll_OrderedSnapshots(t *testing.T) {
	h := newHarness(t)

	var ids []uuid.UUID
	for _, rt := range []domain.ResourceType{domain.ResourcePearl, domain.ResourceKelp, domain.ResourceRock} {
		id, err := h.svc.CreateNode(ctx, rt, origin, WithRarity(domain.RarityCommon))
		require.NoError(t, err)
		ids = append(ids, id)
		h.clock.Advance(time.Second)
	}

	all := h.svc.QueryAll()
	require.Len(t, all, 3)
	for i, snap := range all {
		assert.Equal(t, ids[i], snap.ID)
	}

	// Snapshots are copies
	all[0].HarvestCount = 99
	snap, _ := h.svc.Query(ids[0])
	assert.Equal(t, uint64(0), snap.HarvestCount)
}

func TestCountByState(t *testing.T) {
	h := newHarness(t, 0.0, 0.99)
	first, err := h.svc.CreateNode(ctx, domain.ResourceKelp, origin, WithRarity(domain.RarityCommon))
	require.NoError(t, err)
	_, err = h.svc.CreateNode(ctx, domain.ResourceKelp, origin, WithRarity(domain.RarityCommon))
	require.NoError(t, err)

	_, err = h.svc.Harvest(ctx, first, diver)
	require.NoError(t, err)

	counts := h.svc.CountByState()
	assert.Equal(t, 1, counts[domain.NodeStateAvailable])
	assert.Equal(t, 1, counts[domain.NodeStateRespawning])
	assert.Equal(t, 0, counts[domain.NodeStateHarvesting])
}

func TestShutdown(t *testing.T) {
	h := newHarness(t, 0.0, 0.99)
	id, err := h.svc.CreateNode(ctx, domain.ResourceKelp, origin, WithRarity(domain.RarityCommon))
	require.NoError(t, err)
	_, err = h.svc.Harvest(ctx, id, diver)
	require.NoError(t, err)

	require.NoError(t, h.svc.CheckHealth(ctx))
	require.NoError(t, h.svc.Shutdown(ctx))
	require.NoError(t, h.svc.Shutdown(ctx))
	assert.ErrorIs(t, h.svc.CheckHealth(ctx), domain.ErrRegistryClosed)
	assert.Equal(t, 0, h.respawns.PendingCount())

	_, err = h.svc.CreateNode(ctx, domain.ResourceKelp, origin)
	assert.ErrorIs(t, err, domain.ErrRegistryClosed)

	// Existing nodes stay queryable
	snap, ok := h.svc.Query(id)
	require.True(t, ok)
	assert.Equal(t, domain.NodeStateRespawning, snap.State)
}

func TestShutdown_RejectsHarvestAndForceRespawn(t *testing.T) {
	h := newHarness(t, 0.0, 0.99)
	id, err := h.svc.CreateNode(ctx, domain.ResourceKelp, origin, WithRarity(domain.RarityCommon))
	require.NoError(t, err)
	require.NoError(t, h.svc.Shutdown(ctx))

	_, err = h.svc.Harvest(ctx, id, diver)
	assert.ErrorIs(t, err, domain.ErrRegistryClosed)
	_, err = h.svc.ForceRespawn(ctx, id)
	assert.ErrorIs(t, err, domain.ErrRegistryClosed)

	h.clock.Advance(24 * time.Hour)
	assert.Equal(t, domain.NodeStateAvailable, h.state(t, id))
	assert.Equal(t, 0, h.respawns.PendingCount())
	assert.Zero(t, h.rng.Calls(), "no draw taken for a rejected harvest")
}

func TestHarvest_SchedulerGoneLeavesNodeHarvested(t *testing.T) {
	h := newHarness(t, 0.0, 0.99)
	id, err := h.svc.CreateNode(ctx, domain.ResourceKelp, origin, WithRarity(domain.RarityCommon))
	require.NoError(t, err)

	// The respawn worker stops first, as it can when Shutdown races an in-flight harvest
	require.NoError(t, h.respawns.Shutdown(ctx))

	outcome, err := h.svc.Harvest(ctx, id, diver)
	require.NoError(t, err)
	assert.True(t, outcome.Success)
	assert.Equal(t, domain.NodeStateHarvested, h.state(t, id))
	assert.Equal(t, 0, h.respawns.PendingCount())
}

func TestEngine_WorksWithoutBus(t *testing.T) {
	clock := clockwork.NewFakeClock()
	svc, err := NewService(Config{
		Table:    economy.Default(),
		Tools:    provider.DefaultToolCatalog(),
		Stamina:  provider.NewStaminaTracker(1),
		Respawns: worker.NewRespawnWorker(worker.WithClock(clock), worker.WithRandomSource(randtest.Sequence(0.5))),
		Clock:    clock,
		Random:   randtest.Sequence(0.0, 0.99),
	})
	require.NoError(t, err)
	defer func() { _ = svc.Shutdown(ctx) }()

	id, err := svc.CreateNode(ctx, domain.ResourceKelp, origin, WithRarity(domain.RarityCommon))
	require.NoError(t, err)
	outcome, err := svc.Harvest(ctx, id, diver)
	require.NoError(t, err)
	assert.True(t, outcome.Success)

	clock.Advance(time.Minute)
	assert.Eventually(t, func() bool {
		snap, _ := svc.Query(id)
		return snap.State == domain.NodeStateAvailable
	}, eventuallyWait, eventuallyTick)
}
