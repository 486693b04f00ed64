package event

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBus_DeliversInSubscriptionOrder(t *testing.T) {
	bus := NewMemoryBus()
	var order []string

	bus.Subscribe(NodeCreated, func(ctx context.Context, e Event) error {
		order = append(order, "first")
		assert.Equal(t, "payload", e.Payload)
		return nil
	})
	bus.Subscribe(NodeCreated, func(ctx context.Context, e Event) error {
		order = append(order, "second")
		return nil
	})
	bus.Subscribe(NodeDestroyed, func(ctx context.Context, e Event) error {
		order = append(order, "other type")
		return nil
	})

	require.NoError(t, bus.Publish(context.Background(), Event{Version: EventSchemaVersion, Type: NodeCreated, Payload: "payload"}))
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestMemoryBus_NoSubscribers(t *testing.T) {
	assert.NoError(t, NewMemoryBus().Publish(context.Background(), Event{Type: HarvestResolved}))
}

func TestMemoryBus_FailuresDoNotStopDelivery(t *testing.T) {
	bus := NewMemoryBus()
	errFirst := errors.New("first failed")
	reached := false

	bus.Subscribe(NodeRespawned, func(ctx context.Context, e Event) error { return errFirst })
	bus.Subscribe(NodeRespawned, func(ctx context.Context, e Event) error { panic("boom") })
	bus.Subscribe(NodeRespawned, func(ctx context.Context, e Event) error {
		reached = true
		return nil
	})

	err := bus.Publish(context.Background(), Event{Type: NodeRespawned})
	require.Error(t, err)
	assert.ErrorIs(t, err, errFirst)
	assert.ErrorIs(t, err, ErrHandlerPanicked)
	assert.Contains(t, err.Error(), "boom")
	assert.True(t, reached)
}

func TestMemoryBus_ConcurrentSubscribeAndPublish(t *testing.T) {
	bus := NewMemoryBus()
	var mu sync.Mutex
	delivered := 0

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			bus.Subscribe(NodeStateChanged, func(ctx context.Context, e Event) error {
				mu.Lock()
				delivered++
				mu.Unlock()
				return nil
			})
		}()
		go func() {
			defer wg.Done()
			_ = bus.Publish(context.Background(), Event{Type: NodeStateChanged})
		}()
	}
	wg.Wait()

	assert.Equal(t, 8, bus.HandlerCount(NodeStateChanged))

	mu.Lock()
	before := delivered
	mu.Unlock()
	require.NoError(t, bus.Publish(context.Background(), Event{Type: NodeStateChanged}))
	assert.Equal(t, before+8, delivered)
}

func TestDecodePayload_Pointer(t *testing.T) {
	type payload struct{ N int }

	got, err := DecodePayload[payload](&payload{N: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, got.N)

	got, err = DecodePayload[payload](map[string]interface{}{"N": 4})
	require.NoError(t, err)
	assert.Equal(t, 4, got.N)
}
