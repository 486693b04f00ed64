package worker

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/osse101/tidepool/internal/logger"
	"github.com/osse101/tidepool/internal/utils"
)

// RespawnWorker arms one-shot respawn timers keyed by node id.
// At most one timer is pending per id; scheduling again replaces the previous timer.
type RespawnWorker struct {
	BaseWorker
	clock         clockwork.Clock
	rng           utils.RandomSource
	pool          *Pool
	jitterSeconds float64
}

// RespawnOption configures a RespawnWorker
type RespawnOption func(*RespawnWorker)

// WithClock sets the clock used to arm timers. Tests pass a fake clock.
func WithClock(clock clockwork.Clock) RespawnOption {
	return func(w *RespawnWorker) { w.clock = clock }
}

// WithRandomSource sets the source used for jitter draws.
func WithRandomSource(rng utils.RandomSource) RespawnOption {
	return func(w *RespawnWorker) { w.rng = rng }
}

// WithPool dispatches fired callbacks onto pool instead of the timer goroutine.
func WithPool(pool *Pool) RespawnOption {
	return func(w *RespawnWorker) { w.pool = pool }
}

// WithJitter sets the half-width of the jitter window in seconds.
func WithJitter(seconds float64) RespawnOption {
	return func(w *RespawnWorker) { w.jitterSeconds = math.Abs(seconds) }
}

// NewRespawnWorker creates a new RespawnWorker
func NewRespawnWorker(opts ...RespawnOption) *RespawnWorker {
	w := &RespawnWorker{
		clock:         clockwork.NewRealClock(),
		rng:           utils.DefaultRandom(),
		jitterSeconds: DefaultRespawnJitterSeconds,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.init()
	return w
}

// Delay returns seconds plus a uniform draw in [-jitter, +jitter], floored at MinRespawnDelay
// and capped at MaxRespawnDelay.
func (w *RespawnWorker) Delay(seconds float64) time.Duration {
	jittered := seconds + utils.UniformRange(w.rng, -w.jitterSeconds, w.jitterSeconds)
	nanos := jittered * float64(time.Second)
	switch {
	case math.IsNaN(nanos):
		return MinRespawnDelay
	case nanos >= float64(MaxRespawnDelay):
		return MaxRespawnDelay
	}
	delay := time.Duration(nanos)
	if delay < MinRespawnDelay {
		return MinRespawnDelay
	}
	return delay
}

// Schedule arms a one-shot timer for id that calls fire after the jittered delay.
// Any timer already pending for id is cancelled first. Returns the armed delay,
// or 0 when the worker has been shut down.
func (w *RespawnWorker) Schedule(id uuid.UUID, seconds float64, fire func(ctx context.Context)) time.Duration {
	delay := w.Delay(seconds)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		logger.Warn(LogMsgRespawnDroppedOnClosed, "nodeID", id)
		return 0
	}

	w.stopTimerLocked(id)
	generation := w.nextGenerationLocked()
	timer := w.clock.AfterFunc(delay, func() {
		w.fire(id, generation, fire)
	})
	w.timers[id] = &timerEntry{timer: timer, generation: generation}

	logger.Debug(LogMsgRespawnScheduled, "nodeID", id, "delay", delay)
	return delay
}

// Cancel removes the pending timer for id. It is a no-op when nothing is pending.
func (w *RespawnWorker) Cancel(id uuid.UUID) bool {
	cancelled := w.stopTimer(id)
	if cancelled {
		logger.Debug(LogMsgRespawnCancelled, "nodeID", id)
	}
	return cancelled
}

// Pending reports whether a timer is armed for id
func (w *RespawnWorker) Pending(id uuid.UUID) bool {
	return w.hasTimer(id)
}

// PendingCount returns the number of armed timers
func (w *RespawnWorker) PendingCount() int {
	return w.timerCount()
}

func (w *RespawnWorker) fire(id uuid.UUID, generation uint64, fn func(ctx context.Context)) {
	if !w.claimTimer(id, generation) {
		return
	}

	job := JobFunc(func(ctx context.Context) error {
		defer w.wg.Done()
		logger.FromContext(ctx).Debug(LogMsgRespawnFired, "nodeID", id)
		fn(ctx)
		return nil
	})

	if w.pool != nil {
		if w.pool.Enqueue(job) {
			return
		}
		logger.Warn(LogMsgRespawnDispatchFallback, "nodeID", id)
	}
	_ = job.Process(context.Background())
}

// Shutdown cancels every pending timer and waits for in-flight callbacks to finish
func (w *RespawnWorker) Shutdown(ctx context.Context) error {
	return w.shutdownInternal(ctx, "respawn worker")
}
