package worker

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/osse101/tidepool/internal/logger"
)

// timerEntry pairs a pending timer with the generation it was armed under.
// A fired callback whose generation no longer matches has been superseded or cancelled.
type timerEntry struct {
	timer      clockwork.Timer
	generation uint64
}

// BaseWorker provides common functionality for background workers that manage timers
type BaseWorker struct {
	mu         sync.Mutex
	timers     map[uuid.UUID]*timerEntry
	generation uint64
	closed     bool
	wg         sync.WaitGroup
}

func (w *BaseWorker) init() {
	if w.timers == nil {
		w.timers = make(map[uuid.UUID]*timerEntry)
	}
}

// nextGenerationLocked must be called with mu held
func (w *BaseWorker) nextGenerationLocked() uint64 {
	w.generation++
	return w.generation
}

// stopTimerLocked must be called with mu held
func (w *BaseWorker) stopTimerLocked(id uuid.UUID) bool {
	entry, ok := w.timers[id]
	if !ok {
		return false
	}
	entry.timer.Stop()
	delete(w.timers, id)
	return true
}

func (w *BaseWorker) stopTimer(id uuid.UUID) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stopTimerLocked(id)
}

// claimTimer removes the entry for id if it still belongs to generation and marks an
// execution in flight. Callers that get true must call w.wg.Done when finished.
func (w *BaseWorker) claimTimer(id uuid.UUID, generation uint64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return false
	}
	entry, ok := w.timers[id]
	if !ok || entry.generation != generation {
		return false
	}
	delete(w.timers, id)
	w.wg.Add(1)
	return true
}

func (w *BaseWorker) hasTimer(id uuid.UUID) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.timers[id]
	return ok
}

func (w *BaseWorker) timerCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.timers)
}

func (w *BaseWorker) shutdownInternal(ctx context.Context, workerName string) error {
	log := logger.FromContext(ctx)
	log.Info("Shutting down " + workerName)

	// Cancel all pending timers
	w.mu.Lock()
	w.closed = true
	for id, entry := range w.timers {
		entry.timer.Stop()
		log.Info("Cancelled pending "+workerName+" execution", "nodeID", id)
	}
	w.timers = make(map[uuid.UUID]*timerEntry)
	w.mu.Unlock()

	// Wait for in-flight executions
	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info(workerName + " shutdown complete")
		return nil
	case <-ctx.Done():
		log.Warn(workerName + " shutdown timeout")
		return ctx.Err()
	}
}
