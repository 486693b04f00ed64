// Package scheduler runs worker jobs on fixed intervals.
package scheduler

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/osse101/tidepool/internal/logger"
	"github.com/osse101/tidepool/internal/worker"
)

// LogMsgJobDropped is logged when a tick finds the worker pool stopped
const LogMsgJobDropped = "Scheduled job dropped, worker pool stopped"

// Scheduler manages scheduled jobs
type Scheduler struct {
	workerPool *worker.Pool
	clock      clockwork.Clock
	quit       chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
}

// New creates a new scheduler on the real clock
func New(pool *worker.Pool) *Scheduler {
	return NewWithClock(pool, clockwork.NewRealClock())
}

// NewWithClock creates a scheduler whose tickers come from clock
func NewWithClock(pool *worker.Pool, clock clockwork.Clock) *Scheduler {
	return &Scheduler{
		workerPool: pool,
		clock:      clock,
		quit:       make(chan struct{}),
	}
}

// Schedule registers a job to run at a fixed interval.
// A tick blocks while the pool's queue is full, so slow jobs delay their own next run.
func (s *Scheduler) Schedule(interval time.Duration, job worker.Job) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := s.clock.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.Chan():
				if !s.workerPool.Enqueue(job) {
					logger.Warn(LogMsgJobDropped, "interval", interval)
					return
				}
			case <-s.quit:
				return
			}
		}
	}()
}

// Stop stops all scheduled jobs. It is safe to call more than once.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.quit) })
	s.wg.Wait()
}
