package event

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/osse101/tidepool/internal/logger"
)

// retryEntry is a failed event waiting for another attempt
type retryEntry struct {
	event     Event
	attempts  int
	lastError error
}

// ResilientPublisher wraps an event Bus with retries and a dead-letter file.
// The first attempt is synchronous. Failures are retried in the background with
// exponential backoff and dead-lettered once the retry budget is spent.
type ResilientPublisher struct {
	bus        Bus
	retryQueue chan retryEntry
	maxRetries int
	retryDelay time.Duration
	deadLetter *DeadLetterWriter
	clock      clockwork.Clock

	shutdown     chan struct{}
	shutdownOnce sync.Once
	wg           sync.WaitGroup
}

// PublisherOption customizes a ResilientPublisher
type PublisherOption func(*ResilientPublisher)

// WithPublisherClock sets the clock driving retry backoff and dead-letter timestamps
func WithPublisherClock(clock clockwork.Clock) PublisherOption {
	return func(rp *ResilientPublisher) { rp.clock = clock }
}

// NewResilientPublisher creates a new ResilientPublisher and starts its retry worker
func NewResilientPublisher(bus Bus, maxRetries int, retryDelay time.Duration, deadLetterPath string, opts ...PublisherOption) (*ResilientPublisher, error) {
	rp := &ResilientPublisher{
		bus:        bus,
		retryQueue: make(chan retryEntry, RetryQueueBufferSize),
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		clock:      clockwork.NewRealClock(),
		shutdown:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(rp)
	}

	dl, err := NewDeadLetterWriter(deadLetterPath, rp.clock)
	if err != nil {
		return nil, err
	}
	rp.deadLetter = dl

	rp.wg.Add(1)
	go rp.retryWorker()

	return rp, nil
}

// Publish implements Bus. Delivery failures are handled in the background, so it always returns nil.
func (rp *ResilientPublisher) Publish(ctx context.Context, event Event) error {
	rp.PublishWithRetry(ctx, event)
	return nil
}

// Subscribe delegates to the wrapped bus
func (rp *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	rp.bus.Subscribe(eventType, handler)
}

// PublishWithRetry attempts one synchronous publish and queues the event for retry on failure
func (rp *ResilientPublisher) PublishWithRetry(ctx context.Context, event Event) {
	err := rp.bus.Publish(ctx, event)
	if err == nil {
		return
	}

	log := logger.FromContext(ctx)
	log.Warn(LogMsgEventPublishFailed, "event_type", event.Type, "error", err)

	entry := retryEntry{event: event, attempts: 1, lastError: err}
	select {
	case <-rp.shutdown:
		log.Warn(LogMsgEventDroppedShutdown, "event_type", event.Type)
		rp.writeDeadLetter(entry)
		return
	default:
	}

	select {
	case rp.retryQueue <- entry:
	default:
		log.Error(LogMsgRetryQueueFull, "event_type", event.Type)
		rp.writeDeadLetter(entry)
	}
}

func (rp *ResilientPublisher) retryWorker() {
	defer rp.wg.Done()

	for {
		select {
		case entry := <-rp.retryQueue:
			rp.retry(entry)
		case <-rp.shutdown:
			rp.drainQueue()
			return
		}
	}
}

// retry runs the backoff schedule for one entry
func (rp *ResilientPublisher) retry(entry retryEntry) {
	ctx := context.Background()
	log := logger.FromContext(ctx)

	for attempt := 1; attempt <= rp.maxRetries; attempt++ {
		timer := rp.clock.NewTimer(CalculateRetryDelay(rp.retryDelay, attempt))
		select {
		case <-timer.Chan():
		case <-rp.shutdown:
			timer.Stop()
			rp.finalAttempt(ctx, entry)
			return
		}

		entry.attempts++
		err := rp.bus.Publish(ctx, entry.event)
		if err == nil {
			log.Info(LogMsgEventRetrySucceeded, "event_type", entry.event.Type, "attempt", attempt)
			return
		}
		entry.lastError = err
		log.Warn(LogMsgEventRetryFailed, "event_type", entry.event.Type, "attempt", attempt, "error", err)
	}

	log.Error(LogMsgEventRetryExhausted, "event_type", entry.event.Type, "attempts", entry.attempts)
	rp.writeDeadLetter(entry)
}

// drainQueue gives every queued event one last attempt before shutdown
func (rp *ResilientPublisher) drainQueue() {
	ctx := context.Background()
	drained := 0
	for {
		select {
		case entry := <-rp.retryQueue:
			rp.finalAttempt(ctx, entry)
			drained++
		default:
			if drained > 0 {
				logger.FromContext(ctx).Info(LogMsgQueueDrainedShutdown, "count", drained)
			}
			return
		}
	}
}

func (rp *ResilientPublisher) finalAttempt(ctx context.Context, entry retryEntry) {
	entry.attempts++
	if err := rp.bus.Publish(ctx, entry.event); err != nil {
		entry.lastError = err
		rp.writeDeadLetter(entry)
	}
}

func (rp *ResilientPublisher) writeDeadLetter(entry retryEntry) {
	if err := rp.deadLetter.Write(entry.event, entry.attempts, entry.lastError); err != nil {
		logger.Error(LogMsgDeadLetterWriteFailed, "event_type", entry.event.Type, "error", err)
	}
}

// Shutdown stops the retry worker, flushing queued events, and closes the dead-letter file
func (rp *ResilientPublisher) Shutdown(ctx context.Context) error {
	var result error
	rp.shutdownOnce.Do(func() {
		close(rp.shutdown)

		done := make(chan struct{})
		go func() {
			rp.wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			result = rp.deadLetter.Close()
		case <-ctx.Done():
			logger.FromContext(ctx).Warn(LogMsgShutdownTimeout)
			result = ctx.Err()
		}
	})
	return result
}
