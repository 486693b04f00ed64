package worker

import (
	"math"
	"time"
)

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

// LogMsgWorkerJobFailed is logged when a worker fails to process a job
const LogMsgWorkerJobFailed = "Worker job failed"

// LogMsgWorkerPoolStopped is logged when a job is offered to a stopped pool
const LogMsgWorkerPoolStopped = "Worker pool stopped, job dropped"

// ============================================================================
// Log Messages - Respawn Worker
// ============================================================================

// Log messages for respawn worker operations
const (
	LogMsgRespawnScheduled        = "Respawn scheduled"
	LogMsgRespawnCancelled        = "Respawn cancelled"
	LogMsgRespawnFired            = "Respawn timer fired"
	LogMsgRespawnDroppedOnClosed  = "Respawn not armed, worker is shut down"
	LogMsgRespawnDispatchFallback = "Respawn dispatch fell back to timer goroutine"
)

// ============================================================================
// Respawn Timing
// ============================================================================

// Respawn jitter configuration
const (
	// DefaultRespawnJitterSeconds is the half-width of the uniform jitter window
	DefaultRespawnJitterSeconds = 5.0

	// MinRespawnDelay floors the jittered respawn delay
	MinRespawnDelay = time.Second

	// MaxRespawnDelay caps the jittered respawn delay so the conversion to time.Duration cannot overflow
	MaxRespawnDelay = time.Duration(math.MaxInt64)
)

// ============================================================================
// Test Configuration
// ============================================================================

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount           = 2
	TestQueueSize             = 10
	TestExpectedJobCount      = 2
	TestWorkerProcessWaitTime = 100 // milliseconds
)
