package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Node lookup/state errors
	ErrMsgNodeNotFound     = "node not found"
	ErrMsgNodeNotAvailable = "node not available"

	// Setup errors
	ErrMsgInvalidConfiguration = "invalid harvest configuration"

	// State machine misuse
	ErrMsgInvalidTransition = "invalid node state transition"

	// Input errors
	ErrMsgInvalidInput = "invalid input"

	// Lifecycle errors
	ErrMsgRegistryClosed = "node registry is shut down"
)

// Common domain errors
// NodeNotFound and NodeNotAvailable are call rejections the caller may retry.
// ErrInvalidConfiguration indicates a data/setup defect and is never retried.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrNodeNotFound     = errors.New(ErrMsgNodeNotFound)
	ErrNodeNotAvailable = errors.New(ErrMsgNodeNotAvailable)

	ErrInvalidConfiguration = errors.New(ErrMsgInvalidConfiguration)

	ErrInvalidTransition = errors.New(ErrMsgInvalidTransition)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)

	ErrRegistryClosed = errors.New(ErrMsgRegistryClosed)
)

// IsRetryable reports whether err is a call rejection the caller should treat as "try again".
func IsRetryable(err error) bool {
	return errors.Is(err, ErrNodeNotFound) || errors.Is(err, ErrNodeNotAvailable)
}
