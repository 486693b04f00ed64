package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Path parameter error messages
	ErrMsgMissingNodeID  = "Missing node ID"
	ErrMsgInvalidNodeID  = "Invalid node ID"
	ErrMsgMissingActorID = "Missing actor ID"

	// Service error messages
	ErrMsgNodeNotFoundError       = "Node not found"
	ErrMsgNodeNotAvailableError   = "Node is not available right now. Try again shortly."
	ErrMsgInvalidInputError       = "Invalid request. Please check your inputs."
	ErrMsgConfigurationError      = "Node configuration error"
	ErrMsgUnavailableError        = "Server is shutting down. Please try again later."
	ErrMsgGenericServerError      = "Something went wrong"
	ErrMsgUnknownError            = "Unknown error"
	ErrMsgEncodeResponseFailed    = "Failed to encode JSON response"
	ErrMsgWriteResponseFailed     = "Failed to write response buffer"
	ErrMsgReadinessCheckFailed    = "Readiness check failed"
	ErrMsgReadinessUnavailableMsg = "node registry is not accepting work"
)

// Success messages for API responses
const (
	MsgNodeCreated    = "Node created"
	MsgNodeDestroyed  = "Node destroyed"
	MsgNodeRespawned  = "Node respawned"
	MsgStaminaUpdated = "Stamina updated"
)

// Log messages
const (
	LogMsgNodeCreateFailed  = "Create node failed"
	LogMsgHarvestRequested  = "Harvest request received"
	LogMsgHarvestCompleted  = "Harvest request completed"
	LogMsgServiceCallFailed = "Service call failed"
)
