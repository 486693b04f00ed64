package bootstrap

// =============================================================================
// Event System Configuration
// =============================================================================

const (
	// EventMaxRetries is the number of redelivery attempts before an event is dead-lettered
	EventMaxRetries = 5
)

// =============================================================================
// Seeding
// =============================================================================

const (
	// SeedAreaHalfWidth bounds seeded X and Y coordinates to [-w, w]
	SeedAreaHalfWidth = 500.0

	// SeedMaxDepth bounds seeded Z coordinates to [-d, 0]
	SeedMaxDepth = 60.0
)

// =============================================================================
// Component Names
// =============================================================================

const (
	ComponentRegistry  = "registry"
	ComponentPublisher = "event publisher"
)

// =============================================================================
// Log Messages
// =============================================================================

const (
	LogMsgEconomyLoaded              = "Economy table loaded"
	LogMsgEngineReady                = "Harvest engine ready"
	LogMsgNodesSeeded                = "Seeded resource nodes"
	LogMsgSeedNodeFailed             = "Failed to seed node"
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgComponentShutdownFailed    = "Component shutdown failed"
	LogMsgServerStopped              = "Server stopped"
)
