package registry

// Log messages
const (
	LogMsgNodeCreated             = "Node created"
	LogMsgNodeDestroyed           = "Node destroyed"
	LogMsgNodeConfigurationFailed = "Node configuration error"
	LogMsgHarvestResolved         = "Harvest resolved"
	LogMsgHarvestRejected         = "Harvest rejected"
	LogMsgRespawnSkippedDeadNode  = "Respawn skipped, node no longer registered"
	LogMsgEventPublishFailed      = "Failed to publish node event"
	LogMsgStateListenerPanicked   = "State change listener panicked"
	LogMsgRegistryShuttingDown    = "Node registry shutting down"
)

// Harvest rejection reasons recorded in metrics
const (
	rejectionNotFound     = "not_found"
	rejectionNotAvailable = "not_available"
	rejectionProvider     = "provider_error"
	rejectionConfig       = "configuration_error"
	rejectionClosed       = "registry_closed"
)
