package node

// Log messages
const (
	LogMsgInvalidRespawnTrigger = "Respawn fired for node in unexpected state"
	LogMsgRespawnOnRetiredNode  = "Respawn fired for retired node, ignoring"
	LogMsgStaleRespawn          = "Stale respawn fired, ignoring"
	LogMsgHarvestAborted        = "Harvest aborted, node returned to available"
	LogMsgRespawnNotArmed       = "Respawn not armed, node left harvested"
)
