package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished = "events_published_total"
)

// Node lifecycle metric names
const (
	MetricNameNodesCreated       = "tidepool_nodes_created_total"
	MetricNameNodesDestroyed     = "tidepool_nodes_destroyed_total"
	MetricNameLiveNodes          = "tidepool_live_nodes"
	MetricNameNodesByState       = "tidepool_nodes_by_state"
	MetricNameRespawns           = "tidepool_respawns_total"
	MetricNameRespawnsCancelled  = "tidepool_respawns_cancelled_total"
	MetricNameToolCacheLookups   = "tidepool_tool_cache_lookups_total"
	MetricNameHarvestRejections  = "tidepool_harvest_rejections_total"
	MetricNameHarvestAttempts    = "tidepool_harvest_attempts_total"
	MetricNameHarvestYield       = "tidepool_harvest_yield_total"
	MetricNameRareDrops          = "tidepool_rare_drops_total"
	MetricNameExperienceAwarded  = "tidepool_experience_awarded_total"
	MetricNameHarvestStaminaCost = "tidepool_harvest_stamina_cost"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished = "Total number of events published"
)

// Node lifecycle metric help text
const (
	HelpTextNodesCreated       = "Total number of nodes created"
	HelpTextNodesDestroyed     = "Total number of nodes destroyed"
	HelpTextLiveNodes          = "Current number of nodes held by the registry"
	HelpTextNodesByState       = "Number of nodes in each lifecycle state at the last sample"
	HelpTextRespawns           = "Total number of nodes returned to available"
	HelpTextRespawnsCancelled  = "Total number of pending respawns cancelled by node destruction"
	HelpTextToolCacheLookups   = "Total number of tool effectiveness cache lookups"
	HelpTextHarvestRejections  = "Total number of harvest calls rejected before resolution"
	HelpTextHarvestAttempts    = "Total number of resolved harvest attempts"
	HelpTextHarvestYield       = "Total resource units awarded by harvests"
	HelpTextRareDrops          = "Total number of rare material drops"
	HelpTextExperienceAwarded  = "Total experience awarded by successful harvests"
	HelpTextHarvestStaminaCost = "Advisory stamina cost per harvest attempt"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelType     = "type"
	LabelResource = "resource"
	LabelRarity   = "rarity"
	LabelState    = "state"
	LabelResult   = "result"
	LabelReason   = "reason"
	LabelKind     = "kind"
	LabelMaterial = "material"
	LabelTrigger  = "trigger"
)

// Label values
const (
	ResultSuccess    = "success"
	YieldKindPrimary = "primary"
	YieldKindBonus   = "bonus"
	TriggerFired     = "fired"
	TriggerForced    = "forced"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// StaminaCostBuckets spans the possible advisory stamina costs (10 at full stamina, 33 at the floor)
var StaminaCostBuckets = []float64{10, 12, 15, 20, 25, 34}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgEventPayloadDecodeFailed = "Event payload could not be decoded"
	LogMsgMetricsRecorded          = "Metrics recorded for event"
	LogMsgNodeStatesSampled        = "Node states sampled"
)
