package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)
)

// Node Lifecycle Metrics
var (
	NodesCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameNodesCreated,
			Help: HelpTextNodesCreated,
		},
		[]string{LabelResource, LabelRarity},
	)

	NodesDestroyedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameNodesDestroyed,
			Help: HelpTextNodesDestroyed,
		},
		[]string{LabelResource},
	)

	LiveNodes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameLiveNodes,
			Help: HelpTextLiveNodes,
		},
	)

	NodesByState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricNameNodesByState,
			Help: HelpTextNodesByState,
		},
		[]string{LabelState},
	)

	RespawnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRespawns,
			Help: HelpTextRespawns,
		},
		[]string{LabelResource, LabelTrigger},
	)

	RespawnsCancelledTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRespawnsCancelled,
			Help: HelpTextRespawnsCancelled,
		},
	)

	ToolCacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameToolCacheLookups,
			Help: HelpTextToolCacheLookups,
		},
		[]string{LabelResult},
	)
)

// Harvest Metrics
var (
	HarvestRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHarvestRejections,
			Help: HelpTextHarvestRejections,
		},
		[]string{LabelReason},
	)

	HarvestAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHarvestAttempts,
			Help: HelpTextHarvestAttempts,
		},
		[]string{LabelResource, LabelRarity, LabelResult},
	)

	HarvestYieldTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHarvestYield,
			Help: HelpTextHarvestYield,
		},
		[]string{LabelResource, LabelKind},
	)

	RareDropsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRareDrops,
			Help: HelpTextRareDrops,
		},
		[]string{LabelResource, LabelMaterial},
	)

	ExperienceAwardedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameExperienceAwarded,
			Help: HelpTextExperienceAwarded,
		},
	)

	HarvestStaminaCost = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameHarvestStaminaCost,
			Help:    HelpTextHarvestStaminaCost,
			Buckets: StaminaCostBuckets,
		},
	)
)
