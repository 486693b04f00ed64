package config

import "time"

// Environment variable names
const (
	EnvPort                  = "PORT"
	EnvLogLevel              = "LOG_LEVEL"
	EnvLogFormat             = "LOG_FORMAT"
	EnvEnvironment           = "ENVIRONMENT"
	EnvServiceName           = "SERVICE_NAME"
	EnvVersion               = "VERSION"
	EnvAPIKey                = "API_KEY"
	EnvTrustedProxies        = "TRUSTED_PROXIES"
	EnvEconomyConfigPath     = "ECONOMY_CONFIG_PATH"
	EnvEconomySchemaPath     = "ECONOMY_SCHEMA_PATH"
	EnvDeadLetterPath        = "DEAD_LETTER_PATH"
	EnvWorkerCount           = "WORKER_COUNT"
	EnvWorkerQueueSize       = "WORKER_QUEUE_SIZE"
	EnvToolCacheSize         = "TOOL_CACHE_SIZE"
	EnvToolCacheTTL          = "TOOL_CACHE_TTL"
	EnvMetricsSampleInterval = "METRICS_SAMPLE_INTERVAL"
	EnvSeedNodes             = "SEED_NODES"
	EnvShutdownTimeout       = "SHUTDOWN_TIMEOUT"
	EnvSchemaVersion         = "ENV_SCHEMA_VERSION"
)

// Defaults
const (
	DefaultPort                  = 8080
	DefaultLogLevel              = "info"
	DefaultLogFormat             = "text"
	DefaultEnvironment           = "dev"
	DefaultServiceName           = "tidepool"
	DefaultVersion               = "dev"
	DefaultWorkerCount           = 2
	DefaultWorkerQueueSize       = 256
	DefaultToolCacheSize         = 512
	DefaultToolCacheTTL          = 5 * time.Minute
	DefaultMetricsSampleInterval = 15 * time.Second
	DefaultSeedNodes             = 0
	DefaultShutdownTimeout       = 10 * time.Second
)

const (
	// Configuration file paths
	ConfigPathEconomy       = "configs/economy/harvest_economy.json"
	ConfigPathEconomySchema = "configs/schemas/harvest_economy.schema.json"
	ConfigPathDeadLetter    = "logs/event_deadletter.jsonl"
)

// EnvironmentProduction enables strict environment validation at startup
const EnvironmentProduction = "prod"
