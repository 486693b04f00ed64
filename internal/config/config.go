package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	Environment string
	ServiceName string
	Version     string

	APIKey         string // Empty disables API key checks on /api routes
	TrustedProxies []string

	EconomyConfigPath string
	EconomySchemaPath string
	DeadLetterPath    string

	WorkerCount           int
	WorkerQueueSize       int
	ToolCacheSize         int
	ToolCacheTTL          time.Duration
	MetricsSampleInterval time.Duration
	SeedNodes             int
	ShutdownTimeout       time.Duration
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:          strings.ToLower(getEnv(EnvLogLevel, DefaultLogLevel)),
		LogFormat:         strings.ToLower(getEnv(EnvLogFormat, DefaultLogFormat)),
		Environment:       getEnv(EnvEnvironment, DefaultEnvironment),
		ServiceName:       getEnv(EnvServiceName, DefaultServiceName),
		Version:           getEnv(EnvVersion, DefaultVersion),
		APIKey:            getEnv(EnvAPIKey, ""),
		TrustedProxies:    splitList(getEnv(EnvTrustedProxies, "")),
		EconomyConfigPath: getEnv(EnvEconomyConfigPath, ConfigPathEconomy),
		EconomySchemaPath: getEnv(EnvEconomySchemaPath, ConfigPathEconomySchema),
		DeadLetterPath:    getEnv(EnvDeadLetterPath, ConfigPathDeadLetter),
	}

	ints := []struct {
		key  string
		def  int
		dest *int
	}{
		{EnvPort, DefaultPort, &cfg.Port},
		{EnvWorkerCount, DefaultWorkerCount, &cfg.WorkerCount},
		{EnvWorkerQueueSize, DefaultWorkerQueueSize, &cfg.WorkerQueueSize},
		{EnvToolCacheSize, DefaultToolCacheSize, &cfg.ToolCacheSize},
		{EnvSeedNodes, DefaultSeedNodes, &cfg.SeedNodes},
	}
	for _, v := range ints {
		n, err := getEnvAsInt(v.key, v.def)
		if err != nil {
			return nil, err
		}
		*v.dest = n
	}

	durations := []struct {
		key  string
		def  time.Duration
		dest *time.Duration
	}{
		{EnvToolCacheTTL, DefaultToolCacheTTL, &cfg.ToolCacheTTL},
		{EnvMetricsSampleInterval, DefaultMetricsSampleInterval, &cfg.MetricsSampleInterval},
		{EnvShutdownTimeout, DefaultShutdownTimeout, &cfg.ShutdownTimeout},
	}
	for _, v := range durations {
		d, err := getEnvAsDuration(v.key, v.def)
		if err != nil {
			return nil, err
		}
		*v.dest = d
	}

	if cfg.WorkerCount < 1 {
		return nil, fmt.Errorf("invalid %s value: must be at least 1", EnvWorkerCount)
	}
	if cfg.ToolCacheSize < 1 {
		return nil, fmt.Errorf("invalid %s value: must be at least 1", EnvToolCacheSize)
	}
	if cfg.SeedNodes < 0 {
		return nil, fmt.Errorf("invalid %s value: must not be negative", EnvSeedNodes)
	}
	if cfg.MetricsSampleInterval <= 0 {
		return nil, fmt.Errorf("invalid %s value: must be positive", EnvMetricsSampleInterval)
	}

	return cfg, nil
}

// IsProduction reports whether strict startup validation applies
func (c *Config) IsProduction() bool {
	return c.Environment == EnvironmentProduction
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt returns defaultValue when key is unset and an error when it does not parse
func getEnvAsInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return n, nil
}

// getEnvAsDuration returns defaultValue when key is unset and an error when it does not parse
func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
