package bootstrap

import (
	"context"
	"fmt"

	"github.com/osse101/tidepool/internal/config"
	"github.com/osse101/tidepool/internal/economy"
	"github.com/osse101/tidepool/internal/event"
	"github.com/osse101/tidepool/internal/logger"
	"github.com/osse101/tidepool/internal/metrics"
	"github.com/osse101/tidepool/internal/provider"
	"github.com/osse101/tidepool/internal/registry"
	"github.com/osse101/tidepool/internal/scheduler"
	"github.com/osse101/tidepool/internal/sse"
	"github.com/osse101/tidepool/internal/validation"
	"github.com/osse101/tidepool/internal/worker"
)

// Engine holds the wired harvest engine and everything that needs shutting down with it
type Engine struct {
	Table     *economy.Table
	Registry  registry.Service
	Stamina   *provider.StaminaTracker
	Tools     *provider.CachedToolProvider
	Pool      *worker.Pool
	Respawns  *worker.RespawnWorker
	Publisher *event.ResilientPublisher
	Scheduler *scheduler.Scheduler
	Events    *sse.Hub
}

// BuildEngine loads the economy table and wires the registry with its providers,
// respawn worker, event publisher, event stream and metrics sampling.
// On error nothing is left running.
func BuildEngine(cfg *config.Config) (*Engine, error) {
	table, err := economy.Load(cfg.EconomyConfigPath, cfg.EconomySchemaPath, validation.NewSchemaValidator())
	if err != nil {
		return nil, err
	}
	logger.Info(LogMsgEconomyLoaded,
		"path", cfg.EconomyConfigPath,
		"resources", len(table.ResourceTypes()),
		"tiers", len(table.Tiers()))

	bus := event.NewMemoryBus()
	publisher, err := event.NewResilientPublisher(bus, EventMaxRetries, event.RetryInitialDelay, cfg.DeadLetterPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create event publisher: %w", err)
	}

	if err := metrics.NewEventMetricsCollector().Register(publisher); err != nil {
		_ = publisher.Shutdown(context.Background())
		return nil, fmt.Errorf("failed to register event metrics: %w", err)
	}

	hub := sse.NewHub()
	hub.Start()
	sse.NewSubscriber(hub, publisher).Subscribe()

	pool := worker.NewPool(cfg.WorkerCount, cfg.WorkerQueueSize)
	pool.Start()

	respawns := worker.NewRespawnWorker(worker.WithPool(pool))
	tools := provider.NewCachedToolProvider(provider.DefaultToolCatalog(), cfg.ToolCacheSize, cfg.ToolCacheTTL)
	stamina := provider.NewStaminaTracker(provider.DefaultStaminaPercent)

	reg, err := registry.NewService(registry.Config{
		Table:    table,
		Tools:    tools,
		Stamina:  stamina,
		Respawns: respawns,
		Bus:      publisher,
	})
	if err != nil {
		pool.Stop()
		hub.Stop()
		_ = publisher.Shutdown(context.Background())
		return nil, err
	}

	sched := scheduler.New(pool)
	sched.Schedule(cfg.MetricsSampleInterval, metrics.NewNodeStateSampler(reg))

	logger.Info(LogMsgEngineReady,
		"workers", cfg.WorkerCount,
		"tool_cache_size", cfg.ToolCacheSize,
		"sample_interval", cfg.MetricsSampleInterval)

	return &Engine{
		Table:     table,
		Registry:  reg,
		Stamina:   stamina,
		Tools:     tools,
		Pool:      pool,
		Respawns:  respawns,
		Publisher: publisher,
		Scheduler: sched,
		Events:    hub,
	}, nil
}
