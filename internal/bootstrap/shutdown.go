package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/tidepool/internal/server"
)

// GracefulShutdown stops the engine in dependency order:
// 1. Event stream and HTTP server (stop accepting new requests)
// 2. Registry (refuse new nodes, cancel pending respawn timers)
// 3. Scheduler and worker pool (drain in-flight jobs)
// 4. Event publisher (flush pending retries to the dead-letter file)
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
// srv may be nil when the engine runs without an HTTP surface.
func GracefulShutdown(ctx context.Context, srv *server.Server, engine *Engine) {
	// Streaming clients never go idle, so end them before the server waits on connections
	engine.Events.Stop()

	if srv != nil {
		slog.Info(LogMsgShuttingDownServer)
		if err := srv.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	shutdownComponent(ctx, ComponentRegistry, engine.Registry)

	// Scheduler first so no sampler job is enqueued into a stopped pool
	engine.Scheduler.Stop()
	engine.Pool.Stop()

	slog.Info(LogMsgShuttingDownEventPublisher)
	shutdownComponent(ctx, ComponentPublisher, engine.Publisher)

	slog.Info(LogMsgServerStopped)
}

type shutdownableComponent interface {
	Shutdown(context.Context) error
}

func shutdownComponent(ctx context.Context, name string, component shutdownableComponent) {
	if err := component.Shutdown(ctx); err != nil {
		slog.Error(LogMsgComponentShutdownFailed, "component", name, "error", err)
	}
}
