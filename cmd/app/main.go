package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/osse101/tidepool/internal/bootstrap"
	"github.com/osse101/tidepool/internal/config"
	"github.com/osse101/tidepool/internal/logger"
	"github.com/osse101/tidepool/internal/server"
	"github.com/osse101/tidepool/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.InitLogger(logger.NewConfig(cfg.LogLevel, cfg.LogFormat, cfg.ServiceName, cfg.Version, cfg.Environment))

	if cfg.IsProduction() {
		warnings, err := config.ValidateEnvWithWarnings()
		if err != nil {
			logger.Error("Environment validation failed", "error", err)
			os.Exit(1)
		}
		for _, w := range warnings {
			logger.Warn("Configuration warning", "warning", w)
		}
	}

	engine, err := bootstrap.BuildEngine(cfg)
	if err != nil {
		logger.Error("Failed to start harvest engine", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	bootstrap.SeedNodes(ctx, engine.Registry, engine.Table.ResourceTypes(), cfg.SeedNodes, utils.DefaultRandom())

	srv := server.NewServer(
		server.Options{
			Port:           cfg.Port,
			APIKey:         cfg.APIKey,
			TrustedProxies: cfg.TrustedProxies,
			Version:        cfg.Version,
		},
		server.Dependencies{
			Registry: engine.Registry,
			Stamina:  engine.Stamina,
			Economy:  engine.Table,
			Events:   engine.Events,
		},
	)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, srv, engine)
}
