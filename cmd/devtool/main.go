package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := NewRegistry(
		&ValidateEconomyCommand{},
		&HealthCheckCommand{},
		&SimulateCommand{},
	)
	out := NewPrinter(os.Stdout, os.Getenv("NO_COLOR") == "")

	if err := registry.Dispatch(ctx, out, os.Args[1:]); err != nil {
		stop()
		os.Exit(1)
	}
}
