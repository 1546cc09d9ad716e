package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"atsbuddy/internal/cli"
	"atsbuddy/internal/config"
	"atsbuddy/internal/errors"
	"atsbuddy/internal/observability"
)

func main() {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logging
	logger, err := errors.New(cfg.App.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	// Initialize tracing when enabled
	obs, err := observability.NewManager(ctx, cfg.Observability, cli.Version)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize observability: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Observability shutdown failed", "error", err)
		}
	}()

	// Log startup
	logger.Debug("Starting atsbuddy",
		"version", cli.Version,
		"log_level", cfg.App.LogLevel,
		"api_base_url", cfg.API.BaseURL)

	// Execute command with cancellable context
	if err := cli.Execute(ctx, cfg, logger); err != nil {
		logger.LogError(err, "Command execution failed")
		os.Exit(1)
	}
}
