package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/afero"

	"github.com/personal-finance-tracker/internal/api"
	"github.com/personal-finance-tracker/internal/bootstrap"
	"github.com/personal-finance-tracker/internal/config"
	"github.com/personal-finance-tracker/internal/logger"
)

func main() {
	// Create base context with cancellation
	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	// Initialize configuration
	cfg, err := config.LoadConfig("tracker_server")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewLogger(cfg)

	loc, err := cfg.Application.Location()
	if err != nil {
		log.Error("Failed to resolve timezone", "timezone", cfg.Application.Timezone, "error", err)
		os.Exit(1)
	}

	// Initialize storage and the single writer in front of it
	entryStore, closeStore, err := bootstrap.OpenStore(appCtx, log, cfg, afero.NewOsFs())
	if err != nil {
		log.Error("Failed to initialize storage", "backend", cfg.Storage.Backend, "error", err)
		os.Exit(1)
	}

	// Initialize REST server
	server := api.NewServer(log, cfg, entryStore, func() time.Time { return time.Now().In(loc) })
	log.Info("REST server initialized", "backend", cfg.Storage.Backend)

	// Create error channel for server errors
	errChan := make(chan error, 1)

	// Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Set up signal handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	// Wait for a shutdown signal or error
	var serverErr error
	select {
	case <-quit:
		log.Info("Shutdown signal received")
	case err := <-errChan:
		log.Error("Server error occurred", "error", err)
		serverErr = err
	}

	cancelAppCtx()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	log.Info("Starting graceful shutdown...")

	// Stop accepting requests before the writer goes away
	if err = server.Stop(shutdownCtx, cfg.Server.WriteTimeout); err != nil {
		log.Error("Error during server shutdown", "error", err)
	}

	if closeErr := closeStore(shutdownCtx); closeErr != nil {
		log.Error("Error closing storage", "error", closeErr)
		err = closeErr
	}

	if serverErr != nil {
		log.Error("HTTP server shutdown with errors", "error", serverErr)
	}
	if err != nil || serverErr != nil {
		log.Error("Server shutdown completed with errors")
		os.Exit(1)
	}
	log.Info("Server shutdown completed successfully")
}
