// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package main provides the entry point for the LFX bundle enricher service.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/linuxfoundation/lfx-v2-bundle-enricher/internal/container"
	"github.com/linuxfoundation/lfx-v2-bundle-enricher/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-bundle-enricher/pkg/logging"
)

// Build-time variables set via ldflags
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	flags := parseCLIFlags()

	logger := logging.NewLogger(flags.Debug)

	handleEarlyExits(flags, logger)

	logger.Info("Configuration loaded",
		"port", flags.Port,
		"debug", flags.Debug,
		"bind", flags.Bind,
		"simple_health", flags.SimpleHealth)

	logger.Info("LFX Bundle Enricher startup initiated",
		"version", Version,
		"build_time", BuildTime,
		"git_commit", GitCommit)

	container, err := container.NewContainer(logger, flags)
	if err != nil {
		logger.Error("Failed to initialize container", "error", err.Error())
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger.Info("Performing initial health check...")
	if err := container.HealthCheck(ctx); err != nil {
		logger.Warn("Initial health check failed", "error", err.Error())
		logger.Warn("Service will start in degraded mode - some dependencies may be unavailable")
	} else {
		logger.Info("Initial health check passed")
	}

	if err := container.StartServices(ctx); err != nil {
		logger.Error("Failed to start background services", "error", err.Error())
		_ = container.Shutdown(context.Background())
		return
	}

	server := createHTTPServer(container, flags.Bind)
	startHTTPServer(server, container, flags.Bind, logger)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("LFX Bundle Enricher started successfully",
		"input_subject", container.Config.NATS.InputSubject,
		"output_subject", container.Config.NATS.OutputSubject,
		"queue_group", container.Config.NATS.Queue,
		"catalog_url", container.Config.Catalog.URL,
		"enrichment_enabled", container.Config.Catalog.EnrichmentEnabled)

	receivedSignal := <-sigChan
	logger.Info("Shutdown signal received", "signal", receivedSignal)

	cancel()

	// Drain NATS first so in-flight bundles are published before the process exits
	drainCtx, drainCancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer drainCancel()
	if err := container.Shutdown(drainCtx); err != nil {
		logger.Error("Container shutdown error", "error", err.Error())
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Health check server shutdown error", "error", err.Error())
	} else {
		logger.Info("Health check server shutdown completed")
	}

	logger.Info("LFX Bundle Enricher stopped")
}
