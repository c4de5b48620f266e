// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package container wires the bundle enricher dependencies from configuration.
package container

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	natsgo "github.com/nats-io/nats.go"

	"github.com/linuxfoundation/lfx-v2-bundle-enricher/internal/application"
	"github.com/linuxfoundation/lfx-v2-bundle-enricher/internal/domain/contracts"
	"github.com/linuxfoundation/lfx-v2-bundle-enricher/internal/domain/services"
	"github.com/linuxfoundation/lfx-v2-bundle-enricher/internal/enrichers"
	"github.com/linuxfoundation/lfx-v2-bundle-enricher/internal/infrastructure/catalog"
	"github.com/linuxfoundation/lfx-v2-bundle-enricher/internal/infrastructure/config"
	natspkg "github.com/linuxfoundation/lfx-v2-bundle-enricher/internal/infrastructure/nats"
	"github.com/linuxfoundation/lfx-v2-bundle-enricher/internal/presentation/handlers"
	"github.com/linuxfoundation/lfx-v2-bundle-enricher/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-bundle-enricher/pkg/logging"
)

// Container holds all dependencies
type Container struct {
	// Configuration
	Config *config.AppConfig
	Logger *slog.Logger

	// Infrastructure
	NATSConnection    *natsgo.Conn
	MessageRepository contracts.MessagingRepository
	CatalogClient     contracts.CatalogFetcher

	// Domain and application
	Enricher         *enrichers.ServiceCatalogEnricher
	MessageProcessor *application.MessageProcessor
	HealthService    *services.HealthService

	// Handlers
	BundleMessageHandler *handlers.BundleMessageHandler
	HealthHandler        *handlers.HealthHandler

	simpleHealth bool
}

// NewContainer creates a new dependency injection container
func NewContainer(logger *slog.Logger, cliConfig *config.CLIConfig) (*Container, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cliConfig != nil {
		if err := cliConfig.ApplyOverrides(cfg); err != nil {
			return nil, fmt.Errorf("invalid command line flags: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	container := &Container{
		Config:       cfg,
		Logger:       logger,
		simpleHealth: cliConfig != nil && cliConfig.SimpleHealth,
	}

	if err := container.initializeInfrastructure(); err != nil {
		return nil, fmt.Errorf("failed to initialize infrastructure: %w", err)
	}

	container.initializeServices()
	container.initializeHandlers()

	return container, nil
}

// initializeInfrastructure connects to NATS and builds the catalog client
func (c *Container) initializeInfrastructure() error {
	natsConn, err := natsgo.Connect(
		c.Config.NATS.URL,
		natsgo.Name(constants.ServiceName),
		natsgo.MaxReconnects(c.Config.NATS.MaxReconnects),
		natsgo.ReconnectWait(c.Config.NATS.ReconnectWait),
		natsgo.Timeout(c.Config.NATS.ConnectionTimeout),
		natsgo.DisconnectErrHandler(func(_ *natsgo.Conn, err error) {
			if err != nil {
				c.Logger.Warn("NATS disconnected", "error", err.Error())
			}
		}),
		natsgo.ReconnectHandler(func(conn *natsgo.Conn) {
			c.Logger.Info("NATS reconnected", "url", conn.ConnectedUrl())
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to connect to NATS: %w", err)
	}
	c.NATSConnection = natsConn
	c.MessageRepository = natspkg.NewMessageRepository(natsConn, c.Logger, c.Config.NATS.DrainTimeout)

	c.CatalogClient = catalog.NewClient(c.Logger,
		catalog.WithBaseURL(c.Config.Catalog.URL),
		catalog.WithTimeout(c.Config.Catalog.Timeout),
		catalog.WithRetryPolicy(c.Config.Catalog.MaxAttempts, c.Config.Catalog.RetryDelay),
	)

	return nil
}

// initializeServices builds the enricher, the message processor and the health service
func (c *Container) initializeServices() {
	c.Enricher = enrichers.NewServiceCatalogEnricher(
		c.CatalogClient,
		c.Logger,
		enrichers.WithEnabled(c.Config.Catalog.EnrichmentEnabled),
	)

	c.MessageProcessor = application.NewMessageProcessor(
		c.Enricher,
		c.MessageRepository,
		application.SubjectConfig{
			InputSubject:  c.Config.NATS.InputSubject,
			OutputSubject: c.Config.NATS.OutputSubject,
			Queue:         c.Config.NATS.Queue,
		},
		c.Logger,
	)

	c.HealthService = services.NewHealthService(
		map[string]services.HealthChecker{
			constants.ComponentNATS:    c.MessageRepository,
			constants.ComponentCatalog: c.CatalogClient,
		},
		c.Logger,
		constants.HealthCheckTimeout,
		constants.CacheDuration,
	)
}

// initializeHandlers initializes presentation layer
func (c *Container) initializeHandlers() {
	c.BundleMessageHandler = handlers.NewBundleMessageHandler(c.MessageProcessor, c.Logger)
	c.HealthHandler = handlers.NewHealthHandler(c.HealthService, c.simpleHealth)
}

// StartServices subscribes to pending bundles
func (c *Container) StartServices(ctx context.Context) error {
	c.Logger.Info("Starting NATS message processing services",
		"input_subject", c.Config.NATS.InputSubject,
		"output_subject", c.Config.NATS.OutputSubject,
		"queue", c.Config.NATS.Queue,
		"enrichment_enabled", c.Enricher.Enabled())

	if err := c.MessageProcessor.StartSubscriptions(ctx, c.BundleMessageHandler); err != nil {
		return fmt.Errorf("failed to setup NATS subscriptions: %w", err)
	}

	c.Logger.Info("NATS message processing services started successfully")
	return nil
}

// HealthCheck performs health checks on all dependencies
func (c *Container) HealthCheck(ctx context.Context) error {
	var errs []error
	if err := c.MessageRepository.HealthCheck(ctx); err != nil {
		errs = append(errs, fmt.Errorf("NATS health check failed: %w", err))
	}
	if err := c.CatalogClient.HealthCheck(ctx); err != nil {
		errs = append(errs, fmt.Errorf("catalog health check failed: %w", err))
	}
	return errors.Join(errs...)
}

// Shutdown drains NATS so in-flight bundles are forwarded, then releases resources
func (c *Container) Shutdown(ctx context.Context) error {
	c.Logger.Info("Shutting down container")

	if c.MessageRepository == nil {
		return nil
	}

	done := make(chan error, 1)
	go func() {
		if err := c.MessageRepository.DrainWithTimeout(); err != nil {
			logging.LogError(c.Logger, "NATS drain failed", err)
		}
		done <- c.MessageRepository.Close()
	}()

	select {
	case err := <-done:
		c.Logger.Info("Container resources closed")
		return err
	case <-ctx.Done():
		return fmt.Errorf("container shutdown interrupted: %w", ctx.Err())
	}
}
