// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package config loads and validates the bundle enricher configuration.
package config

import (
	"fmt"
	"net/url"
	"slices"
	"time"

	"github.com/linuxfoundation/lfx-v2-bundle-enricher/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-bundle-enricher/pkg/env"
)

// AppConfig represents the application configuration
type AppConfig struct {
	Server  ServerConfig  `json:"server"`
	NATS    NATSConfig    `json:"nats"`
	Catalog CatalogConfig `json:"catalog"`
	Logging LoggingConfig `json:"logging"`
}

// ServerConfig contains minimal server configuration for health checks
type ServerConfig struct {
	Port            int           `json:"port"`
	ReadTimeout     time.Duration `json:"read_timeout"`
	WriteTimeout    time.Duration `json:"write_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
}

// NATSConfig contains NATS configuration
type NATSConfig struct {
	URL               string        `json:"url"`
	MaxReconnects     int           `json:"max_reconnects"`
	ReconnectWait     time.Duration `json:"reconnect_wait"`
	ConnectionTimeout time.Duration `json:"connection_timeout"`
	DrainTimeout      time.Duration `json:"drain_timeout"`
	InputSubject      string        `json:"input_subject"`
	OutputSubject     string        `json:"output_subject"`
	Queue             string        `json:"queue"`
}

// CatalogConfig contains service catalog client configuration
type CatalogConfig struct {
	URL               string        `json:"url"`
	Timeout           time.Duration `json:"timeout"`
	MaxAttempts       int           `json:"max_attempts"`
	RetryDelay        time.Duration `json:"retry_delay"`
	EnrichmentEnabled bool          `json:"enrichment_enabled"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*AppConfig, error) {
	config := &AppConfig{
		Server: ServerConfig{
			Port:            env.GetInt("PORT", constants.DefaultPort),
			ReadTimeout:     env.GetDuration("READ_TIMEOUT", 5*time.Second),
			WriteTimeout:    env.GetDuration("WRITE_TIMEOUT", 5*time.Second),
			ShutdownTimeout: env.GetDuration("SHUTDOWN_TIMEOUT", constants.ShutdownTimeout),
		},
		NATS: NATSConfig{
			URL:               env.GetString("NATS_URL", "nats://nats:4222"),
			MaxReconnects:     env.GetInt("NATS_MAX_RECONNECTS", 10),
			ReconnectWait:     env.GetDuration("NATS_RECONNECT_WAIT", 2*time.Second),
			ConnectionTimeout: env.GetDuration("NATS_CONNECTION_TIMEOUT", 10*time.Second),
			DrainTimeout:      env.GetDuration("NATS_DRAIN_TIMEOUT", constants.DrainTimeout),
			InputSubject:      env.GetString("NATS_INPUT_SUBJECT", constants.BundlePendingSubject),
			OutputSubject:     env.GetString("NATS_OUTPUT_SUBJECT", constants.BundleEnrichedSubject),
			Queue:             env.GetString("NATS_QUEUE", constants.DefaultQueue),
		},
		Catalog: CatalogConfig{
			URL:               env.GetString("CATALOG_URL", constants.DefaultCatalogURL),
			Timeout:           env.GetDuration("CATALOG_TIMEOUT", constants.CatalogRequestTimeout),
			MaxAttempts:       env.GetInt("CATALOG_MAX_ATTEMPTS", constants.CatalogMaxAttempts),
			RetryDelay:        env.GetDuration("CATALOG_RETRY_DELAY", constants.CatalogRetryDelay),
			EnrichmentEnabled: env.GetBool("CATALOG_ENRICHMENT_ENABLED", true),
		},
		Logging: LoggingConfig{
			Level:  env.GetString("LOG_LEVEL", constants.DefaultLogLevel),
			Format: env.GetString("LOG_FORMAT", constants.DefaultLogFormat),
		},
	}

	return config, nil
}

// Validate validates the configuration
func (c *AppConfig) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.NATS.URL == "" {
		return fmt.Errorf("NATS URL is required")
	}
	if c.NATS.InputSubject == "" || c.NATS.OutputSubject == "" {
		return fmt.Errorf("NATS input and output subjects are required")
	}
	if c.NATS.InputSubject == c.NATS.OutputSubject {
		return fmt.Errorf("NATS input and output subjects must differ: %s", c.NATS.InputSubject)
	}
	if c.NATS.Queue == "" {
		return fmt.Errorf("NATS queue is required")
	}

	if c.Catalog.URL == "" {
		return fmt.Errorf("catalog URL is required")
	}
	if u, err := url.Parse(c.Catalog.URL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid catalog URL: %s", c.Catalog.URL)
	}
	if c.Catalog.Timeout <= 0 {
		return fmt.Errorf("catalog timeout must be positive: %s", c.Catalog.Timeout)
	}
	if c.Catalog.MaxAttempts <= 0 {
		return fmt.Errorf("catalog max attempts must be positive: %d", c.Catalog.MaxAttempts)
	}
	if c.Catalog.RetryDelay < 0 {
		return fmt.Errorf("catalog retry delay must not be negative: %s", c.Catalog.RetryDelay)
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(validLogLevels, c.Logging.Level) {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	validLogFormats := []string{"json", "text"}
	if !slices.Contains(validLogFormats, c.Logging.Format) {
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}

	return nil
}
