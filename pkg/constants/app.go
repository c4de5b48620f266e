// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

import "time"

// Service identity
const (
	ServiceName    = "lfx-bundle-enricher"
	ServiceVersion = "1.0.0"
	Component      = "bundle_enricher"
)

// Performance limits and timeouts
const (
	ProcessingTimeout = 2 * time.Minute  // Covers the worst case catalog retry sequence
	ShutdownTimeout   = 30 * time.Second // Max time for graceful shutdown
	DrainTimeout      = 30 * time.Second // Max time for NATS drain
)

// Default configuration values
const (
	DefaultPort        = 8080
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "json"
	DefaultBindAddress = "*"
)
