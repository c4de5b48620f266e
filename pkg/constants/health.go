// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

import "time"

// Health check statuses
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// Health components (for detailed health reporting)
const (
	ComponentNATS    = "nats"
	ComponentCatalog = "catalog"
	ComponentService = "service"
)

// Health endpoints
const (
	HealthPath    = "/health"
	ReadinessPath = "/readyz"
	LivenessPath  = "/livez"
)

// Health timeouts and caching
const (
	HealthCheckTimeout = 5 * time.Second
	CacheDuration      = 5 * time.Second
)
