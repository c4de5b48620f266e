// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package services contains domain services shared by the presentation layer.
package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/linuxfoundation/lfx-v2-bundle-enricher/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-bundle-enricher/pkg/logging"
)

// HealthChecker is implemented by every dependency that reports its health
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// HealthService coordinates health checks across dependencies with inline caching
type HealthService struct {
	dependencies  map[string]HealthChecker
	logger        *slog.Logger
	timeout       time.Duration
	cacheDuration time.Duration

	mu            sync.RWMutex
	lastReadiness *cachedResult
	lastHealth    *cachedResult
}

// HealthStatus represents the overall health status of the service
type HealthStatus struct {
	Status     string           `json:"status"` // "healthy", "degraded", "unhealthy"
	Timestamp  time.Time        `json:"timestamp"`
	Duration   time.Duration    `json:"duration"`
	Checks     map[string]Check `json:"checks"`
	ErrorCount int              `json:"error_count,omitempty"`
}

// Check represents the health status of an individual component
type Check struct {
	Status    string        `json:"status"`
	Duration  time.Duration `json:"duration"`
	Error     string        `json:"error,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

type cachedResult struct {
	status    *HealthStatus
	timestamp time.Time
}

// NewHealthService creates a health service over the named dependencies
func NewHealthService(
	dependencies map[string]HealthChecker,
	logger *slog.Logger,
	timeout time.Duration,
	cacheDuration time.Duration,
) *HealthService {
	return &HealthService{
		dependencies:  dependencies,
		logger:        logging.WithComponent(logger, "health_service"),
		timeout:       timeout,
		cacheDuration: cacheDuration,
	}
}

// CheckLiveness reports whether the process itself is responsive. It never
// consults dependencies.
func (s *HealthService) CheckLiveness(_ context.Context) *HealthStatus {
	now := time.Now()
	return &HealthStatus{
		Status:    constants.StatusHealthy,
		Timestamp: now,
		Checks: map[string]Check{
			constants.ComponentService: {
				Status:    constants.StatusHealthy,
				Timestamp: now,
			},
		},
	}
}

// CheckReadiness checks every dependency, caching the result
func (s *HealthService) CheckReadiness(ctx context.Context) *HealthStatus {
	if cached := s.cached(&s.lastReadiness); cached != nil {
		return cached
	}

	status := s.performCheck(ctx)
	s.store(&s.lastReadiness, status)
	return status
}

// CheckHealth is the lenient variant of readiness: a degraded service counts as healthy
func (s *HealthService) CheckHealth(ctx context.Context) *HealthStatus {
	if cached := s.cached(&s.lastHealth); cached != nil {
		return cached
	}

	status := s.performCheck(ctx)
	if status.Status == constants.StatusDegraded {
		status.Status = constants.StatusHealthy
	}
	s.store(&s.lastHealth, status)
	return status
}

// ClearCache drops all cached results
func (s *HealthService) ClearCache() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastReadiness = nil
	s.lastHealth = nil
}

func (s *HealthService) cached(slot **cachedResult) *HealthStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if *slot != nil && time.Since((*slot).timestamp) < s.cacheDuration {
		return (*slot).status
	}
	return nil
}

func (s *HealthService) store(slot **cachedResult, status *HealthStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()

	*slot = &cachedResult{status: status, timestamp: time.Now()}
}

// performCheck runs all dependency checks in parallel under the check timeout
func (s *HealthService) performCheck(ctx context.Context) *HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	status := &HealthStatus{
		Timestamp: time.Now(),
		Checks:    make(map[string]Check, len(s.dependencies)),
	}

	var wg sync.WaitGroup
	var mu sync.Mutex

	for name, dep := range s.dependencies {
		wg.Add(1)
		go func(name string, dep HealthChecker) {
			defer wg.Done()

			start := time.Now()
			err := dep.HealthCheck(ctx)
			check := Check{
				Status:    constants.StatusHealthy,
				Duration:  time.Since(start),
				Timestamp: start,
			}
			if err != nil {
				check.Status = constants.StatusUnhealthy
				check.Error = err.Error()
				s.logger.Warn("Dependency health check failed", "dependency", name, "error", err.Error())
			}

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				status.ErrorCount++
			}
			status.Checks[name] = check
		}(name, dep)
	}

	wg.Wait()
	status.Duration = time.Since(status.Timestamp)

	switch {
	case status.ErrorCount == 0:
		status.Status = constants.StatusHealthy
	case status.ErrorCount == len(s.dependencies):
		status.Status = constants.StatusUnhealthy
	default:
		status.Status = constants.StatusDegraded
	}

	return status
}
