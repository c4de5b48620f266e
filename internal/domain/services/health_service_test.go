// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/linuxfoundation/lfx-v2-bundle-enricher/internal/mocks"
	"github.com/linuxfoundation/lfx-v2-bundle-enricher/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-bundle-enricher/pkg/logging"
)

func newTestHealthService(t *testing.T, cacheDuration time.Duration) (*HealthService, *mocks.MockMessagingRepository, *mocks.MockCatalogFetcher) {
	t.Helper()
	logger, _ := logging.TestLogger(t)
	messaging := mocks.NewMockMessagingRepository()
	catalog := mocks.NewMockCatalogFetcher()

	service := NewHealthService(map[string]HealthChecker{
		constants.ComponentNATS:    messaging,
		constants.ComponentCatalog: catalog,
	}, logger, time.Second, cacheDuration)

	return service, messaging, catalog
}

func TestHealthService_CheckReadiness(t *testing.T) {
	tests := []struct {
		name           string
		natsErr        error
		catalogErr     error
		expectedStatus string
		expectedErrors int
	}{
		{"all healthy", nil, nil, constants.StatusHealthy, 0},
		{"catalog down", nil, errors.New("unreachable"), constants.StatusDegraded, 1},
		{"everything down", errors.New("disconnected"), errors.New("unreachable"), constants.StatusUnhealthy, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, messaging, catalog := newTestHealthService(t, 0)
			messaging.HealthError = tt.natsErr
			catalog.HealthError = tt.catalogErr

			status := service.CheckReadiness(context.Background())

			assert.Equal(t, tt.expectedStatus, status.Status)
			assert.Equal(t, tt.expectedErrors, status.ErrorCount)
			assert.Len(t, status.Checks, 2)
			if tt.catalogErr != nil {
				assert.Equal(t, tt.catalogErr.Error(), status.Checks[constants.ComponentCatalog].Error)
			}
		})
	}
}

func TestHealthService_CheckHealthAcceptsDegraded(t *testing.T) {
	service, _, catalog := newTestHealthService(t, 0)
	catalog.HealthError = errors.New("unreachable")

	status := service.CheckHealth(context.Background())

	assert.Equal(t, constants.StatusHealthy, status.Status)
	assert.Equal(t, 1, status.ErrorCount)
}

func TestHealthService_CheckLivenessIgnoresDependencies(t *testing.T) {
	service, messaging, catalog := newTestHealthService(t, 0)
	messaging.HealthError = errors.New("disconnected")
	catalog.HealthError = errors.New("unreachable")

	status := service.CheckLiveness(context.Background())

	assert.Equal(t, constants.StatusHealthy, status.Status)
	assert.Equal(t, 0, messaging.HealthCalls)
	assert.Equal(t, 0, catalog.HealthCalls)
}

func TestHealthService_CacheWorksCorrectly(t *testing.T) {
	service, messaging, _ := newTestHealthService(t, 100*time.Millisecond)

	service.CheckReadiness(context.Background())
	service.CheckReadiness(context.Background())
	assert.Equal(t, 1, messaging.HealthCalls, "second call should be served from cache")

	time.Sleep(150 * time.Millisecond)

	service.CheckReadiness(context.Background())
	assert.Equal(t, 2, messaging.HealthCalls, "cache should expire")
}

func TestHealthService_ClearCache(t *testing.T) {
	service, messaging, _ := newTestHealthService(t, time.Minute)

	service.CheckReadiness(context.Background())
	service.ClearCache()
	service.CheckReadiness(context.Background())

	assert.Equal(t, 2, messaging.HealthCalls)
}
