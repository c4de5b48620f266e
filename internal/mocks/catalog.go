// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package mocks provides call-tracking test doubles for the domain contracts.
package mocks

import (
	"context"
	"sync"

	"github.com/linuxfoundation/lfx-v2-bundle-enricher/internal/domain/entities"
)

// MockCatalogFetcher implements contracts.CatalogFetcher for testing
type MockCatalogFetcher struct {
	mu sync.Mutex

	// Mock responses, per org with a fallback
	Results       map[int64]*entities.CatalogEnrichment
	DefaultResult *entities.CatalogEnrichment
	FetchError    error
	HealthError   error

	// Call tracking
	FetchCalls  []int64
	HealthCalls int
}

// NewMockCatalogFetcher creates a mock returning an empty enrichment by default
func NewMockCatalogFetcher() *MockCatalogFetcher {
	return &MockCatalogFetcher{
		Results:       make(map[int64]*entities.CatalogEnrichment),
		DefaultResult: entities.NewCatalogEnrichmentBuilder().Build(),
		FetchCalls:    make([]int64, 0),
	}
}

// Fetch mocks fetching catalog data
func (m *MockCatalogFetcher) Fetch(ctx context.Context, orgID int64) (*entities.CatalogEnrichment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.FetchCalls = append(m.FetchCalls, orgID)

	if m.FetchError != nil {
		return nil, m.FetchError
	}
	if result, ok := m.Results[orgID]; ok {
		return result, nil
	}
	return m.DefaultResult, nil
}

// HealthCheck mocks the catalog health check
func (m *MockCatalogFetcher) HealthCheck(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.HealthCalls++
	return m.HealthError
}

// GetFetchCalls returns a copy of the org ids fetched so far
func (m *MockCatalogFetcher) GetFetchCalls() []int64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	calls := make([]int64, len(m.FetchCalls))
	copy(calls, m.FetchCalls)
	return calls
}
