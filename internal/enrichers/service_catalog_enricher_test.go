// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package enrichers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linuxfoundation/lfx-v2-bundle-enricher/internal/domain/contracts"
	"github.com/linuxfoundation/lfx-v2-bundle-enricher/internal/domain/entities"
	"github.com/linuxfoundation/lfx-v2-bundle-enricher/internal/mocks"
	"github.com/linuxfoundation/lfx-v2-bundle-enricher/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-bundle-enricher/pkg/logging"
)

func catalogEnrichment(service, team string, tags ...string) *entities.CatalogEnrichment {
	builder := entities.NewCatalogEnrichmentBuilder()
	builder.AddDefinition(service, team, tags)
	return builder.Build()
}

func TestServiceCatalogEnricher_Name(t *testing.T) {
	logger, _ := logging.TestLogger(t)
	enricher := NewServiceCatalogEnricher(mocks.NewMockCatalogFetcher(), logger)

	assert.Equal(t, constants.EnricherServiceCatalog, enricher.Name())
	assert.True(t, enricher.Enabled())

	var _ Enricher = enricher
}

func TestServiceCatalogEnricher_IsWorthy(t *testing.T) {
	logger, _ := logging.TestLogger(t)
	enricher := NewServiceCatalogEnricher(mocks.NewMockCatalogFetcher(), logger)

	tests := []struct {
		name           string
		eventWorthy    bool
		frontendWorthy bool
		expected       bool
	}{
		{"both", true, true, true},
		{"event only", true, false, true},
		{"frontend only", false, true, true},
		{"neither", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bundle := entities.NewBundle(1, "", tt.eventWorthy, tt.frontendWorthy)
			assert.Equal(t, tt.expected, enricher.IsWorthy(bundle))
		})
	}
}

func TestServiceCatalogEnricher_IsAlreadyEnriched(t *testing.T) {
	logger, _ := logging.TestLogger(t)
	enricher := NewServiceCatalogEnricher(mocks.NewMockCatalogFetcher(), logger)

	bundle := entities.NewBundle(1, "", true, true)
	assert.False(t, enricher.IsAlreadyEnriched(bundle))

	bundle.SetServiceCatalog(entities.NewCatalogEnrichmentBuilder().Build())
	assert.False(t, enricher.IsAlreadyEnriched(bundle), "empty enrichment does not count")

	bundle.SetServiceCatalog(catalogEnrichment("web", "A"))
	assert.True(t, enricher.IsAlreadyEnriched(bundle))
}

func TestServiceCatalogEnricher_EnrichBundle(t *testing.T) {
	existing := catalogEnrichment("old", "legacy")
	fetched := catalogEnrichment("web", "A", "env:prod")

	tests := []struct {
		name           string
		bundle         func() *entities.Bundle
		opts           []ServiceCatalogEnricherOption
		fetchError     error
		expectedCalls  []int64
		expectedResult *entities.CatalogEnrichment
		expectedError  error
	}{
		{
			name:           "worthy unenriched bundle is enriched",
			bundle:         func() *entities.Bundle { return entities.NewBundle(10, "incident", true, true) },
			expectedCalls:  []int64{10},
			expectedResult: fetched,
		},
		{
			name:           "frontend worthy only is enriched",
			bundle:         func() *entities.Bundle { return entities.NewBundle(11, "incident", false, true) },
			expectedCalls:  []int64{11},
			expectedResult: fetched,
		},
		{
			name:          "unworthy bundle performs no call",
			bundle:        func() *entities.Bundle { return entities.NewBundle(12, "incident", false, false) },
			expectedCalls: []int64{},
		},
		{
			name: "already enriched bundle is left alone",
			bundle: func() *entities.Bundle {
				b := entities.NewBundle(13, "incident", true, true)
				b.SetServiceCatalog(existing)
				return b
			},
			expectedCalls:  []int64{},
			expectedResult: existing,
		},
		{
			name:          "disabled enricher performs no call",
			bundle:        func() *entities.Bundle { return entities.NewBundle(14, "incident", true, true) },
			opts:          []ServiceCatalogEnricherOption{WithEnabled(false)},
			expectedCalls: []int64{},
		},
		{
			name:          "fetch error propagates and leaves bundle untouched",
			bundle:        func() *entities.Bundle { return entities.NewBundle(15, "incident", true, true) },
			fetchError:    &contracts.EnrichmentError{OrgID: 15, Attempts: 5, StatusCode: 500, Err: errors.New("HTTP 500")},
			expectedCalls: []int64{15},
			expectedError: contracts.ErrEnrichment,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := mocks.NewMockCatalogFetcher()
			fetcher.DefaultResult = fetched
			fetcher.FetchError = tt.fetchError
			logger, _ := logging.TestLogger(t)
			enricher := NewServiceCatalogEnricher(fetcher, logger, tt.opts...)

			bundle := tt.bundle()
			err := enricher.EnrichBundle(context.Background(), bundle)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.expectedCalls, fetcher.GetFetchCalls())
			assert.Same(t, tt.expectedResult, bundle.Enrichment().ServiceCatalog)
		})
	}
}

func TestServiceCatalogEnricher_EnrichBundleIsIdempotent(t *testing.T) {
	fetcher := mocks.NewMockCatalogFetcher()
	fetcher.DefaultResult = catalogEnrichment("web", "A")
	logger, _ := logging.TestLogger(t)
	enricher := NewServiceCatalogEnricher(fetcher, logger)

	bundle := entities.NewBundle(20, "incident", true, false)
	for i := 0; i < 3; i++ {
		require.NoError(t, enricher.EnrichBundle(context.Background(), bundle))
	}

	assert.Equal(t, []int64{20}, fetcher.GetFetchCalls())
}

func TestServiceCatalogEnricher_EmptyResultRefetched(t *testing.T) {
	fetcher := mocks.NewMockCatalogFetcher()
	logger, _ := logging.TestLogger(t)
	enricher := NewServiceCatalogEnricher(fetcher, logger)

	bundle := entities.NewBundle(21, "incident", true, true)
	require.NoError(t, enricher.EnrichBundle(context.Background(), bundle))
	require.NoError(t, enricher.EnrichBundle(context.Background(), bundle))

	assert.Equal(t, []int64{21, 21}, fetcher.GetFetchCalls())
	assert.True(t, bundle.Enrichment().ServiceCatalog.IsEmpty())
}

func TestServiceCatalogEnricher_NilBundle(t *testing.T) {
	fetcher := mocks.NewMockCatalogFetcher()
	logger, _ := logging.TestLogger(t)
	enricher := NewServiceCatalogEnricher(fetcher, logger)

	err := enricher.EnrichBundle(context.Background(), nil)

	assert.EqualError(t, err, constants.ErrNilBundle)
	assert.Empty(t, fetcher.GetFetchCalls())
}

func TestServiceCatalogEnricher_LogsFailure(t *testing.T) {
	fetcher := mocks.NewMockCatalogFetcher()
	fetcher.FetchError = &contracts.TransportError{OrgID: 30, Err: errors.New("connection refused")}
	logger, buf := logging.TestLogger(t)
	enricher := NewServiceCatalogEnricher(fetcher, logger)

	err := enricher.EnrichBundle(context.Background(), entities.NewBundle(30, "incident", true, true))

	assert.ErrorIs(t, err, contracts.ErrTransport)
	logging.AssertLogContains(t, buf, constants.LogFailedEnrichBundle)
	logging.AssertLogContains(t, buf, `"org_id":30`)
	logging.AssertLogContains(t, buf, `"bundle_type":"incident"`)
}
