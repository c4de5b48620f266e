// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package enrichers

import (
	"context"
	"errors"
	"log/slog"

	"github.com/linuxfoundation/lfx-v2-bundle-enricher/internal/domain/contracts"
	"github.com/linuxfoundation/lfx-v2-bundle-enricher/internal/domain/entities"
	"github.com/linuxfoundation/lfx-v2-bundle-enricher/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-bundle-enricher/pkg/logging"
)

// ServiceCatalogEnricherOption configures a ServiceCatalogEnricher
type ServiceCatalogEnricherOption func(*ServiceCatalogEnricher)

// WithEnabled turns the enricher on or off. A disabled enricher never calls the catalog.
func WithEnabled(enabled bool) ServiceCatalogEnricherOption {
	return func(e *ServiceCatalogEnricher) {
		e.enabled = enabled
	}
}

// ServiceCatalogEnricher attaches service owners and custom tags from the
// service catalog to worthy bundles
type ServiceCatalogEnricher struct {
	fetcher contracts.CatalogFetcher
	logger  *slog.Logger
	enabled bool
}

// NewServiceCatalogEnricher creates an enabled enricher backed by fetcher
func NewServiceCatalogEnricher(fetcher contracts.CatalogFetcher, logger *slog.Logger, opts ...ServiceCatalogEnricherOption) *ServiceCatalogEnricher {
	e := &ServiceCatalogEnricher{
		fetcher: fetcher,
		logger:  logging.WithComponent(logger, "service_catalog_enricher"),
		enabled: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name returns the enricher name
func (e *ServiceCatalogEnricher) Name() string {
	return constants.EnricherServiceCatalog
}

// Enabled reports whether the enricher is switched on
func (e *ServiceCatalogEnricher) Enabled() bool {
	return e.enabled
}

// IsWorthy reports whether the bundle qualifies for enrichment
func (e *ServiceCatalogEnricher) IsWorthy(bundle *entities.Bundle) bool {
	return bundle.EventWorthy || bundle.FrontendWorthy
}

// IsAlreadyEnriched reports whether the bundle already carries a non-empty catalog enrichment
func (e *ServiceCatalogEnricher) IsAlreadyEnriched(bundle *entities.Bundle) bool {
	return !bundle.Enrichment().ServiceCatalog.IsEmpty()
}

// ShouldEnrich combines the feature flag, worthiness and already-enriched checks
func (e *ServiceCatalogEnricher) ShouldEnrich(bundle *entities.Bundle) bool {
	return e.enabled && e.IsWorthy(bundle) && !e.IsAlreadyEnriched(bundle)
}

// EnrichBundle fetches the catalog data for the bundle's organization and
// attaches it. Fetch errors are returned unchanged and leave the bundle untouched.
func (e *ServiceCatalogEnricher) EnrichBundle(ctx context.Context, bundle *entities.Bundle) error {
	if bundle == nil {
		return errors.New(constants.ErrNilBundle)
	}

	logger := logging.WithBundle(logging.FromContext(ctx, e.logger), bundle.OrgID, bundle.Type)

	if !e.ShouldEnrich(bundle) {
		logger.Debug("Skipping service catalog enrichment",
			"enabled", e.enabled,
			"worthy", e.IsWorthy(bundle),
			"already_enriched", e.IsAlreadyEnriched(bundle))
		return nil
	}

	enrichment, err := e.fetcher.Fetch(ctx, bundle.OrgID)
	if err != nil {
		logging.LogError(logger, constants.LogFailedEnrichBundle, err)
		return err
	}

	bundle.SetServiceCatalog(enrichment)

	logger.Debug("Applied service catalog enrichment",
		"services", len(enrichment.ServiceOwners))
	return nil
}
