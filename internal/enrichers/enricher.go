// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package enrichers attaches externally sourced metadata to bundles before they
// are emitted downstream.
package enrichers

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-bundle-enricher/internal/domain/entities"
)

// Enricher enriches a bundle in place
type Enricher interface {
	// EnrichBundle applies the enrichment when the bundle qualifies for it
	EnrichBundle(ctx context.Context, bundle *entities.Bundle) error

	// Name identifies the enricher in logs
	Name() string
}
