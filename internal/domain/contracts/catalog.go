// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package contracts defines the interfaces and error types of the bundle enricher domain.
package contracts

import (
	"context"
	"errors"
	"fmt"

	"github.com/linuxfoundation/lfx-v2-bundle-enricher/internal/domain/entities"
	"github.com/linuxfoundation/lfx-v2-bundle-enricher/pkg/constants"
)

// Sentinels matched by the typed errors below through errors.Is
var (
	ErrEnrichment = errors.New(constants.ErrEnrichmentFailed)
	ErrTransport  = errors.New(constants.ErrCatalogTransport)
)

// CatalogFetcher fetches service catalog data for an organization
type CatalogFetcher interface {
	// Fetch returns the catalog enrichment for orgID
	Fetch(ctx context.Context, orgID int64) (*entities.CatalogEnrichment, error)

	// HealthCheck checks that the catalog service is reachable
	HealthCheck(ctx context.Context) error
}

// EnrichmentError is returned once all retryable catalog attempts are exhausted
type EnrichmentError struct {
	OrgID      int64
	Attempts   int
	StatusCode int // last HTTP status, 0 when the last attempt timed out
	Err        error
}

func (e *EnrichmentError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s for org %d after %d attempts (status %d): %v",
			constants.ErrEnrichmentFailed, e.OrgID, e.Attempts, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s for org %d after %d attempts: %v",
		constants.ErrEnrichmentFailed, e.OrgID, e.Attempts, e.Err)
}

func (e *EnrichmentError) Unwrap() error { return e.Err }

// Is matches ErrEnrichment
func (e *EnrichmentError) Is(target error) bool { return target == ErrEnrichment }

// TransportError is returned for failures that are never retried: unreachable
// server, non-timeout network errors and malformed responses
type TransportError struct {
	OrgID int64
	Err   error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s for org %d: %v", constants.ErrCatalogTransport, e.OrgID, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Is matches ErrTransport
func (e *TransportError) Is(target error) bool { return target == ErrTransport }
