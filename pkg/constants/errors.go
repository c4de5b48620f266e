// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package constants provides shared constants used throughout the bundle enricher service.
package constants

// Error messages (centralized from scattered string literals)
const (
	ErrEnrichmentFailed = "service catalog enrichment failed"
	ErrCatalogTransport = "service catalog transport error"
	ErrBuildRequest     = "failed to build catalog request"
	ErrReadResponse     = "failed to read catalog response"
	ErrDecodeResponse   = "failed to decode catalog response"
	ErrMissingService   = "service definition without dd-service"
	ErrCatalogStatus    = "catalog returned error status"
	ErrNilBundle        = "bundle cannot be nil"

	// Message processing errors
	ErrDecodeBundle  = "failed to decode bundle"
	ErrEncodeBundle  = "failed to encode bundle"
	ErrEnrichBundle  = "failed to enrich bundle"
	ErrPublishBundle = "failed to publish bundle"
	ErrSubscribe     = "failed to subscribe"

	// Log messages
	LogFailedEnrichBundle  = "Failed to enrich bundle"
	LogFailedDecodeBundle  = "Failed to decode bundle message"
	LogFailedPublishBundle = "Failed to publish enriched bundle"
	LogCatalogRetry        = "Retrying service catalog request"
)

// Error contexts (for structured error logging)
const (
	ContextValidation = "validation"
	ContextProcessing = "processing"
	ContextMessaging  = "messaging"
	ContextCatalog    = "catalog"
)
