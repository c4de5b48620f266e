// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

// NATS subjects for the bundle pipeline
const (
	BundlePendingSubject  = "bundles.pending"  // Bundles waiting for enrichment
	BundleEnrichedSubject = "bundles.enriched" // Enriched bundles forwarded downstream
	DefaultQueue          = "bundle.enricher.queue"
)
