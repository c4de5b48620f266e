// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package entities contains the domain objects flowing through the bundle enricher.
package entities

import (
	"encoding/json"
)

// Bundle is one unit of work belonging to an organization. It is created
// upstream, enriched in place and forwarded downstream.
type Bundle struct {
	OrgID          int64
	Type           string
	EventWorthy    bool
	FrontendWorthy bool

	// Payload is forwarded untouched
	Payload json.RawMessage

	enrichment BundleEnrichment
}

// BundleEnrichment is the attachment point for enrichment results.
// A nil field means the corresponding enrichment has not been applied.
type BundleEnrichment struct {
	ServiceCatalog *CatalogEnrichment `json:"service_catalog,omitempty"`
}

// NewBundle creates an unenriched bundle
func NewBundle(orgID int64, bundleType string, eventWorthy, frontendWorthy bool) *Bundle {
	return &Bundle{
		OrgID:          orgID,
		Type:           bundleType,
		EventWorthy:    eventWorthy,
		FrontendWorthy: frontendWorthy,
	}
}

// Enrichment returns a copy of the bundle's enrichment attachment point
func (b *Bundle) Enrichment() BundleEnrichment {
	return b.enrichment
}

// SetServiceCatalog attaches a service catalog enrichment to the bundle
func (b *Bundle) SetServiceCatalog(enrichment *CatalogEnrichment) {
	b.enrichment.ServiceCatalog = enrichment
}

type bundleJSON struct {
	OrgID          int64            `json:"org_id"`
	Type           string           `json:"type,omitempty"`
	EventWorthy    bool             `json:"event_worthy"`
	FrontendWorthy bool             `json:"frontend_worthy"`
	Payload        json.RawMessage  `json:"payload,omitempty"`
	Enrichment     BundleEnrichment `json:"enrichment"`
}

// MarshalJSON encodes the bundle including its enrichment
func (b *Bundle) MarshalJSON() ([]byte, error) {
	return json.Marshal(bundleJSON{
		OrgID:          b.OrgID,
		Type:           b.Type,
		EventWorthy:    b.EventWorthy,
		FrontendWorthy: b.FrontendWorthy,
		Payload:        b.Payload,
		Enrichment:     b.enrichment,
	})
}

// UnmarshalJSON decodes a bundle, restoring any enrichment already applied upstream
func (b *Bundle) UnmarshalJSON(data []byte) error {
	var raw bundleJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*b = Bundle{
		OrgID:          raw.OrgID,
		Type:           raw.Type,
		EventWorthy:    raw.EventWorthy,
		FrontendWorthy: raw.FrontendWorthy,
		Payload:        raw.Payload,
		enrichment:     raw.Enrichment,
	}
	return nil
}
