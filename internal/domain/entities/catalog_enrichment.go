// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package entities

import (
	"slices"
)

// CatalogEnrichment holds the ownership and tagging facts the service catalog
// reports for one organization. ServiceOwners and ServiceCustomTags always
// share the same key set. Values are not modified after construction.
type CatalogEnrichment struct {
	// ServiceOwners lists owning teams per service, one entry per definition naming a team
	ServiceOwners map[string][]string `json:"service_owners"`

	// ServiceCustomTags is the sorted, deduplicated tag set per service
	ServiceCustomTags map[string][]string `json:"service_custom_tags"`
}

// IsEmpty reports whether the enrichment describes no services
func (e *CatalogEnrichment) IsEmpty() bool {
	return e == nil || (len(e.ServiceOwners) == 0 && len(e.ServiceCustomTags) == 0)
}

// Services returns the sorted service names covered by the enrichment
func (e *CatalogEnrichment) Services() []string {
	if e == nil {
		return nil
	}
	names := make([]string, 0, len(e.ServiceOwners))
	for name := range e.ServiceOwners {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// CatalogEnrichmentBuilder accumulates service definitions into a CatalogEnrichment
type CatalogEnrichmentBuilder struct {
	owners map[string][]string
	tags   map[string]map[string]struct{}
}

// NewCatalogEnrichmentBuilder creates an empty builder
func NewCatalogEnrichmentBuilder() *CatalogEnrichmentBuilder {
	return &CatalogEnrichmentBuilder{
		owners: make(map[string][]string),
		tags:   make(map[string]map[string]struct{}),
	}
}

// AddDefinition records one service definition. An empty team adds no owner.
func (b *CatalogEnrichmentBuilder) AddDefinition(service, team string, tags []string) {
	if _, ok := b.owners[service]; !ok {
		b.owners[service] = []string{}
		b.tags[service] = make(map[string]struct{})
	}
	if team != "" {
		b.owners[service] = append(b.owners[service], team)
	}
	for _, tag := range tags {
		b.tags[service][tag] = struct{}{}
	}
}

// Build returns the accumulated enrichment
func (b *CatalogEnrichmentBuilder) Build() *CatalogEnrichment {
	tags := make(map[string][]string, len(b.tags))
	for service, set := range b.tags {
		list := make([]string, 0, len(set))
		for tag := range set {
			list = append(list, tag)
		}
		slices.Sort(list)
		tags[service] = list
	}

	owners := make(map[string][]string, len(b.owners))
	for service, teams := range b.owners {
		owners[service] = slices.Clone(teams)
	}

	return &CatalogEnrichment{
		ServiceOwners:     owners,
		ServiceCustomTags: tags,
	}
}
