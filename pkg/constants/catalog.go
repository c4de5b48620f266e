// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

import "time"

// Service catalog endpoint
const (
	DefaultCatalogURL      = "http://service-catalog.service-catalog.all-clusters.local-dc.fabric.dog:8080"
	CatalogDefinitionsPath = "/api/v2/services/definitions"

	// Query parameters understood by the definitions endpoint
	CatalogOrgIDParam    = "orgId"
	CatalogPageSizeParam = "page[size]"
	CatalogPageSizeAll   = "0" // 0 disables pagination on the catalog side

	// Definition type carrying service ownership
	DefinitionTypeService = "service-definition"
)

// Catalog request policy
const (
	CatalogRequestTimeout = 15 * time.Second
	CatalogMaxAttempts    = 5
	CatalogRetryDelay     = 5 * time.Second
)

// Enricher names
const (
	EnricherServiceCatalog = "service_catalog"
)
