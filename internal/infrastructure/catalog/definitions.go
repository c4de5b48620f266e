// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/linuxfoundation/lfx-v2-bundle-enricher/internal/domain/entities"
	"github.com/linuxfoundation/lfx-v2-bundle-enricher/pkg/constants"
)

// definitionsResponse is the body of GET /api/v2/services/definitions
type definitionsResponse struct {
	Data []definition `json:"data"`
}

type definition struct {
	Type       string `json:"type"`
	Attributes struct {
		Schema definitionSchema `json:"schema"`
	} `json:"attributes"`
}

type definitionSchema struct {
	Service string `json:"dd-service"`
	// Team is nil when the schema has no team field
	Team *string  `json:"team"`
	Tags []string `json:"tags"`
}

// parseDefinitions decodes a definitions response into a CatalogEnrichment.
// Entries of other types are ignored.
func parseDefinitions(body []byte) (*entities.CatalogEnrichment, error) {
	var resp definitionsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%s: %w", constants.ErrDecodeResponse, err)
	}

	builder := entities.NewCatalogEnrichmentBuilder()
	for i, def := range resp.Data {
		if def.Type != constants.DefinitionTypeService {
			continue
		}
		schema := def.Attributes.Schema
		if schema.Service == "" {
			return nil, fmt.Errorf("%s: %s at index %d", constants.ErrDecodeResponse, constants.ErrMissingService, i)
		}

		team := ""
		if schema.Team != nil {
			team = *schema.Team
		}
		builder.AddDefinition(schema.Service, team, schema.Tags)
	}

	return builder.Build(), nil
}
