// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package entities

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBundle(t *testing.T) {
	bundle := NewBundle(42, "incident", true, false)

	assert.Equal(t, int64(42), bundle.OrgID)
	assert.Equal(t, "incident", bundle.Type)
	assert.True(t, bundle.EventWorthy)
	assert.False(t, bundle.FrontendWorthy)
	assert.Nil(t, bundle.Enrichment().ServiceCatalog)
}

func TestBundle_SetServiceCatalog(t *testing.T) {
	bundle := NewBundle(1, "", true, true)
	enrichment := &CatalogEnrichment{
		ServiceOwners:     map[string][]string{"web": {"team-a"}},
		ServiceCustomTags: map[string][]string{"web": {"env:prod"}},
	}

	bundle.SetServiceCatalog(enrichment)

	assert.Same(t, enrichment, bundle.Enrichment().ServiceCatalog)
}

func TestBundle_JSONRoundTripKeepsEnrichment(t *testing.T) {
	bundle := NewBundle(7, "incident", true, false)
	bundle.Payload = json.RawMessage(`{"title":"disk full"}`)
	bundle.SetServiceCatalog(&CatalogEnrichment{
		ServiceOwners:     map[string][]string{"api": {"core"}},
		ServiceCustomTags: map[string][]string{"api": {"tier:1"}},
	})

	data, err := json.Marshal(bundle)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"org_id":7`)
	assert.Contains(t, string(data), `"service_owners":{"api":["core"]}`)
	assert.Contains(t, string(data), `"payload":{"title":"disk full"}`)

	var decoded Bundle
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, int64(7), decoded.OrgID)
	assert.JSONEq(t, `{"title":"disk full"}`, string(decoded.Payload))
	require.NotNil(t, decoded.Enrichment().ServiceCatalog)
	assert.Equal(t, []string{"core"}, decoded.Enrichment().ServiceCatalog.ServiceOwners["api"])
}

func TestBundle_UnmarshalWithoutEnrichment(t *testing.T) {
	var bundle Bundle
	require.NoError(t, json.Unmarshal([]byte(`{"org_id":3,"event_worthy":false,"frontend_worthy":true}`), &bundle))

	assert.Equal(t, int64(3), bundle.OrgID)
	assert.False(t, bundle.EventWorthy)
	assert.True(t, bundle.FrontendWorthy)
	assert.Nil(t, bundle.Enrichment().ServiceCatalog)
}
