// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package contracts

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnrichmentError(t *testing.T) {
	cause := errors.New("HTTP 503")
	err := fmt.Errorf("wrapped: %w", &EnrichmentError{OrgID: 9, Attempts: 5, StatusCode: 503, Err: cause})

	assert.ErrorIs(t, err, ErrEnrichment)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrTransport)
	assert.Contains(t, err.Error(), "org 9 after 5 attempts (status 503)")

	var enrichmentErr *EnrichmentError
	assert.ErrorAs(t, err, &enrichmentErr)
	assert.Equal(t, 5, enrichmentErr.Attempts)
}

func TestEnrichmentError_Timeout(t *testing.T) {
	err := &EnrichmentError{OrgID: 1, Attempts: 5, Err: context.DeadlineExceeded}

	assert.NotContains(t, err.Error(), "status")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestTransportError(t *testing.T) {
	err := &TransportError{OrgID: 4, Err: context.Canceled}

	assert.ErrorIs(t, err, ErrTransport)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrEnrichment)
	assert.Contains(t, err.Error(), "org 4")
}
