// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linuxfoundation/lfx-v2-bundle-enricher/internal/application"
	"github.com/linuxfoundation/lfx-v2-bundle-enricher/internal/enrichers"
	"github.com/linuxfoundation/lfx-v2-bundle-enricher/internal/mocks"
	"github.com/linuxfoundation/lfx-v2-bundle-enricher/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-bundle-enricher/pkg/logging"
)

func TestBundleMessageHandler_Handle(t *testing.T) {
	logger, buf := logging.TestLogger(t)
	fetcher := mocks.NewMockCatalogFetcher()
	messaging := mocks.NewMockMessagingRepository()

	processor := application.NewMessageProcessor(
		enrichers.NewServiceCatalogEnricher(fetcher, logger),
		messaging,
		application.DefaultSubjectConfig(),
		logger,
	)
	handler := NewBundleMessageHandler(processor, logger)

	require.NoError(t, processor.StartSubscriptions(context.Background(), handler))

	t.Run("valid bundle is forwarded", func(t *testing.T) {
		err := messaging.SimulateMessage(context.Background(), constants.BundlePendingSubject,
			[]byte(`{"org_id":7,"type":"alert","event_worthy":true}`))

		require.NoError(t, err)
		assert.Len(t, messaging.Published(constants.BundleEnrichedSubject), 1)
		assert.Equal(t, []int64{7}, fetcher.GetFetchCalls())
	})

	t.Run("invalid bundle is dropped", func(t *testing.T) {
		err := handler.Handle(context.Background(), []byte(`not json`), constants.BundlePendingSubject)

		assert.Error(t, err)
		assert.Len(t, messaging.Published(constants.BundleEnrichedSubject), 1)
		logging.AssertLogContains(t, buf, "Dropping bundle message")
	})
}
