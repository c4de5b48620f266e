// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package handlers

import (
	"context"
	"log/slog"

	"github.com/linuxfoundation/lfx-v2-bundle-enricher/internal/application"
	"github.com/linuxfoundation/lfx-v2-bundle-enricher/pkg/logging"
)

// BundleMessageHandler handles pending bundle messages from NATS
type BundleMessageHandler struct {
	messageProcessor *application.MessageProcessor
	logger           *slog.Logger
}

// NewBundleMessageHandler creates a new bundle message handler
func NewBundleMessageHandler(messageProcessor *application.MessageProcessor, logger *slog.Logger) *BundleMessageHandler {
	return &BundleMessageHandler{
		messageProcessor: messageProcessor,
		logger:           logging.WithComponent(logger, "bundle_message_handler"),
	}
}

// Handle delegates one NATS message to the processor. Failed bundles are
// dropped after being logged; there is no reply subject on this pipeline.
func (h *BundleMessageHandler) Handle(ctx context.Context, data []byte, subject string) error {
	if err := h.messageProcessor.ProcessBundleMessage(ctx, data, subject); err != nil {
		logging.FromContext(ctx, h.logger).Warn("Dropping bundle message",
			"subject", subject,
			"error", err.Error(),
			"request_id", logging.GetRequestID(ctx))
		return err
	}
	return nil
}
