// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package application orchestrates the bundle enrichment workflow.
package application

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/linuxfoundation/lfx-v2-bundle-enricher/internal/domain/contracts"
	"github.com/linuxfoundation/lfx-v2-bundle-enricher/internal/domain/entities"
	"github.com/linuxfoundation/lfx-v2-bundle-enricher/internal/enrichers"
	"github.com/linuxfoundation/lfx-v2-bundle-enricher/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-bundle-enricher/pkg/logging"
)

// SubjectConfig names the subjects and queue group the processor works with
type SubjectConfig struct {
	InputSubject  string
	OutputSubject string
	Queue         string
}

// DefaultSubjectConfig returns the default bundle pipeline subjects
func DefaultSubjectConfig() SubjectConfig {
	return SubjectConfig{
		InputSubject:  constants.BundlePendingSubject,
		OutputSubject: constants.BundleEnrichedSubject,
		Queue:         constants.DefaultQueue,
	}
}

// MessageProcessor receives pending bundles, enriches them and forwards them downstream
type MessageProcessor struct {
	enricher      enrichers.Enricher
	messagingRepo contracts.MessagingRepository
	logger        *slog.Logger

	subjects          SubjectConfig
	processingTimeout time.Duration
}

// NewMessageProcessor creates a new message processor
func NewMessageProcessor(
	enricher enrichers.Enricher,
	messagingRepo contracts.MessagingRepository,
	subjects SubjectConfig,
	logger *slog.Logger,
) *MessageProcessor {
	return &MessageProcessor{
		enricher:          enricher,
		messagingRepo:     messagingRepo,
		logger:            logging.WithComponent(logger, "message_processor"),
		subjects:          subjects,
		processingTimeout: constants.ProcessingTimeout,
	}
}

// ProcessBundleMessage decodes, enriches and republishes one bundle. A failed
// enrichment aborts the step and nothing is published.
func (mp *MessageProcessor) ProcessBundleMessage(ctx context.Context, data []byte, subject string) error {
	logger := logging.FromContext(ctx, mp.logger)
	messageID := mp.generateMessageID()
	startTime := time.Now()

	logger.Info("Processing bundle message",
		"message_id", messageID,
		"subject", subject,
		"message_size_bytes", len(data))

	var bundle entities.Bundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		logging.LogError(logger, constants.LogFailedDecodeBundle, err,
			"message_id", messageID,
			"subject", subject)
		return fmt.Errorf("%s: %w", constants.ErrDecodeBundle, err)
	}

	logger = logging.WithBundle(logger, bundle.OrgID, bundle.Type)

	enrichCtx, cancel := context.WithTimeout(ctx, mp.processingTimeout)
	defer cancel()

	enrichStart := time.Now()
	if err := mp.enricher.EnrichBundle(enrichCtx, &bundle); err != nil {
		logging.LogError(logger, constants.LogFailedEnrichBundle, err,
			"message_id", messageID,
			"enricher", mp.enricher.Name(),
			"enrich_duration", time.Since(enrichStart))
		return fmt.Errorf("%s: %w", constants.ErrEnrichBundle, err)
	}

	out, err := json.Marshal(&bundle)
	if err != nil {
		return fmt.Errorf("%s: %w", constants.ErrEncodeBundle, err)
	}

	if err := mp.messagingRepo.Publish(ctx, mp.subjects.OutputSubject, out); err != nil {
		logging.LogError(logger, constants.LogFailedPublishBundle, err,
			"message_id", messageID,
			"output_subject", mp.subjects.OutputSubject)
		return fmt.Errorf("%s: %w", constants.ErrPublishBundle, err)
	}

	logger.Info("Bundle forwarded",
		"message_id", messageID,
		"output_subject", mp.subjects.OutputSubject,
		"enriched", bundle.Enrichment().ServiceCatalog != nil,
		"enrich_duration", time.Since(enrichStart),
		"total_duration", time.Since(startTime))

	return nil
}

// StartSubscriptions subscribes handler to the input subject within the queue group
func (mp *MessageProcessor) StartSubscriptions(ctx context.Context, handler contracts.MessageHandler) error {
	logger := logging.FromContext(ctx, mp.logger)

	logger.Info("Starting NATS subscription for bundle enrichment",
		"input_subject", mp.subjects.InputSubject,
		"output_subject", mp.subjects.OutputSubject,
		"queue", mp.subjects.Queue)

	if err := mp.messagingRepo.QueueSubscribe(ctx, mp.subjects.InputSubject, mp.subjects.Queue, handler); err != nil {
		logging.LogError(logger, "Failed to subscribe to pending bundles", err,
			"input_subject", mp.subjects.InputSubject,
			"queue", mp.subjects.Queue)
		return fmt.Errorf("%s to pending bundles: %w", constants.ErrSubscribe, err)
	}

	return nil
}

// Subjects returns the subject configuration
func (mp *MessageProcessor) Subjects() SubjectConfig {
	return mp.subjects
}

// generateMessageID returns a timestamped id for log correlation
func (mp *MessageProcessor) generateMessageID() string {
	timestamp := strconv.FormatInt(time.Now().UnixNano(), 10)

	randBytes := make([]byte, 4)
	if _, err := rand.Read(randBytes); err != nil {
		return fmt.Sprintf("msg_%s", timestamp)
	}

	return fmt.Sprintf("msg_%s_%s", timestamp, hex.EncodeToString(randBytes))
}
