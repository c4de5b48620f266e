// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package nats implements the bundle transport on top of a NATS connection.
package nats

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/linuxfoundation/lfx-v2-bundle-enricher/internal/domain/contracts"
	"github.com/linuxfoundation/lfx-v2-bundle-enricher/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-bundle-enricher/pkg/logging"
)

// MessageRepository implements contracts.MessagingRepository
type MessageRepository struct {
	conn           *nats.Conn
	logger         *slog.Logger
	subscriptions  []*nats.Subscription
	mu             sync.RWMutex
	drainTimeout   time.Duration
	isShuttingDown bool
}

// NewMessageRepository creates a new NATS message repository. conn may be nil,
// in which case every operation reports the connection as unavailable.
func NewMessageRepository(conn *nats.Conn, logger *slog.Logger, drainTimeout time.Duration) *MessageRepository {
	return &MessageRepository{
		conn:          conn,
		logger:        logging.WithComponent(logger, "nats_repo"),
		subscriptions: make([]*nats.Subscription, 0),
		drainTimeout:  drainTimeout,
	}
}

// QueueSubscribe subscribes to subject within a queue group. Every delivered
// message gets its own request_id and handler errors are logged.
func (r *MessageRepository) QueueSubscribe(ctx context.Context, subject string, queue string, handler contracts.MessageHandler) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.conn == nil {
		return fmt.Errorf("%s to subject %s: NATS connection not available", constants.ErrSubscribe, subject)
	}

	natsHandler := func(msg *nats.Msg) {
		msgCtx, logger := logging.WithRequestID(context.Background(), r.logger)

		logger.Info("NATS queue message received",
			"subject", msg.Subject,
			"queue", queue,
			"size", len(msg.Data))

		if err := handler.Handle(msgCtx, msg.Data, msg.Subject); err != nil {
			logging.LogError(logger, "Queue message handler failed", err,
				"subject", msg.Subject,
				"queue", queue)
		}
	}

	sub, err := r.conn.QueueSubscribe(subject, queue, natsHandler)
	if err != nil {
		r.logger.Error("Failed to queue subscribe to NATS",
			"subject", subject,
			"queue", queue,
			"error", err.Error())
		return fmt.Errorf("%s to subject %s with queue %s: %w", constants.ErrSubscribe, subject, queue, err)
	}

	r.subscriptions = append(r.subscriptions, sub)

	r.logger.Info("NATS queue subscription created", "subject", subject, "queue", queue)
	return nil
}

// Publish publishes a message to NATS
func (r *MessageRepository) Publish(ctx context.Context, subject string, data []byte) error {
	logger := logging.FromContext(ctx, r.logger)

	if !r.IsConnected() {
		logger.Error("Cannot publish: NATS connection not available", "subject", subject)
		return fmt.Errorf("NATS connection not available for publishing to subject %s", subject)
	}

	if err := r.conn.Publish(subject, data); err != nil {
		logging.LogError(logger, "Failed to publish message to NATS", err, "subject", subject)
		return fmt.Errorf("failed to publish message to subject %s: %w", subject, err)
	}

	logger.Debug("Message published to NATS", "subject", subject, "size", len(data))
	return nil
}

// DrainWithTimeout drains the connection, letting in-flight handlers finish,
// and waits up to the drain timeout for it to close
func (r *MessageRepository) DrainWithTimeout() error {
	r.mu.Lock()
	r.isShuttingDown = true
	subscriptionCount := len(r.subscriptions)
	r.mu.Unlock()

	r.logger.Info("Starting NATS graceful drain sequence",
		"timeout", r.drainTimeout,
		"subscriptions", subscriptionCount)

	if r.conn == nil {
		r.logger.Warn("NATS connection is nil, skipping drain")
		return nil
	}
	if r.conn.IsClosed() {
		r.logger.Info("NATS connection already closed")
		return nil
	}
	if r.conn.IsDraining() {
		r.logger.Info("NATS connection already draining")
		return nil
	}

	drainStart := time.Now()
	if err := r.conn.Drain(); err != nil {
		r.logger.Error("Failed to start NATS drain", "error", err.Error())
		return fmt.Errorf("failed to drain NATS connection: %w", err)
	}

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	deadline := time.NewTimer(r.drainTimeout)
	defer deadline.Stop()

	for !r.conn.IsClosed() {
		select {
		case <-deadline.C:
			r.logger.Warn("NATS drain timeout reached", "timeout", r.drainTimeout)
			return nil
		case <-ticker.C:
		}
	}

	r.logger.Info("NATS drain completed", "duration", time.Since(drainStart))
	return nil
}

// Close unsubscribes everything and closes the connection, draining first
// when DrainWithTimeout has not been called yet
func (r *MessageRepository) Close() error {
	r.mu.RLock()
	shuttingDown := r.isShuttingDown
	r.mu.RUnlock()

	if !shuttingDown {
		r.logger.Info("Close called without drain, attempting graceful drain first")
		if err := r.DrainWithTimeout(); err != nil {
			r.logger.Warn("Graceful drain failed, proceeding with immediate close", "error", err.Error())
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for _, sub := range r.subscriptions {
		if sub == nil || !sub.IsValid() {
			continue
		}
		if err := sub.Unsubscribe(); err != nil {
			logging.LogError(r.logger, "Failed to unsubscribe", err, "subject", sub.Subject)
			errs = append(errs, err)
		}
	}
	r.subscriptions = nil

	if r.conn != nil && !r.conn.IsClosed() {
		r.conn.Close()
		r.logger.Info("NATS connection closed")
	}

	return errors.Join(errs...)
}

// HealthCheck checks the health of the NATS connection
func (r *MessageRepository) HealthCheck(ctx context.Context) error {
	if r.conn == nil {
		return fmt.Errorf("NATS connection is nil")
	}
	if status := r.conn.Status(); status != nats.CONNECTED {
		return fmt.Errorf("NATS connection status is not connected: %s", status)
	}
	return nil
}

// IsConnected checks if the NATS connection is active
func (r *MessageRepository) IsConnected() bool {
	return r.conn != nil && r.conn.IsConnected()
}

// GetSubscriptionCount returns the number of active subscriptions
func (r *MessageRepository) GetSubscriptionCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subscriptions)
}
