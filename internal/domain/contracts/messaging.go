// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package contracts

import (
	"context"
)

// MessageHandler defines the interface for handling messages
type MessageHandler interface {
	Handle(ctx context.Context, data []byte, subject string) error
}

// MessagingRepository defines the interface for NATS message operations
type MessagingRepository interface {
	// QueueSubscribe subscribes to NATS messages with queue group for load balancing
	QueueSubscribe(ctx context.Context, subject string, queue string, handler MessageHandler) error

	// Publish publishes a message to NATS
	Publish(ctx context.Context, subject string, data []byte) error

	// HealthCheck checks the health of the NATS connection
	HealthCheck(ctx context.Context) error

	// DrainWithTimeout performs graceful NATS connection drain with timeout
	DrainWithTimeout() error

	// Close closes the NATS connection
	Close() error
}
