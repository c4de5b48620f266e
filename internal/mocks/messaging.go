// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mocks

import (
	"context"
	"sync"

	"github.com/linuxfoundation/lfx-v2-bundle-enricher/internal/domain/contracts"
)

// MockMessagingRepository implements contracts.MessagingRepository for testing
type MockMessagingRepository struct {
	mu sync.RWMutex

	// Mock data
	PublishedMessages map[string][][]byte // subject -> payloads
	Subscriptions     map[string]contracts.MessageHandler

	// Mock behavior
	SubscribeError error
	PublishError   error
	HealthError    error
	DrainError     error
	CloseError     error

	// Call tracking
	SubscribeCalls []SubscribeCall
	PublishCalls   []PublishCall
	HealthCalls    int
	DrainCalls     int
	CloseCalls     int
}

// SubscribeCall records a queue subscription
type SubscribeCall struct {
	Subject string
	Queue   string
}

// PublishCall records a published message
type PublishCall struct {
	Subject string
	Data    []byte
}

// NewMockMessagingRepository creates a new mock messaging repository
func NewMockMessagingRepository() *MockMessagingRepository {
	return &MockMessagingRepository{
		PublishedMessages: make(map[string][][]byte),
		Subscriptions:     make(map[string]contracts.MessageHandler),
		SubscribeCalls:    make([]SubscribeCall, 0),
		PublishCalls:      make([]PublishCall, 0),
	}
}

// QueueSubscribe mocks a queue subscription
func (m *MockMessagingRepository) QueueSubscribe(ctx context.Context, subject string, queue string, handler contracts.MessageHandler) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SubscribeError != nil {
		return m.SubscribeError
	}

	m.SubscribeCalls = append(m.SubscribeCalls, SubscribeCall{Subject: subject, Queue: queue})
	m.Subscriptions[subject] = handler
	return nil
}

// Publish mocks publishing a message
func (m *MockMessagingRepository) Publish(ctx context.Context, subject string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.PublishError != nil {
		return m.PublishError
	}

	m.PublishCalls = append(m.PublishCalls, PublishCall{Subject: subject, Data: data})
	m.PublishedMessages[subject] = append(m.PublishedMessages[subject], data)
	return nil
}

// HealthCheck mocks the health check
func (m *MockMessagingRepository) HealthCheck(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.HealthCalls++
	return m.HealthError
}

// DrainWithTimeout mocks draining the connection
func (m *MockMessagingRepository) DrainWithTimeout() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.DrainCalls++
	return m.DrainError
}

// Close mocks closing the connection
func (m *MockMessagingRepository) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CloseCalls++
	return m.CloseError
}

// SimulateMessage delivers data to the handler subscribed on subject
func (m *MockMessagingRepository) SimulateMessage(ctx context.Context, subject string, data []byte) error {
	m.mu.RLock()
	handler, exists := m.Subscriptions[subject]
	m.mu.RUnlock()

	if !exists {
		return nil
	}
	return handler.Handle(ctx, data, subject)
}

// Published returns the payloads published on subject
func (m *MockMessagingRepository) Published(subject string) [][]byte {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([][]byte(nil), m.PublishedMessages[subject]...)
}
