// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package catalog provides the HTTP client for the service catalog definitions API.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/linuxfoundation/lfx-v2-bundle-enricher/internal/domain/contracts"
	"github.com/linuxfoundation/lfx-v2-bundle-enricher/internal/domain/entities"
	"github.com/linuxfoundation/lfx-v2-bundle-enricher/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-bundle-enricher/pkg/logging"
)

// Client fetches service definitions for an organization. Timeouts and error
// statuses are retried with a fixed delay; every other failure is returned at once.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	maxAttempts int
	retryDelay  time.Duration
	logger      *slog.Logger

	sleep func(ctx context.Context, d time.Duration) error
}

// Option configures a Client
type Option func(*Client)

// WithBaseURL overrides the catalog base URL
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithTimeout sets the per-attempt request timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithRetryPolicy sets the total number of attempts and the fixed delay between them
func WithRetryPolicy(maxAttempts int, delay time.Duration) Option {
	return func(c *Client) {
		if maxAttempts > 0 {
			c.maxAttempts = maxAttempts
		}
		if delay >= 0 {
			c.retryDelay = delay
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client. Its Timeout is the per-attempt timeout.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a catalog client with the default endpoint and retry policy
func NewClient(logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:     constants.DefaultCatalogURL,
		httpClient:  &http.Client{Timeout: constants.CatalogRequestTimeout},
		maxAttempts: constants.CatalogMaxAttempts,
		retryDelay:  constants.CatalogRetryDelay,
		logger:      logging.WithComponent(logger, "catalog_client"),
		sleep:       sleepContext,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// retryableError marks a failed attempt that may be repeated
type retryableError struct {
	statusCode int
	err        error
}

func (e *retryableError) Error() string { return e.err.Error() }
func (e *retryableError) Unwrap() error { return e.err }

// Fetch returns the catalog enrichment for orgID.
//
// Errors are *contracts.EnrichmentError when every attempt timed out or got an
// error status, and *contracts.TransportError otherwise.
func (c *Client) Fetch(ctx context.Context, orgID int64) (*entities.CatalogEnrichment, error) {
	logger := logging.FromContext(ctx, c.logger).With("org_id", orgID)
	endpoint := c.definitionsURL(orgID)

	var last *retryableError
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if attempt > 1 {
			logger.Warn(constants.LogCatalogRetry,
				"attempt", attempt,
				"max_attempts", c.maxAttempts,
				"delay", c.retryDelay,
				"error", last.Error())
			if err := c.sleep(ctx, c.retryDelay); err != nil {
				return nil, &contracts.TransportError{OrgID: orgID, Err: err}
			}
		}

		enrichment, err := c.fetchOnce(ctx, endpoint)
		if err == nil {
			logger.Debug("Service catalog fetched",
				"attempt", attempt,
				"services", len(enrichment.ServiceOwners))
			return enrichment, nil
		}

		if !errors.As(err, &last) {
			logging.LogError(logger, "Service catalog request failed", err, "attempt", attempt)
			return nil, &contracts.TransportError{OrgID: orgID, Err: err}
		}
	}

	return nil, &contracts.EnrichmentError{
		OrgID:      orgID,
		Attempts:   c.maxAttempts,
		StatusCode: last.statusCode,
		Err:        last.err,
	}
}

// fetchOnce performs a single request and classifies its failure
func (c *Client) fetchOnce(ctx context.Context, endpoint string) (*entities.CatalogEnrichment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", constants.ErrBuildRequest, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classify(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return nil, &retryableError{
			statusCode: resp.StatusCode,
			err:        fmt.Errorf("%s: %s", constants.ErrCatalogStatus, resp.Status),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classify(ctx, fmt.Errorf("%s: %w", constants.ErrReadResponse, err))
	}

	return parseDefinitions(body)
}

// HealthCheck issues a single HEAD request; any status below 500 counts as reachable
func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL+constants.CatalogDefinitionsPath, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", constants.ErrBuildRequest, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("service catalog unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("service catalog unhealthy: %s", resp.Status)
	}
	return nil
}

func (c *Client) definitionsURL(orgID int64) string {
	query := url.Values{}
	query.Set(constants.CatalogOrgIDParam, strconv.FormatInt(orgID, 10))
	query.Set(constants.CatalogPageSizeParam, constants.CatalogPageSizeAll)
	return c.baseURL + constants.CatalogDefinitionsPath + "?" + query.Encode()
}

// classify marks transport timeouts as retryable. Cancellation of the caller's
// context is never retried.
func classify(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &retryableError{err: err}
	}
	return err
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
