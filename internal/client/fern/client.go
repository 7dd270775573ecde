// Package fern is the gateway to the Fern settlement provider. Every
// provider call in the repository goes through this client: it attaches
// bearer auth, forwards idempotency keys, and normalizes non-2xx
// responses into ProviderError.
package fern

import (
	"context"
	"fmt"
	"net/http"

	"github.com/planpay/planpay-api/internal/cache"
	httpclient "github.com/planpay/planpay-api/internal/client/http"
	"github.com/planpay/planpay-api/internal/config"
	"github.com/planpay/planpay-api/internal/logger"
	"go.uber.org/zap"
)

const idempotencyKeyHeader = "x-idempotency-key"

// Client talks to the Fern API. It is safe for concurrent use, though
// the multi-step ensure sequences it builds on the cache are not atomic.
type Client struct {
	httpClient *httpclient.HTTPClient
	orgID      string
	store      *cache.Store
	testing    config.TestingConfig
	logger     *zap.Logger
}

// Option configures optional client behavior.
type Option func(*Client)

// WithTestingConfig enables the non-production bypass shortcuts.
func WithTestingConfig(testing config.TestingConfig) Option {
	return func(c *Client) {
		c.testing = testing
	}
}

// NewClient creates a Fern client. The API key and base URL are required;
// orgID is optional and attached to account-creation payloads when set.
func NewClient(apiKey, baseURL, orgID string, store *cache.Store, collector httpclient.MetricsCollector, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("fern API key is required")
	}
	if baseURL == "" {
		return nil, fmt.Errorf("fern API base URL is required")
	}
	if store == nil {
		return nil, fmt.Errorf("cache store is required")
	}

	clientOpts := []httpclient.ClientOption{
		httpclient.WithBaseURL(baseURL),
		httpclient.WithDefaultHeader("Authorization", "Bearer "+apiKey),
	}
	if collector != nil {
		clientOpts = append(clientOpts, httpclient.WithMetricsCollector(collector))
	}

	c := &Client{
		// No retry config: every provider call is attempted exactly once
		// per invocation.
		httpClient: httpclient.NewHTTPClient(clientOpts...),
		orgID:      orgID,
		store:      store,
		logger:     logger.Log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// request performs one provider call and decodes the JSON response into
// target. An idempotencyKey, when supplied, is sent as a dedicated header
// so repeated calls with the same key do not create duplicate provider
// resources.
func (c *Client) request(ctx context.Context, method, path string, body interface{}, idempotencyKey string, target interface{}, options ...httpclient.RequestOption) error {
	if idempotencyKey != "" {
		options = append(options, httpclient.WithHeader(idempotencyKeyHeader, idempotencyKey))
	}

	resp, err := c.httpClient.DoRequest(ctx, method, path, body, options...)
	if err != nil {
		return asProviderError(err)
	}

	if target == nil {
		resp.Body.Close()
		return nil
	}
	if err := c.httpClient.ProcessJSONResponse(resp, target); err != nil {
		return asProviderError(err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, target interface{}, options ...httpclient.RequestOption) error {
	return c.request(ctx, http.MethodGet, path, nil, "", target, options...)
}

func (c *Client) post(ctx context.Context, path string, body, target interface{}) error {
	return c.request(ctx, http.MethodPost, path, body, "", target)
}
