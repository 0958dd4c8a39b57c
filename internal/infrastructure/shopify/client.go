package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jahiker-rca/tbc-translations-app/internal/domain/translation"
)

// maxResponseSize is the maximum allowed response size from the Admin API (10MB)
const maxResponseSize = 10 * 1024 * 1024

// Client issues requests against the Shopify Admin API. It implements the
// translation.QueryClient and translation.TranslationReader ports.
type Client struct {
	config     *Config
	httpClient *http.Client
}

// NewClient creates a new Shopify Admin API client with the given configuration
func NewClient(config *Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
	}, nil
}

// Query runs a raw GraphQL query and returns the upstream response body
// verbatim. Single attempt, no retries. A request-level error in the response
// body is reported as translation.ErrUpstreamRequestFailed.
func (c *Client) Query(ctx context.Context, query string) (json.RawMessage, error) {
	body, err := c.doGraphQL(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	var resp graphQLResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", translation.ErrUpstreamInvalidResponse, err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("%w: %s", translation.ErrUpstreamRequestFailed, resp.ErrorMessage())
	}

	return body, nil
}

// query runs a GraphQL operation with variables and returns the parsed data
// document.
func (c *Client) query(ctx context.Context, query string, variables map[string]any) (json.RawMessage, error) {
	body, err := c.doGraphQL(ctx, query, variables)
	if err != nil {
		return nil, err
	}

	var resp graphQLResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", translation.ErrUpstreamInvalidResponse, err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("%w: %s", translation.ErrUpstreamRequestFailed, resp.ErrorMessage())
	}

	return resp.Data, nil
}

// doGraphQL performs a single POST to the Admin GraphQL endpoint
func (c *Client) doGraphQL(ctx context.Context, query string, variables map[string]any) ([]byte, error) {
	payload, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("shopify: failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.GraphQLURL(), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("shopify: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.config.AccessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", translation.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("shopify: failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: HTTP %d", translation.ErrUpstreamRequestFailed, resp.StatusCode)
	}

	return body, nil
}

// doREST performs a single request against the Admin REST API
func (c *Client) doREST(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("shopify: failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.RESTURL(path), reqBody)
	if err != nil {
		return nil, fmt.Errorf("shopify: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.config.AccessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", translation.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("shopify: failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: HTTP %d", translation.ErrUpstreamRequestFailed, resp.StatusCode)
	}

	return body, nil
}

// Ensure Client implements the upstream query port
var _ translation.QueryClient = (*Client)(nil)
