package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kelsos/meili-go/internal/logger"
)

// Doer performs a single HTTP exchange. *http.Client satisfies it; callers
// can substitute any other stack.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client handles all HTTP communication with a Meilisearch server. It holds
// no mutable state after construction and is safe for concurrent use.
type Client struct {
	host   string
	apiKey string
	http   Doer
}

// Option customizes a Client at construction time.
type Option func(*Client)

// WithHTTPClient replaces the underlying transport.
func WithHTTPClient(d Doer) Option {
	return func(c *Client) {
		c.http = d
	}
}

// WithTimeout sets the per-request timeout of the default transport. It has
// no effect when combined with WithHTTPClient.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if hc, ok := c.http.(*http.Client); ok {
			hc.Timeout = timeout
		}
	}
}

// New creates a client for the server at host. An empty apiKey skips the
// Authorization header, which only works against unprotected instances.
func New(host, apiKey string, opts ...Option) *Client {
	c := &Client{
		host:   strings.TrimSuffix(host, "/"),
		apiKey: apiKey,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Host returns the base URL the client talks to.
func (c *Client) Host() string {
	return c.host
}

// BuildURL constructs a full URL for the given endpoint.
func (c *Client) BuildURL(endpoint string) string {
	return c.host + endpoint
}

// Get makes a GET request to the specified endpoint.
func (c *Client) Get(ctx context.Context, endpoint string, result interface{}) error {
	return c.request(ctx, http.MethodGet, endpoint, nil, result)
}

// Post makes a POST request to the specified endpoint.
func (c *Client) Post(ctx context.Context, endpoint string, body interface{}, result interface{}) error {
	return c.request(ctx, http.MethodPost, endpoint, body, result)
}

// Put makes a PUT request to the specified endpoint.
func (c *Client) Put(ctx context.Context, endpoint string, body interface{}, result interface{}) error {
	return c.request(ctx, http.MethodPut, endpoint, body, result)
}

// Patch makes a PATCH request to the specified endpoint.
func (c *Client) Patch(ctx context.Context, endpoint string, body interface{}, result interface{}) error {
	return c.request(ctx, http.MethodPatch, endpoint, body, result)
}

// Delete makes a DELETE request to the specified endpoint.
func (c *Client) Delete(ctx context.Context, endpoint string, result interface{}) error {
	return c.request(ctx, http.MethodDelete, endpoint, nil, result)
}

// request is the core HTTP request method.
func (c *Client) request(ctx context.Context, method, endpoint string, body interface{}, result interface{}) error {
	url := c.BuildURL(endpoint)
	start := time.Now()
	logger.Debug("Starting %s request to %s", method, url)

	var requestBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("error marshaling request body: %w", err)
		}
		requestBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, requestBody)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		elapsed := time.Since(start)
		logger.Error("Request failed after (%s) %v: %v", url, elapsed, err)
		return &TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	elapsed := time.Since(start)
	logger.Debug("Request to %s completed in %v with status %d", url, elapsed, resp.StatusCode)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := decodeAPIError(resp)
		logger.Error("%s: HTTP error %d: %s", url, resp.StatusCode, apiErr.Message)
		return apiErr
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			logger.Error("%s: Error decoding response: %v", url, err)
			return &DecodeError{Endpoint: endpoint, Err: err}
		}
	}

	return nil
}

// decodeAPIError turns a non-2xx response into an APIError, falling back to
// the raw body when it is not the documented JSON error shape.
func decodeAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil || len(bodyBytes) == 0 {
		apiErr.Message = http.StatusText(resp.StatusCode)
		return apiErr
	}

	if err := json.Unmarshal(bodyBytes, apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = string(bodyBytes)
	}

	return apiErr
}
