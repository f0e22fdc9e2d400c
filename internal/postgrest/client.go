// Package postgrest provides a minimal client for a PostgREST-style REST surface over a
// hosted Postgres database: row reads, bulk deletes and RPC calls authenticated with a
// long-lived service credential.
package postgrest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// restPrefix is the path every resource and RPC lives under.
const restPrefix = "/rest/v1"

// Row is an opaque JSON object returned by the backend.
type Row = map[string]any

// Response is the raw outcome of an RPC call.
type Response struct {
	StatusCode int
	Body       string
}

// OK reports whether the status is 2xx.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Client talks to the REST surface.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithLogger attaches a logger for request tracing.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a client for the project at baseURL.
func NewClient(baseURL, apiKey string, opts ...Option) (*Client, error) {
	parsed, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if parsed.Scheme != "https" && parsed.Scheme != "http" {
		return nil, fmt.Errorf("invalid scheme in base URL %q", baseURL)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("base URL %q has no host", baseURL)
	}
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	c := &Client{
		baseURL: strings.TrimRight(parsed.String(), "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalized project URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ResourceURL returns the full URL of a table or view with the given query.
func (c *Client) ResourceURL(table string, q *Query) string {
	u := c.baseURL + restPrefix + "/" + table
	if encoded := q.Encode(); encoded != "" {
		u += "?" + encoded
	}
	return u
}

// Select reads the rows matching q.
func (c *Client) Select(ctx context.Context, table string, q *Query) ([]Row, error) {
	target := c.ResourceURL(table, q)
	status, body, err := c.do(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, &StatusError{Method: http.MethodGet, URL: target, StatusCode: status, Body: string(body)}
	}

	var rows []Row
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, &DecodeError{URL: target, Cause: err}
	}
	return rows, nil
}

// Delete removes every row matching q in a single request. Any 2xx status is success.
func (c *Client) Delete(ctx context.Context, table string, q *Query) error {
	if len(q.Filters()) == 0 {
		// PostgREST rejects unfiltered deletes; fail before sending.
		return fmt.Errorf("refusing to delete from %s without a filter", table)
	}

	target := c.ResourceURL(table, q)
	status, body, err := c.do(ctx, http.MethodDelete, target, nil)
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		return &StatusError{Method: http.MethodDelete, URL: target, StatusCode: status, Body: string(body)}
	}
	return nil
}

// RPC invokes a stored procedure with named parameters. Non-2xx responses are returned,
// not treated as errors, so callers can inspect the body.
func (c *Client) RPC(ctx context.Context, fn string, params map[string]any) (*Response, error) {
	payload, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal RPC parameters: %w", err)
	}

	target := c.baseURL + restPrefix + "/rpc/" + fn
	status, body, err := c.do(ctx, http.MethodPost, target, payload)
	if err != nil {
		return nil, err
	}
	return &Response{StatusCode: status, Body: string(body)}, nil
}

func (c *Client) do(ctx context.Context, method, target string, payload []byte) (int, []byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return 0, nil, &RequestError{Method: method, URL: target, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, &RequestError{Method: method, URL: target, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, &RequestError{Method: method, URL: target, Message: "failed to read response body", Cause: err}
	}

	c.logger.Debug("postgrest request",
		zap.String("method", method),
		zap.String("url", target),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
		zap.Duration("elapsed", time.Since(start)))

	return resp.StatusCode, body, nil
}
