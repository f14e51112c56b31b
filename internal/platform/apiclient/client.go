// Package apiclient talks JSON to the Inventory Pro backend REST API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const maxResponseBytes = 8 << 20

// Requester is the contract gateways are built on.
type Requester interface {
	Do(ctx context.Context, method, path string, body, out any, opts ...RequestOption) error
}

// Observer receives one call per completed backend request. Status is 0 when
// no response arrived.
type Observer interface {
	ObserveUpstream(method, resource string, status int, elapsed time.Duration)
}

// RequestOption adjusts an outgoing request after the defaults are applied.
type RequestOption func(*http.Request)

// WithHeader overrides or adds a request header.
func WithHeader(key, value string) RequestOption {
	return func(r *http.Request) {
		r.Header.Set(key, value)
	}
}

// IfMatch sends the entity revision the caller last saw.
func IfMatch(revision int64) RequestOption {
	return WithHeader("If-Match", strconv.Quote(strconv.FormatInt(revision, 10)))
}

// Options configures a Client.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *slog.Logger
	Observer   Observer
}

// Client is safe for concurrent use. WithToken derives request-scoped copies.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
	logger     *slog.Logger
	observer   Observer
}

// New constructs a Client.
func New(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
		observer:   opts.Observer,
	}
}

// WithToken returns a copy of the client that authenticates as token.
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.token = token
	return &clone
}

// Token reports the bearer token attached to this client.
func (c *Client) Token() string {
	return c.token
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do sends a single request. A non-nil body is encoded as JSON and a non-nil
// out receives the decoded response. Nothing is retried.
func (c *Client) Do(ctx context.Context, method, path string, body, out any, opts ...RequestOption) error {
	if method == "" {
		method = http.MethodGet
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	target := c.baseURL + path

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("apiclient: encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("apiclient: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	for _, opt := range opts {
		opt(req)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(method, path, 0, time.Since(start))
		c.logger.Warn("backend request failed", slog.String("method", method), slog.String("path", path), slog.Any("error", err))
		return &TransportError{Method: method, URL: target, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	c.observe(method, path, resp.StatusCode, time.Since(start))
	if err != nil {
		return &TransportError{Method: method, URL: target, Err: err}
	}
	c.logger.Debug("backend request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Message: errorMessage(data)}
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("apiclient: decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) observe(method, path string, status int, elapsed time.Duration) {
	if c.observer == nil {
		return
	}
	c.observer.ObserveUpstream(method, resourceOf(path), status, elapsed)
}

// resourceOf keeps metric labels bounded: "/vendors/abc?x=1" -> "vendors".
func resourceOf(path string) string {
	path = strings.TrimPrefix(path, "/")
	if i := strings.IndexAny(path, "/?"); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		return "root"
	}
	return path
}

func errorMessage(data []byte) string {
	var body map[string]any
	if err := json.Unmarshal(data, &body); err != nil {
		return DefaultErrorMessage
	}
	for _, key := range []string{"error", "message"} {
		if msg, ok := body[key].(string); ok && strings.TrimSpace(msg) != "" {
			return msg
		}
	}
	return DefaultErrorMessage
}
