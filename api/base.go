package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Client handles calls to the Kalp gateway
type Client struct {
	httpClient *http.Client
	config     Config
	log        *zap.SugaredLogger
	inflight   atomic.Int64
}

// Option customizes a Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(c *Client) { c.log = log }
}

// NewClient creates a new gateway client
func NewClient(cfg Config, opts ...Option) *Client {
	c := &Client{
		// the per-call timeout is applied through the request context
		httpClient: &http.Client{},
		config:     cfg.withDefaults(),
		log:        zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Config returns the configuration the client was built with.
func (c *Client) Config() Config {
	return c.config
}

// Loading reports whether any call is currently in flight.
func (c *Client) Loading() bool {
	return c.inflight.Load() > 0
}

// Endpoint returns the URL of op on the configured contract.
func (c *Client) Endpoint(op Operation) string {
	return op.Endpoint(c.config.BaseURL, c.config.ContractID)
}

// Call POSTs args wrapped in the configured envelope to endpoint and returns
// the parsed response. Non-2xx statuses, transport failures, timeouts and
// non-JSON bodies are returned as *RemoteError, *NetworkError, *TimeoutError
// and *MalformedResponseError respectively.
func (c *Client) Call(ctx context.Context, endpoint string, args map[string]any) (*Response, error) {
	if !isAbsoluteURL(endpoint) {
		return nil, ErrInvalidEndpoint
	}

	c.inflight.Add(1)
	defer c.inflight.Add(-1)

	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	if args == nil {
		args = map[string]any{}
	}
	payload, err := json.Marshal(c.envelope(args))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(c.config.APIKeyHeader, c.config.APIKey())

	start := time.Now()
	c.log.Debugw("gateway request", "endpoint", endpoint, "args", args)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			c.log.Debugw("gateway timeout", "endpoint", endpoint, "elapsed", time.Since(start))
			return nil, &TimeoutError{Endpoint: endpoint}
		}
		return nil, &NetworkError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, &TimeoutError{Endpoint: endpoint}
		}
		return nil, &NetworkError{Endpoint: endpoint, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	c.log.Debugw("gateway response",
		"endpoint", endpoint,
		"status", resp.StatusCode,
		"elapsed", time.Since(start),
		"body", string(body),
	)

	// the body is parsed before the status is looked at
	var parsed any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &MalformedResponseError{StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RemoteError{
			StatusCode: resp.StatusCode,
			Message:    remoteMessage(parsed),
			Body:       body,
		}
	}

	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}

func (c *Client) envelope(args map[string]any) Envelope {
	return Envelope{
		Network:       c.config.Network,
		Blockchain:    c.config.Blockchain,
		WalletAddress: c.config.WalletAddress,
		Args:          args,
	}
}

// remoteMessage extracts the gateway's "message" field, if any
func remoteMessage(parsed any) string {
	obj, ok := parsed.(map[string]any)
	if !ok {
		return GenericErrorMessage
	}
	switch m := obj["message"].(type) {
	case string:
		if m != "" {
			return m
		}
	case nil:
	default:
		return fmt.Sprint(m)
	}
	return GenericErrorMessage
}

func isAbsoluteURL(endpoint string) bool {
	if endpoint == "" {
		return false
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return false
	}
	return u.IsAbs() && u.Host != ""
}
