// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 8 << 20

// DefaultBaseURL is where the Lead Service listens in a default setup.
const DefaultBaseURL = "http://localhost:3001"

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// Config holds configuration options for a remote client.
type Config struct {
	// BaseURL is the service base URL (default: http://localhost:3001)
	BaseURL string

	// Timeout bounds each request. Zero means no timeout: a hung request
	// stays in flight until the service answers or the connection drops.
	Timeout time.Duration

	// UserAgent is sent with every request when non-empty.
	UserAgent string
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *Config {
	return &Config{
		BaseURL: DefaultBaseURL,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client sends JSON requests to one service base URL.
// It is safe for concurrent use.
type Client struct {
	config     *Config
	httpClient *http.Client
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports whether the HTTP status is 2xx.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// NewClient creates a client. A nil config uses DefaultConfig.
func NewClient(config *Config) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	cfg := *config
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &Client{
		config: &cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// NewClientWithHTTP creates a client that sends through httpClient.
func NewClientWithHTTP(config *Config, httpClient *http.Client) *Client {
	c := NewClient(config)
	if httpClient != nil {
		c.httpClient = httpClient
	}
	return c
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// Do sends a request with an optional JSON body and reads the whole response.
// Network failures and unreadable bodies come back as transport errors; the
// HTTP status is left for the caller to interpret.
func (c *Client) Do(ctx context.Context, op, method, path string, in any) (*Response, error) {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return nil, &ClientError{Kind: KindValidation, Op: op, Message: "failed to encode request", Cause: err}
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, body)
	if err != nil {
		return nil, Transport(op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Printf("API_CANCELED | op=%s path=%s", op, path)
		} else {
			log.Printf("API_UNREACHABLE | op=%s path=%s error=%v", op, path, err)
		}
		return nil, Transport(op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, Transport(op, err)
	}

	log.Printf("API_RESPONSE | op=%s method=%s path=%s status=%d latency=%dms",
		op, method, path, resp.StatusCode, time.Since(start).Milliseconds())

	return &Response{StatusCode: resp.StatusCode, Body: data}, nil
}

// =============================================================================
// ENVELOPES
// =============================================================================

// Envelope is the `{status, message, data}` wrapper used by the services.
type Envelope[T any] struct {
	Status  int    `json:"status"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data"`
}

// OK reports whether the envelope carries the success status.
func (e Envelope[T]) OK() bool {
	return e.Status == http.StatusOK
}

// errEmptyBody is the decode cause for a response without a body.
var errEmptyBody = errors.New("empty response body")

// DecodeEnvelope parses body as an Envelope. An empty or malformed body is an error.
func DecodeEnvelope[T any](body []byte) (Envelope[T], error) {
	var env Envelope[T]
	if len(bytes.TrimSpace(body)) == 0 {
		return env, errEmptyBody
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return env, err
	}
	return env, nil
}

// messageBody is the shape of an error body that only carries a message.
type messageBody struct {
	Message string `json:"message"`
}

// DecodeMessage extracts a top-level "message" field from body.
// It returns "" when the body is empty, not JSON, or has no message.
func DecodeMessage(body []byte) string {
	var mb messageBody
	if err := json.Unmarshal(body, &mb); err != nil {
		return ""
	}
	return mb.Message
}

// ValidJSON reports whether body is empty or well-formed JSON.
func ValidJSON(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	return len(trimmed) == 0 || json.Valid(trimmed)
}
