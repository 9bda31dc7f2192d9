// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package httpclient

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/H0llyW00dzZ/puppet-ca-bootstrap/src/internal/helper/gc"
)

// DefaultUserAgent identifies requests made by the CA tooling.
const DefaultUserAgent = "PuppetserverCaCli"

// HTTPConfig holds HTTP client configuration for CA requests.
type HTTPConfig struct {
	Timeout   time.Duration // HTTP request timeout
	UserAgent string        // Custom User-Agent string, DefaultUserAgent when empty
}

// NewHTTPConfig creates a new HTTP configuration with a 30 second timeout.
func NewHTTPConfig() *HTTPConfig {
	return &HTTPConfig{Timeout: 30 * time.Second}
}

// GetUserAgent returns the User-Agent string.
func (c *HTTPConfig) GetUserAgent() string {
	if c.UserAgent != "" {
		return c.UserAgent
	}
	return DefaultUserAgent
}

// Result carries the parts of a response the CA commands care about.
type Result struct {
	Code int
	Body string
}

// Client sends requests to the CA over HTTPS.
type Client struct {
	config *HTTPConfig
	http   *http.Client
}

// New creates a client that verifies the server against store.
//
// Parameters:
//   - store: Trust store for server verification
//   - config: HTTP settings, NewHTTPConfig() when nil
//
// Returns:
//   - *Client: Client ready for use
func New(store *TrustStore, config *HTTPConfig) *Client {
	if config == nil {
		config = NewHTTPConfig()
	}
	return &Client{
		config: config,
		http: &http.Client{
			Timeout: config.Timeout,
			Transport: &http.Transport{
				TLSClientConfig:   store.TLSConfig(),
				ForceAttemptHTTP2: true,
			},
		},
	}
}

// Put sends body to u with JSON headers.
//
// Parameters:
//   - ctx: Context for cancellation
//   - u: Target resource
//   - body: JSON request body
//
// Returns:
//   - *Result: Status code and response body
//   - error: Transport or TLS verification error
func (c *Client) Put(ctx context.Context, u URL, body []byte) (*Result, error) {
	return c.do(ctx, http.MethodPut, u, body)
}

func (c *Client) do(ctx context.Context, method string, u URL, body []byte) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, method, u.String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", c.config.GetUserAgent())
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// Get a buffer from the pool
	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, err
	}

	return &Result{Code: resp.StatusCode, Body: string(buf.Bytes())}, nil
}
