// Package yahoo implements the quotes.Provider contract against the public
// Yahoo Finance chart and quoteSummary endpoints.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"stocklens-api/pkg/quotes"
)

const (
	defaultBaseURL          = "https://query1.finance.yahoo.com"
	defaultHTTPTimeout      = 10 * time.Second
	defaultMaxRetries       = 3
	defaultRetryBackoffBase = 150 * time.Millisecond
	userAgent               = "stocklens/1.0"
)

// ErrSymbolNotFound indicates that Yahoo does not know the requested symbol.
// It matches quotes.ErrSymbolNotFound under errors.Is.
var ErrSymbolNotFound = fmt.Errorf("yahoo: %w", quotes.ErrSymbolNotFound)

// Client wraps access to the Yahoo Finance query endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
}

// Option configures a new Client.
type Option func(*Client)

// WithHTTPClient injects a custom http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithBaseURL overrides the default query endpoint URL.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithMaxRetries adjusts the retry budget.
func WithMaxRetries(max int) Option {
	return func(c *Client) {
		if max >= 0 {
			c.maxRetries = max
		}
	}
}

// NewClient constructs a Yahoo Finance API client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		maxRetries: defaultMaxRetries,
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return client
}

// doGet performs a GET with retry/backoff and decodes the response into
// result. A 404 resolves immediately to ErrSymbolNotFound; other non-2xx
// statuses and transport errors are retried.
func (c *Client) doGet(ctx context.Context, path string, query url.Values, result interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var lastErr error
	backoff := defaultRetryBackoffBase
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return fmt.Errorf("yahoo: build request: %w", err)
		}
		httpReq.Header.Set("User-Agent", userAgent)
		httpReq.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
		} else {
			body, readErr := io.ReadAll(resp.Body)
			resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("yahoo: read response: %w", readErr)
			case resp.StatusCode == http.StatusNotFound:
				return ErrSymbolNotFound
			case resp.StatusCode < 200 || resp.StatusCode >= 300:
				lastErr = fmt.Errorf("yahoo: http status %d: %s", resp.StatusCode, string(body))
			default:
				if result != nil {
					if err := json.Unmarshal(body, result); err != nil {
						return fmt.Errorf("yahoo: decode response: %w", err)
					}
				}
				return nil
			}
		}

		if attempt < c.maxRetries {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
				backoff *= 2
			}
		}
	}
	if lastErr != nil {
		return lastErr
	}
	return fmt.Errorf("yahoo: request failed after %d attempts", c.maxRetries+1)
}
