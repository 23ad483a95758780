// Package data is a thin client for the Polymarket Data API trade feed.
package data

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type Client struct {
	host       string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// SetLogger attaches a logger for per-record decode diagnostics.
func (c *Client) SetLogger(logger *zap.Logger) {
	c.logger = logger
}

type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.Status, e.Body)
}

// NewClient builds a client. ratePerSecond bounds outbound request rate; the
// trade endpoint is polled every few seconds on a shared public API, so the
// limiter is on by default (pass 0 to disable).
func NewClient(httpClient *http.Client, host string, ratePerSecond float64, burst int) *Client {
	if host == "" {
		host = "https://data-api.polymarket.com"
	}
	host = strings.TrimRight(host, "/")
	var limiter *rate.Limiter
	if ratePerSecond > 0 {
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(ratePerSecond), burst)
	}
	return &Client{
		host:       host,
		httpClient: httpClient,
		limiter:    limiter,
	}
}

func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}
	fullURL := c.host + path
	if len(query) > 0 {
		fullURL = fullURL + "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Status: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}
