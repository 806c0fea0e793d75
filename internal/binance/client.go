package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	// DefaultBaseURL is the spot REST API host.
	DefaultBaseURL = "https://api.binance.com"
	// DefaultFuturesBaseURL is the USD-M futures REST API host.
	DefaultFuturesBaseURL = "https://fapi.binance.com"
)

// Interval is a kline timeframe accepted by the venue.
type Interval string

const (
	Interval1m  Interval = "1m"
	Interval3m  Interval = "3m"
	Interval5m  Interval = "5m"
	Interval15m Interval = "15m"
	Interval30m Interval = "30m"
	Interval1h  Interval = "1h"
	Interval2h  Interval = "2h"
	Interval4h  Interval = "4h"
	Interval6h  Interval = "6h"
	Interval8h  Interval = "8h"
	Interval12h Interval = "12h"
	Interval1d  Interval = "1d"
	Interval3d  Interval = "3d"
	Interval1w  Interval = "1w"
	Interval1M  Interval = "1M"
)

var validIntervals = map[Interval]bool{
	Interval1m: true, Interval3m: true, Interval5m: true, Interval15m: true,
	Interval30m: true, Interval1h: true, Interval2h: true, Interval4h: true,
	Interval6h: true, Interval8h: true, Interval12h: true, Interval1d: true,
	Interval3d: true, Interval1w: true, Interval1M: true,
}

// Valid reports whether the interval is one the venue accepts.
func (i Interval) Valid() bool { return validIntervals[i] }

// Client is a thin typed wrapper over the public market-data REST endpoints.
// It holds no state across calls: no caching, no retries, no synthetic data.
// Concurrent calls are fully independent.
type Client struct {
	baseURL        string
	futuresBaseURL string
	httpClient     *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the spot API host.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithFuturesBaseURL overrides the futures API host.
func WithFuturesBaseURL(u string) Option {
	return func(c *Client) { c.futuresBaseURL = u }
}

// WithTimeout sets the HTTP request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a market data client for the public endpoints.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:        DefaultBaseURL,
		futuresBaseURL: DefaultFuturesBaseURL,
		httpClient:     &http.Client{Timeout: 5 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get issues one GET request and decodes the body into result, mapping
// failures onto the transport / upstream / parse taxonomy.
func (c *Client) get(ctx context.Context, host, path string, query url.Values, result any) error {
	u := fmt.Sprintf("%s%s?%s", host, path, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &TransportError{Endpoint: path, Err: err}
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Endpoint: path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &UpstreamError{Endpoint: path, Status: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return &ParseError{Endpoint: path, Err: err}
	}
	return nil
}

// clampLimit bounds a caller-supplied limit to the venue's accepted range.
func clampLimit(limit, ceiling int) string {
	if limit < 1 {
		limit = 1
	}
	if limit > ceiling {
		limit = ceiling
	}
	return strconv.Itoa(limit)
}
