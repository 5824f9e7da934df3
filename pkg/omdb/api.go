// Package omdb is a small client for the OMDb HTTP API. It supports the
// three query shapes the enrichment pass needs: exact title+year, title only,
// and free-text search. Requests are paced with a rate limiter and retried
// with backoff on 429/5xx before a failure is reported as a TransportError.
package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://www.omdbapi.com/"

// TransportError marks a network or service failure that survived the
// transport-level retries. Callers distinguish it from a genuine "not found"
// answer, which is a normal decoded Payload with Response "False".
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("omdb transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Client queries the OMDb API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	retries    int
	backoff    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithRetryPolicy overrides the retry count and backoff unit.
func WithRetryPolicy(retries int, backoff time.Duration) Option {
	return func(c *Client) {
		if retries >= 0 {
			c.retries = retries
		}
		if backoff > 0 {
			c.backoff = backoff
		}
	}
}

// WithBaseURL overrides the OMDb endpoint, used by tests.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// NewClient creates an OMDb client. The limiter spaces outbound requests at
// 20/s so repeated cache misses stay polite to the provider.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("omdb api key required")
	}
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 6 * time.Second},
		limiter:    rate.NewLimiter(rate.Every(50*time.Millisecond), 1),
		retries:    5,
		backoff:    time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ExactParams builds the query for an exact title+year lookup. An empty year
// falls back to a title-only filter on the provider side.
func ExactParams(title, year string) url.Values {
	params := url.Values{}
	params.Set("t", title)
	if year != "" {
		params.Set("y", year)
	}
	return params
}

// TitleParams builds the query for a title-only lookup.
func TitleParams(title string) url.Values {
	params := url.Values{}
	params.Set("t", title)
	return params
}

// SearchParams builds the query for a fuzzy search.
func SearchParams(title string) url.Values {
	params := url.Values{}
	params.Set("s", title)
	return params
}

// Query performs one logical lookup and returns the raw response body. The
// api key is attached here so params stay a pure function of the lookup
// shape. Retryable statuses (429 and 5xx) are retried with linear backoff;
// anything still failing afterwards comes back as a *TransportError.
func (c *Client) Query(ctx context.Context, params url.Values) ([]byte, error) {
	endpoint, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse omdb url: %w", err)
	}
	full := url.Values{}
	for k, vs := range params {
		for _, v := range vs {
			full.Add(k, v)
		}
	}
	full.Set("apikey", c.apiKey)
	endpoint.RawQuery = full.Encode()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * c.backoff):
			}
		}

		body, retryable, err := c.do(ctx, endpoint.String())
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retryable {
			break
		}
	}
	return nil, &TransportError{Err: lastErr}
}

func (c *Client) do(ctx context.Context, u string) (body []byte, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, false, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, true, fmt.Errorf("read response: %w", err)
		}
		return body, false, nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, true, fmt.Errorf("omdb returned %d", resp.StatusCode)
	default:
		return nil, false, fmt.Errorf("omdb returned %d", resp.StatusCode)
	}
}

// Decode parses a raw OMDb response body.
func Decode(body []byte) (*Payload, error) {
	var p Payload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("decode omdb response: %w", err)
	}
	return &p, nil
}
