package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxBodySize bounds the size of a fetched feed.
const maxBodySize = 32 << 20

// StatusError reports a non-success HTTP status.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: %d %s", e.URL, e.Code, http.StatusText(e.Code))
}

// Client fetches feed bodies over HTTP.
type Client struct {
	http     *http.Client
	cache    *Cache
	username string
	password string
	attempts int
	delay    time.Duration
}

// ClientOption configures a [Client].
type ClientOption func(*Client)

// WithHTTPClient replaces the default http.Client (30s timeout).
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// WithCache stores fetched bodies in cache.
func WithCache(cache *Cache) ClientOption {
	return func(c *Client) { c.cache = cache }
}

// WithBasicAuth sends credentials with every request.
func WithBasicAuth(username, password string) ClientOption {
	return func(c *Client) {
		c.username = username
		c.password = password
	}
}

// WithRetry overrides the retry policy.
func WithRetry(attempts int, delay time.Duration) ClientOption {
	return func(c *Client) {
		c.attempts = attempts
		c.delay = delay
	}
}

// NewClient returns a Client with 3 attempts and a 1 second initial delay.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		http:     &http.Client{Timeout: 30 * time.Second},
		attempts: 3,
		delay:    time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// cachedBody is a cached response with its validators.
type cachedBody struct {
	Body         []byte `json:"body"`
	ETag         string `json:"etag,omitempty"`
	LastModified string `json:"last_modified,omitempty"`
}

// Get returns the body at url, consulting the cache first.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	var cached cachedBody
	stale := false
	if c.cache != nil {
		ok, err := c.cache.Get(url, &cached)
		switch {
		case ok:
			return cached.Body, nil
		case errors.Is(err, ErrExpired):
			stale = true
		}
	}

	var body []byte
	err := Retry(ctx, c.attempts, c.delay, func() error {
		b, fresh, err := c.fetch(ctx, url, cached, stale)
		if err != nil {
			return err
		}
		body = b
		cached = fresh
		return nil
	})
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		_ = c.cache.Set(url, cached)
	}
	return body, nil
}

// fetch performs one request, revalidating prev when stale is set.
func (c *Client) fetch(ctx context.Context, url string, prev cachedBody, stale bool) ([]byte, cachedBody, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, prev, fmt.Errorf("create request: %w", err)
	}
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}
	if stale {
		if prev.ETag != "" {
			req.Header.Set("If-None-Match", prev.ETag)
		}
		if prev.LastModified != "" {
			req.Header.Set("If-Modified-Since", prev.LastModified)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, prev, ctx.Err()
		}
		return nil, prev, &RetryableError{Err: fmt.Errorf("GET %s: %w", url, err)}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotModified && stale:
		return prev.Body, prev, nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, prev, &RetryableError{Err: &StatusError{URL: url, Code: resp.StatusCode}}
	case resp.StatusCode != http.StatusOK:
		return nil, prev, &StatusError{URL: url, Code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, prev, &RetryableError{Err: fmt.Errorf("read %s: %w", url, err)}
	}
	return body, cachedBody{
		Body:         body,
		ETag:         resp.Header.Get("ETag"),
		LastModified: resp.Header.Get("Last-Modified"),
	}, nil
}
