package client

import (
	"net/http"
	"time"
)

// Option configures a Client. Options that receive a zero or nil value leave
// the default in place.
type Option func(*Client)

// ─────────────────────────────────────────────────────────────────────────────
// Transport
// ─────────────────────────────────────────────────────────────────────────────

// WithHTTPClient replaces the transport, including its timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout bounds each attempt. Analyze on a large corpus can take
// minutes, so the default is 2m. The client's own *http.Client is copied, so
// one passed through WithHTTPClient is not modified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d <= 0 {
			return
		}
		hc := *c.httpClient
		hc.Timeout = d
		c.httpClient = &hc
	}
}

// WithAPIKey sends key as a bearer token, for servers behind an
// authenticating gateway.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

func WithLogger(l Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Retries
// ─────────────────────────────────────────────────────────────────────────────

// WithRetryMax sets how many times a failed call is repeated. Zero disables
// retries; negative values are ignored.
func WithRetryMax(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.retryMax = n
		}
	}
}

// WithRetryWait sets the first backoff step and its cap. A cap below the
// first step is raised to it.
func WithRetryWait(first, limit time.Duration) Option {
	return func(c *Client) {
		if first <= 0 {
			return
		}
		c.retryWaitMin = first
		c.retryWaitMax = max(limit, first)
	}
}

//Personal.AI order the ending
