// Package http builds the retrying HTTP client used for outbound webhook
// traffic. It wraps hashicorp/go-retryablehttp and defaults to a fixed wait
// between attempts, matching the fixed-delay retry policy used everywhere
// else in this codebase.
package http

import (
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

const (
	defaultTimeout   = 5 * time.Second
	defaultRetryWait = time.Second
	defaultRetryMax  = 2
)

// config collects the client settings before construction.
type config struct {
	timeout  time.Duration
	waitMin  time.Duration
	waitMax  time.Duration
	retryMax int
}

// Option adjusts the client configuration.
type Option func(*config)

// WithTimeout bounds each individual request attempt. Default: 5 seconds.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}

// WithRetryMax sets how many times a failed request is retried. Zero
// disables retries entirely. Default: 2.
func WithRetryMax(n int) Option {
	return func(c *config) {
		c.retryMax = n
	}
}

// WithFixedRetryWait makes every retry wait exactly d. This is the default
// shape with a one second wait.
func WithFixedRetryWait(d time.Duration) Option {
	return func(c *config) {
		c.waitMin = d
		c.waitMax = d
	}
}

// WithRetryWaitRange opts into retryablehttp's growing backoff, waiting at
// least min and at most max between attempts.
func WithRetryWaitRange(min, max time.Duration) Option {
	return func(c *config) {
		c.waitMin = min
		c.waitMax = max
	}
}

// NewClient builds the retrying HTTP client. Retryable failures, network
// errors and 5xx responses are retried after the configured wait; the
// library's internal logger is silenced since callers log outcomes
// themselves.
func NewClient(opts ...Option) *retryablehttp.Client {
	cfg := config{
		timeout:  defaultTimeout,
		waitMin:  defaultRetryWait,
		waitMax:  defaultRetryWait,
		retryMax: defaultRetryMax,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	client := retryablehttp.NewClient()
	client.Logger = nil
	client.HTTPClient.Timeout = cfg.timeout
	client.RetryWaitMin = cfg.waitMin
	client.RetryWaitMax = cfg.waitMax
	client.RetryMax = cfg.retryMax

	return client
}
