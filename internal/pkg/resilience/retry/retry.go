// Package retry wraps avast/retry-go behind a small Retry interface. The
// default policy is a fixed delay between attempts; exponential backoff is
// an opt-in for callers that want growth instead.
package retry

import (
	"context"
	"time"

	retry "github.com/avast/retry-go/v4"
)

// Retry executes operations that may fail transiently, reattempting them
// according to the configured policy.
type Retry interface {
	// Execute runs operation until it succeeds, the attempts are exhausted
	// or ctx is done. The operation should be safe to call more than once.
	// On exhaustion the last attempt's error is returned (unless configured
	// otherwise); on cancellation the context error.
	Execute(ctx context.Context, operation func() error) error
}

// backoffStrategy selects how the delay between attempts evolves.
type backoffStrategy int

const (
	// backoffFixed waits the same base delay before every retry.
	backoffFixed backoffStrategy = iota

	// backoffExponential doubles the delay after each failed attempt,
	// capped at the configured maximum delay.
	backoffExponential
)

const (
	defaultAttempts = 3
	defaultDelay    = time.Second
	defaultMaxDelay = 5 * time.Second
)

// config collects the retry policy before construction.
type config struct {
	attempts    uint
	delay       time.Duration
	maxDelay    time.Duration
	strategy    backoffStrategy
	lastErrOnly bool
}

// Option adjusts the retry policy.
type Option func(*config)

// WithAttempts sets the total number of attempts, the first try included.
// Default: 3.
func WithAttempts(n uint) Option {
	return func(c *config) {
		c.attempts = n
	}
}

// WithDelay sets the base delay between attempts. Under the default fixed
// strategy every retry waits exactly this long; under exponential backoff
// it is the starting delay. Default: 1 second.
func WithDelay(d time.Duration) Option {
	return func(c *config) {
		c.delay = d
	}
}

// WithExponentialBackoff doubles the delay after each failed attempt
// instead of keeping it fixed.
func WithExponentialBackoff() Option {
	return func(c *config) {
		c.strategy = backoffExponential
	}
}

// WithMaxDelay caps the delay growth under exponential backoff. It has no
// effect on the fixed strategy. Default: 5 seconds.
func WithMaxDelay(d time.Duration) Option {
	return func(c *config) {
		c.maxDelay = d
	}
}

// WithLastErrorOnly controls what Execute returns on exhaustion: just the
// final attempt's error (the default) or every attempt's error combined.
func WithLastErrorOnly(b bool) Option {
	return func(c *config) {
		c.lastErrOnly = b
	}
}

// retrier implements Retry on top of retry-go.
type retrier struct {
	cfg config
}

var _ Retry = (*retrier)(nil)

// New builds a Retry with the given policy: 3 attempts, a fixed 1 second
// delay and last-error-only reporting unless options say otherwise.
func New(opts ...Option) Retry {
	cfg := config{
		attempts:    defaultAttempts,
		delay:       defaultDelay,
		maxDelay:    defaultMaxDelay,
		strategy:    backoffFixed,
		lastErrOnly: true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &retrier{cfg: cfg}
}

func (r *retrier) Execute(ctx context.Context, operation func() error) error {
	delayType := retry.FixedDelay
	if r.cfg.strategy == backoffExponential {
		delayType = retry.BackOffDelay
	}

	return retry.Do(operation,
		retry.Attempts(r.cfg.attempts),
		retry.Delay(r.cfg.delay),
		retry.MaxDelay(r.cfg.maxDelay),
		retry.DelayType(delayType),
		retry.LastErrorOnly(r.cfg.lastErrOnly),
		retry.Context(ctx),
	)
}
