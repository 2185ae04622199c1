package transferwatch

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gabapcia/solwatch/internal/pkg/x/chflow"
	"github.com/gabapcia/solwatch/internal/walletregistry"
)

var ErrServiceAlreadyStarted = errors.New("service already started")

const (
	defaultPollInterval      = time.Minute
	defaultErrorCooldown     = 30 * time.Second
	defaultRateLimitCooldown = 10 * time.Second
	defaultSignatureLimit    = 50
)

// Service runs the polling loop that watches the registry wallets for
// transfers between the source wallet and the target group.
type Service interface {
	// Start launches the polling loop in the background. The loop observes
	// ctx between cycles: cancelling it stops the loop without interrupting
	// an in-flight cycle.
	Start(ctx context.Context) error

	// Close stops the loop and waits for the in-flight cycle to finish, or
	// for ctx to expire, whichever comes first.
	Close(ctx context.Context) error
}

type closeFunc func()

type service struct {
	mu        sync.Mutex
	isStarted bool
	closeFunc closeFunc
	done      chan struct{}

	registry  *walletregistry.Registry
	source    TransactionSource
	processed ProcessedSet
	recorder  TransferRecorder

	pollInterval      time.Duration
	errorCooldown     time.Duration
	rateLimitCooldown time.Duration
	signatureLimit    int
}

var _ Service = (*service)(nil)

func (s *service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isStarted {
		return ErrServiceAlreadyStarted
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{}, 1)

	s.closeFunc = closeFunc(cancel)
	s.done = done

	go s.run(ctx, done)

	s.isStarted = true
	return nil
}

func (s *service) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isStarted {
		return nil
	}

	s.closeFunc()
	if _, ok := chflow.Receive(ctx, s.done); !ok {
		return ctx.Err()
	}

	s.isStarted = false
	s.closeFunc = nil
	s.done = nil

	return nil
}

type config struct {
	pollInterval      time.Duration
	errorCooldown     time.Duration
	rateLimitCooldown time.Duration
	signatureLimit    int
}

type Option func(*config)

// New creates the watch service over the given registry, transaction source,
// processed set, and transfer recorder.
func New(registry *walletregistry.Registry, source TransactionSource, processed ProcessedSet, recorder TransferRecorder, opts ...Option) *service {
	cfg := config{
		pollInterval:      defaultPollInterval,
		errorCooldown:     defaultErrorCooldown,
		rateLimitCooldown: defaultRateLimitCooldown,
		signatureLimit:    defaultSignatureLimit,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &service{
		registry:          registry,
		source:            source,
		processed:         processed,
		recorder:          recorder,
		pollInterval:      cfg.pollInterval,
		errorCooldown:     cfg.errorCooldown,
		rateLimitCooldown: cfg.rateLimitCooldown,
		signatureLimit:    cfg.signatureLimit,
	}
}

// WithPollInterval overrides the delay between healthy cycles.
func WithPollInterval(d time.Duration) Option {
	return func(c *config) {
		c.pollInterval = d
	}
}

// WithErrorCooldown overrides the shorter delay applied after a cycle that
// encountered errors.
func WithErrorCooldown(d time.Duration) Option {
	return func(c *config) {
		c.errorCooldown = d
	}
}

// WithRateLimitCooldown overrides the pause applied when the RPC endpoint
// reports rate limiting.
func WithRateLimitCooldown(d time.Duration) Option {
	return func(c *config) {
		c.rateLimitCooldown = d
	}
}

// WithSignatureLimit overrides how many recent signatures are listed per
// wallet on each cycle.
func WithSignatureLimit(limit int) Option {
	return func(c *config) {
		c.signatureLimit = limit
	}
}
