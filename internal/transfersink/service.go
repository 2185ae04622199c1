package transfersink

import (
	"context"

	"github.com/gabapcia/solwatch/internal/pkg/logger"
	"github.com/gabapcia/solwatch/internal/pkg/resilience/retry"
	"github.com/gabapcia/solwatch/internal/pkg/types"
	"github.com/gabapcia/solwatch/internal/transfer"
	"github.com/gabapcia/solwatch/internal/walletregistry"
)

// DefaultLargeTransferThreshold is the lamport amount at or above which a
// transfer is ranked SeverityHigh (1000 SOL).
const DefaultLargeTransferThreshold = types.Lamports(1_000_000_000_000)

// Service persists detected transfers and fans them out to interested
// external systems.
type Service interface {
	// RecordTransfer appends the detected transfer to the ledger and, once
	// it is durably written, emits a notification for it.
	//
	// The ledger append is the critical step: its failure is returned so the
	// caller can retry the whole transfer later. Notification delivery is
	// advisory; a failed delivery is logged and never surfaces as an error.
	RecordTransfer(ctx context.Context, event transfer.Event) error
}

type service struct {
	registry *walletregistry.Registry
	ledger   LedgerStorage
	notifier TransferNotifier

	retry                  retry.Retry
	largeTransferThreshold types.Lamports
}

var _ Service = (*service)(nil)

func (s *service) RecordTransfer(ctx context.Context, event transfer.Event) error {
	record := buildRecord(event, s.registry)

	appendRecord := func() error {
		return s.ledger.AppendRecord(ctx, record)
	}

	var err error
	if s.retry != nil {
		err = s.retry.Execute(ctx, appendRecord)
	} else {
		err = appendRecord()
	}
	if err != nil {
		return err
	}

	notification := s.buildNotification(event)
	if err := s.notifier.NotifyTransfer(ctx, notification); err != nil {
		logger.Error(ctx, "error delivering transfer notification",
			"transfer.signature", event.Signature,
			"notification.event_id", notification.EventID,
			"error", err,
		)
	}

	return nil
}

type config struct {
	notifier               TransferNotifier
	retry                  retry.Retry
	largeTransferThreshold types.Lamports
}

type Option func(*config)

// New creates a transfer sink backed by the given ledger storage. Labels for
// records and notifications are resolved from the registry.
func New(registry *walletregistry.Registry, ledger LedgerStorage, opts ...Option) *service {
	cfg := config{
		notifier:               nopTransferNotifier{},
		retry:                  nil,
		largeTransferThreshold: DefaultLargeTransferThreshold,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &service{
		registry:               registry,
		ledger:                 ledger,
		notifier:               cfg.notifier,
		retry:                  cfg.retry,
		largeTransferThreshold: cfg.largeTransferThreshold,
	}
}

// WithNotifier configures the external system notified after each transfer
// is recorded.
func WithNotifier(n TransferNotifier) Option {
	return func(c *config) {
		c.notifier = n
	}
}

// WithRetry configures the retry policy applied to ledger appends.
func WithRetry(r retry.Retry) Option {
	return func(c *config) {
		c.retry = r
	}
}

// WithLargeTransferThreshold overrides the lamport amount at or above which
// a transfer is ranked SeverityHigh.
func WithLargeTransferThreshold(threshold types.Lamports) Option {
	return func(c *config) {
		c.largeTransferThreshold = threshold
	}
}
