package transfersink

import (
	"context"
	"errors"
	"time"

	"github.com/gabapcia/solwatch/internal/transfer"

	"github.com/google/uuid"
)

// Severity ranks a detected transfer for downstream alerting.
type Severity string

const (
	// SeverityInfo marks an ordinary transfer.
	SeverityInfo Severity = "info"

	// SeverityHigh marks a transfer at or above the configured large
	// transfer threshold.
	SeverityHigh Severity = "high"
)

// transferDetectedEventType is the event type stamped on every outgoing
// transfer notification.
const transferDetectedEventType = "transfer.detected"

// TransferNotification is the message delivered to external systems when a
// transfer has been durably recorded.
type TransferNotification struct {
	EventID    string   `json:"event_id"`   // Unique identifier for this notification
	EventType  string   `json:"event_type"` // Always "transfer.detected"
	Timestamp  string   `json:"timestamp"`  // Block time in RFC 3339 UTC; empty when unknown
	Signature  string   `json:"signature"`  // Signature of the carrying transaction
	FromWallet string   `json:"from_wallet"`
	FromLabel  string   `json:"from_label"`
	ToWallet   string   `json:"to_wallet"`
	ToLabel    string   `json:"to_label"`
	AmountSOL  string   `json:"amount_sol"` // Transferred amount in SOL with six decimal places
	Direction  string   `json:"direction"`  // "outbound" or "inbound", relative to the source wallet
	Severity   Severity `json:"severity"`   // "info", or "high" for large transfers
}

// TransferNotifier defines a mechanism for notifying external systems when a
// transfer between the watched wallets has been recorded.
//
// Delivery is advisory: the ledger is the durable trail, so implementations
// may fail without affecting what has been recorded.
type TransferNotifier interface {
	// NotifyTransfer delivers a single transfer notification.
	//
	// Parameters:
	//   - ctx: context for cancellation and timeout control.
	//   - notification: the fully assembled notification payload.
	//
	// Returns:
	//   - An error if the notification could not be delivered.
	NotifyTransfer(ctx context.Context, notification TransferNotification) error
}

// nopTransferNotifier is the TransferNotifier used when no notifier is
// configured. It silently drops every notification.
type nopTransferNotifier struct{}

var _ TransferNotifier = nopTransferNotifier{}

func (nopTransferNotifier) NotifyTransfer(context.Context, TransferNotification) error {
	return nil
}

// multiTransferNotifier fans a notification out to several notifiers. Every
// notifier is attempted even when an earlier one fails.
type multiTransferNotifier []TransferNotifier

var _ TransferNotifier = multiTransferNotifier(nil)

func (m multiTransferNotifier) NotifyTransfer(ctx context.Context, notification TransferNotification) error {
	errs := make([]error, 0, len(m))
	for _, notifier := range m {
		errs = append(errs, notifier.NotifyTransfer(ctx, notification))
	}

	return errors.Join(errs...)
}

// MultiNotifier combines several notifiers into one that delivers each
// notification to all of them.
func MultiNotifier(notifiers ...TransferNotifier) TransferNotifier {
	return multiTransferNotifier(notifiers)
}

// buildNotification assembles the notification payload for a detected
// transfer, resolving labels from the registry and ranking the severity
// against the configured large transfer threshold.
func (s *service) buildNotification(event transfer.Event) TransferNotification {
	severity := SeverityInfo
	if event.Amount >= s.largeTransferThreshold {
		severity = SeverityHigh
	}

	var timestamp string
	if !event.BlockTime.IsZero() {
		timestamp = event.BlockTime.UTC().Format(time.RFC3339)
	}

	return TransferNotification{
		EventID:    uuid.Must(uuid.NewV7()).String(),
		EventType:  transferDetectedEventType,
		Timestamp:  timestamp,
		Signature:  event.Signature,
		FromWallet: event.From,
		FromLabel:  s.registry.LabelOf(event.From),
		ToWallet:   event.To,
		ToLabel:    s.registry.LabelOf(event.To),
		AmountSOL:  event.Amount.SOL().StringFixed(amountDecimalPlaces),
		Direction:  string(event.Direction),
		Severity:   severity,
	}
}
