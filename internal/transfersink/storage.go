package transfersink

import "context"

// LedgerStorage defines the contract for appending detected transfers to the
// durable transfer ledger.
//
// Implementations must be append-only: a record handed to AppendRecord is
// either fully written or not written at all, so callers can retry on error
// without corrupting previously stored rows.
type LedgerStorage interface {
	// AppendRecord appends a single transfer record to the ledger.
	//
	// Parameters:
	//   - ctx: context for cancellation and timeout control.
	//   - record: the fully assembled ledger entry to persist.
	//
	// Returns:
	//   - An error if the record could not be durably written.
	AppendRecord(ctx context.Context, record Record) error
}
