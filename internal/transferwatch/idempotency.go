package transferwatch

import "context"

// ProcessedSet is the durable, monotonically growing set of transaction
// signatures that have already been evaluated, regardless of whether they
// produced a transfer. It is what guarantees a signature is processed at
// most once across cycles and process restarts.
type ProcessedSet interface {
	// Contains reports whether the signature has already been processed.
	//
	// Parameters:
	//   - ctx: context for cancellation and timeout control.
	//   - signature: the transaction signature to check.
	//
	// Returns:
	//   - true if the signature was marked processed at any point.
	//   - An error if membership could not be determined.
	Contains(ctx context.Context, signature string) (bool, error)

	// MarkProcessed adds the signature to the set.
	//
	// Implementations should apply the marking in memory even when the
	// durable write fails, so the signature is not re-evaluated for the
	// remainder of the process lifetime. A restart may then re-process that
	// one signature, which is accepted.
	//
	// Parameters:
	//   - ctx: context for cancellation and timeout control.
	//   - signature: the transaction signature to mark.
	//
	// Returns:
	//   - An error if the durable write failed.
	MarkProcessed(ctx context.Context, signature string) error
}
