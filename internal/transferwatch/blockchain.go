package transferwatch

import (
	"context"
	"errors"

	"github.com/gabapcia/solwatch/internal/transfer"
)

// ErrRateLimited indicates the RPC endpoint rejected a request for exceeding
// its rate limits. The watch loop reacts by pausing for the rate limit
// cooldown instead of the regular cadence.
var ErrRateLimited = errors.New("rpc endpoint rate limited")

// TransactionSource defines the contract for reading transaction activity
// from the blockchain RPC endpoint.
//
// Implementations are expected to bound every call with their own timeout so
// a stalled endpoint cannot block the watch loop indefinitely.
type TransactionSource interface {
	// ListRecentSignatures returns the signatures of the most recent
	// transactions that touched the given address, newest first.
	//
	// Parameters:
	//   - ctx: context for cancellation and timeout control.
	//   - address: the wallet address whose activity is being listed.
	//   - limit: maximum number of signatures to return.
	//
	// Returns:
	//   - The transaction signatures in the order reported by the endpoint.
	//   - ErrRateLimited if the endpoint applied rate limiting, or another
	//     error if the listing could not be retrieved.
	ListRecentSignatures(ctx context.Context, address string, limit int) ([]string, error)

	// FetchTransaction retrieves the balance-level view of a single
	// transaction.
	//
	// Parameters:
	//   - ctx: context for cancellation and timeout control.
	//   - signature: the signature of the transaction to fetch.
	//
	// Returns:
	//   - The decoded transaction. A structurally incomplete response is
	//     returned as a Transaction that yields no event, not as an error,
	//     since re-fetching cannot fix it.
	//   - ErrRateLimited if the endpoint applied rate limiting, or another
	//     error for transient failures worth retrying on a later cycle.
	FetchTransaction(ctx context.Context, signature string) (transfer.Transaction, error)
}
