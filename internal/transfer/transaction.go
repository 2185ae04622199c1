package transfer

import "time"

// Transaction is the balance-level view of a confirmed transaction, reduced
// to the pieces transfer detection needs: the accounts it touched and their
// lamport balances before and after execution.
//
// PreBalances and PostBalances are positionally aligned with AccountKeys. A
// transaction whose balance arrays do not line up with its account keys is
// structurally incomplete and never yields an event.
type Transaction struct {
	Signature    string    // Unique transaction signature
	AccountKeys  []string  // Addresses touched by the transaction, in message order
	PreBalances  []uint64  // Lamport balances before execution, aligned with AccountKeys
	PostBalances []uint64  // Lamport balances after execution, aligned with AccountKeys
	Failed       bool      // Whether on-chain execution failed
	BlockTime    time.Time // Block timestamp; zero when the ledger did not record one
}
