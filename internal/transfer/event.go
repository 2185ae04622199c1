package transfer

import (
	"time"

	"github.com/gabapcia/solwatch/internal/pkg/types"
)

// Direction indicates which way a detected transfer moved relative to the
// source wallet.
type Direction string

const (
	// DirectionOutbound marks a transfer from the source wallet to a target wallet.
	DirectionOutbound Direction = "outbound"

	// DirectionInbound marks a transfer from a target wallet to the source wallet.
	DirectionInbound Direction = "inbound"
)

// Event is a detected SOL movement between the source wallet and a member of
// the target group. Amount is always positive; Direction tells which side
// sent it.
type Event struct {
	Signature string         // Signature of the transaction that carried the transfer
	From      string         // Address the SOL left
	To        string         // Address the SOL arrived at
	Amount    types.Lamports // Transferred amount in lamports, always positive
	Direction Direction      // Movement relative to the source wallet
	BlockTime time.Time      // Block timestamp of the carrying transaction; may be zero
}
