package transfersink

import (
	"github.com/gabapcia/solwatch/internal/transfer"
	"github.com/gabapcia/solwatch/internal/walletregistry"
)

// recordTimestampLayout is the human-readable timestamp format used in
// ledger records. Rendered in UTC.
const recordTimestampLayout = "2006-01-02 15:04:05"

// amountDecimalPlaces is the number of decimal places used when rendering
// SOL amounts in records and notifications.
const amountDecimalPlaces = 6

// Record is a single ledger entry describing one detected transfer. All
// fields are pre-rendered strings or plain integers so storage
// implementations can persist them without further interpretation.
type Record struct {
	Timestamp         string // Block time formatted as "2006-01-02 15:04:05" in UTC; empty when unknown
	UnixTimestamp     int64  // Block time as Unix seconds; zero when unknown
	Signature         string // Signature of the transaction that carried the transfer
	FromWallet        string // Address the SOL left
	ToWallet          string // Address the SOL arrived at
	AmountSOL         string // Transferred amount in SOL with six decimal places
	Direction         string // "outbound" or "inbound", relative to the source wallet
	CounterpartyLabel string // Display label of the wallet on the non-source side
}

// buildRecord assembles the ledger record for a detected transfer. The
// counterparty label is resolved from the registry for whichever side of the
// transfer is not the source wallet.
func buildRecord(event transfer.Event, registry *walletregistry.Registry) Record {
	var (
		timestamp     string
		unixTimestamp int64
	)
	if !event.BlockTime.IsZero() {
		timestamp = event.BlockTime.UTC().Format(recordTimestampLayout)
		unixTimestamp = event.BlockTime.Unix()
	}

	counterparty := event.To
	if event.Direction == transfer.DirectionInbound {
		counterparty = event.From
	}

	return Record{
		Timestamp:         timestamp,
		UnixTimestamp:     unixTimestamp,
		Signature:         event.Signature,
		FromWallet:        event.From,
		ToWallet:          event.To,
		AmountSOL:         event.Amount.SOL().StringFixed(amountDecimalPlaces),
		Direction:         string(event.Direction),
		CounterpartyLabel: registry.LabelOf(counterparty),
	}
}
