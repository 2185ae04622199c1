package file

import (
	"context"
	"encoding/csv"
	"os"
	"strconv"
	"sync"

	"github.com/gabapcia/solwatch/internal/transfersink"
)

// ledgerHeader is the CSV header row written once when a ledger file is
// created. Column order matches the row layout produced by appendRow.
var ledgerHeader = []string{
	"timestamp",
	"unix_timestamp",
	"signature",
	"from_wallet",
	"to_wallet",
	"amount_sol",
	"direction",
	"counterparty_label",
}

// transferLedger appends detected transfers to a CSV file. Rows are flushed
// on every append so a crash loses at most the record being written.
type transferLedger struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// Close releases the underlying file handle.
func (l *transferLedger) Close() error {
	return l.file.Close()
}

// AppendRecord writes the record as a single CSV row and flushes it to the
// file before returning.
func (l *transferLedger) AppendRecord(_ context.Context, record transfersink.Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	row := []string{
		record.Timestamp,
		strconv.FormatInt(record.UnixTimestamp, 10),
		record.Signature,
		record.FromWallet,
		record.ToWallet,
		record.AmountSOL,
		record.Direction,
		record.CounterpartyLabel,
	}

	if err := l.writer.Write(row); err != nil {
		return err
	}

	l.writer.Flush()
	return l.writer.Error()
}

// NewTransferLedger opens the CSV ledger at path, creating it when absent.
// The header row is written only when the file is empty, so reopening an
// existing ledger keeps appending below the rows already there.
func NewTransferLedger(path string) (*transferLedger, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, err
	}

	writer := csv.NewWriter(file)
	if info.Size() == 0 {
		if err := writer.Write(ledgerHeader); err != nil {
			_ = file.Close()
			return nil, err
		}

		writer.Flush()
		if err := writer.Error(); err != nil {
			_ = file.Close()
			return nil, err
		}
	}

	return &transferLedger{
		file:   file,
		writer: writer,
	}, nil
}

// Ensure the ledger satisfies the LedgerStorage interface at compile time.
var _ transfersink.LedgerStorage = (*transferLedger)(nil)
