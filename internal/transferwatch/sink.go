package transferwatch

import (
	"context"

	"github.com/gabapcia/solwatch/internal/transfer"
)

// TransferRecorder persists detected transfers. A non-nil error means the
// transfer was not durably recorded; the watch loop then leaves the carrying
// signature unmarked so the transfer is re-evaluated on a later cycle.
type TransferRecorder interface {
	RecordTransfer(ctx context.Context, event transfer.Event) error
}
