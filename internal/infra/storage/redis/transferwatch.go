package redis

import (
	"context"

	"github.com/gabapcia/solwatch/internal/transferwatch"
)

// transferwatchProcessedSignaturesKey is the Redis key of the set holding
// every transaction signature that has already been processed. Entries are
// never expired, mirroring the append-only file layout.
const transferwatchProcessedSignaturesKey = "transferwatch:processed-signatures"

// Contains reports whether the signature is present in the processed set.
func (s *client) Contains(ctx context.Context, signature string) (bool, error) {
	return s.conn.SIsMember(ctx, transferwatchProcessedSignaturesKey, signature).Result()
}

// MarkProcessed adds the signature to the processed set. Adding a signature
// that is already present is a no-op.
func (s *client) MarkProcessed(ctx context.Context, signature string) error {
	return s.conn.SAdd(ctx, transferwatchProcessedSignaturesKey, signature).Err()
}

// Ensure the client satisfies the ProcessedSet interface at compile time.
var _ transferwatch.ProcessedSet = new(client)
