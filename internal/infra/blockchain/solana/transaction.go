package solana

import (
	"context"
	"fmt"
	"strings"

	"github.com/gabapcia/solwatch/internal/pkg/logger"
	"github.com/gabapcia/solwatch/internal/transfer"
	"github.com/gabapcia/solwatch/internal/transferwatch"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// maxSupportedTransactionVersion opts in to versioned transactions; without
// it the endpoint rejects any transaction newer than the legacy format.
var maxSupportedTransactionVersion = uint64(0)

// ListRecentSignatures implements transferwatch.TransactionSource. It
// returns the signatures of the most recent transactions that touched the
// address, in the order reported by the endpoint (newest first).
func (c *client) ListRecentSignatures(ctx context.Context, address string, limit int) ([]string, error) {
	account, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return nil, fmt.Errorf("invalid wallet address %q: %w", address, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	signatures, err := c.rpc.GetSignaturesForAddressWithOpts(ctx, account, &rpc.GetSignaturesForAddressOpts{
		Limit:      &limit,
		Commitment: c.commitment,
	})
	if err != nil {
		return nil, mapRPCError(err)
	}

	out := make([]string, len(signatures))
	for i, signature := range signatures {
		out[i] = signature.Signature.String()
	}

	return out, nil
}

// FetchTransaction implements transferwatch.TransactionSource. Transport
// failures are returned so the signature is retried on a later cycle; a
// response that arrives but cannot be interpreted produces a Transaction
// with no account data, since re-fetching will not fix the payload.
func (c *client) FetchTransaction(ctx context.Context, signature string) (transfer.Transaction, error) {
	txSig, err := solana.SignatureFromBase58(signature)
	if err != nil {
		return transfer.Transaction{}, fmt.Errorf("invalid transaction signature %q: %w", signature, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	result, err := c.rpc.GetTransaction(ctx, txSig, &rpc.GetTransactionOpts{
		Encoding:                       solana.EncodingBase64,
		Commitment:                     c.commitment,
		MaxSupportedTransactionVersion: &maxSupportedTransactionVersion,
	})
	if err != nil {
		return transfer.Transaction{}, mapRPCError(err)
	}
	if result == nil {
		return transfer.Transaction{}, fmt.Errorf("transaction %s not available from endpoint", signature)
	}

	return toTransferTransaction(ctx, signature, result), nil
}

// toTransferTransaction converts an RPC result into the balance-level view
// used by transfer detection.
func toTransferTransaction(ctx context.Context, signature string, result *rpc.GetTransactionResult) transfer.Transaction {
	tx := transfer.Transaction{Signature: signature}

	if result.BlockTime != nil {
		tx.BlockTime = result.BlockTime.Time()
	}

	if result.Meta == nil {
		logger.Warn(ctx, "transaction result missing meta",
			"transaction.signature", signature,
		)
		return tx
	}
	tx.Failed = result.Meta.Err != nil

	if result.Transaction == nil {
		logger.Warn(ctx, "transaction result missing payload",
			"transaction.signature", signature,
		)
		return tx
	}

	decoded, err := result.Transaction.GetTransaction()
	if err != nil || decoded == nil {
		logger.Warn(ctx, "error decoding transaction payload",
			"transaction.signature", signature,
			"error", err,
		)
		return tx
	}

	tx.AccountKeys = make([]string, len(decoded.Message.AccountKeys))
	for i, key := range decoded.Message.AccountKeys {
		tx.AccountKeys[i] = key.String()
	}
	tx.PreBalances = result.Meta.PreBalances
	tx.PostBalances = result.Meta.PostBalances

	return tx
}

// mapRPCError translates endpoint failures into the domain sentinels the
// watch loop reacts to. Rate limiting surfaces as
// transferwatch.ErrRateLimited; everything else passes through unchanged.
func mapRPCError(err error) error {
	if isRateLimited(err) {
		return fmt.Errorf("%w: %v", transferwatch.ErrRateLimited, err)
	}
	return err
}

// isRateLimited reports whether the error looks like an HTTP 429 from the
// endpoint. The RPC client does not expose a typed error for it, so the
// check falls back to the status text.
func isRateLimited(err error) bool {
	if err == nil {
		return false
	}

	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(strings.ToLower(msg), "too many requests")
}
