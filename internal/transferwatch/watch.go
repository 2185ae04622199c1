package transferwatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gabapcia/solwatch/internal/pkg/logger"
	"github.com/gabapcia/solwatch/internal/pkg/x/chflow"
	"github.com/gabapcia/solwatch/internal/transfer"
	"github.com/gabapcia/solwatch/internal/walletregistry"
)

// run executes fetch-and-process cycles until ctx is canceled. The in-flight
// cycle always runs to completion: cancellation takes effect only between
// cycles.
func (s *service) run(ctx context.Context, done chan<- struct{}) {
	defer func() { done <- struct{}{} }()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		delay := s.runCycle(context.WithoutCancel(ctx))

		if !chflow.Sleep(ctx, delay) {
			return
		}
	}
}

// runCycle processes every registry wallet once, source wallet first, and
// reports how long the loop should wait before the next cycle: the regular
// poll interval after a clean cycle, the error cooldown after a degraded
// one, or the rate limit cooldown when the endpoint pushed back.
func (s *service) runCycle(ctx context.Context) time.Duration {
	var degraded bool

	for _, wallet := range s.registry.All() {
		err := s.processWalletActivity(ctx, wallet)
		switch {
		case errors.Is(err, ErrRateLimited):
			logger.Warn(ctx, "rpc endpoint rate limited, pausing cycle",
				"wallet.address", wallet.Address,
				"wallet.label", wallet.Label,
			)
			return s.rateLimitCooldown
		case err != nil:
			degraded = true
			logger.Error(ctx, "error processing wallet activity",
				"wallet.address", wallet.Address,
				"wallet.label", wallet.Label,
				"error", err,
			)
		}
	}

	if degraded {
		return s.errorCooldown
	}
	return s.pollInterval
}

// processWalletActivity lists the wallet's recent signatures and evaluates
// the ones not yet processed, in listing order. Signature-level failures do
// not stop the scan; they are joined and reported together so the affected
// signatures are retried on a later cycle. Rate limiting aborts the scan
// immediately.
func (s *service) processWalletActivity(ctx context.Context, wallet walletregistry.Wallet) error {
	signatures, err := s.source.ListRecentSignatures(ctx, wallet.Address, s.signatureLimit)
	if err != nil {
		return err
	}

	var errs []error
	for _, signature := range signatures {
		if err := s.processSignature(ctx, signature); err != nil {
			if errors.Is(err, ErrRateLimited) {
				return err
			}
			errs = append(errs, fmt.Errorf("signature %s: %w", signature, err))
		}
	}

	return errors.Join(errs...)
}

// processSignature evaluates a single transaction signature end to end:
// dedup check, detail fetch, detection, recording, processed marking.
//
// The signature is marked processed whether or not it carried a qualifying
// transfer, so it is never evaluated again. It is deliberately left unmarked
// when the detail fetch or the recording fails, so the next cycle retries
// it. A failed durable marking is logged but tolerated: the in-memory
// marking holds for the rest of the process lifetime.
func (s *service) processSignature(ctx context.Context, signature string) error {
	processed, err := s.processed.Contains(ctx, signature)
	if err != nil {
		return err
	}
	if processed {
		return nil
	}

	tx, err := s.source.FetchTransaction(ctx, signature)
	if err != nil {
		return err
	}

	if event, ok := transfer.Detect(tx, s.registry); ok {
		if err := s.recorder.RecordTransfer(ctx, event); err != nil {
			return err
		}

		logger.Info(ctx, "transfer recorded",
			"transfer.signature", event.Signature,
			"transfer.direction", string(event.Direction),
			"transfer.amount_sol", event.Amount.SOL().String(),
		)
	}

	if err := s.processed.MarkProcessed(ctx, signature); err != nil {
		logger.Error(ctx, "error marking signature as processed",
			"transaction.signature", signature,
			"error", err,
		)
	}

	return nil
}
