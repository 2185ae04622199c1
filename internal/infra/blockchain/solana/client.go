// Package solana implements the transferwatch.TransactionSource interface on
// top of the Solana JSON-RPC API using the solana-go client.
package solana

import (
	"context"
	"time"

	"github.com/gabapcia/solwatch/internal/transferwatch"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

const (
	// defaultCommitment is the confirmation level queried when none is
	// configured.
	defaultCommitment = rpc.CommitmentConfirmed

	// defaultRequestTimeout bounds every RPC call so a stalled endpoint
	// cannot block the watch loop indefinitely.
	defaultRequestTimeout = 30 * time.Second
)

// RPCClient is the subset of the solana-go RPC client used by this package.
// It matches the method set of *rpc.Client, so the real client satisfies it
// directly while tests can substitute their own.
type RPCClient interface {
	GetSignaturesForAddressWithOpts(
		ctx context.Context,
		account solana.PublicKey,
		opts *rpc.GetSignaturesForAddressOpts,
	) ([]*rpc.TransactionSignature, error)

	GetTransaction(
		ctx context.Context,
		txSig solana.Signature,
		opts *rpc.GetTransactionOpts,
	) (*rpc.GetTransactionResult, error)
}

// client implements the transferwatch.TransactionSource interface for the
// Solana network.
type client struct {
	rpc        RPCClient          // underlying RPC client used to query the endpoint
	commitment rpc.CommitmentType // confirmation level applied to every query
	timeout    time.Duration      // per-call timeout
}

// Ensure client implements the transferwatch.TransactionSource interface at
// compile time.
var _ transferwatch.TransactionSource = (*client)(nil)

type config struct {
	commitment rpc.CommitmentType
	timeout    time.Duration
}

type Option func(*config)

// NewClient creates a transaction source backed by the Solana JSON-RPC
// endpoint at the given URL. Premium endpoints that require API keys take
// them as part of the URL.
func NewClient(endpoint string, opts ...Option) *client {
	return NewClientWithRPC(rpc.New(endpoint), opts...)
}

// NewClientWithRPC creates a transaction source on top of an existing RPC
// client.
func NewClientWithRPC(rpcClient RPCClient, opts ...Option) *client {
	cfg := config{
		commitment: defaultCommitment,
		timeout:    defaultRequestTimeout,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &client{
		rpc:        rpcClient,
		commitment: cfg.commitment,
		timeout:    cfg.timeout,
	}
}

// WithCommitment overrides the confirmation level applied to every query
// (e.g. "confirmed", "finalized").
func WithCommitment(commitment string) Option {
	return func(c *config) {
		c.commitment = rpc.CommitmentType(commitment)
	}
}

// WithRequestTimeout overrides the per-call timeout.
func WithRequestTimeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}
