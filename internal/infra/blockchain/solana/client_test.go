package solana

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/gabapcia/solwatch/internal/pkg/logger"
	"github.com/gabapcia/solwatch/internal/transferwatch"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	// Initialize logger for tests to prevent nil pointer dereference
	_ = logger.Init(logger.WithLevel("error")) // Use error level to reduce test output
}

const (
	sourceAddress  = "5tzFkiKscXHK5ZXCGbXZxdw7gTjjD1mBwuoFbhUvuAi9"
	targetAddressA = "77DXFZnMebramt4dXfdwem1AjnfNnVnG8FkcVWpSwdjB"

	testSignature = "5j7s6NiJS3JAkvgkoc18WVAsiSaci2pxB2A6ueCJP4tprA2TFg9wSyTLeYouxPBJEMzJinENTkpA52YStRW5Dia7"
)

type rpcClientMock struct {
	getSignaturesForAddressWithOptsFunc func(ctx context.Context, account solana.PublicKey, opts *rpc.GetSignaturesForAddressOpts) ([]*rpc.TransactionSignature, error)
	getTransactionFunc                  func(ctx context.Context, txSig solana.Signature, opts *rpc.GetTransactionOpts) (*rpc.GetTransactionResult, error)
}

func (m *rpcClientMock) GetSignaturesForAddressWithOpts(ctx context.Context, account solana.PublicKey, opts *rpc.GetSignaturesForAddressOpts) ([]*rpc.TransactionSignature, error) {
	return m.getSignaturesForAddressWithOptsFunc(ctx, account, opts)
}

func (m *rpcClientMock) GetTransaction(ctx context.Context, txSig solana.Signature, opts *rpc.GetTransactionOpts) (*rpc.GetTransactionResult, error) {
	return m.getTransactionFunc(ctx, txSig, opts)
}

// transactionResultFromJSON builds a GetTransactionResult the same way the
// RPC client does, by unmarshaling an endpoint response body.
func transactionResultFromJSON(t *testing.T, raw string) *rpc.GetTransactionResult {
	t.Helper()

	var result rpc.GetTransactionResult
	require.NoError(t, json.Unmarshal([]byte(raw), &result))

	return &result
}

func TestClientListRecentSignatures(t *testing.T) {
	t.Run("returns signatures in the order reported by the endpoint", func(t *testing.T) {
		var (
			gotAccount solana.PublicKey
			gotOpts    *rpc.GetSignaturesForAddressOpts
		)

		mock := &rpcClientMock{
			getSignaturesForAddressWithOptsFunc: func(_ context.Context, account solana.PublicKey, opts *rpc.GetSignaturesForAddressOpts) ([]*rpc.TransactionSignature, error) {
				gotAccount = account
				gotOpts = opts
				return []*rpc.TransactionSignature{
					{Signature: solana.MustSignatureFromBase58(testSignature)},
				}, nil
			},
		}

		c := NewClientWithRPC(mock)

		signatures, err := c.ListRecentSignatures(t.Context(), sourceAddress, 50)

		require.NoError(t, err)
		assert.Equal(t, []string{testSignature}, signatures)
		assert.Equal(t, solana.MustPublicKeyFromBase58(sourceAddress), gotAccount)

		require.NotNil(t, gotOpts)
		require.NotNil(t, gotOpts.Limit)
		assert.Equal(t, 50, *gotOpts.Limit)
		assert.Equal(t, rpc.CommitmentConfirmed, gotOpts.Commitment)
	})

	t.Run("applies the configured commitment level", func(t *testing.T) {
		var gotOpts *rpc.GetSignaturesForAddressOpts
		mock := &rpcClientMock{
			getSignaturesForAddressWithOptsFunc: func(_ context.Context, _ solana.PublicKey, opts *rpc.GetSignaturesForAddressOpts) ([]*rpc.TransactionSignature, error) {
				gotOpts = opts
				return nil, nil
			},
		}

		c := NewClientWithRPC(mock, WithCommitment("finalized"))

		_, err := c.ListRecentSignatures(t.Context(), sourceAddress, 10)

		require.NoError(t, err)
		require.NotNil(t, gotOpts)
		assert.Equal(t, rpc.CommitmentFinalized, gotOpts.Commitment)
	})

	t.Run("returns error for an address that is not a valid public key", func(t *testing.T) {
		called := false
		mock := &rpcClientMock{
			getSignaturesForAddressWithOptsFunc: func(context.Context, solana.PublicKey, *rpc.GetSignaturesForAddressOpts) ([]*rpc.TransactionSignature, error) {
				called = true
				return nil, nil
			},
		}

		c := NewClientWithRPC(mock)

		_, err := c.ListRecentSignatures(t.Context(), "definitely-not-base58!", 10)

		assert.Error(t, err)
		assert.False(t, called)
	})

	t.Run("maps rate limiting to ErrRateLimited", func(t *testing.T) {
		mock := &rpcClientMock{
			getSignaturesForAddressWithOptsFunc: func(context.Context, solana.PublicKey, *rpc.GetSignaturesForAddressOpts) ([]*rpc.TransactionSignature, error) {
				return nil, errors.New("429 Too Many Requests")
			},
		}

		c := NewClientWithRPC(mock)

		_, err := c.ListRecentSignatures(t.Context(), sourceAddress, 10)

		assert.ErrorIs(t, err, transferwatch.ErrRateLimited)
	})

	t.Run("passes other endpoint failures through unchanged", func(t *testing.T) {
		endpointErr := errors.New("connection reset by peer")
		mock := &rpcClientMock{
			getSignaturesForAddressWithOptsFunc: func(context.Context, solana.PublicKey, *rpc.GetSignaturesForAddressOpts) ([]*rpc.TransactionSignature, error) {
				return nil, endpointErr
			},
		}

		c := NewClientWithRPC(mock)

		_, err := c.ListRecentSignatures(t.Context(), sourceAddress, 10)

		assert.ErrorIs(t, err, endpointErr)
		assert.NotErrorIs(t, err, transferwatch.ErrRateLimited)
	})

	t.Run("bounds the call with the configured timeout", func(t *testing.T) {
		mock := &rpcClientMock{
			getSignaturesForAddressWithOptsFunc: func(ctx context.Context, _ solana.PublicKey, _ *rpc.GetSignaturesForAddressOpts) ([]*rpc.TransactionSignature, error) {
				deadline, ok := ctx.Deadline()
				assert.True(t, ok)
				assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, 5*time.Second)
				return nil, nil
			},
		}

		c := NewClientWithRPC(mock, WithRequestTimeout(time.Minute))

		_, err := c.ListRecentSignatures(t.Context(), sourceAddress, 10)

		require.NoError(t, err)
	})
}

func TestClientFetchTransaction(t *testing.T) {
	successResultJSON := `{
		"slot": 325071829,
		"blockTime": 1741944413,
		"meta": {
			"err": null,
			"fee": 5000,
			"preBalances": [600000000000, 100000000000, 1],
			"postBalances": [100000000000, 600000000000, 1]
		},
		"transaction": {
			"signatures": ["` + testSignature + `"],
			"message": {
				"accountKeys": ["` + sourceAddress + `", "` + targetAddressA + `", "11111111111111111111111111111111"],
				"instructions": [],
				"recentBlockhash": "EkSnNWid2cvwEVnVx9aBqawnmiCNiDgp3gUdkDPTKN1N"
			}
		}
	}`

	t.Run("converts the endpoint result to the balance level view", func(t *testing.T) {
		var (
			gotSig  solana.Signature
			gotOpts *rpc.GetTransactionOpts
		)

		mock := &rpcClientMock{
			getTransactionFunc: func(_ context.Context, txSig solana.Signature, opts *rpc.GetTransactionOpts) (*rpc.GetTransactionResult, error) {
				gotSig = txSig
				gotOpts = opts
				return transactionResultFromJSON(t, successResultJSON), nil
			},
		}

		c := NewClientWithRPC(mock)

		tx, err := c.FetchTransaction(t.Context(), testSignature)

		require.NoError(t, err)
		assert.Equal(t, testSignature, tx.Signature)
		assert.Equal(t, []string{sourceAddress, targetAddressA, "11111111111111111111111111111111"}, tx.AccountKeys)
		assert.Equal(t, []uint64{600_000_000_000, 100_000_000_000, 1}, tx.PreBalances)
		assert.Equal(t, []uint64{100_000_000_000, 600_000_000_000, 1}, tx.PostBalances)
		assert.False(t, tx.Failed)
		assert.Equal(t, time.Unix(1741944413, 0).UTC(), tx.BlockTime.UTC())

		assert.Equal(t, solana.MustSignatureFromBase58(testSignature), gotSig)
		require.NotNil(t, gotOpts)
		assert.Equal(t, solana.EncodingBase64, gotOpts.Encoding)
		assert.Equal(t, rpc.CommitmentConfirmed, gotOpts.Commitment)
		require.NotNil(t, gotOpts.MaxSupportedTransactionVersion)
		assert.Equal(t, uint64(0), *gotOpts.MaxSupportedTransactionVersion)
	})

	t.Run("flags failed transactions", func(t *testing.T) {
		failedResultJSON := `{
			"slot": 325071829,
			"blockTime": 1741944413,
			"meta": {
				"err": {"InstructionError": [0, {"Custom": 1}]},
				"preBalances": [600000000000, 100000000000],
				"postBalances": [100000000000, 600000000000]
			},
			"transaction": {
				"signatures": ["` + testSignature + `"],
				"message": {
					"accountKeys": ["` + sourceAddress + `", "` + targetAddressA + `"],
					"instructions": [],
					"recentBlockhash": "EkSnNWid2cvwEVnVx9aBqawnmiCNiDgp3gUdkDPTKN1N"
				}
			}
		}`

		mock := &rpcClientMock{
			getTransactionFunc: func(context.Context, solana.Signature, *rpc.GetTransactionOpts) (*rpc.GetTransactionResult, error) {
				return transactionResultFromJSON(t, failedResultJSON), nil
			},
		}

		c := NewClientWithRPC(mock)

		tx, err := c.FetchTransaction(t.Context(), testSignature)

		require.NoError(t, err)
		assert.True(t, tx.Failed)
	})

	t.Run("returns an incomplete view when the result has no meta", func(t *testing.T) {
		noMetaJSON := `{
			"slot": 325071829,
			"blockTime": 1741944413,
			"transaction": {
				"signatures": ["` + testSignature + `"],
				"message": {
					"accountKeys": ["` + sourceAddress + `"],
					"instructions": [],
					"recentBlockhash": "EkSnNWid2cvwEVnVx9aBqawnmiCNiDgp3gUdkDPTKN1N"
				}
			}
		}`

		mock := &rpcClientMock{
			getTransactionFunc: func(context.Context, solana.Signature, *rpc.GetTransactionOpts) (*rpc.GetTransactionResult, error) {
				return transactionResultFromJSON(t, noMetaJSON), nil
			},
		}

		c := NewClientWithRPC(mock)

		tx, err := c.FetchTransaction(t.Context(), testSignature)

		require.NoError(t, err)
		assert.Equal(t, testSignature, tx.Signature)
		assert.Empty(t, tx.AccountKeys)
		assert.Empty(t, tx.PreBalances)
		assert.Empty(t, tx.PostBalances)
	})

	t.Run("returns error when the endpoint has no record of the transaction", func(t *testing.T) {
		mock := &rpcClientMock{
			getTransactionFunc: func(context.Context, solana.Signature, *rpc.GetTransactionOpts) (*rpc.GetTransactionResult, error) {
				return nil, nil
			},
		}

		c := NewClientWithRPC(mock)

		_, err := c.FetchTransaction(t.Context(), testSignature)

		assert.Error(t, err)
	})

	t.Run("maps rate limiting to ErrRateLimited", func(t *testing.T) {
		mock := &rpcClientMock{
			getTransactionFunc: func(context.Context, solana.Signature, *rpc.GetTransactionOpts) (*rpc.GetTransactionResult, error) {
				return nil, errors.New("too many requests")
			},
		}

		c := NewClientWithRPC(mock)

		_, err := c.FetchTransaction(t.Context(), testSignature)

		assert.ErrorIs(t, err, transferwatch.ErrRateLimited)
	})

	t.Run("returns error for a signature that is not base58", func(t *testing.T) {
		called := false
		mock := &rpcClientMock{
			getTransactionFunc: func(context.Context, solana.Signature, *rpc.GetTransactionOpts) (*rpc.GetTransactionResult, error) {
				called = true
				return nil, nil
			},
		}

		c := NewClientWithRPC(mock)

		_, err := c.FetchTransaction(t.Context(), "not-a-signature!")

		assert.Error(t, err)
		assert.False(t, called)
	})
}
