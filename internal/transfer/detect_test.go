package transfer

import (
	"testing"
	"time"

	"github.com/gabapcia/solwatch/internal/pkg/types"
	"github.com/gabapcia/solwatch/internal/walletregistry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	sourceAddress    = "5tzFkiKscXHK5ZXCGbXZxdw7gTjjD1mBwuoFbhUvuAi9"
	targetAddressA   = "77DXFZnMebramt4dXfdwem1AjnfNnVnG8FkcVWpSwdjB"
	targetAddressB   = "ApQnTEGUNsKsM48AjFLy1yDukBwk8WgjorYe6KduVmnr"
	bystanderAddress = "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM"

	testSignature = "5j7s6NiJS3JAkvgkoc18WVAsiSaci2pxB2A6ueCJP4tprA2TFg9wSyTLeYouxPBJEMzJinENTkpA52YStRW5Dia7"
)

func newDetectRegistry(t *testing.T) *walletregistry.Registry {
	t.Helper()

	registry, err := walletregistry.New(
		walletregistry.Wallet{Address: sourceAddress, Label: "Binance Hot Wallet"},
		[]walletregistry.Wallet{
			{Address: targetAddressA, Label: "Gate.io Deposit"},
			{Address: targetAddressB, Label: "Backpack Exchange Deposit"},
		},
	)
	require.NoError(t, err)

	return registry
}

func TestDetect(t *testing.T) {
	t.Run("outbound transfer from the source wallet to a target", func(t *testing.T) {
		registry := newDetectRegistry(t)
		blockTime := time.Date(2025, time.March, 14, 9, 26, 53, 0, time.UTC)

		tx := Transaction{
			Signature:    testSignature,
			AccountKeys:  []string{sourceAddress, targetAddressA, bystanderAddress},
			PreBalances:  []uint64{600_000_000_000, 100_000_000_000, 50_000_000_000},
			PostBalances: []uint64{100_000_000_000, 600_000_000_000, 50_000_000_000},
			BlockTime:    blockTime,
		}

		event, ok := Detect(tx, registry)

		require.True(t, ok)
		assert.Equal(t, Event{
			Signature: testSignature,
			From:      sourceAddress,
			To:        targetAddressA,
			Amount:    types.Lamports(500_000_000_000),
			Direction: DirectionOutbound,
			BlockTime: blockTime,
		}, event)
	})

	t.Run("inbound transfer from a target to the source wallet", func(t *testing.T) {
		registry := newDetectRegistry(t)

		tx := Transaction{
			Signature:    testSignature,
			AccountKeys:  []string{targetAddressA, sourceAddress},
			PreBalances:  []uint64{600_000_000_000, 100_000_000_000},
			PostBalances: []uint64{100_000_000_000, 600_000_000_000},
		}

		event, ok := Detect(tx, registry)

		require.True(t, ok)
		assert.Equal(t, targetAddressA, event.From)
		assert.Equal(t, sourceAddress, event.To)
		assert.Equal(t, types.Lamports(500_000_000_000), event.Amount)
		assert.Equal(t, DirectionInbound, event.Direction)
		assert.True(t, event.BlockTime.IsZero())
	})

	t.Run("direction follows balance deltas regardless of key order", func(t *testing.T) {
		registry := newDetectRegistry(t)

		tx := Transaction{
			Signature:    testSignature,
			AccountKeys:  []string{targetAddressA, sourceAddress},
			PreBalances:  []uint64{100_000_000_000, 600_000_000_000},
			PostBalances: []uint64{600_000_000_000, 100_000_000_000},
		}

		event, ok := Detect(tx, registry)

		require.True(t, ok)
		assert.Equal(t, sourceAddress, event.From)
		assert.Equal(t, targetAddressA, event.To)
		assert.Equal(t, DirectionOutbound, event.Direction)
	})

	t.Run("amount reflects the first registered account that moved", func(t *testing.T) {
		registry := newDetectRegistry(t)

		tx := Transaction{
			Signature:    testSignature,
			AccountKeys:  []string{sourceAddress, targetAddressA, targetAddressB},
			PreBalances:  []uint64{100_000_000_000, 50_000_000_000, 50_000_000_000},
			PostBalances: []uint64{90_000_000_000, 54_000_000_000, 56_000_000_000},
		}

		event, ok := Detect(tx, registry)

		require.True(t, ok)
		assert.Equal(t, targetAddressA, event.To)
		assert.Equal(t, types.Lamports(10_000_000_000), event.Amount)
	})

	t.Run("ignores movements between two target wallets", func(t *testing.T) {
		registry := newDetectRegistry(t)

		tx := Transaction{
			Signature:    testSignature,
			AccountKeys:  []string{targetAddressA, targetAddressB},
			PreBalances:  []uint64{600_000_000_000, 100_000_000_000},
			PostBalances: []uint64{100_000_000_000, 600_000_000_000},
		}

		_, ok := Detect(tx, registry)

		assert.False(t, ok)
	})

	t.Run("ignores transactions that touch no registered wallet", func(t *testing.T) {
		registry := newDetectRegistry(t)

		tx := Transaction{
			Signature:    testSignature,
			AccountKeys:  []string{bystanderAddress, "3Kq9CCG22AEkfJWaJ6JrxzGH2tPGf8LRfFefoPP45j3w"},
			PreBalances:  []uint64{600_000_000_000, 100_000_000_000},
			PostBalances: []uint64{100_000_000_000, 600_000_000_000},
		}

		_, ok := Detect(tx, registry)

		assert.False(t, ok)
	})

	t.Run("ignores transfers whose counterparty is not registered", func(t *testing.T) {
		registry := newDetectRegistry(t)

		tx := Transaction{
			Signature:    testSignature,
			AccountKeys:  []string{sourceAddress, bystanderAddress},
			PreBalances:  []uint64{600_000_000_000, 100_000_000_000},
			PostBalances: []uint64{100_000_000_000, 600_000_000_000},
		}

		_, ok := Detect(tx, registry)

		assert.False(t, ok)
	})

	t.Run("ignores failed transactions", func(t *testing.T) {
		registry := newDetectRegistry(t)

		tx := Transaction{
			Signature:    testSignature,
			AccountKeys:  []string{sourceAddress, targetAddressA},
			PreBalances:  []uint64{600_000_000_000, 100_000_000_000},
			PostBalances: []uint64{100_000_000_000, 600_000_000_000},
			Failed:       true,
		}

		_, ok := Detect(tx, registry)

		assert.False(t, ok)
	})

	t.Run("ignores transactions with misaligned balance arrays", func(t *testing.T) {
		registry := newDetectRegistry(t)

		tx := Transaction{
			Signature:    testSignature,
			AccountKeys:  []string{sourceAddress, targetAddressA},
			PreBalances:  []uint64{600_000_000_000},
			PostBalances: []uint64{100_000_000_000, 600_000_000_000},
		}

		_, ok := Detect(tx, registry)

		assert.False(t, ok)
	})

	t.Run("does not pair an account with another slot holding the same address", func(t *testing.T) {
		registry := newDetectRegistry(t)

		tx := Transaction{
			Signature:    testSignature,
			AccountKeys:  []string{sourceAddress, sourceAddress},
			PreBalances:  []uint64{600_000_000_000, 100_000_000_000},
			PostBalances: []uint64{100_000_000_000, 600_000_000_000},
		}

		_, ok := Detect(tx, registry)

		assert.False(t, ok)
	})

	t.Run("skips registered accounts whose balance did not move", func(t *testing.T) {
		registry := newDetectRegistry(t)

		tx := Transaction{
			Signature:    testSignature,
			AccountKeys:  []string{sourceAddress, targetAddressA, bystanderAddress},
			PreBalances:  []uint64{500_000_000_000, 400_000_000_000, 100_000_000_000},
			PostBalances: []uint64{500_000_000_000, 100_000_000_000, 400_000_000_000},
		}

		_, ok := Detect(tx, registry)

		assert.False(t, ok)
	})
}
