package transfer

import (
	"github.com/gabapcia/solwatch/internal/pkg/types"
	"github.com/gabapcia/solwatch/internal/walletregistry"
)

// Detect scans a transaction's balance movements for a SOL transfer between
// the registry's source wallet and one of its target wallets.
//
// A registered account with a nonzero balance delta is paired with every
// other registered account that also moved; the first pair connecting the
// source wallet to a target wallet produces the event. The direction is
// keyed off the sign of the first account's delta: a negative delta means it
// sent the SOL, a positive one means it received it. The reported amount is
// that account's absolute delta.
//
// Failed and structurally incomplete transactions never yield an event. The
// boolean is false when no qualifying transfer was found.
func Detect(tx Transaction, registry *walletregistry.Registry) (Event, bool) {
	if tx.Failed {
		return Event{}, false
	}
	if len(tx.PreBalances) != len(tx.AccountKeys) || len(tx.PostBalances) != len(tx.AccountKeys) {
		return Event{}, false
	}

	for i, account := range tx.AccountKeys {
		if !registry.Contains(account) {
			continue
		}

		delta := types.BalanceDelta(tx.PreBalances[i], tx.PostBalances[i])
		if delta == 0 {
			continue
		}

		for j, counterparty := range tx.AccountKeys {
			if counterparty == account || !registry.Contains(counterparty) {
				continue
			}
			if types.BalanceDelta(tx.PreBalances[j], tx.PostBalances[j]) == 0 {
				continue
			}

			from, to := counterparty, account
			if delta < 0 {
				from, to = account, counterparty
			}

			direction, ok := classify(registry, from, to)
			if !ok {
				continue
			}

			return Event{
				Signature: tx.Signature,
				From:      from,
				To:        to,
				Amount:    delta.Abs(),
				Direction: direction,
				BlockTime: tx.BlockTime,
			}, true
		}
	}

	return Event{}, false
}

// classify resolves the transfer direction for a candidate pair. Only pairs
// connecting the source wallet with a target wallet qualify; movements
// between two targets, or involving only one registered side, do not.
func classify(registry *walletregistry.Registry, from, to string) (Direction, bool) {
	switch {
	case registry.IsSource(from) && registry.IsTarget(to):
		return DirectionOutbound, true
	case registry.IsTarget(from) && registry.IsSource(to):
		return DirectionInbound, true
	default:
		return "", false
	}
}
