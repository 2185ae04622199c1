package types

import (
	"github.com/shopspring/decimal"
)

// solExponent is the power of ten between the minor unit and the display
// unit: one SOL equals 10^9 lamports.
const solExponent = 9

// Lamports represents an amount of SOL in its integer minor unit.
// Balance arithmetic and comparisons stay in whole lamports to avoid
// floating-point equality issues; conversion to a fractional SOL value
// happens only at the human-facing edges.
type Lamports int64

// BalanceDelta returns the signed lamport change between a pre-transaction
// and a post-transaction balance. Balances arrive from the chain as
// unsigned 64-bit values; converting through int64 is safe because the
// total supply is far below the int64 range.
func BalanceDelta(pre, post uint64) Lamports {
	return Lamports(int64(post) - int64(pre))
}

// LamportsFromSOL converts a decimal SOL amount to whole lamports,
// truncating anything below one lamport.
func LamportsFromSOL(sol decimal.Decimal) Lamports {
	return Lamports(sol.Shift(solExponent).IntPart())
}

// Abs returns the absolute value.
func (l Lamports) Abs() Lamports {
	if l < 0 {
		return -l
	}
	return l
}

// SOL converts the lamport amount to its decimal SOL representation.
func (l Lamports) SOL() decimal.Decimal {
	return decimal.New(int64(l), -solExponent)
}
