package walletregistry

import (
	"errors"
	"fmt"
	"slices"

	"github.com/gabapcia/solwatch/internal/pkg/types"
	"github.com/gabapcia/solwatch/internal/pkg/validator"
)

var (
	// ErrNoTargets is returned by New when the target group is empty.
	ErrNoTargets = errors.New("registry requires at least one target wallet")

	// ErrDuplicateWalletAddress is returned by New when the same address
	// appears more than once across the source wallet and the target group.
	ErrDuplicateWalletAddress = errors.New("wallet address registered more than once")
)

// Registry is the fixed classification of the watched wallets: one source
// wallet plus an ordered group of target wallets, each carrying a display
// label. It is built once at startup and its observable state never changes
// afterwards, so it is safe for concurrent reads.
type Registry struct {
	source  Wallet
	targets []Wallet

	targetSet types.Set[string]
	labels    types.DefaultMap[string, string]
}

// New builds a Registry from the source wallet and the target group. Every
// wallet is validated, the group must not be empty, and an address may hold
// only one role: any address appearing twice, in either role, is rejected
// with ErrDuplicateWalletAddress.
func New(source Wallet, targets []Wallet) (*Registry, error) {
	if len(targets) == 0 {
		return nil, ErrNoTargets
	}

	wallets := append([]Wallet{source}, targets...)

	seen := types.NewSet[string]()
	labels := types.NewDefaultMap[string, string](UnknownLabel)
	for _, w := range wallets {
		if err := validator.Validate(w); err != nil {
			return nil, err
		}

		if seen.Contains(w.Address) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateWalletAddress, w.Address)
		}

		seen.Add(w.Address)
		labels.Set(w.Address, w.Label)
	}

	targetSet := types.NewSet[string]()
	for _, t := range targets {
		targetSet.Add(t.Address)
	}

	return &Registry{
		source:    source,
		targets:   slices.Clone(targets),
		targetSet: targetSet,
		labels:    labels,
	}, nil
}

// Source returns the source wallet.
func (r *Registry) Source() Wallet {
	return r.source
}

// Targets returns the target group in registration order. The returned slice
// is a copy and may be modified freely.
func (r *Registry) Targets() []Wallet {
	return slices.Clone(r.targets)
}

// All returns every registered wallet, source first and targets following in
// registration order.
func (r *Registry) All() []Wallet {
	return append([]Wallet{r.source}, r.targets...)
}

// Contains reports whether the address belongs to the registry, in either
// role.
func (r *Registry) Contains(address string) bool {
	return r.IsSource(address) || r.IsTarget(address)
}

// IsSource reports whether the address is the source wallet.
func (r *Registry) IsSource(address string) bool {
	return address == r.source.Address
}

// IsTarget reports whether the address belongs to the target group.
func (r *Registry) IsTarget(address string) bool {
	return r.targetSet.Contains(address)
}

// RoleOf returns the role held by the address within the registry. The
// boolean is false when the address is not registered.
func (r *Registry) RoleOf(address string) (Role, bool) {
	switch {
	case r.IsSource(address):
		return RoleSource, true
	case r.IsTarget(address):
		return RoleTarget, true
	default:
		return "", false
	}
}

// LabelOf returns the display label registered for the address, or
// UnknownLabel when the address is not part of the registry.
func (r *Registry) LabelOf(address string) string {
	return r.labels.Get(address)
}
