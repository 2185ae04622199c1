package walletregistry

// Role classifies a registry wallet as either the single source wallet or a
// member of the target group.
type Role string

const (
	// RoleSource marks the distinguished wallet whose transfers to and from
	// the target group are of interest.
	RoleSource Role = "source"

	// RoleTarget marks a wallet in the counterparty group.
	RoleTarget Role = "target"
)

// UnknownLabel is the display label returned for addresses the registry
// does not know about.
const UnknownLabel = "Unknown Wallet"

// Wallet couples a base58 wallet address with its human-readable display
// label (e.g. "Binance Hot Wallet").
//
// Both fields are required and validated when the registry is built.
type Wallet struct {
	Address string `json:"address" validate:"required,base58"` // Wallet address being watched
	Label   string `json:"label"   validate:"required"`        // Display label used in records and notifications
}
