package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/gabapcia/solwatch/internal/walletregistry"
)

// watchlistDocument mirrors the watchlist JSON file layout: one source
// wallet and the group of target wallets it is watched against.
type watchlistDocument struct {
	Source  walletregistry.Wallet   `json:"source"`
	Targets []walletregistry.Wallet `json:"targets"`
}

// LoadWatchlist reads the watchlist file at path and builds the wallet
// registry from it. Address validation and duplicate checks happen inside
// the registry constructor.
func LoadWatchlist(path string) (*walletregistry.Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading watchlist: %w", err)
	}

	var doc watchlistDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing watchlist %s: %w", path, err)
	}

	return walletregistry.New(doc.Source, doc.Targets)
}
