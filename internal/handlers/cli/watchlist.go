package cli

import (
	"context"
	"fmt"

	"github.com/gabapcia/solwatch/internal/walletregistry"

	"github.com/urfave/cli/v3"
)

// showWatchlistCommand returns a CLI command that prints the configured
// wallets, one per line, with their role and display label.
//
// Usage example:
//
//	solwatch watchlist
func showWatchlistCommand(registry *walletregistry.Registry) *cli.Command {
	return &cli.Command{
		Name:        "watchlist",
		Description: "Prints the configured source wallet and the target wallet group.",
		Usage:       "Shows which wallets the watcher scans and how they are labeled.",
		Action: func(_ context.Context, c *cli.Command) error {
			for _, wallet := range registry.All() {
				role, _ := registry.RoleOf(wallet.Address)
				if _, err := fmt.Fprintf(c.Root().Writer, "%-7s %-44s %s\n", role, wallet.Address, wallet.Label); err != nil {
					return err
				}
			}

			return nil
		},
	}
}
