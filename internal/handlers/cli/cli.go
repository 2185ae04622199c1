package cli

import (
	"context"
	"os"

	"github.com/gabapcia/solwatch/internal/transferwatch"
	"github.com/gabapcia/solwatch/internal/walletregistry"

	"github.com/urfave/cli/v3"
)

// Run initializes and executes the solwatch CLI application.
//
// It registers all available commands, including:
//
//   - `start`: Runs the transfer watch poll loop until interrupted.
//   - `watchlist`: Prints the configured source and target wallets.
//
// Parameters:
//   - ctx: Context used to control the lifecycle of the CLI application.
//   - registry: The wallet registry built from the watchlist file.
//   - watcher: The transferwatch service implementation used by the start command.
//
// This function sets up shell completion and invokes the CLI framework to parse and run commands.
func Run(ctx context.Context, registry *walletregistry.Registry, watcher transferwatch.Service) error {
	app := &cli.Command{
		EnableShellCompletion: true,
		Name:                  "solwatch",
		Description:           "Command-line interface for running and inspecting the SOL transfer watcher.",
		Usage:                 "solwatch [command] [flags]",
		Commands: []*cli.Command{
			startWatcherCommand(watcher),
			showWatchlistCommand(registry),
		},
	}

	return app.Run(ctx, os.Args)
}
