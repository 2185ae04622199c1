package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gabapcia/solwatch/internal/transferwatch"

	"github.com/urfave/cli/v3"
)

// closeTimeout bounds how long the start command waits for an in-flight poll
// cycle to finish after an interrupt before giving up on a clean shutdown.
const closeTimeout = 30 * time.Second

// startWatcherCommand returns a CLI command that starts the transfer watch
// poll loop, scanning the watched wallets for SOL transfers.
//
// Usage example:
//
//	solwatch start
//
// The process runs indefinitely until it receives an interrupt (SIGINT or SIGTERM).
func startWatcherCommand(watcher transferwatch.Service) *cli.Command {
	return &cli.Command{
		Name:        "start",
		Description: "Starts the poll loop that scans the watched wallets for SOL transfers.",
		Usage:       "Initializes and runs the watcher. Terminates gracefully on Ctrl+C or termination signals.",
		Action: func(ctx context.Context, c *cli.Command) error {
			quit := make(chan os.Signal, 1)
			defer close(quit)

			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			if err := watcher.Start(ctx); err != nil {
				return err
			}

			<-quit

			closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), closeTimeout)
			defer cancel()

			return watcher.Close(closeCtx)
		},
	}
}
