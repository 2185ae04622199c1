package main

import (
	"context"
	"time"

	"github.com/gabapcia/solwatch/internal/config"
	"github.com/gabapcia/solwatch/internal/handlers/cli"
	"github.com/gabapcia/solwatch/internal/infra/blockchain/solana"
	"github.com/gabapcia/solwatch/internal/infra/notify/nats"
	"github.com/gabapcia/solwatch/internal/infra/notify/webhook"
	"github.com/gabapcia/solwatch/internal/infra/storage/file"
	"github.com/gabapcia/solwatch/internal/infra/storage/redis"
	"github.com/gabapcia/solwatch/internal/pkg/logger"
	"github.com/gabapcia/solwatch/internal/pkg/resilience/retry"
	"github.com/gabapcia/solwatch/internal/pkg/telemetry"
	"github.com/gabapcia/solwatch/internal/transfersink"
	"github.com/gabapcia/solwatch/internal/transferwatch"

	"github.com/joho/godotenv"
)

// serviceName identifies this process in telemetry backends.
const serviceName = "solwatch"

// telemetryShutdownTimeout bounds the final telemetry flush on exit.
const telemetryShutdownTimeout = 5 * time.Second

func main() {
	ctx := context.Background()

	// Values from an optional .env file never override variables already set
	// in the real environment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		_ = logger.Init()
		logger.Fatal(ctx, "error loading configuration", "error", err)
	}

	if cfg.TelemetryEnabled {
		shutdown, err := telemetry.Init(ctx, serviceName)
		if err != nil {
			_ = logger.Init()
			logger.Fatal(ctx, "error initializing telemetry", "error", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), telemetryShutdownTimeout)
			defer cancel()

			if err := shutdown(shutdownCtx); err != nil {
				logger.Error(shutdownCtx, "error shutting down telemetry", "error", err)
			}
		}()
	}

	if err := logger.Init(logger.WithLevel(cfg.LogLevel)); err != nil {
		panic(err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	registry, err := config.LoadWatchlist(cfg.WatchlistPath)
	if err != nil {
		logger.Fatal(ctx, "error loading watchlist", "watchlist.path", cfg.WatchlistPath, "error", err)
	}

	blockchain := solana.NewClient(cfg.SolanaRPCEndpoint,
		solana.WithCommitment(cfg.SolanaCommitment),
		solana.WithRequestTimeout(cfg.RPCTimeout),
	)

	var processedSet transferwatch.ProcessedSet
	if cfg.RedisEnabled() {
		redisClient, err := redis.NewClient(ctx, cfg.RedisAddress,
			redis.WithCredentials(cfg.RedisUsername, cfg.RedisPassword),
			redis.WithDB(cfg.RedisDB),
		)
		if err != nil {
			logger.Fatal(ctx, "error connecting to redis", "redis.address", cfg.RedisAddress, "error", err)
		}
		defer redisClient.Close()

		processedSet = redisClient
	} else {
		fileSet, err := file.NewProcessedSet(cfg.ProcessedSetPath)
		if err != nil {
			logger.Fatal(ctx, "error opening processed signature file", "processed.path", cfg.ProcessedSetPath, "error", err)
		}
		defer fileSet.Close()

		processedSet = fileSet
	}

	ledger, err := file.NewTransferLedger(cfg.TransferLedgerPath)
	if err != nil {
		logger.Fatal(ctx, "error opening transfer ledger", "ledger.path", cfg.TransferLedgerPath, "error", err)
	}
	defer ledger.Close()

	var notifiers []transfersink.TransferNotifier
	if cfg.WebhookURL != "" {
		notifiers = append(notifiers, webhook.NewNotifier(cfg.WebhookURL))
	}
	if cfg.NATSURL != "" {
		natsNotifier, err := nats.NewNotifier(ctx, cfg.NATSURL)
		if err != nil {
			logger.Fatal(ctx, "error connecting to nats", "nats.url", cfg.NATSURL, "error", err)
		}
		defer natsNotifier.Close()

		notifiers = append(notifiers, natsNotifier)
	}

	sinkOpts := []transfersink.Option{
		transfersink.WithLargeTransferThreshold(cfg.LargeTransferThreshold()),
		transfersink.WithRetry(retry.New(retry.WithAttempts(3), retry.WithDelay(time.Second))),
	}
	if len(notifiers) > 0 {
		sinkOpts = append(sinkOpts, transfersink.WithNotifier(transfersink.MultiNotifier(notifiers...)))
	}

	sink := transfersink.New(registry, ledger, sinkOpts...)

	watcher := transferwatch.New(registry, blockchain, processedSet, sink,
		transferwatch.WithPollInterval(cfg.PollInterval),
		transferwatch.WithErrorCooldown(cfg.ErrorCooldown),
		transferwatch.WithRateLimitCooldown(cfg.RateLimitCooldown),
		transferwatch.WithSignatureLimit(cfg.SignatureFetchLimit),
	)

	if err := cli.Run(ctx, registry, watcher); err != nil {
		logger.Fatal(ctx, "error running solwatch", "error", err)
	}
}
