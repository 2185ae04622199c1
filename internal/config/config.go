// Package config loads the process configuration from environment variables
// and the watchlist file. Values are parsed with envconfig and checked with
// the shared validator so a misconfigured process fails at startup instead of
// mid-poll.
package config

import (
	"time"

	"github.com/gabapcia/solwatch/internal/pkg/types"
	"github.com/gabapcia/solwatch/internal/pkg/validator"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

// Config holds every tunable of the watcher process. Fields without a
// default are required unless documented otherwise.
type Config struct {
	// Solana endpoint access.
	SolanaRPCEndpoint   string        `envconfig:"SOLANA_RPC_ENDPOINT" validate:"required,url"`
	SolanaCommitment    string        `envconfig:"SOLANA_COMMITMENT" default:"confirmed" validate:"oneof=processed confirmed finalized"`
	SignatureFetchLimit int           `envconfig:"SIGNATURE_FETCH_LIMIT" default:"50" validate:"gte=1,lte=1000"`
	RPCTimeout          time.Duration `envconfig:"RPC_TIMEOUT" default:"30s" validate:"gt=0"`

	// Poll loop pacing.
	PollInterval      time.Duration `envconfig:"POLL_INTERVAL" default:"60s" validate:"gt=0"`
	ErrorCooldown     time.Duration `envconfig:"ERROR_COOLDOWN" default:"30s" validate:"gt=0"`
	RateLimitCooldown time.Duration `envconfig:"RATE_LIMIT_COOLDOWN" default:"10s" validate:"gt=0"`

	// Local files.
	WatchlistPath      string `envconfig:"WATCHLIST_PATH" default:"watchlist.json" validate:"required"`
	TransferLedgerPath string `envconfig:"TRANSFER_LEDGER_PATH" default:"sol_transfers.csv" validate:"required"`
	ProcessedSetPath   string `envconfig:"PROCESSED_SET_PATH" default:"processed_signatures.txt" validate:"required"`

	// Optional Redis backend for the processed signature set. When
	// RedisAddress is empty the file backend at ProcessedSetPath is used.
	RedisAddress  string `envconfig:"REDIS_ADDRESS"`
	RedisUsername string `envconfig:"REDIS_USERNAME"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	// Optional notification targets. Empty values disable the channel.
	WebhookURL string `envconfig:"WEBHOOK_URL" validate:"omitempty,url"`
	NATSURL    string `envconfig:"NATS_URL"`

	// LargeTransferThresholdSOL is the SOL amount at which a transfer
	// notification is ranked high severity.
	LargeTransferThresholdSOL decimal.Decimal `envconfig:"LARGE_TRANSFER_THRESHOLD_SOL" default:"1000"`

	// Observability.
	LogLevel         string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	TelemetryEnabled bool   `envconfig:"TELEMETRY_ENABLED" default:"false"`
}

// LargeTransferThreshold returns the high severity threshold in lamports.
func (c Config) LargeTransferThreshold() types.Lamports {
	return types.LamportsFromSOL(c.LargeTransferThresholdSOL)
}

// RedisEnabled reports whether the processed signature set should be stored
// in Redis instead of the local file.
func (c Config) RedisEnabled() bool {
	return c.RedisAddress != ""
}

// Load reads the configuration from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}

	if err := validator.Validate(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
