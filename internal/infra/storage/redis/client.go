// Package redis backs the processed signature set with a Redis set, for
// deployments that want dedup state shared between instances or kept off
// the local disk.
package redis

import (
	"context"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// pingTimeout bounds the connectivity probe performed at construction.
const pingTimeout = 5 * time.Second

type client struct {
	conn *redis.Client
}

// config collects the optional connection settings.
type config struct {
	username string
	password string
	db       int
}

// Option adjusts how the Redis connection is established.
type Option func(*config)

// WithCredentials authenticates the connection. Empty values mean no auth,
// which is also the default.
func WithCredentials(username, password string) Option {
	return func(c *config) {
		c.username = username
		c.password = password
	}
}

// WithDB selects a logical database other than 0.
func WithDB(db int) Option {
	return func(c *config) {
		c.db = db
	}
}

// NewClient connects to the Redis server at addr and verifies the
// connection with a bounded ping before handing the client back.
func NewClient(ctx context.Context, addr string, opts ...Option) (*client, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	conn := redis.NewClient(&redis.Options{
		Addr:     addr,
		Username: cfg.username,
		Password: cfg.password,
		DB:       cfg.db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := conn.Ping(pingCtx).Err(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return &client{conn: conn}, nil
}

// Close releases the connection pool.
func (c *client) Close() error {
	return c.conn.Close()
}
