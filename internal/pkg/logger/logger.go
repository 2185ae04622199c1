// Package logger owns the process-wide structured logger: a sugared zap
// logger emitting one JSON object per entry. When telemetry is active the
// entries are also forwarded to the OpenTelemetry collector through the
// otelzap bridge.
package logger

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/gabapcia/solwatch/internal/pkg/telemetry"

	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	log  *zap.SugaredLogger
	once sync.Once
)

// config collects the Init options before the logger is built.
type config struct {
	level  string
	writer io.Writer
}

// Option adjusts how the global logger is built.
type Option func(*config)

// WithLevel sets the minimum level that gets emitted. Accepted values are
// zap's level names: "debug", "info", "warn", "error", "panic" and "fatal".
func WithLevel(level string) Option {
	return func(c *config) {
		c.level = level
	}
}

// WithWriter redirects log output away from stdout. Tests use it to capture
// the emitted entries.
func WithWriter(w io.Writer) Option {
	return func(c *config) {
		c.writer = w
	}
}

// newCores assembles the zap cores for the global logger: the JSON core
// writing to the configured writer, plus the OpenTelemetry bridge core when
// telemetry.Init ran beforehand and published a log provider.
func newCores(w io.Writer, level zapcore.Level) []zapcore.Core {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig),
			zapcore.AddSync(w),
			level,
		),
	}

	if lp := telemetry.LoggerProvider(); lp != nil {
		cores = append(cores, otelzap.NewCore("", otelzap.WithLoggerProvider(lp)))
	}

	return cores
}

// Init builds the global logger. The defaults are JSON to stdout at the
// "info" level; call telemetry.Init first for entries to also reach the
// collector. The first call wins: repeated calls keep the configuration
// already in place. An error is returned only for an unparseable level.
func Init(opts ...Option) error {
	cfg := config{
		level:  "info",
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	level, err := zapcore.ParseLevel(cfg.level)
	if err != nil {
		return err
	}

	once.Do(func() {
		core := zapcore.NewTee(newCores(cfg.writer, level)...)
		log = zap.New(core).Sugar()
	})

	return nil
}

// Sync flushes buffered entries. Called once during shutdown.
func Sync() error {
	return log.Sync()
}

// Debug logs at debug level with optional key/value pairs.
func Debug(ctx context.Context, msg string, keysAndValues ...any) {
	log.Debugw(msg, keysAndValues...)
}

// Info logs at info level with optional key/value pairs.
func Info(ctx context.Context, msg string, keysAndValues ...any) {
	log.Infow(msg, keysAndValues...)
}

// Warn logs at warn level with optional key/value pairs.
func Warn(ctx context.Context, msg string, keysAndValues ...any) {
	log.Warnw(msg, keysAndValues...)
}

// Error logs at error level with optional key/value pairs.
func Error(ctx context.Context, msg string, keysAndValues ...any) {
	log.Errorw(msg, keysAndValues...)
}

// Panic logs at panic level and then panics.
func Panic(ctx context.Context, msg string, keysAndValues ...any) {
	log.Panicw(msg, keysAndValues...)
}

// Fatal logs at fatal level and then exits the process.
func Fatal(ctx context.Context, msg string, keysAndValues ...any) {
	log.Fatalw(msg, keysAndValues...)
}
