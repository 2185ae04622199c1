// Package telemetry wires the process into an OpenTelemetry collector. Logs,
// metrics and traces are exported over OTLP/gRPC and stamped with a shared
// service resource. The whole pipeline is opt-in: the watcher runs fine
// without it, and the exporter endpoint comes from the standard
// OTEL_EXPORTER_OTLP_* environment variables.
package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
)

// ShutdownFunc flushes and stops every provider started by Init. Call it
// once during shutdown; it reports the joined errors of all pipelines.
type ShutdownFunc func(ctx context.Context) error

// loggerProvider is published by startLogs so the zap bridge can find it.
// It stays nil when telemetry is not initialized.
var loggerProvider *sdklog.LoggerProvider

// LoggerProvider returns the log provider started by Init, or nil when
// telemetry is not active.
func LoggerProvider() *sdklog.LoggerProvider {
	return loggerProvider
}

// serviceResource merges the default environment resource with this
// service's name, so every signal carries the same identity.
func serviceResource(serviceName string) (*sdkresource.Resource, error) {
	return sdkresource.Merge(
		sdkresource.Default(),
		sdkresource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
		),
	)
}

// startLogs builds the OTLP log pipeline behind a batch processor and
// publishes the provider for the zap bridge.
func startLogs(ctx context.Context, res *sdkresource.Resource) (*sdklog.LoggerProvider, error) {
	exporter, err := otlploggrpc.New(ctx)
	if err != nil {
		return nil, err
	}

	lp := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter)),
		sdklog.WithResource(res),
	)

	loggerProvider = lp
	return lp, nil
}

// startMetrics builds the OTLP metric pipeline behind a periodic reader and
// registers it as the global meter provider.
func startMetrics(ctx context.Context, res *sdkresource.Resource) (*sdkmetric.MeterProvider, error) {
	exporter, err := otlpmetricgrpc.New(ctx)
	if err != nil {
		return nil, err
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)
	return mp, nil
}

// startTraces builds the OTLP trace pipeline behind a batcher and registers
// it as the global tracer provider.
func startTraces(ctx context.Context, res *sdkresource.Resource) (*sdktrace.TracerProvider, error) {
	exporter, err := otlptracegrpc.New(ctx)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	return tp, nil
}

// Init starts the OTLP log, metric and trace pipelines, identified by
// serviceName in the observability backend. It must run before logger.Init
// for the zap bridge to pick up the log provider.
//
// The returned ShutdownFunc stops every pipeline that was started, flushing
// pending data first.
func Init(ctx context.Context, serviceName string) (ShutdownFunc, error) {
	res, err := serviceResource(serviceName)
	if err != nil {
		return nil, err
	}

	shutdowns := make([]ShutdownFunc, 0, 3)

	lp, err := startLogs(ctx, res)
	if err != nil {
		return nil, err
	}
	shutdowns = append(shutdowns, lp.Shutdown)

	mp, err := startMetrics(ctx, res)
	if err != nil {
		return nil, err
	}
	shutdowns = append(shutdowns, mp.Shutdown)

	tp, err := startTraces(ctx, res)
	if err != nil {
		return nil, err
	}
	shutdowns = append(shutdowns, tp.Shutdown)

	return func(ctx context.Context) error {
		errs := make([]error, 0, len(shutdowns))
		for _, shutdown := range shutdowns {
			errs = append(errs, shutdown(ctx))
		}
		return errors.Join(errs...)
	}, nil
}
