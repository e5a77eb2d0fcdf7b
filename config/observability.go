package config

import (
	"context"
	"errors"
	"log/slog"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/AntonStoeckl/library-circulation-go/journal"
	"github.com/AntonStoeckl/library-circulation-go/journal/oteladapters"
	"github.com/AntonStoeckl/library-circulation-go/lending/desk"
)

const (
	// ServiceName identifies this module in OpenTelemetry resources and instrumentation scopes.
	ServiceName    = "library-circulation"
	ServiceVersion = "demo"

	shutdownTimeout = 5 * time.Second
)

// ErrNilLogger is returned by NewObservabilityConfig without a logger.
var ErrNilLogger = errors.New("logger must not be nil")

// ObservabilityConfig holds the OpenTelemetry providers and the adapters built on them.
//
// With observability disabled only Logger is set and everything else stays nil.
type ObservabilityConfig struct {
	Logger           *slog.Logger
	ContextualLogger journal.ContextualLogger
	MetricsCollector journal.MetricsCollector
	TracingCollector journal.TracingCollector

	MetricReader   *sdkmetric.ManualReader
	MeterProvider  *sdkmetric.MeterProvider
	TracerProvider *sdktrace.TracerProvider
	Resource       *resource.Resource
}

// NewObservabilityConfig creates in-process OpenTelemetry providers.
//
// Metrics are kept by a ManualReader and can be pulled with CollectMetrics. Spans are recorded
// without an exporter. Contextual logs go into the handler of the given logger.
func NewObservabilityConfig(enabled bool, logger *slog.Logger) (*ObservabilityConfig, error) {
	if logger == nil {
		return nil, ErrNilLogger
	}

	cfg := &ObservabilityConfig{Logger: logger}
	if !enabled {
		return cfg, nil
	}

	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String(ServiceName),
			semconv.ServiceVersionKey.String(ServiceVersion),
		),
	)
	if err != nil {
		return nil, err
	}

	reader := sdkmetric.NewManualReader()
	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(reader),
		sdkmetric.WithResource(res),
	)

	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
	)

	cfg.Resource = res
	cfg.MetricReader = reader
	cfg.MeterProvider = meterProvider
	cfg.TracerProvider = tracerProvider
	cfg.MetricsCollector = oteladapters.NewMetricsCollector(meterProvider.Meter(ServiceName))
	cfg.TracingCollector = oteladapters.NewTracingCollector(tracerProvider.Tracer(ServiceName))
	cfg.ContextualLogger = oteladapters.NewSlogBridgeLoggerWithHandler(logger.Handler())

	return cfg, nil
}

// Enabled reports whether the OpenTelemetry providers were created.
func (c *ObservabilityConfig) Enabled() bool {
	return c.MeterProvider != nil
}

// JournalOptions configures a journal.Journal to report into this config.
func (c *ObservabilityConfig) JournalOptions() []journal.Option {
	opts := []journal.Option{journal.WithLogger(c.Logger)}

	if !c.Enabled() {
		return opts
	}

	return append(opts,
		journal.WithContextualLogger(c.ContextualLogger),
		journal.WithMetrics(c.MetricsCollector),
		journal.WithTracing(c.TracingCollector),
	)
}

// DeskOptions configures a desk.Desk to report into this config.
func (c *ObservabilityConfig) DeskOptions() []desk.Option {
	opts := []desk.Option{desk.WithLogging(c.Logger)}

	if !c.Enabled() {
		return opts
	}

	return append(opts,
		desk.WithContextualLogging(c.ContextualLogger),
		desk.WithMetrics(c.MetricsCollector),
		desk.WithTracing(c.TracingCollector),
	)
}

// CollectMetrics pulls everything recorded so far from the ManualReader.
func (c *ObservabilityConfig) CollectMetrics(ctx context.Context) (metricdata.ResourceMetrics, error) {
	var rm metricdata.ResourceMetrics

	if !c.Enabled() {
		return rm, nil
	}

	err := c.MetricReader.Collect(ctx, &rm)

	return rm, err
}

// MetricNames lists the instruments found in the collected metrics, in the order of their scopes.
func MetricNames(rm metricdata.ResourceMetrics) []string {
	var names []string

	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			names = append(names, m.Name)
		}
	}

	return names
}

// Shutdown flushes and stops the providers. It is a no-op when observability is disabled.
func (c *ObservabilityConfig) Shutdown() error {
	if !c.Enabled() {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return errors.Join(
		c.TracerProvider.Shutdown(ctx),
		c.MeterProvider.Shutdown(ctx),
	)
}
