package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records configuration loading metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordLoad records a full load (source read + validation).
	RecordLoad(ctx context.Context, source string, duration time.Duration, err error)

	// RecordValidation records a validation pass over keyCount schema keys.
	RecordValidation(ctx context.Context, keyCount int, err error)

	// RecordFileRead records a file read by the loader.
	RecordFileRead(ctx context.Context, format string, sizeBytes int64)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	loads              metric.Int64Counter
	loadLatency        metric.Float64Histogram
	loadErrors         metric.Int64Counter
	validatedKeys      metric.Int64Histogram
	validationFailures metric.Int64Counter
	fileSize           metric.Int64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("envokin")

	loads, err := meter.Int64Counter("envokin.load.count",
		metric.WithDescription("Number of configuration loads"),
	)
	if err != nil {
		return nil, err
	}

	loadLatency, err := meter.Float64Histogram("envokin.load.latency_ms",
		metric.WithDescription("Configuration load latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	loadErrors, err := meter.Int64Counter("envokin.load.errors",
		metric.WithDescription("Number of failed configuration loads"),
	)
	if err != nil {
		return nil, err
	}

	validatedKeys, err := meter.Int64Histogram("envokin.validation.keys",
		metric.WithDescription("Number of schema keys per validation pass"),
	)
	if err != nil {
		return nil, err
	}

	validationFailures, err := meter.Int64Counter("envokin.validation.failures",
		metric.WithDescription("Number of rejected validation passes"),
	)
	if err != nil {
		return nil, err
	}

	fileSize, err := meter.Int64Histogram("envokin.file.size_bytes",
		metric.WithDescription("Size of loaded configuration files in bytes"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		loads:              loads,
		loadLatency:        loadLatency,
		loadErrors:         loadErrors,
		validatedKeys:      validatedKeys,
		validationFailures: validationFailures,
		fileSize:           fileSize,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordLoad records a configuration load.
func (m *otelMetrics) RecordLoad(ctx context.Context, source string, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("source", source),
		attribute.Bool("success", err == nil),
	}

	m.loads.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.loadLatency.Record(ctx, float64(duration.Microseconds())/1000, metric.WithAttributes(attrs...))

	if err != nil {
		m.loadErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("source", source)))
	}
}

// RecordValidation records a validation pass.
func (m *otelMetrics) RecordValidation(ctx context.Context, keyCount int, err error) {
	m.validatedKeys.Record(ctx, int64(keyCount))
	if err != nil {
		m.validationFailures.Add(ctx, 1)
	}
}

// RecordFileRead records a file read.
func (m *otelMetrics) RecordFileRead(ctx context.Context, format string, sizeBytes int64) {
	m.fileSize.Record(ctx, sizeBytes, metric.WithAttributes(
		attribute.String("format", format),
	))
}
