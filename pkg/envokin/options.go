package envokin

import (
	"log/slog"
	"path/filepath"

	"github.com/randalmurphal/envokin/pkg/envokin/loader"
	"github.com/randalmurphal/envokin/pkg/envokin/observability"
	"github.com/randalmurphal/envokin/pkg/envokin/source"
)

// loadConfig holds configuration for a single Load.
type loadConfig struct {
	// newSource builds the source once all options are applied, so a file
	// source picks up the logger and metrics regardless of option order.
	newSource func(cfg *loadConfig) source.Source
	strict    bool
	logger    *slog.Logger
	metrics   observability.MetricsRecorder
	spans     observability.SpanManager
}

// defaultLoadConfig returns the default load configuration.
func defaultLoadConfig() loadConfig {
	return loadConfig{
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
}

// Option configures Load and New.
type Option func(*loadConfig)

// WithPath loads the record from a JSON or ENV file (YAML and TOML by
// extension). Relative paths are resolved against the working directory.
//
// Example:
//
//	env, err := envokin.New(schema, envokin.WithPath(".env"))
func WithPath(path string) Option {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return func(c *loadConfig) {
		c.newSource = func(cfg *loadConfig) source.Source {
			return source.File(path, loader.WithLogger(cfg.logger), loader.WithMetrics(cfg.metrics))
		}
	}
}

// WithMap validates a copy of data instead of reading a file.
func WithMap(data map[string]any) Option {
	src := source.Map(data)
	return WithSource(src)
}

// WithSource reads the record from src.
func WithSource(src source.Source) Option {
	return func(c *loadConfig) {
		if src == nil {
			c.newSource = nil
			return
		}
		c.newSource = func(*loadConfig) source.Source { return src }
	}
}

// WithStrict makes every schema key required.
// Default: false
//
// In lenient mode a key whose value is missing, "", false, zero or NaN is
// left out of the result; in strict mode it fails the load.
func WithStrict(strict bool) Option {
	return func(c *loadConfig) {
		c.strict = strict
	}
}

// WithLogger sets the structured logger. A nil logger disables logging.
func WithLogger(logger *slog.Logger) Option {
	return func(c *loadConfig) {
		c.logger = logger
	}
}

// WithMetrics sets the metrics recorder.
// Default: observability.NoopMetrics
//
// Example:
//
//	env, err := envokin.New(schema, envokin.WithMetrics(observability.NewMetricsRecorder()))
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(c *loadConfig) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithSpanManager sets the span manager used for load and validate spans.
// Default: observability.NoopSpanManager
func WithSpanManager(s observability.SpanManager) Option {
	return func(c *loadConfig) {
		if s != nil {
			c.spans = s
		}
	}
}
