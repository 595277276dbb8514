// Package observability provides logging, metrics and tracing hooks for
// configuration loading.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
// A nil *slog.Logger is accepted everywhere and silences output.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds load context to a logger.
// Returns a new logger with load_id and source fields.
//
// Example:
//
//	enriched := EnrichLogger(logger, "2f1c...", "file:/etc/app.env")
//	enriched.Info("loading") // includes load_id, source
func EnrichLogger(logger *slog.Logger, loadID, source string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("load_id", loadID),
		slog.String("source", source),
	)
}

// LogLoadStart logs the start of a configuration load.
// The logger is expected to come from EnrichLogger.
func LogLoadStart(logger *slog.Logger) {
	if logger == nil {
		return
	}
	logger.Debug("config load starting")
}

// LogLoadComplete logs a successful load.
func LogLoadComplete(logger *slog.Logger, durationMs float64, keyCount int, nodeEnv string) {
	if logger == nil {
		return
	}
	logger.Info("config loaded",
		slog.Float64("duration_ms", durationMs),
		slog.Int("keys", keyCount),
		slog.String("node_env", nodeEnv),
	)
}

// LogLoadError logs a failed load.
func LogLoadError(logger *slog.Logger, err error, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Error("config load failed",
		slog.String("error", err.Error()),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogFormatDetected logs the format the loader picked for a file.
func LogFormatDetected(logger *slog.Logger, path, format string, sizeBytes int) {
	if logger == nil {
		return
	}
	logger.Debug("config format detected",
		slog.String("path", path),
		slog.String("format", format),
		slog.Int("size_bytes", sizeBytes),
	)
}

// LogKeySkipped logs a schema key dropped in lenient mode.
func LogKeySkipped(logger *slog.Logger, key string) {
	if logger == nil {
		return
	}
	logger.Debug("config key not provided, skipping",
		slog.String("key", key),
	)
}

// LogValidationError logs a rejected key.
func LogValidationError(logger *slog.Logger, key string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("config validation failed",
		slog.String("key", key),
		slog.String("error", err.Error()),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	durationMs := done()
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Microseconds()) / 1000
	}
}
