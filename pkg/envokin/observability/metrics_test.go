package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// setupMetricsTest installs a manual-reader meter provider for the test.
func setupMetricsTest(t *testing.T) *sdkmetric.ManualReader {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	original := otel.GetMeterProvider()
	otel.SetMeterProvider(provider)

	t.Cleanup(func() {
		otel.SetMeterProvider(original)
		if err := provider.Shutdown(context.Background()); err != nil {
			t.Logf("Error shutting down meter provider: %v", err)
		}
	})

	return reader
}

func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) *metricdata.ResourceMetrics {
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	return &rm
}

func findMetric(rm *metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

func TestNewMetricsRecorder(t *testing.T) {
	setupMetricsTest(t)

	recorder := NewMetricsRecorder()
	require.NotNil(t, recorder)

	_, isNoop := recorder.(NoopMetrics)
	assert.False(t, isNoop, "Expected real metrics recorder, got noop")
}

func TestRecordLoad(t *testing.T) {
	reader := setupMetricsTest(t)

	m, err := newOtelMetrics()
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("counts loads by source", func(t *testing.T) {
		m.RecordLoad(ctx, "file", 3*time.Millisecond, nil)

		metric := findMetric(collectMetrics(t, reader), "envokin.load.count")
		require.NotNil(t, metric)

		sum, ok := metric.Data.(metricdata.Sum[int64])
		require.True(t, ok, "Expected Sum type")

		found := false
		for _, dp := range sum.DataPoints {
			if v, ok := dp.Attributes.Value("source"); ok && v.AsString() == "file" {
				found = true
				assert.GreaterOrEqual(t, dp.Value, int64(1))
			}
		}
		assert.True(t, found, "Expected datapoint for source=file")
	})

	t.Run("records latency", func(t *testing.T) {
		m.RecordLoad(ctx, "map", time.Millisecond, nil)

		metric := findMetric(collectMetrics(t, reader), "envokin.load.latency_ms")
		require.NotNil(t, metric)

		hist, ok := metric.Data.(metricdata.Histogram[float64])
		require.True(t, ok, "Expected Histogram type")
		assert.NotEmpty(t, hist.DataPoints)
	})

	t.Run("counts errors", func(t *testing.T) {
		m.RecordLoad(ctx, "environ", time.Millisecond, errors.New("bad"))

		metric := findMetric(collectMetrics(t, reader), "envokin.load.errors")
		require.NotNil(t, metric)

		sum, ok := metric.Data.(metricdata.Sum[int64])
		require.True(t, ok, "Expected Sum type")
		require.NotEmpty(t, sum.DataPoints)
	})
}

func TestRecordValidation(t *testing.T) {
	reader := setupMetricsTest(t)

	m, err := newOtelMetrics()
	require.NoError(t, err)
	ctx := context.Background()

	m.RecordValidation(ctx, 4, nil)
	m.RecordValidation(ctx, 2, errors.New("invalid"))

	rm := collectMetrics(t, reader)

	keys := findMetric(rm, "envokin.validation.keys")
	require.NotNil(t, keys)
	hist, ok := keys.Data.(metricdata.Histogram[int64])
	require.True(t, ok, "Expected Histogram type")
	require.Len(t, hist.DataPoints, 1)
	assert.Equal(t, uint64(2), hist.DataPoints[0].Count)
	assert.Equal(t, int64(6), hist.DataPoints[0].Sum)

	failures := findMetric(rm, "envokin.validation.failures")
	require.NotNil(t, failures)
	sum, ok := failures.Data.(metricdata.Sum[int64])
	require.True(t, ok, "Expected Sum type")
	require.Len(t, sum.DataPoints, 1)
	assert.Equal(t, int64(1), sum.DataPoints[0].Value)
}

func TestRecordFileRead(t *testing.T) {
	reader := setupMetricsTest(t)

	m, err := newOtelMetrics()
	require.NoError(t, err)

	m.RecordFileRead(context.Background(), "json", 128)

	metric := findMetric(collectMetrics(t, reader), "envokin.file.size_bytes")
	require.NotNil(t, metric)
	hist, ok := metric.Data.(metricdata.Histogram[int64])
	require.True(t, ok, "Expected Histogram type")
	require.Len(t, hist.DataPoints, 1)
	assert.Equal(t, int64(128), hist.DataPoints[0].Sum)

	format, ok := hist.DataPoints[0].Attributes.Value("format")
	require.True(t, ok)
	assert.Equal(t, "json", format.AsString())
}
