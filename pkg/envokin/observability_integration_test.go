package envokin

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// testLogHandler captures log records for testing.
type testLogHandler struct {
	mu    sync.Mutex
	buf   *bytes.Buffer
	level slog.Level
	attrs []slog.Attr
}

func newTestLogHandler() *testLogHandler {
	return &testLogHandler{
		buf:   &bytes.Buffer{},
		level: slog.LevelDebug,
	}
}

func (h *testLogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *testLogHandler) Handle(_ context.Context, r slog.Record) error {
	data := map[string]any{
		"level": r.Level.String(),
		"msg":   r.Message,
	}
	for _, a := range h.attrs {
		data[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		data[a.Key] = a.Value.Any()
		return true
	})
	h.mu.Lock()
	defer h.mu.Unlock()
	return json.NewEncoder(h.buf).Encode(data)
}

func (h *testLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &testLogHandler{
		buf:   h.buf,
		level: h.level,
		attrs: append(append([]slog.Attr{}, h.attrs...), attrs...),
	}
}

func (h *testLogHandler) WithGroup(string) slog.Handler {
	return h
}

func (h *testLogHandler) getRecords() []map[string]any {
	var records []map[string]any
	for _, line := range bytes.Split(h.buf.Bytes(), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal(line, &m); err == nil {
			records = append(records, m)
		}
	}
	return records
}

func findRecord(records []map[string]any, msg string) map[string]any {
	for _, r := range records {
		if r["msg"] == msg {
			return r
		}
	}
	return nil
}

// recordingMetrics captures recorder calls.
type recordingMetrics struct {
	loads       []string
	loadErrs    []error
	validations []int
	validErrs   []error
	fileReads   []string
}

func (m *recordingMetrics) RecordLoad(_ context.Context, source string, _ time.Duration, err error) {
	m.loads = append(m.loads, source)
	m.loadErrs = append(m.loadErrs, err)
}

func (m *recordingMetrics) RecordValidation(_ context.Context, keyCount int, err error) {
	m.validations = append(m.validations, keyCount)
	m.validErrs = append(m.validErrs, err)
}

func (m *recordingMetrics) RecordFileRead(_ context.Context, format string, _ int64) {
	m.fileReads = append(m.fileReads, format)
}

// recordingSpans captures span manager calls.
type recordingSpans struct {
	started []string
	ended   []error
	events  []string
	loadID  string
	strict  bool
}

func (s *recordingSpans) StartLoadSpan(ctx context.Context, source, loadID string) (context.Context, trace.Span) {
	s.started = append(s.started, "load:"+source)
	s.loadID = loadID
	return noopSpan(ctx)
}

func (s *recordingSpans) StartValidateSpan(ctx context.Context, _ int, strict bool) (context.Context, trace.Span) {
	s.started = append(s.started, "validate")
	s.strict = strict
	return noopSpan(ctx)
}

func (s *recordingSpans) EndSpanWithError(_ trace.Span, err error) {
	s.ended = append(s.ended, err)
}

func (s *recordingSpans) AddSpanEvent(_ context.Context, name string, _ ...attribute.KeyValue) {
	s.events = append(s.events, name)
}

func noopSpan(ctx context.Context) (context.Context, trace.Span) {
	return noop.NewTracerProvider().Tracer("test").Start(ctx, "noop")
}

func TestLoad_WithObservabilityLogger(t *testing.T) {
	h := newTestLogHandler()

	env, err := New(Schema{"PORT": Port, "HOST": Host},
		WithMap(map[string]any{"PORT": "8080"}),
		WithLogger(slog.New(h)))
	require.NoError(t, err)

	records := h.getRecords()

	start := findRecord(records, "config load starting")
	require.NotNil(t, start)
	assert.Equal(t, env.ID(), start["load_id"])
	assert.Equal(t, "map", start["source"])

	skipped := findRecord(records, "config key not provided, skipping")
	require.NotNil(t, skipped)
	assert.Equal(t, "HOST", skipped["key"])
	assert.Equal(t, env.ID(), skipped["load_id"])

	done := findRecord(records, "config loaded")
	require.NotNil(t, done)
	assert.Equal(t, "development", done["node_env"])
	assert.EqualValues(t, 2, done["keys"])
}

func TestLoad_WithObservabilityLogger_Error(t *testing.T) {
	h := newTestLogHandler()

	_, err := New(Schema{"PORT": Port},
		WithMap(map[string]any{"PORT": "nope"}),
		WithLogger(slog.New(h)))
	require.Error(t, err)

	records := h.getRecords()
	assert.NotNil(t, findRecord(records, "config validation failed"))

	failed := findRecord(records, "config load failed")
	require.NotNil(t, failed)
	assert.Equal(t, `"PORT" should be a valid port`, failed["error"])
	assert.Nil(t, findRecord(records, "config loaded"))
}

func TestLoad_MetricsAndSpans(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=8080\n"), 0o600))

	metrics := &recordingMetrics{}
	spans := &recordingSpans{}

	env, err := Load(context.Background(), Schema{"PORT": Port},
		WithMetrics(metrics),
		WithSpanManager(spans),
		WithPath(path),
		WithStrict(true))
	require.NoError(t, err)

	assert.Equal(t, []string{"load:file:" + path, "validate"}, spans.started)
	assert.Equal(t, []error{nil, nil}, spans.ended)
	assert.Equal(t, []string{"source.loaded"}, spans.events)
	assert.Equal(t, env.ID(), spans.loadID)
	assert.True(t, spans.strict)

	// The file source picks up the recorder even though WithPath came last.
	assert.Equal(t, []string{"env"}, metrics.fileReads)
	assert.Equal(t, []string{"file:" + path}, metrics.loads)
	assert.Equal(t, []error{nil}, metrics.loadErrs)
	assert.Equal(t, []int{1}, metrics.validations)
}

func TestLoad_MetricsAndSpans_Error(t *testing.T) {
	metrics := &recordingMetrics{}
	spans := &recordingSpans{}

	_, err := New(Schema{"PORT": Port},
		WithMap(map[string]any{"PORT": "99999"}),
		WithMetrics(metrics),
		WithSpanManager(spans))
	require.Error(t, err)

	require.Len(t, spans.ended, 2)
	assert.ErrorIs(t, spans.ended[0], ErrInvalidValue)
	assert.ErrorIs(t, spans.ended[1], ErrInvalidValue)

	require.Len(t, metrics.loadErrs, 1)
	assert.ErrorIs(t, metrics.loadErrs[0], ErrInvalidValue)
	require.Len(t, metrics.validErrs, 1)
	assert.Error(t, metrics.validErrs[0])
}

func TestOptions_NilIgnored(t *testing.T) {
	cfg := defaultLoadConfig()
	WithMetrics(nil)(&cfg)
	WithSpanManager(nil)(&cfg)
	WithSource(nil)(&cfg)

	assert.NotNil(t, cfg.metrics)
	assert.NotNil(t, cfg.spans)
	assert.Nil(t, cfg.newSource)
}
