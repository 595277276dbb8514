package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	cfgerrors "github.com/randalmurphal/envokin/pkg/envokin/errors"
	"github.com/randalmurphal/envokin/pkg/envokin/observability"
)

// Loader reads one configuration file into a raw record.
type Loader struct {
	path    string
	logger  *slog.Logger
	metrics observability.MetricsRecorder
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger used for format detection messages.
// A nil logger disables logging.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// WithMetrics sets the recorder for file size metrics.
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(l *Loader) {
		if m != nil {
			l.metrics = m
		}
	}
}

// New creates a Loader for path. The file is not read until Load.
func New(path string, opts ...Option) *Loader {
	l := &Loader{
		path:    path,
		metrics: observability.NoopMetrics{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Path returns the file path this loader reads.
func (l *Loader) Path() string {
	return l.path
}

// Load reads the file, detects its format and parses it.
//
// Errors are *errors.LoadError; undetectable content wraps
// ErrUnsupportedFileType. No partial record is returned on failure.
func (l *Loader) Load(ctx context.Context) (map[string]any, error) {
	data, ft, err := l.read()
	if err != nil {
		return nil, err
	}
	l.metrics.RecordFileRead(ctx, ft.String(), int64(len(data)))

	record, err := decode(data, ft)
	if err != nil {
		return nil, &cfgerrors.LoadError{Path: l.path, Op: "parse", Err: err}
	}
	return record, nil
}

// FileType reads the file and reports the format Load would use.
func (l *Loader) FileType() (FileType, error) {
	_, ft, err := l.read()
	return ft, err
}

func (l *Loader) read() ([]byte, FileType, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, Unknown, &cfgerrors.LoadError{Path: l.path, Op: "read", Err: err}
	}

	ft := byExtension(l.path)
	if ft == Unknown {
		ft = Detect(data)
	}
	if ft == Unknown {
		return nil, Unknown, &cfgerrors.LoadError{Path: l.path, Op: "detect", Err: cfgerrors.ErrUnsupportedFileType}
	}

	observability.LogFormatDetected(l.logger, l.path, ft.String(), len(data))
	return data, ft, nil
}

// Load reads path with a default Loader.
func Load(path string) (map[string]any, error) {
	return New(path).Load(context.Background())
}

// Parse detects the format of data by sniffing and parses it. Extension-based
// formats (YAML, TOML) are not considered since there is no file name.
func Parse(data []byte) (map[string]any, error) {
	ft := Detect(data)
	if ft == Unknown {
		return nil, &cfgerrors.LoadError{Op: "detect", Err: cfgerrors.ErrUnsupportedFileType}
	}
	record, err := decode(data, ft)
	if err != nil {
		return nil, &cfgerrors.LoadError{Op: "parse", Err: err}
	}
	return record, nil
}

func decode(data []byte, ft FileType) (map[string]any, error) {
	switch ft {
	case ENV:
		return parseEnv(data), nil
	case JSON:
		return parseJSON(data)
	case YAML:
		return parseYAML(data)
	case TOML:
		return parseTOML(data)
	default:
		return nil, cfgerrors.ErrUnsupportedFileType
	}
}

// parseEnv splits each line at the first "=" and trims both sides. Values are
// kept verbatim: no quote stripping, no escapes. Later keys win.
func parseEnv(data []byte) map[string]any {
	record := make(map[string]any)
	for _, line := range splitLines(data) {
		if skippable(strings.TrimSpace(line)) {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		record[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return record
}

func parseJSON(data []byte) (map[string]any, error) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	if m == nil {
		m = make(map[string]any)
	}
	return m, nil
}

func parseYAML(data []byte) (map[string]any, error) {
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if m == nil {
		m = make(map[string]any)
	}
	return m, nil
}

func parseTOML(data []byte) (map[string]any, error) {
	var m map[string]any
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse toml: %w", err)
	}
	if m == nil {
		m = make(map[string]any)
	}
	return m, nil
}
