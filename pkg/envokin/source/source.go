package source

import (
	"context"
	"strings"

	"github.com/randalmurphal/envokin/pkg/envokin/config"
	"github.com/randalmurphal/envokin/pkg/envokin/loader"
)

// Source yields a raw configuration record.
//
// Implementations must return a map the caller may keep and modify.
type Source interface {
	// Name identifies the source in logs, spans and metrics.
	Name() string
	// Load returns the raw record.
	Load(ctx context.Context) (map[string]any, error)
}

// MapSource serves a fixed record.
type MapSource struct {
	data map[string]any
}

// Map creates a source from a copy of data.
func Map(data map[string]any) *MapSource {
	return &MapSource{data: copyRecord(data)}
}

// Name implements Source.
func (s *MapSource) Name() string {
	return "map"
}

// Load implements Source.
func (s *MapSource) Load(ctx context.Context) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return copyRecord(s.data), nil
}

// EnvironSource serves a snapshot of KEY=value pairs.
type EnvironSource struct {
	data map[string]any
}

// Environ creates a source from KEY=value pairs, typically os.Environ().
// The pairs are parsed once; entries without "=" or with an empty key are
// ignored and later duplicates win.
func Environ(pairs []string) *EnvironSource {
	data := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			continue
		}
		data[key] = value
	}
	return &EnvironSource{data: data}
}

// Name implements Source.
func (s *EnvironSource) Name() string {
	return "environ"
}

// Load implements Source.
func (s *EnvironSource) Load(ctx context.Context) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return copyRecord(s.data), nil
}

// FileSource reads a JSON, ENV, YAML or TOML file on every Load.
type FileSource struct {
	loader *loader.Loader
}

// File creates a source backed by a loader for path.
func File(path string, opts ...loader.Option) *FileSource {
	return &FileSource{loader: loader.New(path, opts...)}
}

// Name implements Source.
func (s *FileSource) Name() string {
	return "file:" + s.loader.Path()
}

// Path returns the file path.
func (s *FileSource) Path() string {
	return s.loader.Path()
}

// Load implements Source. Errors are *errors.LoadError.
func (s *FileSource) Load(ctx context.Context) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.loader.Load(ctx)
}

func copyRecord(data map[string]any) map[string]any {
	if data == nil {
		return map[string]any{}
	}
	return config.CloneRecord(data)
}
