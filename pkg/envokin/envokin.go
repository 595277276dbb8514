package envokin

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/randalmurphal/envokin/pkg/envokin/config"
	"github.com/randalmurphal/envokin/pkg/envokin/observability"
	"github.com/randalmurphal/envokin/pkg/envokin/schema"
	"github.com/randalmurphal/envokin/pkg/envokin/source"
)

// NodeEnvKey is the key that selects the environment mode.
const NodeEnvKey = "NODE_ENV"

// DefaultNodeEnv is used when the validated record has no NODE_ENV.
const DefaultNodeEnv = "development"

// Env is a validated, read-only configuration.
// It is safe for concurrent use.
type Env struct {
	id      string
	nodeEnv string
	cfg     config.Config
}

// New loads and validates configuration with a background context.
// See Load.
func New(s Schema, opts ...Option) (*Env, error) {
	return Load(context.Background(), s, opts...)
}

// Load reads a raw record from the configured source, validates it against
// s and returns the typed result.
//
// Without WithPath, WithMap or WithSource the process environment is used,
// captured once here. Only schema keys survive validation. NODE_ENV is then
// set to the stringified validated value, or "development" when it is
// missing or falsy, so it is only read from the source when s declares it.
//
// Errors are *LoadError (source could not be read or parsed) or
// *ValidationError (a value violates the schema). No partial Env is
// returned.
//
// Example:
//
//	env, err := envokin.Load(ctx, envokin.Schema{
//	    "PORT":     envokin.Port,
//	    "NODE_ENV": envokin.String,
//	}, envokin.WithPath(".env"), envokin.WithStrict(true))
//	if err != nil {
//	    return err
//	}
//	port := env.Config().Int("PORT", 3000)
func Load(ctx context.Context, s Schema, opts ...Option) (env *Env, err error) {
	if ctx == nil {
		return nil, ErrNilContext
	}

	cfg := defaultLoadConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	var src source.Source
	if cfg.newSource != nil {
		src = cfg.newSource(&cfg)
	}
	if src == nil {
		src = source.Environ(os.Environ())
	}

	id := uuid.NewString()
	logger := observability.EnrichLogger(cfg.logger, id, src.Name())
	elapsed := observability.TimedOperation()
	startTime := time.Now()

	observability.LogLoadStart(logger)

	ctx, span := cfg.spans.StartLoadSpan(ctx, src.Name(), id)
	defer func() {
		cfg.spans.EndSpanWithError(span, err)
		cfg.metrics.RecordLoad(ctx, src.Name(), time.Since(startTime), err)
		if err != nil {
			observability.LogLoadError(logger, err, elapsed())
		}
	}()

	raw, err := src.Load(ctx)
	if err != nil {
		if !IsLoadError(err) {
			err = &LoadError{Path: src.Name(), Op: "read", Err: err}
		}
		return nil, err
	}
	cfg.spans.AddSpanEvent(ctx, "source.loaded", attribute.Int("keys", len(raw)))

	typed, err := validate(ctx, &cfg, s, raw, logger)
	if err != nil {
		return nil, err
	}

	nodeEnv := DefaultNodeEnv
	if v, ok := typed[NodeEnvKey]; ok && schema.Provided(v) {
		nodeEnv = stringify(v)
	}
	typed[NodeEnvKey] = nodeEnv

	env = &Env{
		id:      id,
		nodeEnv: nodeEnv,
		cfg:     config.New(typed),
	}
	observability.LogLoadComplete(logger, elapsed(), env.cfg.Len(), nodeEnv)
	return env, nil
}

// validate runs the schema validator inside its own span.
func validate(ctx context.Context, cfg *loadConfig, s Schema, raw map[string]any, logger *slog.Logger) (map[string]any, error) {
	v := schema.NewValidator(s, schema.Strict(cfg.strict), schema.WithLogger(logger))

	ctx, span := cfg.spans.StartValidateSpan(ctx, len(s), cfg.strict)
	typed, err := v.ValidateAndTransform(raw)
	cfg.spans.EndSpanWithError(span, err)
	cfg.metrics.RecordValidation(ctx, len(s), err)

	return typed, err
}

// stringify renders a validated value as NODE_ENV. Slices and arrays are
// joined with commas, nested ones flattened, and nil elements left empty.
func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []string:
		return strings.Join(val, ",")
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = stringify(rv.Index(i).Interface())
		}
		return strings.Join(parts, ",")
	}
	return fmt.Sprint(v)
}

// ID returns the identifier assigned to this load. It appears in log
// records (load_id) and on the load span.
func (e *Env) ID() string {
	return e.id
}

// Get returns the typed value for key, or nil when absent.
func (e *Env) Get(key string) any {
	return e.cfg.Any(key, nil)
}

// Lookup returns the typed value for key and whether it is present.
func (e *Env) Lookup(key string) (any, bool) {
	return e.cfg.Lookup(key)
}

// Config returns the typed accessor view of the record.
func (e *Env) Config() config.Config {
	return e.cfg
}

// NodeEnv returns the resolved NODE_ENV.
func (e *Env) NodeEnv() string {
	return e.nodeEnv
}

// IsDev reports whether NODE_ENV is development, dev or develop.
func (e *Env) IsDev() bool {
	switch e.nodeEnv {
	case "development", "dev", "develop":
		return true
	}
	return false
}

// IsTest reports whether NODE_ENV is test or t.
func (e *Env) IsTest() bool {
	switch e.nodeEnv {
	case "test", "t":
		return true
	}
	return false
}

// IsProduction reports whether NODE_ENV is production or prod.
func (e *Env) IsProduction() bool {
	switch e.nodeEnv {
	case "production", "prod":
		return true
	}
	return false
}
