package schema

import (
	"log/slog"

	cfgerrors "github.com/randalmurphal/envokin/pkg/envokin/errors"
	"github.com/randalmurphal/envokin/pkg/envokin/observability"
)

// Validator checks raw records against a schema and coerces the values.
// It is safe for concurrent use; the schema is copied at construction.
type Validator struct {
	schema Schema
	keys   []string
	strict bool
	logger *slog.Logger
	// err is set when the schema holds an unknown kind or a nil custom rule.
	err error
}

// Option configures a Validator.
type Option func(*Validator)

// Strict makes a missing or falsy value for any schema key an error.
// Default: false, which drops such keys from the result.
func Strict(strict bool) Option {
	return func(v *Validator) {
		v.strict = strict
	}
}

// WithLogger sets the logger for skipped keys and rejected values.
func WithLogger(logger *slog.Logger) Option {
	return func(v *Validator) {
		v.logger = logger
	}
}

// NewValidator creates a Validator for s.
func NewValidator(s Schema, opts ...Option) *Validator {
	v := &Validator{schema: s.Clone()}
	v.keys = v.schema.Keys()
	v.err = v.schema.Validate()
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// IsStrict reports whether the validator runs in strict mode.
func (v *Validator) IsStrict() bool {
	return v.strict
}

// Keys returns the schema keys in validation order.
func (v *Validator) Keys() []string {
	out := make([]string, len(v.keys))
	copy(out, v.keys)
	return out
}

// ValidateAndTransform validates raw against the schema and returns the
// coerced values of the schema's keys. Keys absent from the schema are
// dropped. Keys are visited in sorted order and the first failure is
// returned as a *errors.ValidationError; no partial result is returned.
// A schema with an unknown kind fails every call with ErrUnknownType.
func (v *Validator) ValidateAndTransform(raw map[string]any) (map[string]any, error) {
	if v.err != nil {
		return nil, v.err
	}

	result := make(map[string]any, len(v.keys))

	for _, key := range v.keys {
		value := raw[key]

		if falsy(value) {
			if v.strict {
				err := cfgerrors.NewValidationError(key, cfgerrors.ErrRequired,
					"key %q is required but not provided", key)
				observability.LogValidationError(v.logger, key, err)
				return nil, err
			}
			observability.LogKeySkipped(v.logger, key)
			continue
		}

		out, err := transform(key, v.schema[key], value)
		if err != nil {
			observability.LogValidationError(v.logger, key, err)
			return nil, err
		}
		result[key] = out
	}

	return result, nil
}

// ValidateAndTransform validates raw against s with a one-off Validator.
func ValidateAndTransform(s Schema, raw map[string]any, strict bool) (map[string]any, error) {
	return NewValidator(s, Strict(strict)).ValidateAndTransform(raw)
}

func transform(key string, entry Entry, value any) (any, error) {
	switch e := entry.(type) {
	case customEntry:
		if e.custom == nil {
			return nil, unknownType(key, entry)
		}
		if !e.custom.Validates(key, value) {
			return nil, cfgerrors.NewValidationError(key, cfgerrors.ErrCustomValidation,
				"custom validation failed for key %q", key)
		}
		return e.custom.Transform(value), nil
	case Kind:
		return transformKind(key, e, value)
	default:
		return nil, unknownType(key, entry)
	}
}

func transformKind(key string, kind Kind, value any) (any, error) {
	switch kind {
	case Host:
		if !isHost(value) {
			return nil, invalid(key, "host")
		}
		return value, nil
	case Port:
		port, ok := asPort(value)
		if !ok {
			return nil, invalid(key, "port")
		}
		return port, nil
	case URL:
		if !isURL(value) {
			return nil, invalid(key, "url")
		}
		return value, nil
	case Email:
		if !isEmail(value) {
			return nil, invalid(key, "email")
		}
		return value, nil
	case Array:
		if !isArray(value) {
			return nil, invalid(key, "array")
		}
		return value, nil
	case CommaList:
		s, ok := value.(string)
		if !ok {
			return nil, cfgerrors.NewValidationError(key, cfgerrors.ErrInvalidValue,
				"%q should be a string with values separated by %q", key, ",")
		}
		return splitComma(s), nil
	case IP:
		if !isIP(value) {
			return nil, invalid(key, "IP address")
		}
		return value, nil
	case IP4:
		if !isIP4(value) {
			return nil, invalid(key, "IP4 address")
		}
		return value, nil
	case IP6:
		if !isIP6(value) {
			return nil, invalid(key, "IP6 address")
		}
		return value, nil
	case String:
		if _, ok := value.(string); !ok {
			return nil, invalid(key, "string")
		}
		return value, nil
	case Number:
		n, ok := numeric(value)
		if !ok {
			return nil, invalid(key, "number")
		}
		return n, nil
	case Boolean:
		b, ok := asBoolean(value)
		if !ok {
			return nil, invalid(key, "boolean")
		}
		return b, nil
	case JSON:
		parsed, ok := asJSON(value)
		if !ok {
			return nil, invalid(key, "JSON")
		}
		return parsed, nil
	default:
		return nil, unknownType(key, kind)
	}
}

func checkEntry(key string, entry Entry) error {
	switch e := entry.(type) {
	case Kind:
		if !e.Valid() {
			return unknownType(key, entry)
		}
	case customEntry:
		if e.custom == nil {
			return unknownType(key, entry)
		}
	default:
		return unknownType(key, entry)
	}
	return nil
}

func invalid(key, expected string) error {
	return cfgerrors.NewValidationError(key, cfgerrors.ErrInvalidValue,
		"%q should be a valid %s", key, expected)
}

func unknownType(key string, entry Entry) error {
	label := "<nil>"
	if entry != nil {
		label = Describe(entry)
		if _, ok := entry.(customEntry); ok {
			label = "custom(nil)"
		}
	}
	return cfgerrors.NewValidationError(key, cfgerrors.ErrUnknownType,
		"%q has unknown schema type %q", key, label)
}

// Provided reports whether value counts as present: not nil, "", false,
// a numeric zero or NaN.
func Provided(value any) bool {
	return !falsy(value)
}
