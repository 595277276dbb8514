// Package errors defines the error kinds returned while loading and validating
// configuration.
//
// Two kinds exist:
//   - LoadError: the source could not be read, detected or parsed
//   - ValidationError: a value violates the schema
//
// Both carry a sentinel reachable through errors.Is, so callers can branch on
// the failure class without matching message text.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel kinds for validation failures.
var (
	// ErrRequired indicates a schema key had no (or a falsy) value in strict mode.
	ErrRequired = errors.New("required value not provided")

	// ErrCustomValidation indicates a custom validator rejected the value.
	ErrCustomValidation = errors.New("custom validation failed")

	// ErrInvalidValue indicates a value did not satisfy its type rule.
	ErrInvalidValue = errors.New("invalid value")

	// ErrUnknownType indicates the schema names a type tag that does not exist.
	ErrUnknownType = errors.New("unknown schema type")
)

// Sentinel kinds for load failures.
var (
	// ErrUnsupportedFileType indicates the content is neither JSON nor ENV.
	ErrUnsupportedFileType = errors.New("unsupported file type")
)

// ValidationError reports a schema violation for a single key.
// Error returns Message verbatim; Kind is exposed through Unwrap.
type ValidationError struct {
	// Key is the schema key that failed.
	Key string
	// Kind is one of the validation sentinels above.
	Kind error
	// Message is the human-readable description.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

// Unwrap returns the sentinel kind for errors.Is support.
func (e *ValidationError) Unwrap() error {
	return e.Kind
}

// NewValidationError creates a ValidationError with a formatted message.
func NewValidationError(key string, kind error, format string, args ...any) *ValidationError {
	return &ValidationError{
		Key:     key,
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// LoadError reports a failure to turn a file into a raw record.
type LoadError struct {
	// Path is the file being loaded.
	Path string
	// Op is the stage that failed ("read", "detect", "parse").
	Op string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("load %s: %s: %v", e.Path, e.Op, e.Err)
	}
	return fmt.Sprintf("load: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *LoadError) Unwrap() error {
	return e.Err
}

// IsValidationError reports whether err is or wraps a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsLoadError reports whether err is or wraps a *LoadError.
func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}
