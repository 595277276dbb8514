package envokin

import (
	"errors"

	cfgerrors "github.com/randalmurphal/envokin/pkg/envokin/errors"
	"github.com/randalmurphal/envokin/pkg/envokin/loader"
	"github.com/randalmurphal/envokin/pkg/envokin/schema"
)

// Sentinel errors.
var (
	// ErrNilContext is returned when Load is called with a nil context.
	ErrNilContext = errors.New("context cannot be nil")

	// ErrRequired marks a schema key that strict mode found missing.
	ErrRequired = cfgerrors.ErrRequired

	// ErrCustomValidation marks a value rejected by a custom rule.
	ErrCustomValidation = cfgerrors.ErrCustomValidation

	// ErrInvalidValue marks a value rejected by a built-in kind.
	ErrInvalidValue = cfgerrors.ErrInvalidValue

	// ErrUnknownType marks a schema entry that is not a known kind.
	ErrUnknownType = cfgerrors.ErrUnknownType

	// ErrUnsupportedFileType marks a file that is neither JSON nor ENV.
	ErrUnsupportedFileType = cfgerrors.ErrUnsupportedFileType
)

// Re-exported types, so most callers only import this package.
type (
	ValidationError = cfgerrors.ValidationError
	LoadError       = cfgerrors.LoadError
	Schema          = schema.Schema
	Kind            = schema.Kind
	Custom          = schema.Custom
	Loader          = loader.Loader
	Validator       = schema.Validator
)

// Built-in kinds.
const (
	Host      = schema.Host
	Port      = schema.Port
	URL       = schema.URL
	Email     = schema.Email
	Array     = schema.Array
	CommaList = schema.CommaList
	IP        = schema.IP
	IP4       = schema.IP4
	IP6       = schema.IP6
	String    = schema.String
	Number    = schema.Number
	Boolean   = schema.Boolean
	JSON      = schema.JSON
)

// IsValidationError reports whether err is or wraps a *ValidationError.
func IsValidationError(err error) bool {
	return cfgerrors.IsValidationError(err)
}

// IsLoadError reports whether err is or wraps a *LoadError.
func IsLoadError(err error) bool {
	return cfgerrors.IsLoadError(err)
}
