package errors

import (
	"errors"
	"fmt"
	"os"
	"testing"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("PORT", ErrInvalidValue, "%q should be a valid %s", "PORT", "port")

	t.Run("message is returned verbatim", func(t *testing.T) {
		expected := `"PORT" should be a valid port`
		if got := err.Error(); got != expected {
			t.Errorf("Error() = %q, want %q", got, expected)
		}
	})

	t.Run("key is kept", func(t *testing.T) {
		if err.Key != "PORT" {
			t.Errorf("Key = %q, want PORT", err.Key)
		}
	})

	t.Run("unwraps to kind", func(t *testing.T) {
		if !errors.Is(err, ErrInvalidValue) {
			t.Error("errors.Is(err, ErrInvalidValue) = false")
		}
		if errors.Is(err, ErrRequired) {
			t.Error("errors.Is(err, ErrRequired) = true")
		}
	})

	t.Run("discoverable through wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("build config: %w", err)
		var ve *ValidationError
		if !errors.As(wrapped, &ve) {
			t.Fatal("errors.As failed")
		}
		if ve.Key != "PORT" {
			t.Errorf("Key = %q, want PORT", ve.Key)
		}
		if !IsValidationError(wrapped) {
			t.Error("IsValidationError() = false")
		}
		if IsLoadError(wrapped) {
			t.Error("IsLoadError() = true")
		}
	})
}

func TestLoadError(t *testing.T) {
	tests := []struct {
		name     string
		err      *LoadError
		expected string
	}{
		{
			name:     "with path",
			err:      &LoadError{Path: "/etc/app.env", Op: "detect", Err: ErrUnsupportedFileType},
			expected: "load /etc/app.env: detect: unsupported file type",
		},
		{
			name:     "without path",
			err:      &LoadError{Op: "detect", Err: ErrUnsupportedFileType},
			expected: "load: detect: unsupported file type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
			if !errors.Is(tt.err, ErrUnsupportedFileType) {
				t.Error("errors.Is(err, ErrUnsupportedFileType) = false")
			}
			if !IsLoadError(tt.err) {
				t.Error("IsLoadError() = false")
			}
		})
	}

	t.Run("wraps os errors", func(t *testing.T) {
		err := &LoadError{Path: "missing", Op: "read", Err: os.ErrNotExist}
		if !errors.Is(err, os.ErrNotExist) {
			t.Error("errors.Is(err, os.ErrNotExist) = false")
		}
		if IsValidationError(err) {
			t.Error("IsValidationError() = true")
		}
	})
}
