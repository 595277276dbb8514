/*
Package config provides a read-only, typed view of a validated record.

# Overview

config wraps a map[string]any and provides typed accessor methods that handle
missing keys and type mismatches gracefully by returning default values.
The record is deep-copied on New, and composite values (slices, objects)
are copied again on the way out, so callers can never mutate it.

# Basic Usage

	cfg := config.New(map[string]any{
	    "PORT":     8080,
	    "TIMEOUT":  "30s",
	    "ORIGINS":  []string{"a.example", "b.example"},
	    "DEBUG":    true,
	})

	port := cfg.Int("PORT", 3000)                      // 8080
	timeout := cfg.Duration("TIMEOUT", 10*time.Second) // 30s
	origins := cfg.StringSlice("ORIGINS", nil)         // copy
	missing := cfg.String("MISSING", "default")        // "default"

# Type Coercion

Values arrive already coerced by the schema: ports as int, numbers as
float64, comma lists as []string and json values as decoded maps/slices.
Int and Float convert between those numeric forms when no precision is
lost. Duration accepts strings ("1h30m") and numbers of seconds.

# Thread Safety

Config is safe for concurrent use. Nothing writes to the record after New.
*/
package config
