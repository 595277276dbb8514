/*
Package envokin loads configuration from a file, a map or the environment,
validates it against a schema and exposes the typed result.

# Overview

A schema names every key the application reads and the kind of value it
expects. Load reads a raw record, checks each schema key, coerces the values
(ports to int, numbers to float64, comma lists to []string, JSON text to
decoded values) and freezes the result. Keys the schema does not name are
dropped.

Sources:
  - a file path: JSON (content starts with "{" and a line break) or ENV
    (KEY=value lines), YAML and TOML by extension
  - an in-memory map
  - any source.Source, such as a SQLite settings table
  - the process environment, when nothing else is given

# Basic Usage

	env, err := envokin.New(envokin.Schema{
	    "HOST":     envokin.Host,
	    "PORT":     envokin.Port,
	    "ORIGINS":  envokin.CommaList,
	    "NODE_ENV": envokin.String,
	}, envokin.WithPath(".env"))
	if err != nil {
	    log.Fatal(err)
	}

	port := env.Config().Int("PORT", 3000)
	if env.IsProduction() {
	    // ...
	}

# Strict Mode

By default a key whose value is missing, "", false, zero or NaN is left out
of the result. WithStrict(true) turns that into an error naming the key.

# NODE_ENV

The result always holds NODE_ENV as a string. It is taken from the validated
record (so the schema must declare it) and defaults to "development".
IsDev, IsTest and IsProduction compare it against development/dev/develop,
test/t and production/prod; any other value makes all three false.

# Custom Rules

	"LEVEL": schema.Func(
	    func(key string, v any) bool { s, ok := v.(string); return ok && s != "" },
	    func(v any) any { return strings.ToLower(v.(string)) },
	),

# Error Handling

Load returns a *LoadError when the source cannot be read or parsed, and a
*ValidationError for the first schema key (in sorted order) that fails.
Use errors.Is with ErrRequired, ErrInvalidValue, ErrCustomValidation,
ErrUnknownType or ErrUnsupportedFileType to branch on the cause.

# Observability

WithLogger, WithMetrics and WithSpanManager attach slog logging and
OpenTelemetry metrics and spans. Each load gets an ID (Env.ID) that appears
in its log records and on its span.

# Thread Safety

An Env is read-only and safe for concurrent use.
*/
package envokin
