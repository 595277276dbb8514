/*
Package loader turns a configuration file into a flat raw record
(map[string]any) ready for schema validation.

# Format Detection

The loader sniffs the content rather than trusting the file extension:

  - JSON: the file starts with "{" followed directly by "\n" or "\r\n".
    A single-line object such as {"a":1} is deliberately not recognized.
  - ENV: every line that is not blank and not a "#" comment starts with
    KEY= where KEY matches [A-Z0-9_]+.

Files ending in .yaml, .yml or .toml skip sniffing and are decoded with
gopkg.in/yaml.v3 and github.com/pelletier/go-toml/v2 respectively.

Content that matches neither detector fails with a *errors.LoadError wrapping
errors.ErrUnsupportedFileType.

# ENV Parsing

Each line is split at the first "=", key and value are trimmed, and later
duplicates override earlier ones. Values are taken verbatim: quotes are not
stripped and escapes are not processed.

	APP_NAME=svc
	# comment
	DSN=postgres://u:p@h/db?sslmode=disable   -> "postgres://u:p@h/db?sslmode=disable"

# Usage

	raw, err := loader.Load("config.env")
	if err != nil {
	    log.Fatal(err)
	}

	// Or with options
	l := loader.New("config.json", loader.WithLogger(logger))
	raw, err = l.Load(ctx)
*/
package loader
