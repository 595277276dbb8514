package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/randalmurphal/envokin/pkg/envokin"
	"github.com/randalmurphal/envokin/pkg/envokin/loader"
	"github.com/randalmurphal/envokin/pkg/envokin/schema"
	"github.com/randalmurphal/envokin/pkg/envokin/source"
)

const (
	outputAuto  = "auto"
	outputTable = "table"
	outputJSON  = "json"
)

type checkOptions struct {
	schemaPath string
	sqlitePath string
	strict     bool
	output     string
}

func newCheckCommand(ctx *commandContext) *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check [SOURCE]",
		Short: "Validate a JSON or ENV file (or the environment) against a schema",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, ctx, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.schemaPath, "schema", "s", "", "Schema file mapping keys to kinds (YAML, TOML or JSON)")
	cmd.Flags().StringVar(&opts.sqlitePath, "sqlite", "", "Read settings from a SQLite database instead of a file")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Fail when a schema key is missing")
	cmd.Flags().StringVarP(&opts.output, "output", "o", outputAuto, "Output format: auto, table or json")
	_ = cmd.MarkFlagRequired("schema")

	return cmd
}

func runCheck(cmd *cobra.Command, ctx *commandContext, opts *checkOptions, args []string) error {
	format, err := resolveOutput(opts.output, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if len(args) > 0 && opts.sqlitePath != "" {
		return errors.New("pass either a SOURCE file or --sqlite, not both")
	}

	s, err := readSchema(opts.schemaPath, ctx.rules)
	if err != nil {
		return err
	}

	loadOpts := []envokin.Option{
		envokin.WithStrict(opts.strict),
		envokin.WithLogger(ctx.logger(cmd.ErrOrStderr())),
	}
	switch {
	case len(args) > 0:
		loadOpts = append(loadOpts, envokin.WithPath(args[0]))
	case opts.sqlitePath != "":
		store, err := source.NewSQLite(opts.sqlitePath)
		if err != nil {
			return fmt.Errorf("open settings database: %w", err)
		}
		defer store.Close()
		loadOpts = append(loadOpts, envokin.WithSource(store))
	}

	env, err := envokin.Load(cmd.Context(), s, loadOpts...)
	if err != nil {
		return err
	}

	if format == outputJSON {
		return writeJSON(cmd, env.Config().Raw())
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderEnv(env, s))
	return nil
}

// readSchema loads a schema file through the loader, so the same format
// rules apply: YAML/TOML by extension, JSON when the file starts with "{"
// and a line break. Tags that are not built-in kinds resolve against rules.
func readSchema(path string, rules *schema.Registry) (schema.Schema, error) {
	tags, err := loader.Load(path)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	s, err := schema.Parse(tags, rules)
	if err != nil {
		return nil, fmt.Errorf("schema %s: %w", path, err)
	}
	return s, nil
}

func resolveOutput(output string, w io.Writer) (string, error) {
	switch output {
	case outputTable, outputJSON:
		return output, nil
	case outputAuto, "":
		if isTerminal(w) {
			return outputTable, nil
		}
		return outputJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want auto, table or json)", output)
	}
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func renderEnv(env *envokin.Env, s schema.Schema) string {
	cfg := env.Config()
	keys := cfg.Keys()
	rows := make([][]string, 0, len(keys))
	for _, key := range keys {
		kind := "-"
		if entry, ok := s[key]; ok {
			kind = schema.Describe(entry)
		}
		value, _ := cfg.Lookup(key)
		rows = append(rows, []string{key, kind, formatValue(value)})
	}
	return renderTable([]string{"Key", "Kind", "Value"}, rows)
}

func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []string:
		return strings.Join(val, ", ")
	case time.Duration:
		return val.String()
	case map[string]any, []any:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(data)
	default:
		return fmt.Sprint(val)
	}
}

func newKindsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the built-in schema kinds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds := schema.Kinds()
			names := make([]string, len(kinds))
			for i, k := range kinds {
				names[i] = string(k)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newRulesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the named custom rules schema files may use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range ctx.rules.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
