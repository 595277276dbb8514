package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/envokin/pkg/envokin/schema"
)

type commandContext struct {
	verbose bool
	rules   *schema.Registry
}

// logger returns a debug logger on w when --verbose is set, nil otherwise.
func (c *commandContext) logger(w io.Writer) *slog.Logger {
	if !c.verbose {
		return nil
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func newRootCommand() *cobra.Command {
	ctx := &commandContext{rules: builtinRules()}

	rootCmd := &cobra.Command{
		Use:           "envokin",
		Short:         "Validate configuration against a schema",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&ctx.verbose, "verbose", "v", false, "Log load and validation steps to stderr")

	rootCmd.AddCommand(newCheckCommand(ctx))
	rootCmd.AddCommand(newDetectCommand(ctx))
	rootCmd.AddCommand(newKindsCommand())
	rootCmd.AddCommand(newRulesCommand(ctx))

	return rootCmd
}
