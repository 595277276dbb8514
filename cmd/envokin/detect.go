package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/envokin/pkg/envokin/loader"
)

func newDetectCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "detect FILE",
		Short: "Print the detected format of a configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l := loader.New(args[0], loader.WithLogger(ctx.logger(cmd.ErrOrStderr())))
			ft, err := l.FileType()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ft.String())
			return nil
		},
	}
}
