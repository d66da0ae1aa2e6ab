// Package item implements the "pipeboard item" commands
package item

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/pipeboard/internal/cli"
)

// ItemCmd returns the item parent command
func ItemCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage pipeline items",
	}

	cmd.AddCommand(AddCmd())
	cmd.AddCommand(MoveCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(DeleteCmd())
	cmd.AddCommand(ReorderCmd())

	// Agent-friendly flags, shared by every subcommand
	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().Bool("quiet", false, "Minimal output (IDs only)")

	return cmd
}

type runFunc func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error

// run resolves the CLI and formatter for a command and reports errors in
// the requested output mode
func run(cmd *cobra.Command, fn runFunc) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	formatter := &cli.OutputFormatter{
		JSON:  jsonOutput,
		Quiet: quietMode,
		Out:   cmd.OutOrStdout(),
		Err:   cmd.ErrOrStderr(),
	}

	ctx := cmd.Context()
	c, err := cli.FromContext(ctx)
	if err == nil {
		err = fn(ctx, c, formatter)
	}
	if err != nil {
		if fmtErr := formatter.Error(cli.ErrorCode(err), err.Error()); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		return &cli.ReportedError{Err: err}
	}
	return nil
}
