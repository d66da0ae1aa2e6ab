package item

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/pipeboard/internal/cli"
)

// DeleteCmd returns the item delete subcommand
func DeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <item-id>",
		Short: "Delete an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
				if err := c.Service.DeleteItem(ctx, args[0]); err != nil {
					return err
				}
				result := map[string]string{"id": args[0]}
				return f.Success(result, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "✓ Deleted %s\n", args[0])
					return err
				})
			})
		},
	}
}
