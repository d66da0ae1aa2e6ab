package item

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/pipeboard/internal/cli"
)

// ReorderCmd returns the item reorder subcommand
func ReorderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reorder <stage> <item-id>...",
		Short: "Set the order of the items in a stage",
		Long: `Set the order of a stage. Every item of the stage must be listed exactly
once, first to last.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
				stages, err := c.Service.Stages(ctx)
				if err != nil {
					return err
				}
				stage, err := cli.ResolveStage(stages, args[0])
				if err != nil {
					return err
				}

				ids := args[1:]
				if err := c.Service.ReorderStage(ctx, stage.ID, ids); err != nil {
					return err
				}

				result := map[string]any{"stage_id": stage.ID, "order": ids}
				return f.Success(result, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "✓ Reordered %s (%d items)\n", stage.Title, len(ids))
					return err
				})
			})
		},
	}
}
