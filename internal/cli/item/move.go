package item

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/pipeboard/internal/cli"
)

// MoveCmd returns the item move subcommand
func MoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <item-id> <stage>",
		Short: "Move an item to another stage",
		Long: `Move an item to the end of another stage. The stage may be given by ID
or title. Open boards refresh when a daemon is running.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
				stages, err := c.Service.Stages(ctx)
				if err != nil {
					return err
				}
				stage, err := cli.ResolveStage(stages, args[1])
				if err != nil {
					return err
				}

				item, err := c.Service.MoveItem(ctx, args[0], stage.ID)
				if err != nil {
					return err
				}

				return f.Success(item, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "✓ Moved %q to %s\n", item.Title, stage.Title)
					return err
				})
			})
		},
	}
}
