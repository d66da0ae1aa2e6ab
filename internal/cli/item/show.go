package item

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/pipeboard/internal/cli"
	"github.com/thenoetrevino/pipeboard/internal/cli/styles"
)

// ShowCmd returns the item show subcommand
func ShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <item-id>",
		Short: "Show one item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
				item, err := c.Service.GetItem(ctx, args[0])
				if err != nil {
					return err
				}

				stageTitle := item.StageID
				if stages, err := c.Service.Stages(ctx); err == nil {
					if s, err := cli.ResolveStage(stages, item.StageID); err == nil {
						stageTitle = s.Title
					}
				}

				return f.Success(item, func(w io.Writer) error {
					styles.Init(c.Config.ColorScheme)
					_, err := fmt.Fprintln(w, styles.RenderItem(*item, stageTitle))
					return err
				})
			})
		},
	}
}
