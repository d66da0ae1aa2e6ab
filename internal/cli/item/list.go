package item

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/pipeboard/internal/cli"
	"github.com/thenoetrevino/pipeboard/internal/cli/styles"
	"github.com/thenoetrevino/pipeboard/internal/models"
)

// ListCmd returns the item list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List items by stage",
		Long:  "List every item grouped by stage, in board order.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
				return runList(ctx, cmd, c, f)
			})
		},
	}

	cmd.Flags().String("stage", "", "Only list this stage (ID or title)")

	return cmd
}

func runList(ctx context.Context, cmd *cobra.Command, c *cli.CLI, f *cli.OutputFormatter) error {
	stageRef, _ := cmd.Flags().GetString("stage")

	stages, err := c.Service.Stages(ctx)
	if err != nil {
		return err
	}
	if stageRef != "" {
		stage, err := cli.ResolveStage(stages, stageRef)
		if err != nil {
			return err
		}
		stages = []models.Column{stage}
	}

	items, err := c.Service.Snapshot(ctx)
	if err != nil {
		return err
	}

	byStage := make(map[string][]models.Item, len(stages))
	var listed []models.Item
	for _, item := range items {
		byStage[item.StageID] = append(byStage[item.StageID], item)
	}
	for _, s := range stages {
		listed = append(listed, byStage[s.ID]...)
	}
	if listed == nil {
		listed = []models.Item{}
	}

	return f.Success(listed, func(w io.Writer) error {
		styles.Init(c.Config.ColorScheme)
		if len(listed) == 0 {
			_, err := fmt.Fprintln(w, "No items found")
			return err
		}
		for _, s := range stages {
			fmt.Fprintln(w, styles.RenderStage(s, len(byStage[s.ID])))
			for _, item := range byStage[s.ID] {
				fmt.Fprintln(w, styles.RenderItemLine(item))
			}
		}
		return nil
	})
}
