package item

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/pipeboard/internal/cli"
	"github.com/thenoetrevino/pipeboard/internal/services/pipeline"
)

// AddCmd returns the item add subcommand
func AddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add an item to a stage",
		Long: `Add an item at the end of a stage.

Examples:
  # Add to the first stage
  pipeboard item add "Acme renewal"

  # Add to a stage by ID or title, with fields and notes from stdin
  echo "Met at the expo" | pipeboard item add "Globex" \
    --stage=qualified --field company=Globex --field value=12000 --notes=-

  # Quiet mode for bash capture
  ITEM_ID=$(pipeboard item add "Initech" --quiet)
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
				return runAdd(ctx, cmd, c, f, args[0])
			})
		},
	}

	cmd.Flags().String("stage", "", "Stage ID or title (defaults to the first stage)")
	cmd.Flags().String("notes", "", "Markdown notes (use - for stdin)")
	cmd.Flags().StringArray("field", nil, "Display field as key=value (repeatable)")

	return cmd
}

func runAdd(ctx context.Context, cmd *cobra.Command, c *cli.CLI, f *cli.OutputFormatter, title string) error {
	stageRef, _ := cmd.Flags().GetString("stage")
	notes, _ := cmd.Flags().GetString("notes")
	pairs, _ := cmd.Flags().GetStringArray("field")

	fields, err := cli.ParseFields(pairs)
	if err != nil {
		return err
	}

	if notes == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading notes from stdin: %w", err)
		}
		notes = string(data)
	}

	stages, err := c.Service.Stages(ctx)
	if err != nil {
		return err
	}
	if len(stages) == 0 {
		return &cli.UsageError{Err: fmt.Errorf("no stages configured")}
	}
	stage := stages[0]
	if stageRef != "" {
		if stage, err = cli.ResolveStage(stages, stageRef); err != nil {
			return err
		}
	}

	item, err := c.Service.CreateItem(ctx, pipeline.CreateItemRequest{
		StageID: stage.ID,
		Title:   title,
		Notes:   notes,
		Fields:  fields,
	})
	if err != nil {
		return err
	}

	return f.Success(item, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "✓ Added %q to %s (ID: %s)\n", item.Title, stage.Title, item.ID)
		return err
	})
}
