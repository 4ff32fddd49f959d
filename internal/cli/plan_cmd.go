package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/notionplan/notionplan/internal/cli/formatter"
	"github.com/notionplan/notionplan/internal/fileproc"
	"github.com/spf13/cobra"
)

func newPlanCmd(app *App) *cobra.Command {
	var attachments []string
	var outPath string
	var noReview bool

	cmd := &cobra.Command{
		Use:   "plan <request>",
		Short: "Generate an operation plan from a natural-language request",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			request := strings.Join(args, " ")

			stopSpinner := formatter.StartSpinner("Fetching database schema...")
			schema, err := app.Schema.Fetch(ctx)
			stopSpinner()
			if err != nil {
				return fmt.Errorf("fetching schema: %w", err)
			}

			files := fileproc.Process(attachments)
			for _, f := range files {
				if f.Metadata.Error {
					fmt.Println(formatter.StyleYellow.Render(
						fmt.Sprintf("  WARNING: %s: %s", f.Name, f.Content)))
				}
			}

			stopSpinner = formatter.StartSpinner("Generating plan...")
			plan, err := app.Planner.GeneratePlan(ctx, schema, request, files)
			stopSpinner()
			if err != nil {
				return fmt.Errorf("generating plan: %w", err)
			}

			if app.interactive() && !noReview && len(plan.Operations) > 0 {
				plan, err = runReview(schema, plan)
				if err != nil {
					return err
				}
			}

			if err := savePlan(outPath, plan, time.Now().UTC().Format(time.RFC3339)); err != nil {
				return err
			}

			fmt.Print(formatter.FormatPlan(plan))
			fmt.Println(formatter.Dim(fmt.Sprintf("Plan saved to %s — run 'notionplan execute %s' to apply approved operations.", outPath, outPath)))
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&attachments, "file", "f", nil, "Attach a file (JPG, PNG, PDF, or CSV); repeatable")
	cmd.Flags().StringVarP(&outPath, "out", "o", defaultPlanFile, "Path to write the plan file")
	cmd.Flags().BoolVar(&noReview, "no-review", false, "Skip the interactive review step")

	return cmd
}
