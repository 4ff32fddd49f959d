package cli

import (
	"context"
	"fmt"

	"github.com/notionplan/notionplan/internal/cli/formatter"
	"github.com/notionplan/notionplan/internal/domain"
	"github.com/spf13/cobra"
)

func newExecuteCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "execute [plan-file]",
		Short: "Apply a plan's approved operations to the database",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			planPath := defaultPlanFile
			if len(args) == 1 {
				planPath = args[0]
			}

			plan, err := loadPlan(planPath)
			if err != nil {
				return err
			}

			operations := plan.Approved()
			if all {
				operations = plan.Operations
			}
			if len(operations) == 0 {
				return fmt.Errorf("no approved operations in %s — review the plan first or pass --all", planPath)
			}

			stopSpinner := formatter.StartSpinner("Fetching database schema...")
			schema, err := app.Schema.Fetch(ctx)
			stopSpinner()
			if err != nil {
				return fmt.Errorf("fetching schema: %w", err)
			}

			stopSpinner = formatter.StartSpinner(fmt.Sprintf("Executing %d operations...", len(operations)))
			results := app.Executor.Execute(ctx, schema, operations)
			stopSpinner()

			fmt.Print(formatter.FormatExecutionResults(results))

			if summary := domain.Summarize(results); summary.Failed > 0 {
				return fmt.Errorf("%d of %d operations failed", summary.Failed, summary.Total)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Execute every operation, not only approved ones")

	return cmd
}
