package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/notionplan/notionplan/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newReviseCmd(app *App) *cobra.Command {
	var planPath string
	var noReview bool

	cmd := &cobra.Command{
		Use:   "revise <request>",
		Short: "Modify an existing plan with a natural-language request",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			request := strings.Join(args, " ")

			plan, err := loadPlan(planPath)
			if err != nil {
				return err
			}
			if len(plan.Operations) == 0 {
				return fmt.Errorf("%s contains no operations to revise", planPath)
			}

			stopSpinner := formatter.StartSpinner("Fetching database schema...")
			schema, err := app.Schema.Fetch(ctx)
			stopSpinner()
			if err != nil {
				return fmt.Errorf("fetching schema: %w", err)
			}

			stopSpinner = formatter.StartSpinner("Revising plan...")
			revised, err := app.Planner.ReviseOperations(ctx, schema, plan.Operations, request)
			stopSpinner()
			if err != nil {
				return fmt.Errorf("revising plan: %w", err)
			}

			if app.interactive() && !noReview && len(revised.Operations) > 0 {
				revised, err = runReview(schema, revised)
				if err != nil {
					return err
				}
			}

			if err := savePlan(planPath, revised, time.Now().UTC().Format(time.RFC3339)); err != nil {
				return err
			}

			fmt.Print(formatter.FormatPlan(revised))
			fmt.Println(formatter.Dim(fmt.Sprintf("Plan saved to %s.", planPath)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&planPath, "plan", "p", defaultPlanFile, "Path to the plan file to revise")
	cmd.Flags().BoolVar(&noReview, "no-review", false, "Skip the interactive review step")

	return cmd
}
