package cli

import (
	"context"
	"fmt"

	"github.com/notionplan/notionplan/internal/cli/formatter"
	"github.com/notionplan/notionplan/internal/promptgen"
	"github.com/spf13/cobra"
)

func newSchemaCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Show the database schema as the planner sees it",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			stopSpinner := formatter.StartSpinner("Fetching database schema...")
			schema, err := app.Schema.Fetch(ctx)
			stopSpinner()
			if err != nil {
				return err
			}

			fmt.Println(formatter.FormatSchema(schema))
			return nil
		},
	}
}

func newPromptsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "prompts",
		Short: "Show the instruction blocks generated from the schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			stopSpinner := formatter.StartSpinner("Fetching database schema...")
			schema, err := app.Schema.Fetch(ctx)
			stopSpinner()
			if err != nil {
				return err
			}

			prompts := promptgen.ToSystemPrompts(promptgen.Generate(schema))
			fmt.Print(formatter.FormatPrompts(prompts))
			return nil
		},
	}
}
