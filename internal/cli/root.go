// Package cli implements the notionplan command set: generating,
// revising, reviewing, and executing operation plans against a Notion
// database.
package cli

import (
	"context"

	"github.com/notionplan/notionplan/internal/config"
	"github.com/notionplan/notionplan/internal/domain"
	"github.com/notionplan/notionplan/internal/llm"
	"github.com/spf13/cobra"
)

// SchemaService fetches the live database schema.
type SchemaService interface {
	Fetch(ctx context.Context) (*domain.DatabaseSchema, error)
}

// PlanService generates and revises operation plans.
type PlanService interface {
	GeneratePlan(ctx context.Context, schema *domain.DatabaseSchema, prompt string, files []domain.ProcessedFile) (domain.Plan, error)
	ReviseOperations(ctx context.Context, schema *domain.DatabaseSchema, operations []domain.Operation, prompt string) (domain.Plan, error)
}

// ExecService applies approved operations to the database.
type ExecService interface {
	Execute(ctx context.Context, schema *domain.DatabaseSchema, operations []domain.Operation) []domain.ExecutionResult
}

// App holds references to all services used by CLI commands.
type App struct {
	Settings config.Settings
	Schema   SchemaService
	Planner  PlanService
	Executor ExecService
	LLM      llm.CompletionClient

	// IsInteractive reports whether stdin is a terminal; non-interactive
	// runs skip the review TUI.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "notionplan" command and registers
// all subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "notionplan",
		Short: "Turn natural-language requests into reviewed Notion database operations",
	}

	root.AddCommand(
		newPlanCmd(app),
		newReviseCmd(app),
		newExecuteCmd(app),
		newSchemaCmd(app),
		newPromptsCmd(app),
		newCheckCmd(app),
	)

	return root
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}
