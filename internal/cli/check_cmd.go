package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/notionplan/notionplan/internal/cli/formatter"
	"github.com/notionplan/notionplan/internal/llm"
	"github.com/notionplan/notionplan/internal/planner"
	"github.com/spf13/cobra"
)

const checkTimeout = 60 * time.Second

func newCheckCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify configuration, Notion access, and the LLM connection",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
			defer cancel()

			failed := false

			if err := app.Settings.Validate(); err != nil {
				printCheck("Configuration", err)
				// Remaining checks cannot succeed without credentials.
				return fmt.Errorf("configuration incomplete")
			}
			printCheck("Configuration", nil)

			stopSpinner := formatter.StartSpinner("Checking Notion access...")
			schema, err := app.Schema.Fetch(ctx)
			stopSpinner()
			printCheck("Notion database", err)
			if err != nil {
				failed = true
			} else {
				fmt.Println(formatter.Dim(fmt.Sprintf("   %s, %d fields", schema.Title, len(schema.Fields))))
			}

			stopSpinner = formatter.StartSpinner("Checking LLM connection...")
			_, err = app.LLM.Complete(ctx, llm.CompletionRequest{
				Messages:            []llm.Message{llm.UserMessage(planner.ConnectionTestMessage())},
				MaxCompletionTokens: 100,
			})
			stopSpinner()
			printCheck(fmt.Sprintf("LLM (%s)", app.Settings.Model), err)
			if err != nil {
				failed = true
			}

			if failed {
				return fmt.Errorf("one or more checks failed")
			}
			return nil
		},
	}
}

func printCheck(name string, err error) {
	if err != nil {
		fmt.Printf("%s %s: %v\n", formatter.StyleRed.Render("✗"), name, err)
		return
	}
	fmt.Printf("%s %s\n", formatter.StyleGreen.Render("✓"), name)
}
