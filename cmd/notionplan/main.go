package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/notionplan/notionplan/internal/cli"
	"github.com/notionplan/notionplan/internal/config"
	"github.com/notionplan/notionplan/internal/executor"
	"github.com/notionplan/notionplan/internal/llm"
	"github.com/notionplan/notionplan/internal/notion"
	"github.com/notionplan/notionplan/internal/planner"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv("NOTIONPLAN_CONFIG"))
	if err != nil {
		return err
	}

	var observer llm.Observer = llm.NoopObserver{}
	if cfg.LogCalls {
		observer = llm.NewLogObserver(os.Stderr)
	}

	llmClient := llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.Model, observer)
	notionClient := notion.NewClient(cfg.NotionAPIKey)

	warnf := func(format string, args ...interface{}) {
		fmt.Fprintf(os.Stderr, "  "+format+"\n", args...)
	}

	app := &cli.App{
		Settings: cfg,
		Schema:   notion.NewSchemaFetcher(notionClient, cfg.NotionDatabaseID),
		Planner:  planner.NewService(llmClient, cfg.MaxCompletionTokens),
		Executor: executor.New(notionClient, cfg.NotionDatabaseID, warnf),
		LLM:      llmClient,
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
