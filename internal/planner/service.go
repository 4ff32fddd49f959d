// Package planner turns natural-language requests into structured,
// reviewable database operation plans via an LLM completion client.
package planner

import (
	"context"

	"github.com/notionplan/notionplan/internal/domain"
	"github.com/notionplan/notionplan/internal/llm"
	"github.com/notionplan/notionplan/internal/promptgen"
)

// Service generates and revises operation plans against one database
// schema.
type Service struct {
	client    llm.CompletionClient
	maxTokens int
}

// NewService creates a planner backed by the given completion client.
// maxTokens caps the completion budget for each call; zero uses the
// client default.
func NewService(client llm.CompletionClient, maxTokens int) *Service {
	return &Service{client: client, maxTokens: maxTokens}
}

// GeneratePlan produces a normalized plan for the user's request,
// grounded in instruction blocks synthesized from the live schema.
// Attached files are rendered into the user prompt; image attachments
// additionally travel as inline image content.
func (s *Service) GeneratePlan(ctx context.Context, schema *domain.DatabaseSchema, prompt string, files []domain.ProcessedFile) (domain.Plan, error) {
	prompts := promptgen.ToSystemPrompts(promptgen.Generate(schema))

	systemPrompt := BuildPlanGenerationPrompt(prompts)
	userPrompt := BuildUserPrompt(prompt, files)
	messages := BuildPlanMessages(systemPrompt, userPrompt, files)

	raw, err := s.client.Complete(ctx, llm.CompletionRequest{
		Messages:            messages,
		MaxCompletionTokens: s.maxTokens,
	})
	if err != nil {
		return domain.Plan{}, err
	}

	return ParsePlan(raw)
}

// ReviseOperations applies a natural-language modification request to
// an existing operation list and returns the revised, normalized plan.
func (s *Service) ReviseOperations(ctx context.Context, schema *domain.DatabaseSchema, operations []domain.Operation, prompt string) (domain.Plan, error) {
	prompts := promptgen.ToSystemPrompts(promptgen.Generate(schema))

	messages := []llm.Message{
		llm.SystemMessage(BuildOperationUpdatePrompt(prompts)),
		llm.UserMessage(BuildOperationUpdateUserPrompt(prompt, operations)),
	}

	raw, err := s.client.Complete(ctx, llm.CompletionRequest{
		Messages:            messages,
		MaxCompletionTokens: s.maxTokens,
	})
	if err != nil {
		return domain.Plan{}, err
	}

	return ParseRevisedOperations(raw)
}
