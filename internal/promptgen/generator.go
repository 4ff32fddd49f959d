// Package promptgen synthesizes LLM instruction blocks from a live
// database schema so the model only ever sees real field names, types,
// and option values.
package promptgen

import (
	"github.com/google/uuid"
	"github.com/notionplan/notionplan/internal/domain"
)

// Generate produces all instruction blocks for a schema, in the fixed
// order the plan request concatenates them: structure, field guidance,
// data patterns, validation rules, API examples. Blocks that need
// absent inputs (no select fields, no sample data) are skipped.
func Generate(schema *domain.DatabaseSchema) []domain.GeneratedPrompt {
	prompts := []domain.GeneratedPrompt{databaseStructurePrompt(schema)}

	prompts = append(prompts, fieldGuidancePrompts(schema)...)

	if len(schema.SampleData) > 0 {
		prompts = append(prompts, dataPatternsPrompt(schema))
	}

	prompts = append(prompts, validationRulesPrompt(schema), apiQueryPrompt(schema))
	return prompts
}

// ToSystemPrompts assigns identity and ordering to generated blocks.
func ToSystemPrompts(generated []domain.GeneratedPrompt) []domain.SystemPrompt {
	out := make([]domain.SystemPrompt, 0, len(generated))
	for i, p := range generated {
		out = append(out, domain.SystemPrompt{
			ID:      uuid.NewString(),
			Name:    p.Name,
			Content: p.Content,
			Active:  true,
			Order:   i,
		})
	}
	return out
}
