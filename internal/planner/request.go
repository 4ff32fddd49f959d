package planner

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/notionplan/notionplan/internal/domain"
	"github.com/notionplan/notionplan/internal/llm"
)

// imageAnalysisDirective is appended immediately after any attachment
// block whose source was an image, steering the model toward extracting
// real task fields instead of fabricating placeholders.
const imageAnalysisDirective = `[IMPORTANT: This is a screenshot/image that may contain structured task information. Please analyze it carefully for:
- Task titles and names
- Due dates and deadlines
- Status indicators and priorities
- Assignee information
- Any other structured data visible in the interface
Extract specific, concrete information rather than creating placeholder tasks.]`

// buildDatabaseStructureSection concatenates generated prompt blocks
// between the fixed delimiters, in their generation order.
func buildDatabaseStructureSection(prompts []domain.SystemPrompt) string {
	if len(prompts) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(databaseStructureHeader)
	for _, p := range prompts {
		fmt.Fprintf(&b, "### %s\n%s\n\n", p.Name, p.Content)
	}
	b.WriteString(databaseStructureFooter)
	return b.String()
}

// BuildPlanGenerationPrompt assembles the full system prompt for plan
// generation: fixed preamble plus the generated database rules.
func BuildPlanGenerationPrompt(prompts []domain.SystemPrompt) string {
	return planGenerationSystemPrompt + buildDatabaseStructureSection(prompts)
}

// BuildOperationUpdatePrompt assembles the system prompt for the plan
// revision variant.
func BuildOperationUpdatePrompt(prompts []domain.SystemPrompt) string {
	return operationUpdateSystemPrompt + buildDatabaseStructureSection(prompts)
}

// BuildUserPrompt renders the user's request plus the rendered content
// of each attachment, each image block followed by the inline
// extraction directive.
func BuildUserPrompt(prompt string, files []domain.ProcessedFile) string {
	if len(files) == 0 {
		return prompt
	}

	var b strings.Builder
	b.WriteString(prompt)
	b.WriteString("\n\n=== ATTACHED FILES ===\n")
	for _, f := range files {
		b.WriteString(f.Content)
		b.WriteString("\n\n")
		if f.IsImage() {
			b.WriteString(imageAnalysisDirective)
			b.WriteString("\n\n")
		}
	}
	b.WriteString("=== END FILES ===\n\nPlease analyze the attached files thoroughly and extract specific task information where available. For screenshots of task management interfaces, extract concrete task details rather than creating generic placeholder tasks.")
	return b.String()
}

// BuildPlanMessages produces the chat message list for plan
// generation. When any attachment is an image the user message becomes
// structured multi-part content carrying the inline image data;
// otherwise it stays a plain string.
func BuildPlanMessages(systemPrompt, userPrompt string, files []domain.ProcessedFile) []llm.Message {
	messages := []llm.Message{llm.SystemMessage(systemPrompt)}

	var imageURLs []string
	for _, f := range files {
		if f.IsImage() {
			imageURLs = append(imageURLs, f.Metadata.DataURL)
		}
	}

	if len(imageURLs) == 0 {
		return append(messages, llm.UserMessage(userPrompt))
	}

	parts := []llm.ContentPart{{Text: userPrompt}}
	for _, url := range imageURLs {
		parts = append(parts, llm.ContentPart{ImageURL: url})
	}
	return append(messages, llm.Message{Role: llm.RoleUser, Parts: parts})
}

type operationContext struct {
	Index      int                `json:"index"`
	ID         string             `json:"id"`
	Kind       string             `json:"kind"`
	Fields     domain.FieldValues `json:"fields"`
	Reason     string             `json:"reason"`
	Confidence int                `json:"confidence"`
	Warnings   []string           `json:"warnings"`
	Approved   bool               `json:"approved"`
	Edited     bool               `json:"edited"`
}

// BuildOperationUpdateUserPrompt serializes the current operations as
// context followed by the user's revision request.
func BuildOperationUpdateUserPrompt(userPrompt string, operations []domain.Operation) string {
	ctx := make([]operationContext, 0, len(operations))
	for i, op := range operations {
		warnings := op.Warnings
		if warnings == nil {
			warnings = []string{}
		}
		ctx = append(ctx, operationContext{
			Index:      i + 1,
			ID:         op.ID,
			Kind:       string(op.Kind),
			Fields:     op.Fields,
			Reason:     op.Reason,
			Confidence: op.Confidence,
			Warnings:   warnings,
			Approved:   op.Approved,
			Edited:     op.Edited,
		})
	}

	serialized, _ := json.MarshalIndent(ctx, "", "  ")

	return fmt.Sprintf(`Here are the current operations to modify:

%s

User Request: %s

Please modify the operations according to the user's request while following the database structure rules provided in the system prompts. Return the updated operations array with any necessary changes applied.`,
		serialized, userPrompt)
}
