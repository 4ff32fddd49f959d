package formatter

import (
	"fmt"
	"strings"

	"github.com/notionplan/notionplan/internal/domain"
)

// FormatSchema formats a fetched database schema for inspection.
func FormatSchema(schema *domain.DatabaseSchema) string {
	var b strings.Builder

	b.WriteString(Header(schema.Title))
	b.WriteString("\n\n")

	for _, f := range schema.Fields {
		line := fmt.Sprintf("%s %s",
			StyleFg.Render(f.Name),
			StyleBlue.Render(fmt.Sprintf("(%s)", f.Type)),
		)
		if len(f.Options) > 0 {
			line += "  " + Dim(strings.Join(f.Options, ", "))
		}
		b.WriteString("  " + line + "\n")
	}

	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("%d fields", len(schema.Fields))))
	if schema.TotalPages > 0 {
		b.WriteString(Dim(fmt.Sprintf(" · sampled from %d pages", schema.TotalPages)))
	}
	b.WriteString("\n")

	return RenderBox("Database Schema", b.String())
}

// FormatPrompts formats generated instruction blocks, content included.
func FormatPrompts(prompts []domain.SystemPrompt) string {
	var b strings.Builder

	for i, p := range prompts {
		b.WriteString(Header(fmt.Sprintf("%d. %s", i+1, p.Name)))
		b.WriteString("\n")
		b.WriteString(p.Content)
		b.WriteString("\n")
		if i < len(prompts)-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}
