package promptgen

import (
	"fmt"
	"strings"

	"github.com/notionplan/notionplan/internal/domain"
)

// fieldGuidancePrompts renders option-set guidance for select and
// multi_select fields, with synonym-to-option mapping tables for
// priority- and status-like fields so the model can translate vague
// user language into valid exact option strings. Emits nothing when
// the schema has no select-like fields.
func fieldGuidancePrompts(schema *domain.DatabaseSchema) []domain.GeneratedPrompt {
	selectFields := schema.FieldsOfType(domain.FieldSelect)
	multiSelectFields := schema.FieldsOfType(domain.FieldMultiSelect)
	if len(selectFields) == 0 && len(multiSelectFields) == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString("# Select Field Usage Guide\n\n")

	if len(selectFields) > 0 {
		b.WriteString("## Single-Select Fields\nThese fields accept exactly ONE value from the specified options:\n\n")
		for _, f := range selectFields {
			if len(f.Options) == 0 {
				continue
			}
			fmt.Fprintf(&b, "**%s**: %s\n", f.Name, strings.Join(f.Options, ", "))
			b.WriteString(commonMappings(f.Name, f.Options) + "\n\n")
		}
	}

	if len(multiSelectFields) > 0 {
		b.WriteString("## Multi-Select Fields\nThese fields accept ARRAYS of values from the specified options:\n\n")
		for _, f := range multiSelectFields {
			if len(f.Options) == 0 {
				continue
			}
			quoted := make([]string, len(f.Options))
			for i, opt := range f.Options {
				quoted[i] = fmt.Sprintf("%q", opt)
			}
			fmt.Fprintf(&b, "**%s**: [%s]\n", f.Name, strings.Join(quoted, ", "))
			b.WriteString(commonMappings(f.Name, f.Options) + "\n\n")
		}
	}

	b.WriteString(`
**IMPORTANT:**
- Only use the EXACT option values listed above
- Never create new select options or use similar/synonymous terms
- For multi-select fields, always use arrays even for single values
- Case-sensitive matching is required`)

	return []domain.GeneratedPrompt{{
		Name:     "Select Field Guidelines",
		Content:  b.String(),
		Category: domain.CategoryFieldGuidance,
	}}
}

// commonMappings renders heuristic synonym tables for fields whose
// lowercased name contains "priority" or "status". Each table row maps
// free-text user language onto one of the field's real options.
func commonMappings(fieldName string, options []string) string {
	lowerName := strings.ToLower(fieldName)
	var b strings.Builder

	if strings.Contains(lowerName, "priority") {
		fmt.Fprintf(&b, "Common priority mappings for %s:\n", fieldName)
		for _, option := range options {
			lower := strings.ToLower(option)
			switch {
			case strings.Contains(lower, "high") || strings.Contains(lower, "urgent"):
				fmt.Fprintf(&b, "- \"urgent\", \"high priority\", \"important\" → %q\n", option)
			case strings.Contains(lower, "medium") || strings.Contains(lower, "normal"):
				fmt.Fprintf(&b, "- \"normal\", \"medium priority\", \"regular\" → %q\n", option)
			case strings.Contains(lower, "low"):
				fmt.Fprintf(&b, "- \"low priority\", \"nice to have\", \"minor\" → %q\n", option)
			}
		}
	}

	if strings.Contains(lowerName, "status") {
		fmt.Fprintf(&b, "Common status mappings for %s:\n", fieldName)
		for _, option := range options {
			lower := strings.ToLower(option)
			switch {
			case strings.Contains(lower, "not") || strings.Contains(lower, "todo") || strings.Contains(lower, "new"):
				fmt.Fprintf(&b, "- \"new\", \"todo\", \"pending\", \"not started\" → %q\n", option)
			case strings.Contains(lower, "progress") || strings.Contains(lower, "doing") || strings.Contains(lower, "active"):
				fmt.Fprintf(&b, "- \"in progress\", \"working\", \"active\", \"doing\" → %q\n", option)
			case strings.Contains(lower, "done") || strings.Contains(lower, "complete") || strings.Contains(lower, "finished"):
				fmt.Fprintf(&b, "- \"done\", \"completed\", \"finished\", \"closed\" → %q\n", option)
			case strings.Contains(lower, "hold") || strings.Contains(lower, "blocked") || strings.Contains(lower, "waiting"):
				fmt.Fprintf(&b, "- \"blocked\", \"on hold\", \"waiting\", \"paused\" → %q\n", option)
			}
		}
	}

	return b.String()
}
