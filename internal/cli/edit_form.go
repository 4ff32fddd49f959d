package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/notionplan/notionplan/internal/cli/formatter"
	"github.com/notionplan/notionplan/internal/domain"
)

// planHuhTheme returns a custom huh theme using the Gruvbox palette.
func planHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// runEditForm opens a form over an operation's fields. Select-like
// fields offer the schema's options; everything else is free text.
// Any change marks the operation edited.
func runEditForm(schema *domain.DatabaseSchema, op domain.Operation) (domain.Operation, error) {
	keys := sortedEditKeys(op.Fields)
	values := make([]string, len(keys))
	inputs := make([]huh.Field, 0, len(keys))

	for i, key := range keys {
		values[i] = editValueString(op.Fields[key])

		if field, ok := schemaFieldFor(schema, key); ok && field.IsSelectLike() && len(field.Options) > 0 {
			options := make([]huh.Option[string], 0, len(field.Options))
			for _, opt := range field.Options {
				options = append(options, huh.NewOption(opt, opt))
			}
			inputs = append(inputs, huh.NewSelect[string]().
				Title(key).
				Options(options...).
				Value(&values[i]))
			continue
		}

		input := huh.NewInput().Title(key).Value(&values[i])
		if field, ok := schemaFieldFor(schema, key); ok && field.Type == domain.FieldDate {
			input = input.Validate(validateOptionalDate)
		}
		inputs = append(inputs, input)
	}

	form := huh.NewForm(huh.NewGroup(inputs...)).
		WithTheme(planHuhTheme()).
		WithShowHelp(false)
	if err := form.Run(); err != nil {
		return op, fmt.Errorf("editing operation: %w", err)
	}

	for i, key := range keys {
		before := editValueString(op.Fields[key])
		if values[i] == before {
			continue
		}
		op.Fields[key] = parseEditedValue(op.Fields[key], values[i])
		op.Edited = true
	}

	return op, nil
}

// sortedEditKeys orders field keys with the title first so the form
// reads naturally.
func sortedEditKeys(fields domain.FieldValues) []string {
	var title []string
	var rest []string
	for k := range fields {
		switch strings.ToLower(k) {
		case "name", "title":
			title = append(title, k)
		default:
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(title, rest...)
}

func schemaFieldFor(schema *domain.DatabaseSchema, key string) (domain.FieldSchema, bool) {
	for _, f := range schema.Fields {
		if strings.EqualFold(f.Name, key) {
			return f, true
		}
	}
	return domain.FieldSchema{}, false
}

// editValueString renders a field value as the editable string form.
func editValueString(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case []string:
		return strings.Join(s, ", ")
	case []interface{}:
		parts := make([]string, 0, len(s))
		for _, e := range s {
			parts = append(parts, fmt.Sprintf("%v", e))
		}
		return strings.Join(parts, ", ")
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	}
	return fmt.Sprintf("%v", v)
}

// parseEditedValue converts the edited string back to the original
// value's shape: lists stay lists, numbers stay numbers.
func parseEditedValue(original interface{}, edited string) interface{} {
	switch original.(type) {
	case []string, []interface{}:
		parts := strings.Split(edited, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		return out
	case float64:
		if n, err := strconv.ParseFloat(edited, 64); err == nil {
			return n
		}
	}
	return edited
}

// validateOptionalDate accepts empty or a YYYY-MM-DD date string.
func validateOptionalDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}
