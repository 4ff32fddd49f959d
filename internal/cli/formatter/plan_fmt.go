package formatter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/notionplan/notionplan/internal/domain"
)

// FormatPlan formats a plan into a styled review summary.
func FormatPlan(plan domain.Plan) string {
	var b strings.Builder

	b.WriteString(Header(fmt.Sprintf("Proposed Plan (%d operations)", len(plan.Operations))))
	b.WriteString("\n\n")

	if len(plan.Operations) == 0 {
		b.WriteString(Dim("The model proposed no operations."))
		b.WriteString("\n")
		return b.String()
	}

	for i, op := range plan.Operations {
		b.WriteString(FormatOperation(i+1, op))
		if i < len(plan.Operations)-1 {
			b.WriteString("\n")
		}
	}

	if plan.Reasoning != "" {
		b.WriteString("\n")
		b.WriteString(StylePurple.Render("Reasoning: "))
		b.WriteString(StyleFg.Render(plan.Reasoning))
		b.WriteString("\n")
	}

	for _, w := range plan.Warnings {
		b.WriteString(StyleYellow.Render(fmt.Sprintf("  WARNING: %s", w)) + "\n")
	}

	return b.String()
}

// FormatOperation formats one numbered operation entry.
func FormatOperation(num int, op domain.Operation) string {
	var b strings.Builder

	titleLine := fmt.Sprintf("%s %s  %s  %s  %s",
		Bold(fmt.Sprintf("%d.", num)),
		KindBadge(op.Kind),
		StyleFg.Render(op.MainFieldValue()),
		ConfidenceBadge(op.Confidence),
		ApprovalPill(op),
	)
	b.WriteString(titleLine + "\n")

	if op.TaskID != "" {
		b.WriteString(fmt.Sprintf("   %s %s\n", Dim("Target:"), TruncID(op.TaskID)))
	}

	for _, key := range sortedFieldKeys(op.Fields) {
		value := FieldValueString(op.Fields[key])
		line := fmt.Sprintf("   %s %s", Dim(key+":"), StyleFg.Render(value))
		if isDateKey(key) {
			if rel := DateAnnotationFrom(value, time.Now()); rel != "" {
				line += " " + rel
			}
		}
		b.WriteString(line + "\n")
	}

	if op.Reason != "" {
		b.WriteString(fmt.Sprintf("   %s\n", Dim(op.Reason)))
	}

	for _, w := range op.Warnings {
		b.WriteString(fmt.Sprintf("   %s %s\n", StyleYellow.Render("WARNING:"), Dim(w)))
	}

	return b.String()
}

func isDateKey(key string) bool {
	lower := strings.ToLower(key)
	return lower == "due" || strings.Contains(lower, "date")
}

func sortedFieldKeys(fields domain.FieldValues) []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
