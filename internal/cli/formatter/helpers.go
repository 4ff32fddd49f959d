package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/notionplan/notionplan/internal/domain"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// KindBadge returns a colored label for an operation kind.
func KindBadge(kind domain.OperationKind) string {
	switch kind {
	case domain.OpCreate:
		return StyleGreen.Render("+ CREATE")
	case domain.OpUpdate:
		return StyleBlue.Render("~ UPDATE")
	case domain.OpStatusChange:
		return StylePurple.Render("» STATUS")
	default:
		return StyleDim.Render(string(kind))
	}
}

// ApprovalPill returns a colored approval indicator for an operation.
func ApprovalPill(op domain.Operation) string {
	switch {
	case op.Approved && op.Edited:
		return StyleGreen.Render("✓ approved") + StyleYellow.Render(" (edited)")
	case op.Approved:
		return StyleGreen.Render("✓ approved")
	case op.Edited:
		return StyleYellow.Render("○ edited, pending")
	default:
		return StyleDim.Render("○ pending")
	}
}

// RelativeDate returns a human-friendly relative date string.
func RelativeDate(t time.Time) string {
	return RelativeDateFrom(t, time.Now())
}

// RelativeDateFrom returns a human-friendly relative date string from a reference time.
func RelativeDateFrom(t time.Time, now time.Time) string {
	diff := t.Sub(now)
	days := int(math.Round(diff.Hours() / 24))

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days < 0 && days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days < 0 && days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// DateAnnotationFrom renders the relative-date suffix shown next to a
// date field value. Returns "" when the value is not a date.
func DateAnnotationFrom(value string, now time.Time) string {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		if t, err = time.Parse(time.RFC3339, value); err != nil {
			return ""
		}
	}
	return Dim("(" + RelativeDateFrom(t, now) + ")")
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// FieldValueString renders an operation field value for display.
func FieldValueString(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return "-"
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
		if s == math.Trunc(s) {
			return fmt.Sprintf("%d", int64(s))
		}
		return fmt.Sprintf("%g", s)
	}
	return fmt.Sprintf("%v", v)
}
