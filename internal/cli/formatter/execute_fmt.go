package formatter

import (
	"fmt"
	"strings"

	"github.com/notionplan/notionplan/internal/domain"
)

// FormatExecutionResults formats per-operation outcomes plus a summary
// line.
func FormatExecutionResults(results []domain.ExecutionResult) string {
	var b strings.Builder

	b.WriteString(Header("Execution Results"))
	b.WriteString("\n\n")

	for i, r := range results {
		icon := StyleGreen.Render("✓")
		if !r.Success {
			icon = StyleRed.Render("✗")
		}
		b.WriteString(fmt.Sprintf("%s %s %s  %s\n",
			icon,
			Bold(fmt.Sprintf("%d.", i+1)),
			KindBadge(r.Operation.Kind),
			StyleFg.Render(r.Operation.MainFieldValue()),
		))
		if r.Success && r.NotionPageID != "" {
			b.WriteString(fmt.Sprintf("   %s %s\n", Dim("Page:"), TruncID(r.NotionPageID)))
		}
		if !r.Success {
			b.WriteString(fmt.Sprintf("   %s\n", StyleRed.Render(r.Error)))
		}
	}

	summary := domain.Summarize(results)
	b.WriteString("\n")
	line := fmt.Sprintf("%s  %s  %s",
		StyleGreen.Render(fmt.Sprintf("Successful: %d", summary.Successful)),
		StyleDim.Render("|"),
		failureStyle(summary.Failed).Render(fmt.Sprintf("Failed: %d", summary.Failed)),
	)
	b.WriteString(line + "\n")

	return b.String()
}

func failureStyle(failed int) interface{ Render(...string) string } {
	if failed > 0 {
		return StyleRed
	}
	return StyleDim
}
