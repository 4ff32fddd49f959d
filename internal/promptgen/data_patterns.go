package promptgen

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/notionplan/notionplan/internal/domain"
)

var (
	digitRe   = regexp.MustCompile(`\d`)
	specialRe = regexp.MustCompile(`[^\w\s]`)
)

// dataPatternsPrompt analyzes the schema's sample records and renders
// usage frequencies, select value histograms, and title naming stats.
// Callers must not invoke it without sample data.
func dataPatternsPrompt(schema *domain.DatabaseSchema) domain.GeneratedPrompt {
	content := fmt.Sprintf(`# Data Patterns Analysis for "%s"

Based on analysis of %d existing records, here are the observed patterns:

## Field Usage Patterns
%s

## Value Distribution Patterns
%s

## Naming Conventions
%s

## Recommendations for New Operations
%s

**Important:** These patterns are based on existing data and should inform but not restrict your operations. Always follow the explicit field rules and validation requirements over inferred patterns.`,
		schema.Title,
		len(schema.SampleData),
		fieldUsage(schema),
		valueDistribution(schema),
		namingConventions(schema),
		recommendations())

	return domain.GeneratedPrompt{
		Name:     "Data Patterns Analysis",
		Content:  content,
		Category: domain.CategoryDataPatterns,
	}
}

// fieldUsage reports, per field, how many sample records populate it.
func fieldUsage(schema *domain.DatabaseSchema) string {
	total := len(schema.SampleData)
	var lines []string
	for _, f := range schema.Fields {
		used := 0
		for _, record := range schema.SampleData {
			if hasValue(record[f.Name]) {
				used++
			}
		}
		pct := int(math.Round(float64(used) / float64(total) * 100))
		lines = append(lines, fmt.Sprintf("- **%s**: Used in %d/%d records (%d%%)", f.Name, used, total, pct))
	}
	return strings.Join(lines, "\n")
}

func hasValue(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return val != ""
	case []string:
		return len(val) > 0
	case []interface{}:
		return len(val) > 0
	default:
		return true
	}
}

// valueDistribution renders a frequency-sorted histogram per
// select-like field.
func valueDistribution(schema *domain.DatabaseSchema) string {
	var sections []string
	for _, f := range schema.Fields {
		if !f.IsSelectLike() {
			continue
		}

		counts := map[string]int{}
		var order []string
		bump := func(val string) {
			if _, seen := counts[val]; !seen {
				order = append(order, val)
			}
			counts[val]++
		}
		for _, record := range schema.SampleData {
			switch val := record[f.Name].(type) {
			case string:
				if val != "" {
					bump(val)
				}
			case []string:
				for _, v := range val {
					bump(v)
				}
			case []interface{}:
				for _, v := range val {
					if s, ok := v.(string); ok {
						bump(s)
					}
				}
			}
		}
		if len(counts) == 0 {
			continue
		}

		sort.SliceStable(order, func(i, j int) bool {
			return counts[order[i]] > counts[order[j]]
		})
		var rows []string
		for _, val := range order {
			rows = append(rows, fmt.Sprintf("  - %q: %d times", val, counts[val]))
		}
		sections = append(sections, fmt.Sprintf("**%s** distribution:\n%s", f.Name, strings.Join(rows, "\n")))
	}

	if len(sections) == 0 {
		return "No select fields to analyze."
	}
	return strings.Join(sections, "\n\n")
}

// namingConventions summarizes the title field's sample values.
func namingConventions(schema *domain.DatabaseSchema) string {
	titleField := schema.TitleField()
	if titleField == nil {
		return "No clear naming patterns identified."
	}

	var titles []string
	for _, record := range schema.SampleData {
		if title, ok := record[titleField.Name].(string); ok && title != "" {
			titles = append(titles, title)
		}
	}
	if len(titles) == 0 {
		return "No clear naming patterns identified."
	}

	totalLen := 0
	hasNumbers := false
	hasSpecial := false
	for _, t := range titles {
		totalLen += len(t)
		if digitRe.MatchString(t) {
			hasNumbers = true
		}
		if specialRe.MatchString(t) {
			hasSpecial = true
		}
	}
	avgLen := int(math.Round(float64(totalLen) / float64(len(titles))))

	examples := titles
	if len(examples) > 3 {
		examples = examples[:3]
	}
	quoted := make([]string, len(examples))
	for i, t := range examples {
		quoted[i] = fmt.Sprintf("%q", t)
	}

	return fmt.Sprintf(`Observed naming patterns for %s:
- Average length: %d characters
- Contains numbers: %s
- Contains special characters: %s
- Sample titles: %s`,
		titleField.Name, avgLen, yesNo(hasNumbers), yesNo(hasSpecial), strings.Join(quoted, ", "))
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func recommendations() string {
	return `Based on the patterns above:
- Focus on commonly used fields (>70% usage rate) for required operations
- Follow established naming conventions when creating new records
- Use the most frequent select values as defaults where appropriate
- Consider field usage patterns when setting confidence levels`
}
