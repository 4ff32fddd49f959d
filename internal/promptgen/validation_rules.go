package promptgen

import (
	"fmt"
	"strings"

	"github.com/notionplan/notionplan/internal/domain"
)

// validationRulesPrompt restates required fields, per-type
// constraints, confidence banding, and the warning-trigger checklist.
func validationRulesPrompt(schema *domain.DatabaseSchema) domain.GeneratedPrompt {
	titleFields := schema.FieldsOfType(domain.FieldTitle)
	selectFields := append(schema.FieldsOfType(domain.FieldSelect), schema.FieldsOfType(domain.FieldMultiSelect)...)
	dateFields := schema.FieldsOfType(domain.FieldDate)

	titleRule := "- No title fields identified"
	if len(titleFields) > 0 {
		names := make([]string, len(titleFields))
		for i, f := range titleFields {
			names[i] = f.Name
		}
		titleRule = fmt.Sprintf("- **Title/Name Fields**: %s - REQUIRED for all operations", strings.Join(names, ", "))
	}

	var selectRules []string
	for _, f := range selectFields {
		valueKind := "Single value"
		if f.Type == domain.FieldMultiSelect {
			valueKind = "Array of values"
		}
		options := "No options defined"
		if len(f.Options) > 0 {
			options = strings.Join(f.Options, `", "`)
		}
		selectRules = append(selectRules, fmt.Sprintf(`- **%s** (%s): %s from ["%s"]`, f.Name, f.Type, valueKind, options))
	}

	dateRule := "- No date fields identified"
	if len(dateFields) > 0 {
		var rules []string
		for _, f := range dateFields {
			rules = append(rules, fmt.Sprintf("- **%s**: Use YYYY-MM-DD format only", f.Name))
		}
		dateRule = strings.Join(rules, "\n")
	}

	content := fmt.Sprintf(`# Data Validation Rules for "%s"

## Required Field Validation
%s

## Field Type Validation
### Select Field Restrictions
%s

### Date Field Format
%s

## Operation-Specific Rules

### CREATE Operations
- Must include all required fields
- Leave taskId empty/null
- Use appropriate confidence levels (60-95%%)
- Include warnings for any uncertain mappings

### UPDATE Operations
- Must include valid taskId from existing database records
- Only modify fields that need updating
- Preserve existing field values not being changed
- Use higher confidence for known records (70-95%%)

### STATUS_CHANGE Operations
- Must include valid taskId
- Focus on status-related fields only
- Validate status transitions are logical
- High confidence for simple status updates (80-95%%)

## Confidence Level Guidelines
- **90-95%%**: Clear, unambiguous requirements with exact field matches
- **75-89%%**: Good requirements but some field mapping assumptions
- **60-74%%**: Reasonable interpretation but may need user verification
- **40-59%%**: Uncertain mappings or missing key information
- **Below 40%%**: High uncertainty, significant user review needed

## Warning Triggers
Always add warnings for:
- Unknown or non-standard field values
- Date format ambiguity
- Missing required information
- Assumptions made about user intent
- Operations that might affect multiple records`,
		schema.Title, titleRule, strings.Join(selectRules, "\n"), dateRule)

	return domain.GeneratedPrompt{
		Name:     "Validation Rules",
		Content:  content,
		Category: domain.CategoryValidationRules,
	}
}
