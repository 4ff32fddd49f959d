package promptgen

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/notionplan/notionplan/internal/domain"
)

type exampleOperation struct {
	ID         string                 `json:"id"`
	Kind       string                 `json:"kind"`
	TaskID     interface{}            `json:"taskId"`
	Fields     map[string]interface{} `json:"fields"`
	Reason     string                 `json:"reason"`
	Confidence int                    `json:"confidence"`
	Warnings   []string               `json:"warnings"`
}

// apiQueryPrompt renders one literal CREATE and one literal UPDATE
// example using the database's real field names and options, plus the
// required top-level response shape.
func apiQueryPrompt(schema *domain.DatabaseSchema) domain.GeneratedPrompt {
	selectFields := append(schema.FieldsOfType(domain.FieldSelect), schema.FieldsOfType(domain.FieldMultiSelect)...)
	dateFields := schema.FieldsOfType(domain.FieldDate)

	var selectNotes []string
	for _, f := range selectFields {
		apiExpects := "String value"
		example := `"value"`
		if f.Type == domain.FieldMultiSelect {
			apiExpects = "Array of strings"
			example = `["value1", "value2"]`
		}
		if len(f.Options) > 0 {
			if f.Type == domain.FieldSelect {
				example = fmt.Sprintf("%q", f.Options[0])
			} else {
				second := f.Options[0]
				if len(f.Options) > 1 {
					second = f.Options[1]
				}
				example = fmt.Sprintf("[%q, %q]", f.Options[0], second)
			}
		}
		quoted := make([]string, len(f.Options))
		for i, opt := range f.Options {
			quoted[i] = fmt.Sprintf("%q", opt)
		}
		validValues := "No options defined"
		if len(quoted) > 0 {
			validValues = strings.Join(quoted, ", ")
		}
		selectNotes = append(selectNotes, fmt.Sprintf(`**%s** (%s):
- API expects: %s
- Valid values: %s
- Example: %s`, f.Name, f.Type, apiExpects, validValues, example))
	}

	var dateNotes []string
	for _, f := range dateFields {
		dateNotes = append(dateNotes, fmt.Sprintf(`**%s**: Use "YYYY-MM-DD" format (e.g., "2024-12-31")`, f.Name))
	}

	content := fmt.Sprintf(`# API Operation Examples for "%s"

## Example Operations Structure

%s

## Field-Specific API Notes

### Select Field API Mapping
%s

### Date Field API Mapping
%s

## Operation Guidelines

### CREATE Operations
- Always generate unique ID for each operation
- Include reason explaining why this operation is needed
- Set confidence based on information clarity (60-95%%)
- Add warnings for any assumptions or unclear mappings

### UPDATE Operations
- Must include valid taskId from existing database
- Only specify fields that need to be changed
- Higher confidence for updates with known record IDs

### STATUS_CHANGE Operations
- Simplified update focusing on status transitions
- Should include taskId and status-related fields only
- Use for workflow state changes

## Response Format Requirements
All operations must return valid JSON with this structure:
`+"```json"+`
{
  "plan": [
    {
      "id": "generated-uuid",
      "kind": "create|update|status_change",
      "taskId": "existing-record-id-or-null",
      "fields": {
        // Field values following exact schema requirements
      },
      "reason": "Clear explanation of why this operation is needed",
      "confidence": 85,
      "warnings": ["Any concerns or assumptions"]
    }
  ],
  "reasoning": "Overall explanation of the generated plan",
  "warnings": ["Any general warnings about the plan"]
}
`+"```",
		schema.Title, exampleOperations(schema), strings.Join(selectNotes, "\n\n"), strings.Join(dateNotes, "\n"))

	return domain.GeneratedPrompt{
		Name:     "API Query Guide",
		Content:  content,
		Category: domain.CategoryValidationRules,
	}
}

// exampleOperations builds concrete CREATE and UPDATE examples from
// whichever title/select/date fields the schema actually has.
func exampleOperations(schema *domain.DatabaseSchema) string {
	titleField := schema.TitleField()
	var selectField *domain.FieldSchema
	for i := range schema.Fields {
		if schema.Fields[i].Type == domain.FieldSelect {
			selectField = &schema.Fields[i]
			break
		}
	}
	var dateField *domain.FieldSchema
	for i := range schema.Fields {
		if schema.Fields[i].Type == domain.FieldDate {
			dateField = &schema.Fields[i]
			break
		}
	}

	createFields := map[string]interface{}{}
	if titleField != nil {
		createFields[titleField.Name] = "Example Task Name"
	}
	if selectField != nil && len(selectField.Options) > 0 {
		createFields[selectField.Name] = selectField.Options[0]
	}
	if dateField != nil {
		createFields[dateField.Name] = "2024-12-31"
	}

	createExample := exampleOperation{
		ID:         "create-example-1",
		Kind:       "create",
		TaskID:     nil,
		Fields:     createFields,
		Reason:     "Creating new task based on user request",
		Confidence: 85,
		Warnings:   []string{},
	}

	updateFields := map[string]interface{}{}
	if selectField != nil && len(selectField.Options) > 0 {
		opt := selectField.Options[0]
		if len(selectField.Options) > 1 {
			opt = selectField.Options[1]
		}
		updateFields[selectField.Name] = opt
	}

	updateExample := exampleOperation{
		ID:         "update-example-1",
		Kind:       "update",
		TaskID:     "existing-record-id",
		Fields:     updateFields,
		Reason:     "Updating task status based on progress",
		Confidence: 90,
		Warnings:   []string{},
	}

	createJSON, _ := json.MarshalIndent(createExample, "", "  ")
	updateJSON, _ := json.MarshalIndent(updateExample, "", "  ")

	return fmt.Sprintf("### CREATE Operation Example:\n```json\n%s\n```\n\n### UPDATE Operation Example:\n```json  \n%s\n```", createJSON, updateJSON)
}
