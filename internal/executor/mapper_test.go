package executor

import (
	"fmt"
	"testing"

	"github.com/notionplan/notionplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapperSchema() *domain.DatabaseSchema {
	return &domain.DatabaseSchema{
		Title: "Tasks",
		Fields: []domain.FieldSchema{
			{Name: "Name", Type: domain.FieldTitle},
			{Name: "Status", Type: domain.FieldSelect, Options: []string{"Not started", "In progress", "Done"}},
			{Name: "Priority", Type: domain.FieldSelect, Options: []string{"Low", "Medium", "High"}},
			{Name: "Tags", Type: domain.FieldMultiSelect, Options: []string{"backend", "frontend", "urgent"}},
			{Name: "Due", Type: domain.FieldDate},
			{Name: "Notes", Type: domain.FieldRichText},
			{Name: "Ranking", Type: domain.FieldNumber},
		},
	}
}

func TestMapProperties_AliasResolution(t *testing.T) {
	m := NewMapper(mapperSchema(), nil)

	props := m.MapProperties(domain.FieldValues{
		"title":  "Ship release",
		"status": "Done",
	})

	require.Contains(t, props, "Name")
	require.Contains(t, props, "Status")

	name := props["Name"].(map[string]interface{})
	runs := name["title"].([]map[string]interface{})
	text := runs[0]["text"].(map[string]interface{})
	assert.Equal(t, "Ship release", text["content"])
}

func TestMapProperties_CaseInsensitiveFieldMatch(t *testing.T) {
	m := NewMapper(mapperSchema(), nil)

	props := m.MapProperties(domain.FieldValues{"NOTES": "remember this"})

	require.Contains(t, props, "Notes")
}

func TestMapProperties_SelectExactAndCaseInsensitive(t *testing.T) {
	m := NewMapper(mapperSchema(), nil)

	props := m.MapProperties(domain.FieldValues{"status": "in progress"})

	status := props["Status"].(map[string]interface{})
	sel := status["select"].(map[string]interface{})
	assert.Equal(t, "In progress", sel["name"])
}

func TestMapProperties_SelectFirstOptionFallback(t *testing.T) {
	m := NewMapper(mapperSchema(), nil)

	props := m.MapProperties(domain.FieldValues{"priority": "Immediately"})

	priority := props["Priority"].(map[string]interface{})
	sel := priority["select"].(map[string]interface{})
	assert.Equal(t, "Low", sel["name"], "unmatched select values fall back to the first option")
}

func TestMapProperties_MultiSelectDropsUnknownValues(t *testing.T) {
	m := NewMapper(mapperSchema(), nil)

	props := m.MapProperties(domain.FieldValues{"tags": []string{"backend", "nonsense", "URGENT"}})

	tags := props["Tags"].(map[string]interface{})
	selected := tags["multi_select"].([]map[string]interface{})
	require.Len(t, selected, 2)
	assert.Equal(t, "backend", selected[0]["name"])
	assert.Equal(t, "urgent", selected[1]["name"])
}

func TestMapProperties_MultiSelectOmittedWhenNothingMatches(t *testing.T) {
	m := NewMapper(mapperSchema(), nil)

	props := m.MapProperties(domain.FieldValues{"tags": []string{"nope"}})

	assert.NotContains(t, props, "Tags")
}

func TestMapProperties_DatePassthrough(t *testing.T) {
	m := NewMapper(mapperSchema(), nil)

	props := m.MapProperties(domain.FieldValues{"due": "2025-07-01"})

	due := props["Due"].(map[string]interface{})
	date := due["date"].(map[string]interface{})
	assert.Equal(t, "2025-07-01", date["start"])
}

func TestMapProperties_NumberCoercion(t *testing.T) {
	m := NewMapper(mapperSchema(), nil)

	props := m.MapProperties(domain.FieldValues{"rank": float64(120)})

	ranking := props["Ranking"].(map[string]interface{})
	assert.Equal(t, float64(120), ranking["number"])

	props = m.MapProperties(domain.FieldValues{"ranking": "85"})
	ranking = props["Ranking"].(map[string]interface{})
	assert.Equal(t, float64(85), ranking["number"])
}

func TestMapProperties_UnknownFieldSkippedWithWarning(t *testing.T) {
	var warnings []string
	warnf := func(format string, args ...interface{}) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}
	m := NewMapper(mapperSchema(), warnf)

	props := m.MapProperties(domain.FieldValues{"assignee": "sam", "name": "X"})

	assert.NotContains(t, props, "assignee")
	assert.Contains(t, props, "Name")
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "assignee")
}

func TestMapProperties_NilValuesDropped(t *testing.T) {
	m := NewMapper(mapperSchema(), nil)

	props := m.MapProperties(domain.FieldValues{"name": "X", "due": nil})

	assert.Contains(t, props, "Name")
	assert.NotContains(t, props, "Due")
}
