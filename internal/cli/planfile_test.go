package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/notionplan/notionplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadPlan_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.json")
	plan := domain.Plan{
		Operations: []domain.Operation{
			{
				ID:         "op-1",
				Kind:       domain.OpCreate,
				Fields:     domain.FieldValues{"name": "Write report", "rank": float64(80)},
				Reason:     "Requested by user",
				Confidence: 85,
				Approved:   true,
			},
			{
				ID:     "updated-2",
				Kind:   domain.OpUpdate,
				TaskID: "task-9",
				Fields: domain.FieldValues{"status": "Done"},
				Edited: true,
			},
		},
		Reasoning: "Two changes derived from the request",
		Warnings:  []string{"due date assumed"},
	}

	require.NoError(t, savePlan(path, plan, "2026-08-31T10:00:00Z"))

	loaded, err := loadPlan(path)

	require.NoError(t, err)
	assert.Equal(t, plan, loaded)
}

func TestLoadPlan_MissingFile(t *testing.T) {
	_, err := loadPlan(filepath.Join(t.TempDir(), "absent.json"))

	assert.ErrorContains(t, err, "reading")
}

func TestLoadPlan_MalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

	_, err := loadPlan(path)

	assert.ErrorContains(t, err, "parsing")
}

func TestSavePlan_RecordsTimestamp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.json")

	require.NoError(t, savePlan(path, domain.Plan{}, "2026-08-31T10:00:00Z"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"savedAt": "2026-08-31T10:00:00Z"`)
}
