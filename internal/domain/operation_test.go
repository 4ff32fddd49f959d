package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMainFieldValue_PrefersTitleKeys(t *testing.T) {
	op := Operation{Fields: FieldValues{
		"notes": "some notes",
		"name":  "Write report",
	}}

	assert.Equal(t, "Write report", op.MainFieldValue())
}

func TestMainFieldValue_CapitalizedKey(t *testing.T) {
	op := Operation{Fields: FieldValues{"Title": "Ship release"}}

	assert.Equal(t, "Ship release", op.MainFieldValue())
}

func TestMainFieldValue_FallsBackToAnyString(t *testing.T) {
	op := Operation{Fields: FieldValues{
		"priority": "High",
		"rank":     float64(80),
	}}

	assert.Equal(t, "High", op.MainFieldValue())
}

func TestMainFieldValue_Untitled(t *testing.T) {
	assert.Equal(t, "Untitled", Operation{}.MainFieldValue())
	assert.Equal(t, "Untitled", Operation{Fields: FieldValues{"rank": float64(50)}}.MainFieldValue())
}

func TestPlanApproved_PreservesOrder(t *testing.T) {
	plan := Plan{Operations: []Operation{
		{ID: "op-1", Approved: true},
		{ID: "op-2"},
		{ID: "op-3", Approved: true},
	}}

	approved := plan.Approved()

	assert.Len(t, approved, 2)
	assert.Equal(t, "op-1", approved[0].ID)
	assert.Equal(t, "op-3", approved[1].ID)
}

func TestPlanApproved_NoneApproved(t *testing.T) {
	plan := Plan{Operations: []Operation{{ID: "op-1"}}}

	assert.Empty(t, plan.Approved())
}

func TestSummarize(t *testing.T) {
	results := []ExecutionResult{
		{Success: true},
		{Success: false, Error: "boom"},
		{Success: true},
	}

	summary := Summarize(results)

	assert.Equal(t, ExecutionSummary{Total: 3, Successful: 2, Failed: 1}, summary)
}

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, ExecutionSummary{}, Summarize(nil))
}
