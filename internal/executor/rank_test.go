package executor

import (
	"testing"
	"time"

	"github.com/notionplan/notionplan/internal/domain"
	"github.com/stretchr/testify/assert"
)

var rankNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestCalculateRank_DefaultBase(t *testing.T) {
	assert.Equal(t, 50, CalculateRank(domain.FieldValues{}, rankNow))
}

func TestCalculateRank_ExplicitBase(t *testing.T) {
	fields := domain.FieldValues{"rank": float64(200)}
	assert.Equal(t, 200, CalculateRank(fields, rankNow))
}

func TestCalculateRank_PriorityBonuses(t *testing.T) {
	tests := []struct {
		priority string
		want     int
	}{
		{"Urgent", 90},
		{"High", 70},
		{"Important", 70},
		{"Medium", 50},
		{"Low", 30},
		{"Low priority", 30},
		{"Unknown", 50},
	}
	for _, tt := range tests {
		fields := domain.FieldValues{"priority": tt.priority}
		assert.Equal(t, tt.want, CalculateRank(fields, rankNow), "priority %q", tt.priority)
	}
}

func TestCalculateRank_DueDateUrgency(t *testing.T) {
	tests := []struct {
		name string
		due  string
		want int
	}{
		{"overdue", "2025-05-20", 100},
		{"due in 2 days", "2025-06-03", 80},
		{"due in 6 days", "2025-06-07", 65},
		{"due far out", "2025-07-15", 50},
		{"unparseable", "someday", 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := domain.FieldValues{"due": tt.due}
			assert.Equal(t, tt.want, CalculateRank(fields, rankNow))
		})
	}
}

func TestCalculateRank_TagBonuses(t *testing.T) {
	quick := domain.FieldValues{"tags": []string{"easy", "backend"}}
	assert.Equal(t, 60, CalculateRank(quick, rankNow))

	important := domain.FieldValues{"tags": []string{"blocker"}}
	assert.Equal(t, 75, CalculateRank(important, rankNow))

	both := domain.FieldValues{"tags": []string{"quick-win", "critical"}}
	assert.Equal(t, 85, CalculateRank(both, rankNow))

	// JSON-decoded tag lists arrive as []interface{}.
	decoded := domain.FieldValues{"tags": []interface{}{"Minor"}}
	assert.Equal(t, 60, CalculateRank(decoded, rankNow))
}

func TestCalculateRank_Clamped(t *testing.T) {
	high := domain.FieldValues{
		"rank":     float64(990),
		"priority": "Urgent",
		"due":      "2025-05-01",
		"tags":     []string{"critical", "quick-win"},
	}
	assert.Equal(t, 1000, CalculateRank(high, rankNow))

	low := domain.FieldValues{"rank": float64(5), "priority": "Low"}
	assert.Equal(t, 0, CalculateRank(low, rankNow))
}

func TestCalculateRank_Deterministic(t *testing.T) {
	fields := domain.FieldValues{"priority": "High", "due": "2025-06-03", "tags": []string{"easy"}}
	first := CalculateRank(fields, rankNow)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, CalculateRank(fields, rankNow))
	}
}

func TestHasRankField(t *testing.T) {
	withRank := &domain.DatabaseSchema{Fields: []domain.FieldSchema{
		{Name: "Name", Type: domain.FieldTitle},
		{Name: "Priority_Score", Type: domain.FieldNumber},
	}}
	assert.True(t, HasRankField(withRank))

	field, ok := RankField(withRank)
	assert.True(t, ok)
	assert.Equal(t, "Priority_Score", field.Name)

	without := &domain.DatabaseSchema{Fields: []domain.FieldSchema{
		{Name: "Name", Type: domain.FieldTitle},
		{Name: "Ranked Choice", Type: domain.FieldSelect},
	}}
	assert.False(t, HasRankField(without))
}
