package executor

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/notionplan/notionplan/internal/domain"
)

const (
	defaultBaseRank = 50
	minRank         = 0
	maxRank         = 1000
)

// rankLikeNames are the schema field names that receive the computed
// rank. Matching is case-insensitive.
var rankLikeNames = []string{"rank", "ranking", "priority_score"}

var priorityBonus = map[string]float64{
	"Urgent":       40,
	"High":         20,
	"Important":    20,
	"Medium":       0,
	"Low":          -20,
	"Low priority": -20,
}

var (
	quickWinTags  = []string{"quick-win", "easy", "small", "minor"}
	importantTags = []string{"critical", "important", "urgent", "blocker"}
)

// RankField returns the schema field the computed rank should be
// written to, if one exists.
func RankField(schema *domain.DatabaseSchema) (domain.FieldSchema, bool) {
	for _, f := range schema.Fields {
		for _, name := range rankLikeNames {
			if strings.EqualFold(f.Name, name) {
				return f, true
			}
		}
	}
	return domain.FieldSchema{}, false
}

// HasRankField reports whether the schema has a rank-like field.
func HasRankField(schema *domain.DatabaseSchema) bool {
	_, ok := RankField(schema)
	return ok
}

// CalculateRank scores an operation's fields into a 0-1000 priority
// rank relative to now. The base rank comes from an explicit rank
// value when present, then priority, due-date urgency, and tag factors
// adjust it.
func CalculateRank(fields domain.FieldValues, now time.Time) int {
	rank := baseRank(fields)

	factors := []func(domain.FieldValues, time.Time) float64{
		priorityAdjustment,
		dueDateAdjustment,
		tagAdjustment,
	}
	for _, f := range factors {
		rank += f(fields, now)
	}

	clamped := math.Max(minRank, math.Min(maxRank, math.Round(rank)))
	return int(clamped)
}

func baseRank(fields domain.FieldValues) float64 {
	if v, ok := numberValue(fields["rank"]); ok && v != 0 {
		return v
	}
	return defaultBaseRank
}

func priorityAdjustment(fields domain.FieldValues, _ time.Time) float64 {
	priority, ok := fields["priority"].(string)
	if !ok || priority == "" {
		return 0
	}
	return priorityBonus[priority]
}

func dueDateAdjustment(fields domain.FieldValues, now time.Time) float64 {
	due, ok := fields["due"].(string)
	if !ok || due == "" {
		return 0
	}
	dueDate, err := parseDate(due)
	if err != nil {
		return 0
	}

	daysUntil := int(math.Ceil(dueDate.Sub(now).Hours() / 24))
	switch {
	case daysUntil <= 0:
		return 50 // overdue
	case daysUntil <= 3:
		return 30
	case daysUntil <= 7:
		return 15
	}
	return 0
}

func tagAdjustment(fields domain.FieldValues, _ time.Time) float64 {
	tags := stringSlice(fields["tags"])
	if len(tags) == 0 {
		return 0
	}

	var delta float64
	if anyTagIn(tags, quickWinTags) {
		delta += 10
	}
	if anyTagIn(tags, importantTags) {
		delta += 25
	}
	return delta
}

func anyTagIn(tags, set []string) bool {
	for _, tag := range tags {
		for _, s := range set {
			if strings.EqualFold(tag, s) {
				return true
			}
		}
	}
	return false
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func numberValue(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}

func stringSlice(v interface{}) []string {
	switch s := v.(type) {
	case []string:
		return s
	case []interface{}:
		out := make([]string, 0, len(s))
		for _, e := range s {
			if str, ok := e.(string); ok {
				out = append(out, str)
			}
		}
		return out
	}
	return nil
}
