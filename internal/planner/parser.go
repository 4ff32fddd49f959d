package planner

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/notionplan/notionplan/internal/domain"
	"github.com/notionplan/notionplan/internal/llm"
)

// wireOperation is the lenient wire shape the model actually emits.
// Every field is optional and loosely typed; normalization fills the
// gaps and coerces the values into domain.Operation.
type wireOperation struct {
	ID         string             `json:"id"`
	Kind       string             `json:"kind"`
	TaskID     *string            `json:"taskId"`
	Fields     domain.FieldValues `json:"fields"`
	Reason     string             `json:"reason"`
	Confidence *float64           `json:"confidence"`
	Warnings   []interface{}      `json:"warnings"`
	Approved   *bool              `json:"approved"`
	Edited     *bool              `json:"edited"`
}

type wirePlan struct {
	Plan      json.RawMessage `json:"plan"`
	Reasoning string          `json:"reasoning"`
	Warnings  []interface{}   `json:"warnings"`
}

type wireRevision struct {
	Operations json.RawMessage `json:"operations"`
	Reasoning  string          `json:"reasoning"`
	Warnings   []interface{}   `json:"warnings"`
}

// ParsePlan extracts and normalizes a generated plan from raw model
// output. The "plan" key must be present and hold an array.
func ParsePlan(raw string) (domain.Plan, error) {
	parsed, err := llm.ExtractJSON[wirePlan](raw, nil)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("%w: %v", ErrMalformedPlan, err)
	}

	ops, err := decodeOperationList(parsed.Plan)
	if err != nil {
		return domain.Plan{}, err
	}

	return domain.Plan{
		Operations: normalizeOperations(ops, false),
		Reasoning:  parsed.Reasoning,
		Warnings:   coerceStrings(parsed.Warnings),
	}, nil
}

// ParseRevisedOperations extracts and normalizes a revised operation
// list from raw model output. The "operations" key must be present and
// hold an array. Every returned operation is marked edited.
func ParseRevisedOperations(raw string) (domain.Plan, error) {
	parsed, err := llm.ExtractJSON[wireRevision](raw, nil)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("%w: %v", ErrMalformedPlan, err)
	}

	ops, err := decodeOperationList(parsed.Operations)
	if err != nil {
		return domain.Plan{}, err
	}

	return domain.Plan{
		Operations: normalizeOperations(ops, true),
		Reasoning:  parsed.Reasoning,
		Warnings:   coerceStrings(parsed.Warnings),
	}, nil
}

func decodeOperationList(raw json.RawMessage) ([]wireOperation, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, fmt.Errorf("%w: missing operation list", ErrInvalidPlanShape)
	}

	var ops []wireOperation
	if err := json.Unmarshal(raw, &ops); err != nil {
		return nil, fmt.Errorf("%w: operation list is not an array", ErrInvalidPlanShape)
	}
	return ops, nil
}

func normalizeOperations(ops []wireOperation, revised bool) []domain.Operation {
	now := time.Now().UnixMilli()
	idPrefix := "op"
	defaultReason := "Generated from user request"
	if revised {
		idPrefix = "updated"
		defaultReason = "Modified by user request"
	}

	out := make([]domain.Operation, 0, len(ops))
	for i, w := range ops {
		op := domain.Operation{
			ID:       w.ID,
			Kind:     domain.OperationKind(w.Kind),
			Fields:   w.Fields,
			Reason:   w.Reason,
			Warnings: coerceStrings(w.Warnings),
		}
		if op.ID == "" {
			op.ID = fmt.Sprintf("%s-%d-%d", idPrefix, now, i)
		}
		// Only a missing kind defaults; an unrecognized kind passes
		// through so the executor can fail it visibly.
		if op.Kind == "" {
			op.Kind = domain.OpCreate
		}
		if w.TaskID != nil {
			op.TaskID = *w.TaskID
		}
		if op.Fields == nil {
			op.Fields = domain.FieldValues{}
		}
		if op.Reason == "" {
			op.Reason = defaultReason
		}
		op.Confidence = clampConfidence(w.Confidence)
		if revised {
			if w.Approved != nil {
				op.Approved = *w.Approved
			}
			op.Edited = true
		}
		out = append(out, op)
	}
	return out
}

// clampConfidence applies the default-then-clamp rule. Zero counts as
// unset, same as the rank base.
func clampConfidence(v *float64) int {
	if v == nil || math.IsNaN(*v) || *v == 0 {
		return 80
	}
	c := int(math.Round(*v))
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}

func coerceStrings(values []interface{}) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
