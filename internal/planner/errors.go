package planner

import "errors"

var (
	// ErrMalformedPlan indicates no JSON object could be recovered from
	// the completion text.
	ErrMalformedPlan = errors.New("no valid JSON found in llm response")

	// ErrInvalidPlanShape indicates the JSON parsed but its top-level
	// operation list is missing or not an array.
	ErrInvalidPlanShape = errors.New("invalid plan format from llm")
)
