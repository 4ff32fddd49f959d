package llm

import "errors"

var (
	// ErrProvider indicates the OpenAI call failed, including after the
	// fallback model was tried.
	ErrProvider = errors.New("openai request failed")

	// ErrEmptyCompletion indicates the model returned no usable
	// content. The wrapped message distinguishes token-limit truncation
	// from other causes.
	ErrEmptyCompletion = errors.New("openai returned empty completion")

	// ErrInvalidOutput indicates the completion text could not be
	// parsed into the expected structured format.
	ErrInvalidOutput = errors.New("invalid llm output format")
)
