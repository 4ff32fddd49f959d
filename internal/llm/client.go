package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	// newGenerationPrefix marks model families that take a completion
	// token budget and reject temperatures other than 1.
	newGenerationPrefix = "gpt-5"

	// fallbackModel is tried exactly once when a new-generation model
	// is reported as not found.
	fallbackModel = "gpt-4o-mini"

	defaultTemperature = 0.7
)

// Role identifies the chat role of a message.
type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

// ContentPart is one piece of a multi-part user message: either text
// or an inline image data URL.
type ContentPart struct {
	Text     string
	ImageURL string
}

// Message is one chat message. Parts, when non-empty, takes precedence
// over Text and produces structured multi-part content.
type Message struct {
	Role  Role
	Text  string
	Parts []ContentPart
}

// SystemMessage builds a system-role message.
func SystemMessage(text string) Message {
	return Message{Role: RoleSystem, Text: text}
}

// UserMessage builds a plain-text user message.
func UserMessage(text string) Message {
	return Message{Role: RoleUser, Text: text}
}

// CompletionRequest holds the parameters for one completion call.
type CompletionRequest struct {
	Messages            []Message
	MaxCompletionTokens int
	Temperature         *float64 // nil uses the model-family default
}

// CompletionClient issues chat completion requests, selecting
// model-family parameters and falling back to a legacy model when a
// new-generation model is unavailable.
type CompletionClient interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

type openAIClient struct {
	api      openai.Client
	model    string
	observer Observer
}

// NewOpenAIClient creates a CompletionClient for the given model.
// Extra options (such as a custom base URL in tests) are passed
// through to the underlying SDK client.
func NewOpenAIClient(apiKey, model string, observer Observer, opts ...option.RequestOption) CompletionClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	all := append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &openAIClient{
		api:      openai.NewClient(all...),
		model:    model,
		observer: observer,
	}
}

// IsNewGenerationModel reports whether the model name belongs to the
// family that requires the completion-token-budget parameter.
func IsNewGenerationModel(model string) bool {
	return strings.HasPrefix(model, newGenerationPrefix)
}

func (c *openAIClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	start := time.Now()

	text, err := c.complete(ctx, c.model, req, false)
	if err != nil && isModelNotFound(err) && IsNewGenerationModel(c.model) {
		c.emit(c.model, start, false, "MODEL_NOT_FOUND")
		start = time.Now()
		text, err = c.complete(ctx, fallbackModel, req, true)
		if err != nil {
			c.emitFallback(start, false, errorCode(err))
			if !errors.Is(err, ErrProvider) && !errors.Is(err, ErrEmptyCompletion) {
				err = fmt.Errorf("%w: %v", ErrProvider, err)
			}
			return "", err
		}
		c.emitFallback(start, true, "")
		return text, nil
	}
	if err != nil {
		c.emit(c.model, start, false, errorCode(err))
		if !errors.Is(err, ErrProvider) && !errors.Is(err, ErrEmptyCompletion) {
			err = fmt.Errorf("%w: %v", ErrProvider, err)
		}
		return "", err
	}
	c.emit(c.model, start, true, "")
	return text, nil
}

func (c *openAIClient) complete(ctx context.Context, model string, req CompletionRequest, isFallback bool) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(model),
		Messages: toOpenAIMessages(req.Messages),
	}

	budget := req.MaxCompletionTokens
	if budget <= 0 {
		budget = 6000
	}

	if IsNewGenerationModel(model) {
		// These models reject any temperature other than 1.
		params.MaxCompletionTokens = openai.Int(int64(budget))
		params.Temperature = openai.Float(1)
	} else {
		temp := defaultTemperature
		if req.Temperature != nil {
			temp = *req.Temperature
		}
		if isFallback {
			temp = defaultTemperature
		}
		params.MaxTokens = openai.Int(int64(budget))
		params.Temperature = openai.Float(temp)
	}

	resp, err := c.api.Chat.Completions.New(ctx, params)
	if err != nil {
		if isModelNotFound(err) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", ErrProvider, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", ErrEmptyCompletion)
	}

	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		if resp.Choices[0].FinishReason == "length" {
			return "", fmt.Errorf(
				"%w: response was cut off by the token limit; consider raising the completion token budget (used %d tokens)",
				ErrEmptyCompletion, resp.Usage.CompletionTokens)
		}
		return "", fmt.Errorf("%w: finish reason %q", ErrEmptyCompletion, resp.Choices[0].FinishReason)
	}

	return content, nil
}

func toOpenAIMessages(msgs []Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(msgs))
	for _, m := range msgs {
		switch {
		case m.Role == RoleSystem:
			out = append(out, openai.SystemMessage(m.Text))
		case len(m.Parts) > 0:
			parts := make([]openai.ChatCompletionContentPartUnionParam, 0, len(m.Parts))
			for _, p := range m.Parts {
				if p.ImageURL != "" {
					parts = append(parts, openai.ImageContentPart(
						openai.ChatCompletionContentPartImageImageURLParam{URL: p.ImageURL}))
				} else {
					parts = append(parts, openai.TextContentPart(p.Text))
				}
			}
			out = append(out, openai.UserMessage(parts))
		default:
			out = append(out, openai.UserMessage(m.Text))
		}
	}
	return out
}

func isModelNotFound(err error) bool {
	var apierr *openai.Error
	if errors.As(err, &apierr) {
		return apierr.Code == "model_not_found"
	}
	return false
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyCompletion):
		return "EMPTY_COMPLETION"
	case errors.Is(err, ErrProvider):
		return "PROVIDER_ERROR"
	case isModelNotFound(err):
		return "MODEL_NOT_FOUND"
	default:
		return "UNKNOWN"
	}
}

func (c *openAIClient) emit(model string, start time.Time, success bool, code string) {
	c.observer.OnCallComplete(CallEvent{
		Model:     model,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   success,
		ErrorCode: code,
	})
}

func (c *openAIClient) emitFallback(start time.Time, success bool, code string) {
	c.observer.OnCallComplete(CallEvent{
		Model:     fallbackModel,
		Fallback:  true,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   success,
		ErrorCode: code,
	})
}
