/*
Package llm defines the text-generation capability the suggestion
pipeline depends on, plus the default OpenAI-backed implementation.
*/
package llm

import (
	"context"
	"errors"
)

// ErrEmptyCompletion is returned when a provider answers without usable text.
var ErrEmptyCompletion = errors.New("model returned an empty completion")

// Request is a single prompt-in, text-out generation call.
type Request struct {
	Model       string
	Prompt      string
	MaxTokens   int
	Temperature float32
}

// Generator produces one completion per call. Implementations must not retry.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}
