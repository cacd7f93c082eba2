// Package llm talks to the hosted text generation provider.
package llm

import (
	"context"
	"errors"
)

// Generator turns a prompt into text. Implementations must honour ctx.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

var (
	// ErrNotConfigured is returned when no API key is set.
	ErrNotConfigured = errors.New("llm provider not configured: GROQ_API_KEY is empty")
	// ErrEmptyResponse is returned when the provider answers without choices.
	ErrEmptyResponse = errors.New("llm provider returned no choices")
)

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
