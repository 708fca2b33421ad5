// Package generation composes proposal text from a job description, an experience bank,
// and a generation backend.
package generation

import (
	"context"

	"github.com/jonathan/proposal-customizer/internal/llm"
	"github.com/jonathan/proposal-customizer/internal/types"
)

// Backend produces the body of a proposal.
// Implementations never return empty or whitespace-only text and never fail.
type Backend interface {
	Generate(ctx context.Context, req types.GenerationRequest) string
	Name() string
}

// SelectBackend returns a Gemini backend when a client is configured, otherwise the
// deterministic template backend. The capability is checked once, here.
func SelectBackend(client llm.Client, opts ...GeminiOption) Backend {
	fallback := NewTemplateBackend()
	gemini := NewGeminiBackend(client, fallback, opts...)
	if gemini.Available() {
		return gemini
	}
	return fallback
}
