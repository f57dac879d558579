package core

import "context"

// EmbeddingProvider turns text into a fixed-length vector via an external
// embedding model. Implementations return ErrProviderUnavailable when no
// credential is configured and wrap transport failures with ErrProvider.
type EmbeddingProvider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// LLMProvider generates a completion from a system instruction and a user
// prompt. Same error contract as EmbeddingProvider.
type LLMProvider interface {
	Generate(ctx context.Context, systemPrompt string, userPrompt string) (string, error)
}
