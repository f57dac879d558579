package llm

import (
	"context"
	"fmt"

	"github.com/markdave123-py/dataroom/internal/config"
	"github.com/markdave123-py/dataroom/internal/core"
)

// NewProviders builds the embedding and generation providers selected by
// configuration. A missing API key yields the Unconfigured provider rather
// than an error, so startup never depends on AI credentials.
func NewProviders(ctx context.Context, cfg *config.Config) (core.EmbeddingProvider, core.LLMProvider, error) {
	switch cfg.AIProvider {
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return Unconfigured{}, Unconfigured{}, nil
		}
		p, err := NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.GenModel, cfg.EmbedModel)
		if err != nil {
			return nil, nil, err
		}
		return p, p, nil

	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return Unconfigured{}, Unconfigured{}, nil
		}
		embedder, err := NewGeminiEmbedder(ctx, cfg.GeminiAPIKey, cfg.EmbedModel)
		if err != nil {
			return nil, nil, err
		}
		generator, err := NewGeminiLLM(ctx, cfg.GeminiAPIKey, cfg.GenModel)
		if err != nil {
			return nil, nil, err
		}
		return embedder, generator, nil

	default:
		return nil, nil, fmt.Errorf("unknown AI provider %q", cfg.AIProvider)
	}
}
