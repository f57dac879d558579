package llm

import (
	"context"

	"github.com/markdave123-py/dataroom/internal/core"
)

// Unconfigured stands in when no API key is present. The server still boots
// and serves the document API; every AI call fails with
// core.ErrProviderUnavailable so chat surfaces a clear misconfiguration
// error instead of crashing the process at startup.
type Unconfigured struct{}

func (Unconfigured) Embed(ctx context.Context, text string) ([]float32, error) {
	return nil, core.ErrProviderUnavailable
}

func (Unconfigured) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return "", core.ErrProviderUnavailable
}

var _ core.EmbeddingProvider = Unconfigured{}
var _ core.LLMProvider = Unconfigured{}
