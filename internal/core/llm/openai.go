package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/markdave123-py/dataroom/internal/core"
)

// OpenAIProvider implements both embedding and generation against the
// OpenAI API with a single client.
type OpenAIProvider struct {
	client     *openai.Client
	genModel   string
	embedModel string
}

func NewOpenAIProvider(apiKey, genModel, embedModel string) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, core.ErrProviderUnavailable
	}
	if genModel == "" {
		genModel = "gpt-5"
	}
	if embedModel == "" {
		embedModel = "text-embedding-3-small"
	}
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIProvider{client: &client, genModel: genModel, embedModel: embedModel}, nil
}

func (p *OpenAIProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := p.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{
			OfString: openai.String(text),
		},
		Model: openai.EmbeddingModel(p.embedModel),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: openai embed: %v", core.ErrProvider, err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("%w: openai embed: empty response", core.ErrProvider)
	}
	return toFloat32(resp.Data[0].Embedding), nil
}

func (p *OpenAIProvider) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
		Model:               openai.ChatModel(p.genModel),
		MaxCompletionTokens: openai.Int(maxOutputTokens),
	})
	if err != nil {
		return "", fmt.Errorf("%w: openai generate: %v", core.ErrProvider, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: openai generate: no choices", core.ErrProvider)
	}
	return resp.Choices[0].Message.Content, nil
}

// toFloat32 narrows the API's float64 vectors to the float32 the store keeps.
func toFloat32(f64 []float64) []float32 {
	f32 := make([]float32, len(f64))
	for i, v := range f64 {
		f32[i] = float32(v)
	}
	return f32
}

var _ core.EmbeddingProvider = (*OpenAIProvider)(nil)
var _ core.LLMProvider = (*OpenAIProvider)(nil)
