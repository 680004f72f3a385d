package generator

import (
	"context"

	"github.com/pkg/errors"
	"google.golang.org/genai"
)

// GeminiBackend calls the Gemini API through the genai SDK.
type GeminiBackend struct {
	client *genai.Client
	model  string
}

func NewGeminiBackend(ctx context.Context, apiKey, model string) (*GeminiBackend, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is empty")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create gemini client")
	}
	return &GeminiBackend{client: client, model: model}, nil
}

func (b *GeminiBackend) GenerateText(ctx context.Context, input string) (string, error) {
	result, err := b.client.Models.GenerateContent(ctx, b.model, genai.Text(input), nil)
	if err != nil {
		return "", errors.Wrap(err, "gemini generate content")
	}
	return result.Text(), nil
}
