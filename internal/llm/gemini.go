package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/dooshek/celebcast/internal/gemini"
	"github.com/dooshek/celebcast/internal/logger"
)

// GeminiProvider implements Provider using the Gemini generateContent API.
// Thinking is disabled so short scripts come back quickly.
type GeminiProvider struct {
	client *gemini.Client
}

func NewGeminiProvider(apiKey string, opts ...gemini.Option) *GeminiProvider {
	logger.Debugf("Creating Gemini provider")
	return &GeminiProvider{client: gemini.NewClient(apiKey, opts...)}
}

func (p *GeminiProvider) Completion(ctx context.Context, req CompletionRequest) (string, error) {
	var prompt strings.Builder
	for i, msg := range req.Messages {
		if i > 0 {
			prompt.WriteString("\n\n")
		}
		prompt.WriteString(msg.Content)
	}

	budget := 0
	resp, err := p.client.GenerateContent(ctx, req.Model, gemini.GenerateContentRequest{
		Contents: []gemini.Content{{Parts: []gemini.Part{{Text: prompt.String()}}}},
		GenerationConfig: &gemini.GenerationConfig{
			ThinkingConfig: &gemini.ThinkingConfig{ThinkingBudget: &budget},
		},
	})
	if err != nil {
		return "", fmt.Errorf("error generating content with Gemini: %w", err)
	}

	return resp.Text(), nil
}

func (p *GeminiProvider) GetProviderName() string {
	return "Gemini"
}
