package llm

import (
	"context"
	"fmt"

	"github.com/dooshek/celebcast/internal/types"
)

// ChatCompletionMessage represents a message in a chat completion request
type ChatCompletionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest represents the parameters for a completion request
type CompletionRequest struct {
	Model       string                  `json:"model"`
	Messages    []ChatCompletionMessage `json:"messages"`
	MaxTokens   int                     `json:"max_tokens,omitempty"`
	Temperature float32                 `json:"temperature,omitempty"`
}

// Provider defines the interface for LLM providers
type Provider interface {
	Completion(ctx context.Context, req CompletionRequest) (string, error)
	GetProviderName() string
}

// NewProvider creates a new LLM provider based on the provider type
func NewProvider(providerType types.Provider, apiKey string) (Provider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("no API key provided for provider type: %s - configure it using the wizard", providerType)
	}

	switch providerType {
	case types.ProviderGemini:
		return NewGeminiProvider(apiKey), nil
	case types.ProviderOpenAI:
		return NewOpenAIProvider(apiKey), nil
	case types.ProviderGroq:
		return NewGroqProvider(apiKey), nil
	default:
		return nil, fmt.Errorf("unsupported provider type: %s (supported: gemini, openai, groq)", providerType)
	}
}
