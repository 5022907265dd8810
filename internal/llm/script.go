package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/dooshek/celebcast/internal/logger"
	"github.com/dooshek/celebcast/internal/types"
)

const scriptPromptTemplate = `Write a %d-word celebrity news script about "%s". The tone should be %s.
Make it catchy, use celebrity slang where appropriate, and ensure it sounds like a broadcast script.`

// ScriptWriter drafts broadcast scripts through a completion provider.
type ScriptWriter struct {
	provider    Provider
	model       string
	temperature float32
	wordCount   int
}

func NewScriptWriter(provider Provider, config types.ScriptConfig) *ScriptWriter {
	return &ScriptWriter{
		provider:    provider,
		model:       config.Model,
		temperature: float32(config.Temperature),
		wordCount:   config.WordCount,
	}
}

func BuildScriptPrompt(topic, tone string, wordCount int) string {
	if wordCount <= 0 {
		wordCount = 100
	}
	return fmt.Sprintf(scriptPromptTemplate, wordCount, topic, tone)
}

// WriteScript asks the provider for a script. A transport failure or an empty
// answer is a *types.RemoteRequestError.
func (w *ScriptWriter) WriteScript(ctx context.Context, topic, tone string) (types.Script, error) {
	logger.Infof("✍️  Drafting %s script about %q with %s", tone, topic, w.provider.GetProviderName())

	text, err := w.provider.Completion(ctx, CompletionRequest{
		Model: w.model,
		Messages: []ChatCompletionMessage{
			{Role: "user", Content: BuildScriptPrompt(topic, tone, w.wordCount)},
		},
		Temperature: w.temperature,
	})
	if err != nil {
		return types.Script{}, types.NewScriptError("Failed to generate script", err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return types.Script{}, types.NewScriptError("no script text returned", nil)
	}

	logger.Debugf("Script drafted (%d chars)", len(text))

	return types.Script{
		Headline: topic,
		Content:  text,
		Tone:     tone,
	}, nil
}
