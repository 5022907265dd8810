package tts

import (
	"context"
	"fmt"
	"strings"

	"github.com/dooshek/celebcast/internal/logger"
	"github.com/dooshek/celebcast/internal/persona"
	"github.com/dooshek/celebcast/internal/types"
)

// Manager manages TTS providers and handles text-to-speech operations
type Manager struct {
	provider TTSProvider
	config   types.TTSConfig
}

// NewManager creates a new TTS Manager with the specified configuration and API key
func NewManager(config types.TTSConfig, apiKey string) (*Manager, error) {
	provider, err := createProvider(config, apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create TTS provider: %w", err)
	}

	logger.Infof("Initialized TTS Manager with provider: %s", provider.GetProviderName())

	return NewManagerWithProvider(provider, config), nil
}

func NewManagerWithProvider(provider TTSProvider, config types.TTSConfig) *Manager {
	m := &Manager{
		provider: provider,
		config:   config,
	}
	m.checkCatalog()
	return m
}

// checkCatalog warns about catalog personas whose voice the provider does
// not offer and returns their ids.
func (m *Manager) checkCatalog() []string {
	offered := make(map[string]bool)
	for _, v := range m.provider.GetAvailableVoices() {
		offered[strings.ToLower(v)] = true
	}

	var missing []string
	for _, p := range persona.Catalog() {
		voice := m.provider.ResolveVoice(p.VoiceName)
		if !offered[strings.ToLower(voice)] {
			logger.Warnf("Persona %s uses voice %q which %s does not offer", p.ID, voice, m.provider.GetProviderName())
			missing = append(missing, p.ID)
		}
	}
	return missing
}

// Synthesize requests speech for text in the persona's voice and style and
// returns the base64 payload.
func (m *Manager) Synthesize(ctx context.Context, text string, p persona.VoicePersona) (string, error) {
	if text == "" {
		return "", fmt.Errorf("text cannot be empty")
	}

	return m.provider.GetAudio(ctx, SpeechRequest{
		Text:      text,
		VoiceName: p.VoiceName,
		StyleHint: p.Style,
	})
}

// createProvider creates appropriate TTS provider based on configuration and API key
func createProvider(config types.TTSConfig, apiKey string) (TTSProvider, error) {
	switch types.Provider(config.Provider) {
	case types.ProviderGemini:
		if apiKey == "" {
			return nil, fmt.Errorf("Gemini API key is required for Gemini TTS provider - configure it using the wizard")
		}
		return NewGeminiTTSProvider(apiKey, GeminiConfig{Model: config.Model}), nil

	case types.ProviderOpenAI:
		if apiKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required for OpenAI TTS provider - configure it using the wizard")
		}
		return NewOpenAITTSProvider(apiKey, OpenAIConfig{
			Model: config.OpenAI.Model,
			Speed: config.OpenAI.Speed,
		}), nil

	case types.ProviderRealtime:
		if apiKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required for Realtime TTS provider - configure it using the wizard")
		}
		return NewRealtimeTTSProvider(apiKey, RealtimeConfig{Model: config.Realtime.Model}), nil

	default:
		return nil, fmt.Errorf("unsupported TTS provider: %s (supported: gemini, openai, realtime)", config.Provider)
	}
}
