package tts

import (
	"context"
	"fmt"

	"github.com/dooshek/celebcast/internal/gemini"
	"github.com/dooshek/celebcast/internal/logger"
	"github.com/dooshek/celebcast/internal/types"
)

// GeminiTTSProvider implements TTSProvider with Gemini's native audio output.
// The API already answers with base64 PCM (s16le, mono, 24 kHz), which is
// passed through untouched.
type GeminiTTSProvider struct {
	client *gemini.Client
	config GeminiConfig
}

type GeminiConfig struct {
	Model string `yaml:"model"`
}

func NewGeminiTTSProvider(apiKey string, config GeminiConfig, opts ...gemini.Option) *GeminiTTSProvider {
	if config.Model == "" {
		config.Model = types.GeminiModelTTS
	}
	return &GeminiTTSProvider{
		client: gemini.NewClient(apiKey, opts...),
		config: config,
	}
}

func stylePrompt(req SpeechRequest) string {
	if req.StyleHint == "" {
		return req.Text
	}
	return fmt.Sprintf("Read this with a %s style: %s", req.StyleHint, req.Text)
}

func (p *GeminiTTSProvider) GetAudio(ctx context.Context, req SpeechRequest) (string, error) {
	logger.Infof("Generating TTS for text (length: %d chars) with voice: %s", len(req.Text), p.ResolveVoice(req.VoiceName))

	resp, err := p.client.GenerateContent(ctx, p.config.Model, gemini.GenerateContentRequest{
		Contents: []gemini.Content{{Parts: []gemini.Part{{Text: stylePrompt(req)}}}},
		GenerationConfig: &gemini.GenerationConfig{
			ResponseModalities: []string{"AUDIO"},
			SpeechConfig: &gemini.SpeechConfig{
				VoiceConfig: gemini.VoiceConfig{
					PrebuiltVoiceConfig: gemini.PrebuiltVoiceConfig{VoiceName: p.ResolveVoice(req.VoiceName)},
				},
			},
		},
	})
	if err != nil {
		logger.Error("Gemini TTS API error", err)
		return "", types.NewSpeechError("Failed to generate voiceover", err)
	}

	audio := resp.InlineAudio()
	if audio == "" {
		return "", types.NewSpeechError("No audio data returned from Gemini TTS", nil)
	}

	logger.Debugf("Received %d base64 chars of audio", len(audio))
	return audio, nil
}

// GetAvailableVoices returns the prebuilt Gemini voices used by the persona catalog
func (p *GeminiTTSProvider) GetAvailableVoices() []string {
	return []string{"Kore", "Puck", "Zephyr", "Charon", "Fenrir"}
}

// ResolveVoice returns name unchanged since the catalog uses Gemini voice names
func (p *GeminiTTSProvider) ResolveVoice(name string) string {
	return name
}

func (p *GeminiTTSProvider) GetProviderName() string {
	return "Gemini TTS"
}
