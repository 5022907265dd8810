package tts

import (
	"context"
	"encoding/base64"
	"io"

	"github.com/dooshek/celebcast/internal/logger"
	"github.com/dooshek/celebcast/internal/types"
	"github.com/sashabaranov/go-openai"
)

// OpenAITTSProvider implements TTSProvider for OpenAI TTS API. It requests
// raw pcm output, which is 24 kHz 16-bit mono, and wraps it as base64.
type OpenAITTSProvider struct {
	client *openai.Client
	config OpenAIConfig
}

// OpenAIConfig holds OpenAI TTS configuration
type OpenAIConfig struct {
	Model string  `yaml:"model"` // "tts-1" or "tts-1-hd"
	Speed float64 `yaml:"speed"` // 0.25-4.0, default 1.0
}

func NewOpenAITTSProvider(apiKey string, config OpenAIConfig) *OpenAITTSProvider {
	return NewOpenAITTSProviderWithConfig(openai.DefaultConfig(apiKey), config)
}

func NewOpenAITTSProviderWithConfig(clientConfig openai.ClientConfig, config OpenAIConfig) *OpenAITTSProvider {
	if config.Model == "" {
		config.Model = string(openai.TTSModel1HD)
	}
	if config.Speed == 0 {
		config.Speed = 1.0
	}

	return &OpenAITTSProvider{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}
}

func (p *OpenAITTSProvider) GetAudio(ctx context.Context, req SpeechRequest) (string, error) {
	voice := p.ResolveVoice(req.VoiceName)

	logger.Infof("Generating TTS for text (length: %d chars) with voice: %s", len(req.Text), voice)
	if req.StyleHint != "" {
		logger.Debugf("OpenAI TTS ignores style hint %q", req.StyleHint)
	}

	response, err := p.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(p.config.Model),
		Input:          req.Text,
		Voice:          openai.SpeechVoice(voice),
		Speed:          p.config.Speed,
		ResponseFormat: openai.SpeechResponseFormatPcm,
	})
	if err != nil {
		logger.Error("OpenAI TTS API error", err)
		return "", types.NewSpeechError("Failed to generate voiceover", err)
	}
	defer response.Close()

	audioData, err := io.ReadAll(response)
	if err != nil {
		return "", types.NewSpeechError("failed to read audio data", err)
	}
	if len(audioData) == 0 {
		return "", types.NewSpeechError("No audio data returned from OpenAI TTS", nil)
	}

	logger.Infof("Generated %d bytes of pcm audio", len(audioData))

	return base64.StdEncoding.EncodeToString(audioData), nil
}

// GetAvailableVoices returns OpenAI TTS voices
func (p *OpenAITTSProvider) GetAvailableVoices() []string {
	return []string{
		"alloy",   // Neutral, balanced
		"echo",    // Male, clear
		"fable",   // British accent
		"onyx",    // Deep male
		"nova",    // Young female
		"shimmer", // Warm female
	}
}

func (p *OpenAITTSProvider) ResolveVoice(name string) string {
	return openAIVoice(name)
}

func (p *OpenAITTSProvider) GetProviderName() string {
	return "OpenAI TTS"
}
