package tts

import (
	"context"
)

// SpeechRequest is one synthesis call: the script text, the provider voice
// name and a free-form style hint.
type SpeechRequest struct {
	Text      string
	VoiceName string
	StyleHint string
}

// TTSProvider defines the interface for text-to-speech providers
type TTSProvider interface {
	// GetAudio returns base64 wrapping 16-bit little-endian mono PCM at 24 kHz
	GetAudio(ctx context.Context, req SpeechRequest) (string, error)

	// GetAvailableVoices returns list of available voices
	GetAvailableVoices() []string

	// ResolveVoice maps a catalog voice name onto the provider's voice name
	ResolveVoice(name string) string

	// GetProviderName returns the name of the provider
	GetProviderName() string
}

// openAIVoices maps catalog voice names onto the closest OpenAI voice.
var openAIVoices = map[string]string{
	"Kore":   "echo",
	"Puck":   "nova",
	"Zephyr": "alloy",
	"Charon": "onyx",
	"Fenrir": "shimmer",
}

func openAIVoice(name string) string {
	if v, ok := openAIVoices[name]; ok {
		return v
	}
	if name == "" {
		return "nova"
	}
	return name
}
