package tts

import (
	"context"
	"encoding/base64"
	"fmt"

	openairt "github.com/WqyJh/go-openai-realtime"
	"github.com/dooshek/celebcast/internal/logger"
	"github.com/dooshek/celebcast/internal/types"
)

// RealtimeTTSProvider implements TTSProvider using OpenAI Realtime API
type RealtimeTTSProvider struct {
	client *openairt.Client
	config RealtimeConfig
}

// RealtimeConfig holds Realtime API TTS configuration
type RealtimeConfig struct {
	Model string `yaml:"model"` // "gpt-4o-realtime-preview" or "gpt-4o-mini-realtime-preview"
}

func NewRealtimeTTSProvider(apiKey string, config RealtimeConfig) *RealtimeTTSProvider {
	return NewRealtimeTTSProviderWithConfig(openairt.DefaultConfig(apiKey), config)
}

func NewRealtimeTTSProviderWithConfig(clientConfig openairt.ClientConfig, config RealtimeConfig) *RealtimeTTSProvider {
	if config.Model == "" {
		config.Model = "gpt-4o-realtime-preview"
	}

	return &RealtimeTTSProvider{
		client: openairt.NewClientWithConfig(clientConfig),
		config: config,
	}
}

func realtimeInstructions(style string) string {
	instructions := "You are a text-to-speech system for a celebrity news broadcast. Speak the provided text exactly as written. Do not add any additional commentary or explanation."
	if style != "" {
		instructions += fmt.Sprintf(" Read it with a %s style.", style)
	}
	return instructions
}

// GetAudio streams a response from the Realtime API and collects the PCM16
// audio deltas into one base64 payload.
func (p *RealtimeTTSProvider) GetAudio(ctx context.Context, req SpeechRequest) (string, error) {
	voice := p.ResolveVoice(req.VoiceName)

	logger.Infof("Generating Realtime TTS for text (length: %d chars) with voice: %s", len(req.Text), voice)

	conn, err := p.client.Connect(ctx, openairt.WithModel(p.config.Model))
	if err != nil {
		logger.Error("Failed to connect to Realtime API", err)
		return "", types.NewSpeechError("realtime API connection failed", err)
	}
	defer conn.Close()

	err = conn.SendMessage(ctx, &openairt.SessionUpdateEvent{
		Session: openairt.ClientSession{
			Modalities:        []openairt.Modality{openairt.ModalityText, openairt.ModalityAudio},
			Voice:             openairt.Voice(voice),
			OutputAudioFormat: openairt.AudioFormatPcm16,
			Instructions:      realtimeInstructions(req.StyleHint),
		},
	})
	if err != nil {
		return "", types.NewSpeechError("session update failed", err)
	}

	err = conn.SendMessage(ctx, &openairt.ConversationItemCreateEvent{
		Item: openairt.MessageItem{
			Type: openairt.MessageItemTypeMessage,
			Role: openairt.MessageRoleUser,
			Content: []openairt.MessageContentPart{
				{
					Type: openairt.MessageContentTypeInputText,
					Text: req.Text,
				},
			},
		},
	})
	if err != nil {
		return "", types.NewSpeechError("conversation item creation failed", err)
	}

	// The API requires text alongside audio
	err = conn.SendMessage(ctx, &openairt.ResponseCreateEvent{
		Response: openairt.ResponseCreateParams{
			Modalities:        []openairt.Modality{openairt.ModalityAudio, openairt.ModalityText},
			Voice:             openairt.Voice(voice),
			OutputAudioFormat: openairt.AudioFormatPcm16,
		},
	})
	if err != nil {
		return "", types.NewSpeechError("response creation failed", err)
	}

	var audioData []byte
	for {
		event, err := conn.ReadMessage(ctx)
		if err != nil {
			logger.Error("Failed to read message", err)
			return "", types.NewSpeechError("message read failed", err)
		}

		switch event.ServerEventType() {
		case openairt.ServerEventTypeResponseAudioDelta:
			deltaEvent := event.(openairt.ResponseAudioDeltaEvent)

			audioChunk, err := base64.StdEncoding.DecodeString(deltaEvent.Delta)
			if err != nil {
				return "", types.NewSpeechError("malformed audio delta", err)
			}
			audioData = append(audioData, audioChunk...)

		case openairt.ServerEventTypeResponseDone:
			logger.Infof("Audio generation completed, total size: %d bytes", len(audioData))
			if len(audioData) == 0 {
				return "", types.NewSpeechError("no audio data received", nil)
			}
			return base64.StdEncoding.EncodeToString(audioData), nil

		case openairt.ServerEventTypeError:
			errorEvent := event.(openairt.ErrorEvent)
			return "", types.NewSpeechError("realtime API error",
				fmt.Errorf("%s: %s", errorEvent.Error.Type, errorEvent.Error.Message))

		default:
			logger.Debugf("Received event: %s", event.ServerEventType())
		}
	}
}

// GetAvailableVoices returns list of available voices for Realtime API
func (p *RealtimeTTSProvider) GetAvailableVoices() []string {
	return []string{"alloy", "echo", "fable", "onyx", "nova", "shimmer"}
}

func (p *RealtimeTTSProvider) ResolveVoice(name string) string {
	return openAIVoice(name)
}

func (p *RealtimeTTSProvider) GetProviderName() string {
	return "OpenAI Realtime API"
}
