package types

import "github.com/sashabaranov/go-openai"

type Provider string

const (
	ProviderGemini   Provider = "gemini"
	ProviderOpenAI   Provider = "openai"
	ProviderGroq     Provider = "groq"
	ProviderRealtime Provider = "realtime"
)

// Audio output backends
const (
	AudioBackendMalgo   = "malgo"
	AudioBackendCommand = "command"
)

// Script is the editable broadcast script. It is superseded, not versioned.
type Script struct {
	Headline string
	Content  string
	Tone     string
}

type APIKeys struct {
	GeminiKey string `yaml:"gemini_api_key"`
	OpenAIKey string `yaml:"openai_api_key"`
	GroqKey   string `yaml:"groq_api_key"`
}

// ScriptConfig holds configuration for script drafting
type ScriptConfig struct {
	Provider    string  `yaml:"provider"`    // "gemini", "openai", "groq"
	Model       string  `yaml:"model"`       // provider model name
	Temperature float64 `yaml:"temperature"` // ignored by gemini
	WordCount   int     `yaml:"word_count"`  // target script length
}

// TTSConfig holds configuration for Text-to-Speech
type TTSConfig struct {
	Provider string            `yaml:"provider"` // "gemini", "openai", "realtime"
	Model    string            `yaml:"model"`    // gemini TTS model
	Voice    string            `yaml:"voice"`    // default persona id
	OpenAI   TTSOpenAIConfig   `yaml:"openai"`
	Realtime TTSRealtimeConfig `yaml:"realtime"`
}

// TTSOpenAIConfig holds OpenAI TTS specific configuration
type TTSOpenAIConfig struct {
	Model string  `yaml:"model"` // "tts-1" or "tts-1-hd"
	Speed float64 `yaml:"speed"` // 0.25-4.0, default 1.0
}

// TTSRealtimeConfig holds OpenAI Realtime API TTS specific configuration
type TTSRealtimeConfig struct {
	Model string `yaml:"model"` // "gpt-4o-realtime-preview" or "gpt-4o-mini-realtime-preview"
}

type AudioConfig struct {
	Backend string `yaml:"backend"` // "malgo" or "command"
}

type ServerConfig struct {
	Listen string `yaml:"listen"` // WebSocket listen address for daemon mode, empty disables
}

type Config struct {
	Keys        APIKeys      `yaml:"keys"`
	Script      ScriptConfig `yaml:"script"`
	TTS         TTSConfig    `yaml:"tts"`
	Audio       AudioConfig  `yaml:"audio"`
	Server      ServerConfig `yaml:"server"`
	DefaultTone string       `yaml:"default_tone"`
}

// GetScriptConfig returns script configuration with defaults
func (c *Config) GetScriptConfig() ScriptConfig {
	config := c.Script

	if config.Provider == "" {
		config.Provider = string(ProviderGemini)
	}
	if config.Model == "" {
		switch Provider(config.Provider) {
		case ProviderOpenAI:
			config.Model = OpenAIModelGPT4oMini
		case ProviderGroq:
			config.Model = GroqModelLLama3_3_70B
		default:
			config.Model = GeminiModelFlash
		}
	}
	if config.Temperature == 0 {
		config.Temperature = 0.9
	}
	if config.WordCount == 0 {
		config.WordCount = 100
	}

	return config
}

// GetTTSConfig returns TTS configuration with defaults
func (c *Config) GetTTSConfig() TTSConfig {
	config := c.TTS

	if config.Provider == "" {
		config.Provider = string(ProviderGemini)
	}
	if config.Model == "" {
		config.Model = GeminiModelTTS
	}

	if config.OpenAI.Model == "" {
		config.OpenAI.Model = string(openai.TTSModel1HD)
	}
	if config.OpenAI.Speed == 0 {
		config.OpenAI.Speed = 1.0
	}

	if config.Realtime.Model == "" {
		config.Realtime.Model = "gpt-4o-realtime-preview"
	}

	return config
}

// GetAudioConfig returns audio configuration with defaults
func (c *Config) GetAudioConfig() AudioConfig {
	config := c.Audio
	if config.Backend == "" {
		config.Backend = AudioBackendMalgo
	}
	return config
}

// APIKey returns the key configured for the given provider. The realtime
// provider shares the OpenAI key.
func (c *Config) APIKey(p Provider) string {
	switch p {
	case ProviderGemini:
		return c.Keys.GeminiKey
	case ProviderOpenAI, ProviderRealtime:
		return c.Keys.OpenAIKey
	case ProviderGroq:
		return c.Keys.GroqKey
	}
	return ""
}

const (
	GeminiModelFlash = "gemini-3-flash-preview"
	GeminiModelTTS   = "gemini-2.5-flash-preview-tts"
)

const (
	OpenAIModelGPT4oMini string = string(openai.GPT4oMini)
)

// Groq LLM Models
const (
	GroqModelLLama3_3_70B = "llama-3.3-70b-versatile"
)
