package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/dooshek/celebcast/internal/fileops"
	"github.com/dooshek/celebcast/internal/logger"
	"github.com/dooshek/celebcast/internal/types"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	configFilename = "celebcast.yaml"
)

func LoadConfig() (*types.Config, error) {
	fileOps, err := fileops.NewDefaultFileOps()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file operations: %w", err)
	}
	return LoadConfigFrom(fileOps)
}

// LoadConfigFrom reads the config file. It returns nil, nil when no file exists.
func LoadConfigFrom(fileOps fileops.FileOps) (*types.Config, error) {
	if err := fileOps.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	data, err := fileOps.LoadConfig(configFilename)
	if err != nil {
		if errors.Is(err, fileops.ErrConfigNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config types.Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

func SaveConfig(config *types.Config) error {
	fileOps, err := fileops.NewDefaultFileOps()
	if err != nil {
		return fmt.Errorf("failed to initialize file operations: %w", err)
	}
	return SaveConfigTo(fileOps, config)
}

// SaveConfigTo merges config into the existing file, if any, and writes it.
func SaveConfigTo(fileOps fileops.FileOps, config *types.Config) error {
	existingConfig, err := LoadConfigFrom(fileOps)
	if err != nil {
		// Just log the error but continue with new config
		logger.Warnf("Failed to load existing config: %v", err)
	} else if existingConfig != nil {
		mergeConfigs(existingConfig, config)
		config = existingConfig
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := fileOps.SaveConfig(configFilename, data); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	return nil
}

// ApplyEnv loads a .env file from the working directory if present and lets
// API key variables override the file values. GEMINI_API_KEY wins over API_KEY.
func ApplyEnv(config *types.Config) {
	if err := godotenv.Load(); err == nil {
		logger.Debug("Loaded environment from .env")
	}

	if key := os.Getenv("API_KEY"); key != "" {
		config.Keys.GeminiKey = key
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		config.Keys.GeminiKey = key
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		config.Keys.OpenAIKey = key
	}
	if key := os.Getenv("GROQ_API_KEY"); key != "" {
		config.Keys.GroqKey = key
	}
}

// HasAnyKey reports whether at least one provider key is configured.
func HasAnyKey(config *types.Config) bool {
	k := config.Keys
	return k.GeminiKey != "" || k.OpenAIKey != "" || k.GroqKey != ""
}

// mergeConfigs merges the sourceConfig into targetConfig, preserving existing values in targetConfig
// that are not explicitly set in sourceConfig
func mergeConfigs(targetConfig, sourceConfig *types.Config) {
	if sourceConfig.Keys.GeminiKey != "" {
		targetConfig.Keys.GeminiKey = sourceConfig.Keys.GeminiKey
	}
	if sourceConfig.Keys.OpenAIKey != "" {
		targetConfig.Keys.OpenAIKey = sourceConfig.Keys.OpenAIKey
	}
	if sourceConfig.Keys.GroqKey != "" {
		targetConfig.Keys.GroqKey = sourceConfig.Keys.GroqKey
	}

	if sourceConfig.Script.Provider != "" {
		targetConfig.Script.Provider = sourceConfig.Script.Provider
	}
	if sourceConfig.Script.Model != "" {
		targetConfig.Script.Model = sourceConfig.Script.Model
	}
	if sourceConfig.Script.Temperature != 0 {
		targetConfig.Script.Temperature = sourceConfig.Script.Temperature
	}
	if sourceConfig.Script.WordCount != 0 {
		targetConfig.Script.WordCount = sourceConfig.Script.WordCount
	}

	if sourceConfig.TTS.Provider != "" {
		targetConfig.TTS.Provider = sourceConfig.TTS.Provider
	}
	if sourceConfig.TTS.Model != "" {
		targetConfig.TTS.Model = sourceConfig.TTS.Model
	}
	if sourceConfig.TTS.Voice != "" {
		targetConfig.TTS.Voice = sourceConfig.TTS.Voice
	}
	if sourceConfig.TTS.OpenAI.Model != "" {
		targetConfig.TTS.OpenAI.Model = sourceConfig.TTS.OpenAI.Model
	}
	if sourceConfig.TTS.OpenAI.Speed != 0 {
		targetConfig.TTS.OpenAI.Speed = sourceConfig.TTS.OpenAI.Speed
	}
	if sourceConfig.TTS.Realtime.Model != "" {
		targetConfig.TTS.Realtime.Model = sourceConfig.TTS.Realtime.Model
	}

	if sourceConfig.Audio.Backend != "" {
		targetConfig.Audio.Backend = sourceConfig.Audio.Backend
	}
	if sourceConfig.Server.Listen != "" {
		targetConfig.Server.Listen = sourceConfig.Server.Listen
	}
	if sourceConfig.DefaultTone != "" {
		targetConfig.DefaultTone = sourceConfig.DefaultTone
	}
}
