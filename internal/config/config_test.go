package config

import (
	"testing"

	"github.com/dooshek/celebcast/internal/fileops"
	"github.com/dooshek/celebcast/internal/types"
)

func TestLoadConfigMissingReturnsNil(t *testing.T) {
	cfg, err := LoadConfigFrom(fileops.NewFileOpsAt(t.TempDir()))
	if err != nil || cfg != nil {
		t.Fatalf("expected nil config and no error, got %+v, %v", cfg, err)
	}
}

func TestSaveConfigMergesExisting(t *testing.T) {
	f := fileops.NewFileOpsAt(t.TempDir())

	first := &types.Config{
		Keys:   types.APIKeys{GeminiKey: "g-key"},
		TTS:    types.TTSConfig{Voice: "kore"},
		Script: types.ScriptConfig{WordCount: 150},
	}
	if err := SaveConfigTo(f, first); err != nil {
		t.Fatalf("SaveConfigTo: %v", err)
	}

	second := &types.Config{
		Keys:  types.APIKeys{OpenAIKey: "o-key"},
		Audio: types.AudioConfig{Backend: types.AudioBackendCommand},
	}
	if err := SaveConfigTo(f, second); err != nil {
		t.Fatalf("SaveConfigTo: %v", err)
	}

	cfg, err := LoadConfigFrom(f)
	if err != nil {
		t.Fatalf("LoadConfigFrom: %v", err)
	}
	if cfg.Keys.GeminiKey != "g-key" || cfg.Keys.OpenAIKey != "o-key" {
		t.Fatalf("keys not merged: %+v", cfg.Keys)
	}
	if cfg.TTS.Voice != "kore" || cfg.Script.WordCount != 150 || cfg.Audio.Backend != "command" {
		t.Fatalf("settings not merged: %+v", cfg)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("API_KEY", "fallback")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "openai")
	t.Setenv("GROQ_API_KEY", "")

	cfg := &types.Config{Keys: types.APIKeys{GeminiKey: "file", GroqKey: "groq-file"}}
	ApplyEnv(cfg)

	if cfg.Keys.GeminiKey != "fallback" || cfg.Keys.OpenAIKey != "openai" || cfg.Keys.GroqKey != "groq-file" {
		t.Fatalf("unexpected keys %+v", cfg.Keys)
	}

	t.Setenv("GEMINI_API_KEY", "primary")
	ApplyEnv(cfg)
	if cfg.Keys.GeminiKey != "primary" {
		t.Fatalf("GEMINI_API_KEY should win, got %q", cfg.Keys.GeminiKey)
	}
}

func TestDefaults(t *testing.T) {
	cfg := &types.Config{Script: types.ScriptConfig{Provider: "groq"}}

	s := cfg.GetScriptConfig()
	if s.Model != types.GroqModelLLama3_3_70B || s.WordCount != 100 {
		t.Fatalf("unexpected script defaults %+v", s)
	}
	tts := cfg.GetTTSConfig()
	if tts.Provider != "gemini" || tts.Model != types.GeminiModelTTS {
		t.Fatalf("unexpected tts defaults %+v", tts)
	}
	if cfg.GetAudioConfig().Backend != types.AudioBackendMalgo {
		t.Fatal("expected malgo backend by default")
	}
	if HasAnyKey(cfg) {
		t.Fatal("expected no keys")
	}
}
