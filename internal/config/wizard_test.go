package config

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/dooshek/celebcast/internal/fileops"
	"github.com/dooshek/celebcast/internal/types"
)

func TestRunWizardSavesAnswers(t *testing.T) {
	f := fileops.NewFileOpsAt(t.TempDir())
	input := strings.Join([]string{
		"gem-key-1234",
		"",
		"",
		"openai",
		"bogus",
		"realtime",
		"CHARON",
		"2",
		"command",
	}, "\n") + "\n"

	var out bytes.Buffer
	if err := runWizard(strings.NewReader(input), &out, f); err != nil {
		t.Fatalf("runWizard: %v", err)
	}

	cfg, err := LoadConfigFrom(f)
	if err != nil || cfg == nil {
		t.Fatalf("LoadConfigFrom: %+v, %v", cfg, err)
	}
	if cfg.Keys.GeminiKey != "gem-key-1234" || cfg.Keys.OpenAIKey != "" {
		t.Fatalf("unexpected keys %+v", cfg.Keys)
	}
	if cfg.Script.Provider != "openai" || cfg.TTS.Provider != "realtime" {
		t.Fatalf("unexpected providers %+v %+v", cfg.Script, cfg.TTS)
	}
	if cfg.TTS.Voice != "charon" || cfg.DefaultTone != "Serious Investigative" {
		t.Fatalf("unexpected voice/tone %q %q", cfg.TTS.Voice, cfg.DefaultTone)
	}
	if cfg.Audio.Backend != types.AudioBackendCommand {
		t.Fatalf("unexpected backend %q", cfg.Audio.Backend)
	}
	if !strings.Contains(out.String(), "Please choose one of") {
		t.Fatal("expected retry prompt for invalid provider")
	}
}

func TestRunWizardKeepsMaskedKey(t *testing.T) {
	f := fileops.NewFileOpsAt(t.TempDir())
	if err := SaveConfigTo(f, &types.Config{Keys: types.APIKeys{GeminiKey: "secret-abcd"}}); err != nil {
		t.Fatalf("SaveConfigTo: %v", err)
	}

	var out bytes.Buffer
	if err := runWizard(strings.NewReader(""), &out, f); err != nil {
		t.Fatalf("runWizard: %v", err)
	}

	cfg, _ := LoadConfigFrom(f)
	if cfg.Keys.GeminiKey != "secret-abcd" {
		t.Fatalf("expected stored key kept, got %q", cfg.Keys.GeminiKey)
	}
	if cfg.TTS.Voice != "puck" || cfg.Script.Provider != "gemini" || cfg.Audio.Backend != "malgo" {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestRunWizardStaleConfigWithClosedInput(t *testing.T) {
	f := fileops.NewFileOpsAt(t.TempDir())
	stale := "tts:\n  provider: elevenlabs\n  voice: bob\nscript:\n  provider: claude\naudio:\n  backend: pulse\ndefault_tone: Sarcastic\n"
	if err := f.SaveConfig("celebcast.yaml", []byte(stale)); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- runWizard(strings.NewReader(""), io.Discard, f) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("runWizard: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("wizard did not finish after input ended")
	}

	cfg, _ := LoadConfigFrom(f)
	if cfg.TTS.Voice != "puck" || cfg.TTS.Provider != "gemini" || cfg.Script.Provider != "gemini" {
		t.Fatalf("expected built-in defaults, got %+v", cfg)
	}
	if cfg.Audio.Backend != "malgo" || cfg.DefaultTone != "Excited and Gossipy" {
		t.Fatalf("expected built-in defaults, got %+v", cfg)
	}
}

func TestChooseStopsAtEndOfInput(t *testing.T) {
	p := &prompter{reader: bufio.NewReader(strings.NewReader("bogus\n")), out: io.Discard}

	// a caller-supplied fallback outside options cannot be accepted
	_, err := p.choose("Backend", []string{"malgo", "command"}, "", "pulse")
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected io.ErrUnexpectedEOF, got %v", err)
	}
}
