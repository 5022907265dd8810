package main

import (
	"fmt"

	"github.com/dooshek/celebcast/internal/audio"
	"github.com/dooshek/celebcast/internal/llm"
	"github.com/dooshek/celebcast/internal/state"
	"github.com/dooshek/celebcast/internal/studio"
	"github.com/dooshek/celebcast/internal/tts"
)

// buildStudio wires the configured providers and audio backend into a controller.
func buildStudio(s *state.AppState) (*studio.Controller, *audio.Player, error) {
	cfg := s.Config

	scriptCfg := cfg.GetScriptConfig()
	provider, err := llm.NewProvider(s.GetScriptProvider(), cfg.APIKey(s.GetScriptProvider()))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create script provider: %w", err)
	}
	writer := llm.NewScriptWriter(provider, scriptCfg)

	ttsCfg := cfg.GetTTSConfig()
	synth, err := tts.NewManager(ttsCfg, cfg.APIKey(s.GetTTSProvider()))
	if err != nil {
		return nil, nil, err
	}

	player := audio.NewPlayerForBackend(cfg.GetAudioConfig().Backend)

	ctrl := studio.New(writer, synth, player)
	ctrl.SetTone(s.GetDefaultTone())
	if err := ctrl.SelectVoice(s.GetDefaultVoice()); err != nil {
		return nil, nil, err
	}

	return ctrl, player, nil
}
