package state

import (
	"sync"

	"github.com/dooshek/celebcast/internal/persona"
	"github.com/dooshek/celebcast/internal/types"
)

var (
	once     sync.Once
	instance *AppState
)

type AppState struct {
	Config *types.Config
}

func Init(cfg *types.Config) {
	once.Do(func() {
		instance = &AppState{
			Config: cfg,
		}
	})
}

func Get() *AppState {
	if instance == nil {
		panic("AppState not initialized")
	}
	return instance
}

func (s *AppState) GetScriptProvider() types.Provider {
	return types.Provider(s.Config.GetScriptConfig().Provider)
}

func (s *AppState) GetTTSProvider() types.Provider {
	return types.Provider(s.Config.GetTTSConfig().Provider)
}

// GetDefaultVoice returns the configured persona id, falling back to the
// catalog default when it is unset or unknown.
func (s *AppState) GetDefaultVoice() string {
	if p, ok := persona.Lookup(s.Config.TTS.Voice); ok {
		return p.ID
	}
	return persona.DefaultID
}

// GetDefaultTone returns the configured tone if it is one of the known tones.
func (s *AppState) GetDefaultTone() string {
	if tone, ok := persona.ResolveTone(s.Config.DefaultTone); ok {
		return tone
	}
	return persona.DefaultTone
}
