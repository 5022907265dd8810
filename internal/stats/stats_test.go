package stats

import (
	"strings"
	"testing"
)

func TestAddVoiceoverPersists(t *testing.T) {
	dir := t.TempDir()
	sm := NewStatsManager(dir)

	sm.AddVoiceover("puck", 12.5)
	sm.AddVoiceover("puck", 2.5)
	sm.AddVoiceover("kore", 4)

	reloaded := NewStatsManager(dir).GetStats()
	puck := reloaded.Voices["puck"]
	if puck == nil || puck.VoiceoverCount != 2 || puck.TotalSeconds != 15 {
		t.Fatalf("unexpected puck stats %+v", puck)
	}
	if reloaded.Voices["kore"].VoiceoverCount != 1 {
		t.Fatalf("unexpected kore stats %+v", reloaded.Voices["kore"])
	}
}

func TestGetStatsIsCopy(t *testing.T) {
	sm := NewStatsManager(t.TempDir())
	sm.AddVoiceover("zephyr", 1)

	s := sm.GetStats()
	s.Voices["zephyr"].VoiceoverCount = 99

	if sm.GetStats().Voices["zephyr"].VoiceoverCount != 1 {
		t.Fatal("GetStats must return a deep copy")
	}
}

func TestResetAndJSON(t *testing.T) {
	sm := NewStatsManager(t.TempDir())
	sm.AddVoiceover("fenrir", 3)

	js, err := sm.GetStatsJSON()
	if err != nil || !strings.Contains(js, `"fenrir"`) {
		t.Fatalf("unexpected json %q, %v", js, err)
	}

	if err := sm.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if len(sm.GetStats().Voices) != 0 {
		t.Fatal("expected empty stats after reset")
	}
}
