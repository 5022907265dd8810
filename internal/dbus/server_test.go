package dbus

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dooshek/celebcast/internal/audio"
	"github.com/dooshek/celebcast/internal/persona"
	"github.com/dooshek/celebcast/internal/stats"
	"github.com/dooshek/celebcast/internal/studio"
	"github.com/dooshek/celebcast/internal/types"
)

type stubWriter struct{ err error }

func (w stubWriter) WriteScript(ctx context.Context, topic, tone string) (types.Script, error) {
	return types.Script{Content: "Hot off the press"}, w.err
}

type stubSynth struct{}

func (stubSynth) Synthesize(ctx context.Context, text string, p persona.VoicePersona) (string, error) {
	return "AAA=", nil
}

type stubSource struct{ done chan struct{} }

func (s *stubSource) Stop()                 {}
func (s *stubSource) Done() <-chan struct{} { return s.done }

type stubPlayer struct{}

func (stubPlayer) BuildAndPlay(data []byte, channels, sampleRate int) (audio.Source, error) {
	return &stubSource{done: make(chan struct{})}, nil
}

type recordingNotifier struct{ calls []string }

func (n *recordingNotifier) NotifyScriptReady(h string) error {
	n.calls = append(n.calls, "script:"+h)
	return nil
}
func (n *recordingNotifier) NotifyVoiceoverStarted(v string) error {
	n.calls = append(n.calls, "voice:"+v)
	return nil
}
func (n *recordingNotifier) NotifyError(m string) error {
	n.calls = append(n.calls, "error:"+m)
	return nil
}
func (n *recordingNotifier) Notify(t, m string) error { return nil }

type signal struct {
	name string
	arg  string
}

func newTestServer(w studio.ScriptWriter) (*Server, *studio.Controller, *[]signal, *recordingNotifier) {
	ctrl := studio.New(w, stubSynth{}, stubPlayer{})
	n := &recordingNotifier{}
	s := NewServer(ctrl, n, nil)

	var signals []signal
	s.emit = func(name string, args ...interface{}) {
		signals = append(signals, signal{name: name, arg: args[0].(string)})
	}
	return s, ctrl, &signals, n
}

func names(signals []signal) []string {
	var out []string
	for _, s := range signals {
		if s.name != "StateChanged" {
			out = append(out, s.name)
		}
	}
	return out
}

func TestScriptReadySignal(t *testing.T) {
	_, ctrl, signals, n := newTestServer(stubWriter{})
	ctrl.SetTopic("Zendaya")
	ctrl.RequestScript(context.Background())

	got := names(*signals)
	if len(got) != 1 || got[0] != "ScriptReady" {
		t.Fatalf("unexpected signals %v", got)
	}
	if len(n.calls) != 1 || n.calls[0] != "script:Zendaya" {
		t.Fatalf("unexpected notifications %v", n.calls)
	}
}

func TestErrorSignal(t *testing.T) {
	_, ctrl, signals, n := newTestServer(stubWriter{err: errors.New("down")})
	ctrl.SetTopic("Zendaya")
	ctrl.RequestScript(context.Background())

	got := names(*signals)
	if len(got) != 1 || got[0] != "Error" {
		t.Fatalf("unexpected signals %v", got)
	}
	if !strings.HasPrefix(n.calls[0], "error:") {
		t.Fatalf("expected error notification, got %v", n.calls)
	}
}

func TestVoiceoverStartedSignal(t *testing.T) {
	_, ctrl, signals, n := newTestServer(stubWriter{})
	ctrl.RequestVoiceover(context.Background())

	var started *signal
	for i := range *signals {
		if (*signals)[i].name == "VoiceoverStarted" {
			started = &(*signals)[i]
		}
	}
	if started == nil || started.arg != persona.DefaultID {
		t.Fatalf("expected VoiceoverStarted for default voice, got %v", *signals)
	}
	if n.calls[0] != "voice:Puck (The Insider)" {
		t.Fatalf("unexpected notifications %v", n.calls)
	}
}

func TestMethods(t *testing.T) {
	s, ctrl, _, _ := newTestServer(stubWriter{})

	if err := s.SelectVoice("kore"); err != nil {
		t.Fatalf("SelectVoice: %v", err)
	}
	if err := s.SelectVoice("nobody"); err == nil {
		t.Fatal("expected D-Bus error for unknown voice")
	}
	if err := s.DraftScript("x", "Sarcastic"); err == nil {
		t.Fatal("expected D-Bus error for unknown tone")
	}
	s.SetScript("New copy")

	status, err := s.GetStatus()
	if err != nil {
		t.Fatalf("GetStatus: %v", err)
	}
	if !strings.Contains(status, `"voice":"kore"`) || !strings.Contains(status, `"script":"New copy"`) {
		t.Fatalf("unexpected status %s", status)
	}
	if ctrl.State().Topic != "" {
		t.Fatal("rejected DraftScript must not change the topic")
	}

	stats, _ := s.GetStats()
	if stats != "{}" {
		t.Fatalf("unexpected stats %q", stats)
	}
}

func TestResetStats(t *testing.T) {
	ctrl := studio.New(stubWriter{}, stubSynth{}, stubPlayer{})
	sm := stats.NewStatsManager(t.TempDir())
	sm.AddVoiceover("kore", 4.5)
	s := NewServer(ctrl, nil, sm)

	before, _ := s.GetStats()
	if !strings.Contains(before, `"kore"`) {
		t.Fatalf("expected kore in stats, got %s", before)
	}

	if err := s.ResetStats(); err != nil {
		t.Fatalf("ResetStats: %v", err)
	}
	after, _ := s.GetStats()
	if after != `{"voices":{}}` {
		t.Fatalf("expected empty stats, got %s", after)
	}

	if err := NewServer(ctrl, nil, nil).ResetStats(); err != nil {
		t.Fatalf("ResetStats without stats: %v", err)
	}
}
