// Package studio owns the editing session: topic, tone, script, selected voice
// and the single in-flight remote operation.
package studio

import (
	"context"
	"strings"
	"sync"

	"github.com/dooshek/celebcast/internal/audio"
	"github.com/dooshek/celebcast/internal/logger"
	"github.com/dooshek/celebcast/internal/persona"
	"github.com/dooshek/celebcast/internal/types"
)

type Status string

const (
	StatusIdle              Status = "idle"
	StatusDraftingScript    Status = "drafting-script"
	StatusSynthesizingVoice Status = "synthesizing-voice"
	StatusError             Status = "error"
)

// State is a snapshot of the session. Voice holds a persona id.
type State struct {
	Topic   string `json:"topic"`
	Tone    string `json:"tone"`
	Script  string `json:"script"`
	Voice   string `json:"voice"`
	Status  Status `json:"status"`
	Error   string `json:"error,omitempty"`
	Playing bool   `json:"playing"`
}

type ScriptWriter interface {
	WriteScript(ctx context.Context, topic, tone string) (types.Script, error)
}

type Synthesizer interface {
	Synthesize(ctx context.Context, text string, p persona.VoicePersona) (string, error)
}

type Player interface {
	BuildAndPlay(data []byte, channels, sampleRate int) (audio.Source, error)
}

// UsageRecorder receives the length of every voiceover that started playing.
type UsageRecorder interface {
	AddVoiceover(voice string, durationSeconds float64)
}

// Controller serializes remote requests behind one busy gate. While a request
// is in flight further requests of either kind are dropped, not queued.
type Controller struct {
	writer ScriptWriter
	synth  Synthesizer
	player Player
	usage  UsageRecorder

	// notifyMu orders listener delivery to match the order of changes
	notifyMu sync.Mutex

	mu        sync.Mutex
	state     State
	persona   persona.VoicePersona
	source    audio.Source
	listeners []func(State)
}

func New(writer ScriptWriter, synth Synthesizer, player Player) *Controller {
	p := persona.Default()
	return &Controller{
		writer:  writer,
		synth:   synth,
		player:  player,
		persona: p,
		state: State{
			Tone:   persona.DefaultTone,
			Script: persona.InitialScript,
			Voice:  p.ID,
			Status: StatusIdle,
		},
	}
}

func (c *Controller) SetUsageRecorder(r UsageRecorder) {
	c.mu.Lock()
	c.usage = r
	c.mu.Unlock()
}

// Subscribe registers fn to receive a snapshot after every state change.
// Listeners run on the goroutine that made the change, one change at a time
// and in order. A listener must not call back into the controller's mutators.
func (c *Controller) Subscribe(fn func(State)) {
	c.mu.Lock()
	c.listeners = append(c.listeners, fn)
	c.mu.Unlock()
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Persona() persona.VoicePersona {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.persona
}

// change applies fn under the lock and, when fn reports a change, notifies
// listeners outside it.
func (c *Controller) change(fn func(s *State) bool) {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	c.mu.Lock()
	changed := fn(&c.state)
	snapshot := c.state
	listeners := append([]func(State){}, c.listeners...)
	c.mu.Unlock()

	if !changed {
		return
	}
	for _, l := range listeners {
		l(snapshot)
	}
}

func (c *Controller) update(fn func(s *State)) {
	c.change(func(s *State) bool {
		fn(s)
		return true
	})
}

func (c *Controller) SetTopic(topic string) {
	c.update(func(s *State) { s.Topic = topic })
}

func (c *Controller) SetTone(tone string) {
	c.update(func(s *State) { s.Tone = tone })
}

func (c *Controller) EditScript(text string) {
	c.update(func(s *State) { s.Script = text })
}

// SelectVoice switches the persona. An unknown id leaves the selection as is.
func (c *Controller) SelectVoice(id string) error {
	p, ok := persona.Lookup(id)
	if !ok {
		return &UnknownVoiceError{ID: id}
	}
	c.update(func(s *State) {
		c.persona = p
		s.Voice = p.ID
	})
	return nil
}

// begin takes the busy gate. It returns false when another request is in
// flight or valid() rejects the captured state.
func (c *Controller) begin(next Status, valid func(s State) bool) (State, persona.VoicePersona, bool) {
	var (
		snapshot State
		p        persona.VoicePersona
		ok       bool
	)
	c.change(func(s *State) bool {
		if s.Status != StatusIdle || !valid(*s) {
			return false
		}
		s.Status = next
		s.Error = ""
		snapshot, p, ok = *s, c.persona, true
		return true
	})
	return snapshot, p, ok
}

// finish returns to idle, recording err as a short message if set.
func (c *Controller) finish(err error, fn func(s *State)) {
	c.update(func(s *State) {
		if fn != nil {
			fn(s)
		}
		if err != nil {
			s.Error = userMessage(err)
		}
		s.Status = StatusIdle
	})
}

// RequestScript drafts a script for the current topic and tone. It returns
// false without contacting the service when the topic is blank or the
// controller is busy.
func (c *Controller) RequestScript(ctx context.Context) bool {
	snapshot, _, ok := c.begin(StatusDraftingScript, func(s State) bool {
		return strings.TrimSpace(s.Topic) != ""
	})
	if !ok {
		logger.Debug("Script request ignored")
		return false
	}

	script, err := c.writer.WriteScript(ctx, snapshot.Topic, snapshot.Tone)
	if err != nil {
		logger.Error("Script drafting failed", err)
		c.finish(err, nil)
		return true
	}

	c.finish(nil, func(s *State) { s.Script = script.Content })
	logger.Infof("📰 Script ready (%d chars)", len(script.Content))
	return true
}

// RequestVoiceover synthesizes the current script with the selected persona
// and plays it. Any previous playback is stopped before the service is
// contacted, so at most one source is audible.
func (c *Controller) RequestVoiceover(ctx context.Context) bool {
	snapshot, p, ok := c.begin(StatusSynthesizingVoice, func(s State) bool {
		return strings.TrimSpace(s.Script) != ""
	})
	if !ok {
		logger.Debug("Voiceover request ignored")
		return false
	}

	c.StopPlayback()

	src, seconds, err := c.voiceover(ctx, snapshot.Script, p)
	if err != nil {
		logger.Error("Voiceover failed", err)
		c.finish(err, nil)
		return true
	}

	var usage UsageRecorder
	c.finish(nil, func(s *State) {
		c.source = src
		usage = c.usage
		s.Playing = true
	})
	go c.watch(src)

	if usage != nil {
		usage.AddVoiceover(p.ID, seconds)
	}
	return true
}

func (c *Controller) voiceover(ctx context.Context, text string, p persona.VoicePersona) (audio.Source, float64, error) {
	payload, err := c.synth.Synthesize(ctx, text, p)
	if err != nil {
		return nil, 0, err
	}

	pcm, err := audio.DecodePayload(payload)
	if err != nil {
		return nil, 0, err
	}

	src, err := c.player.BuildAndPlay(pcm, audio.Channels, audio.SampleRate)
	if err != nil {
		return nil, 0, err
	}

	seconds := float64(len(pcm)/(2*audio.Channels)) / float64(audio.SampleRate)
	return src, seconds, nil
}

// watch clears the playing flag once src ends, unless it was replaced.
func (c *Controller) watch(src audio.Source) {
	<-src.Done()

	c.change(func(s *State) bool {
		if c.source != src {
			return false
		}
		c.source = nil
		s.Playing = false
		return true
	})
}

// StopPlayback stops the current source immediately. It is a no-op when
// nothing is playing.
func (c *Controller) StopPlayback() {
	var src audio.Source
	c.change(func(s *State) bool {
		src, c.source = c.source, nil
		if src == nil {
			return false
		}
		s.Playing = false
		return true
	})

	if src != nil {
		src.Stop()
	}
}
