package audio

import (
	"sync"

	"github.com/dooshek/celebcast/internal/logger"
)

type OutputState int

const (
	StateSuspended OutputState = iota
	StateRunning
	StateClosed
)

func (s OutputState) String() string {
	switch s {
	case StateSuspended:
		return "suspended"
	case StateRunning:
		return "running"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Output is the process-wide audio output context. Sources started on it play
// immediately on the default destination.
type Output interface {
	State() OutputState
	Resume() error
	Start(buf *Buffer) (Source, error)
	Close() error
}

// Source is a started playback. Stop is immediate and safe to call twice.
type Source interface {
	Stop()
	Done() <-chan struct{}
}

// OutputFactory creates an Output. It is called at most once per Player
// unless the output is closed.
type OutputFactory func() (Output, error)

// Player owns the lazily created output context and turns PCM payloads into
// running sources.
type Player struct {
	mu        sync.Mutex
	newOutput OutputFactory
	output    Output
}

func NewPlayer(factory OutputFactory) *Player {
	return &Player{newOutput: factory}
}

// NewPlayerForBackend picks the output implementation by name.
func NewPlayerForBackend(backend string) *Player {
	switch backend {
	case "command":
		return NewPlayer(NewCommandOutput)
	default:
		return NewPlayer(NewMalgoOutput)
	}
}

// ensureOutput returns the shared output, creating it on first use and
// resuming it when suspended.
func (p *Player) ensureOutput() (Output, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.output == nil || p.output.State() == StateClosed {
		out, err := p.newOutput()
		if err != nil {
			return nil, &PlaybackError{Op: "init output", Err: err}
		}
		p.output = out
		logger.Debugf("Audio output context initialized")
	}

	if p.output.State() == StateSuspended {
		if err := p.output.Resume(); err != nil {
			return nil, &PlaybackError{Op: "resume output", Err: err}
		}
		logger.Debugf("Audio output context resumed")
	}

	return p.output, nil
}

// BuildAndPlay converts PCM bytes into a buffer and starts it on the output.
// A malformed length fails with *FormatError before the output is touched.
func (p *Player) BuildAndPlay(data []byte, channels, sampleRate int) (Source, error) {
	buf, err := BuildBuffer(data, channels, sampleRate)
	if err != nil {
		return nil, err
	}

	out, err := p.ensureOutput()
	if err != nil {
		return nil, err
	}

	src, err := out.Start(buf)
	if err != nil {
		return nil, &PlaybackError{Op: "start source", Err: err}
	}

	level := Measure(buf)
	logger.Infof("🔊 Playing %.1fs of audio (peak %.2f, rms %.2f)", buf.Duration().Seconds(), level.Peak, level.RMS)

	return src, nil
}

// Close releases the output context if one was created.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.output == nil {
		return nil
	}
	err := p.output.Close()
	p.output = nil
	return err
}
