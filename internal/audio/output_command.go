package audio

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
	"sync"

	"github.com/dooshek/celebcast/internal/logger"
	"github.com/dooshek/celebcast/pkg/wav"
)

// PlayerCommand is an external player that reads a WAV stream from stdin.
type PlayerCommand struct {
	Name string
	Args []string
}

var DefaultPlayerCommands = []PlayerCommand{
	{Name: "paplay", Args: nil},
	{Name: "aplay", Args: []string{"-q", "-"}},
	{Name: "ffplay", Args: []string{"-nodisp", "-autoexit", "-loglevel", "quiet", "-"}},
}

// CommandOutput streams buffers to an external audio player process.
type CommandOutput struct {
	mu      sync.Mutex
	player  PlayerCommand
	closed  bool
	sources map[*commandSource]struct{}
}

func NewCommandOutput() (Output, error) {
	return NewCommandOutputWith(DefaultPlayerCommands)
}

// NewCommandOutputWith selects the first command found on PATH.
func NewCommandOutputWith(candidates []PlayerCommand) (Output, error) {
	names := make([]string, 0, len(candidates))
	for _, c := range candidates {
		names = append(names, c.Name)
		if _, err := exec.LookPath(c.Name); err == nil {
			logger.Debugf("Using %s for audio playback", c.Name)
			return &CommandOutput{
				player:  c,
				sources: make(map[*commandSource]struct{}),
			}, nil
		}
	}
	return nil, fmt.Errorf("no audio player found (tried: %v)", names)
}

func (o *CommandOutput) State() OutputState {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return StateClosed
	}
	return StateRunning
}

func (o *CommandOutput) Resume() error {
	return nil
}

func (o *CommandOutput) Start(buf *Buffer) (Source, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return nil, fmt.Errorf("output context is closed")
	}

	channels := make([][]float32, buf.NumberOfChannels())
	for c := range channels {
		channels[c] = buf.ChannelData(c)
	}
	data, err := wav.ConvertPCMToWAV(wav.InterleaveFloat32(channels), buf.NumberOfChannels(), buf.SampleRate())
	if err != nil {
		return nil, fmt.Errorf("failed to encode WAV stream: %w", err)
	}

	cmd := exec.Command(o.player.Name, o.player.Args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create stdin pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", o.player.Name, err)
	}

	src := &commandSource{cmd: cmd, done: make(chan struct{})}
	o.sources[src] = struct{}{}

	go func() {
		if _, err := io.Copy(stdin, bytes.NewReader(data)); err != nil {
			logger.Debugf("Player stdin closed early: %v", err)
		}
		stdin.Close()
	}()

	go func() {
		if err := cmd.Wait(); err != nil {
			logger.Debugf("%s exited: %v", o.player.Name, err)
		}
		close(src.done)
		o.mu.Lock()
		delete(o.sources, src)
		o.mu.Unlock()
	}()

	return src, nil
}

func (o *CommandOutput) Close() error {
	o.mu.Lock()
	o.closed = true
	sources := make([]*commandSource, 0, len(o.sources))
	for src := range o.sources {
		sources = append(sources, src)
	}
	o.mu.Unlock()

	for _, src := range sources {
		src.Stop()
	}
	return nil
}

type commandSource struct {
	cmd      *exec.Cmd
	done     chan struct{}
	stopOnce sync.Once
}

func (s *commandSource) Stop() {
	s.stopOnce.Do(func() {
		select {
		case <-s.done:
			return
		default:
		}
		if s.cmd.Process != nil {
			s.cmd.Process.Kill()
		}
	})
}

func (s *commandSource) Done() <-chan struct{} {
	return s.done
}
