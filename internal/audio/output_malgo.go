package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/dooshek/celebcast/internal/logger"
	"github.com/gen2brain/malgo"
)

var ErrNoPlaybackDevice = errors.New("no playback device available")

// MalgoOutput plays buffers through miniaudio. The context starts suspended
// and is resumed on first playback.
type MalgoOutput struct {
	mu      sync.Mutex
	ctx     *malgo.AllocatedContext
	state   OutputState
	sources map[*malgoSource]struct{}
}

func NewMalgoOutput() (Output, error) {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize malgo context: %w", err)
	}

	return &MalgoOutput{
		ctx:     ctx,
		state:   StateSuspended,
		sources: make(map[*malgoSource]struct{}),
	}, nil
}

func (o *MalgoOutput) State() OutputState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Resume checks that a playback device exists before marking the context
// running.
func (o *MalgoOutput) Resume() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state == StateClosed {
		return fmt.Errorf("output context is closed")
	}

	devices, err := o.ctx.Devices(malgo.Playback)
	if err != nil {
		return fmt.Errorf("failed to enumerate playback devices: %w", err)
	}
	if len(devices) == 0 {
		return ErrNoPlaybackDevice
	}

	o.state = StateRunning
	return nil
}

func (o *MalgoOutput) Start(buf *Buffer) (Source, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state != StateRunning {
		return nil, fmt.Errorf("output context is %s", o.state)
	}

	src := &malgoSource{
		buf:      buf,
		finished: make(chan struct{}),
		done:     make(chan struct{}),
	}

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Playback)
	deviceConfig.Playback.Format = malgo.FormatF32
	deviceConfig.Playback.Channels = uint32(buf.NumberOfChannels())
	deviceConfig.SampleRate = uint32(buf.SampleRate())
	deviceConfig.Alsa.NoMMap = 1

	device, err := malgo.InitDevice(o.ctx.Context, deviceConfig, malgo.DeviceCallbacks{
		Data: src.fill,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize playback device: %w", err)
	}
	src.device = device

	if err := device.Start(); err != nil {
		device.Uninit()
		return nil, fmt.Errorf("failed to start playback device: %w", err)
	}

	o.sources[src] = struct{}{}
	go func() {
		select {
		case <-src.finished:
			logger.Debugf("Playback finished")
			src.Stop()
		case <-src.done:
		}
		o.mu.Lock()
		delete(o.sources, src)
		o.mu.Unlock()
	}()

	return src, nil
}

func (o *MalgoOutput) Close() error {
	o.mu.Lock()
	sources := make([]*malgoSource, 0, len(o.sources))
	for src := range o.sources {
		sources = append(sources, src)
	}
	o.state = StateClosed
	o.mu.Unlock()

	for _, src := range sources {
		src.Stop()
	}

	if err := o.ctx.Uninit(); err != nil {
		return fmt.Errorf("failed to release malgo context: %w", err)
	}
	o.ctx.Free()
	return nil
}

type malgoSource struct {
	device *malgo.Device
	buf    *Buffer
	pos    int // next frame, only touched by the device callback

	finished   chan struct{}
	finishOnce sync.Once
	done       chan struct{}
	stopOnce   sync.Once
}

// fill writes interleaved float32 frames. Once the buffer is exhausted it
// emits silence and reports completion on the following period, so the last
// samples have already been handed to the device.
func (s *malgoSource) fill(output, _ []byte, frameCount uint32) {
	channels := s.buf.NumberOfChannels()
	length := s.buf.Length()
	exhausted := s.pos >= length

	offset := 0
	for i := 0; i < int(frameCount); i++ {
		for c := 0; c < channels; c++ {
			var v float32
			if s.pos < length {
				v = s.buf.ChannelData(c)[s.pos]
			}
			if offset+4 <= len(output) {
				binary.LittleEndian.PutUint32(output[offset:], math.Float32bits(v))
			}
			offset += 4
		}
		if s.pos < length {
			s.pos++
		}
	}

	if exhausted {
		s.finishOnce.Do(func() { close(s.finished) })
	}
}

func (s *malgoSource) Stop() {
	s.stopOnce.Do(func() {
		if s.device != nil {
			s.device.Stop()
			s.device.Uninit()
		}
		close(s.done)
	})
}

func (s *malgoSource) Done() <-chan struct{} {
	return s.done
}
