package audio

import (
	"encoding/binary"
	"time"
)

const (
	SampleRate = 24000
	Channels   = 1

	bytesPerSample = 2
	pcmScale       = 32768.0
)

// Buffer is a decoded, playable block of non-interleaved float32 samples.
type Buffer struct {
	sampleRate int
	channels   [][]float32
}

func (b *Buffer) NumberOfChannels() int { return len(b.channels) }

func (b *Buffer) SampleRate() int { return b.sampleRate }

// Length returns the number of frames.
func (b *Buffer) Length() int {
	if len(b.channels) == 0 {
		return 0
	}
	return len(b.channels[0])
}

func (b *Buffer) ChannelData(channel int) []float32 {
	return b.channels[channel]
}

func (b *Buffer) Duration() time.Duration {
	if b.sampleRate == 0 {
		return 0
	}
	return time.Duration(b.Length()) * time.Second / time.Duration(b.sampleRate)
}

// ValidatePCM checks that data holds a positive whole number of frames of
// signed 16-bit samples.
func ValidatePCM(data []byte, channels int) error {
	if channels < 1 {
		channels = 1
	}
	frameBytes := bytesPerSample * channels
	if len(data) == 0 || len(data)%frameBytes != 0 {
		return &FormatError{Length: len(data), Channels: channels}
	}
	return nil
}

// BuildBuffer reinterprets little-endian int16 PCM as float samples divided by
// 32768. The result lies in [-1.0, 1.0): -32768 maps to exactly -1.0 while
// 32767 stays below 1.0.
func BuildBuffer(data []byte, channels, sampleRate int) (*Buffer, error) {
	if channels < 1 {
		channels = 1
	}
	if err := ValidatePCM(data, channels); err != nil {
		return nil, err
	}

	sampleCount := len(data) / bytesPerSample
	frameCount := sampleCount / channels

	buf := &Buffer{
		sampleRate: sampleRate,
		channels:   make([][]float32, channels),
	}
	for c := 0; c < channels; c++ {
		channelData := make([]float32, frameCount)
		for i := 0; i < frameCount; i++ {
			offset := (i*channels + c) * bytesPerSample
			sample := int16(binary.LittleEndian.Uint16(data[offset:]))
			channelData[i] = float32(float64(sample) / pcmScale)
		}
		buf.channels[c] = channelData
	}

	return buf, nil
}
