package audio

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestBuildBufferExtremes(t *testing.T) {
	buf, err := BuildBuffer([]byte{0x00, 0x80, 0xFF, 0x7F}, 1, SampleRate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.NumberOfChannels() != 1 || buf.Length() != 2 || buf.SampleRate() != 24000 {
		t.Fatalf("unexpected buffer shape: channels=%d frames=%d rate=%d",
			buf.NumberOfChannels(), buf.Length(), buf.SampleRate())
	}
	got := buf.ChannelData(0)
	if got[0] != -1.0 || got[1] != 0.999969482421875 {
		t.Fatalf("unexpected samples %v", got)
	}
}

func TestBuildBufferNormalization(t *testing.T) {
	data := make([]byte, 0, 2*65536)
	for v := math.MinInt16; v <= math.MaxInt16; v++ {
		u := uint16(int16(v))
		data = append(data, byte(u), byte(u>>8))
	}

	buf, err := BuildBuffer(data, 1, SampleRate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.Length() != len(data)/2 {
		t.Fatalf("expected %d frames, got %d", len(data)/2, buf.Length())
	}
	for i, s := range buf.ChannelData(0) {
		want := float32(float64(math.MinInt16+i) / 32768.0)
		if s != want {
			t.Fatalf("sample %d: got %v want %v", i, s, want)
		}
		if s < -1.0 || s >= 1.0 {
			t.Fatalf("sample %d out of range: %v", i, s)
		}
	}
}

func TestBuildBufferStereoDeinterleaves(t *testing.T) {
	// frames: (L=1, R=-1), (L=2, R=-2)
	data := []byte{0x01, 0x00, 0xFF, 0xFF, 0x02, 0x00, 0xFE, 0xFF}
	buf, err := BuildBuffer(data, 2, 48000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.Length() != 2 {
		t.Fatalf("expected 2 frames, got %d", buf.Length())
	}
	left, right := buf.ChannelData(0), buf.ChannelData(1)
	if left[0] != 1/32768.0 || left[1] != 2/32768.0 {
		t.Fatalf("unexpected left channel %v", left)
	}
	if right[0] != -1/32768.0 || right[1] != -2/32768.0 {
		t.Fatalf("unexpected right channel %v", right)
	}
}

func TestBuildBufferFormatErrors(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		channels int
	}{
		{"empty", nil, 1},
		{"odd", []byte{0x01, 0x02, 0x03}, 1},
		{"single byte", []byte{0x01}, 1},
		{"partial stereo frame", []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, err := BuildBuffer(tt.data, tt.channels, SampleRate)
			if buf != nil {
				t.Fatal("expected no buffer")
			}
			var fmtErr *FormatError
			if !errors.As(err, &fmtErr) {
				t.Fatalf("expected FormatError, got %v", err)
			}
			if fmtErr.Length != len(tt.data) {
				t.Fatalf("expected length %d in error, got %d", len(tt.data), fmtErr.Length)
			}
		})
	}
}

func TestBufferDuration(t *testing.T) {
	buf, err := BuildBuffer(make([]byte, 2*SampleRate), 1, SampleRate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.Duration() != time.Second {
		t.Fatalf("expected 1s, got %v", buf.Duration())
	}
}

func TestMeasure(t *testing.T) {
	buf, _ := BuildBuffer([]byte{0x00, 0x80, 0x00, 0x00}, 1, SampleRate)
	level := Measure(buf)
	if level.Peak != 1.0 {
		t.Fatalf("expected peak 1.0, got %v", level.Peak)
	}
	if math.Abs(level.RMS-math.Sqrt(0.5)) > 1e-9 {
		t.Fatalf("unexpected rms %v", level.RMS)
	}
}
