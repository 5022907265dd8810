package audio

import "fmt"

// DecodeError reports a payload that is not valid base64.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid audio payload encoding: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// FormatError reports a PCM byte sequence whose length is not a positive
// whole number of frames.
type FormatError struct {
	Length   int
	Channels int
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed PCM payload: %d bytes is not a positive multiple of %d", e.Length, 2*e.Channels)
}

// PlaybackError wraps a failure of the audio output subsystem.
type PlaybackError struct {
	Op  string
	Err error
}

func (e *PlaybackError) Error() string {
	return fmt.Sprintf("playback failed (%s): %v", e.Op, e.Err)
}

func (e *PlaybackError) Unwrap() error {
	return e.Err
}
