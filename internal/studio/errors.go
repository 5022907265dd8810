package studio

import (
	"errors"
	"fmt"

	"github.com/dooshek/celebcast/internal/audio"
	"github.com/dooshek/celebcast/internal/types"
)

type UnknownVoiceError struct {
	ID string
}

func (e *UnknownVoiceError) Error() string {
	return fmt.Sprintf("unknown voice: %q", e.ID)
}

// userMessage turns an error into the short text shown next to the editor.
func userMessage(err error) string {
	var (
		remoteErr   *types.RemoteRequestError
		decodeErr   *audio.DecodeError
		formatErr   *audio.FormatError
		playbackErr *audio.PlaybackError
	)

	switch {
	case errors.As(err, &remoteErr):
		if remoteErr.Service == "script" {
			return "Failed to generate script. Please try again."
		}
		return "Failed to generate voiceover. Please try again."
	case errors.As(err, &decodeErr):
		return "Received malformed audio data."
	case errors.As(err, &formatErr):
		return "Received audio in an unexpected format."
	case errors.As(err, &playbackErr):
		return "Audio playback failed. Check your output device."
	default:
		return "Something went wrong: " + err.Error()
	}
}
