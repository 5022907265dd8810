package types

import "fmt"

// RemoteRequestError reports a failed or unusable response from a remote
// script or speech service.
type RemoteRequestError struct {
	Service string // "script" or "speech"
	Message string
	Err     error
}

func (e *RemoteRequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s request failed: %s: %v", e.Service, e.Message, e.Err)
	}
	return fmt.Sprintf("%s request failed: %s", e.Service, e.Message)
}

func (e *RemoteRequestError) Unwrap() error {
	return e.Err
}

func NewScriptError(message string, err error) error {
	return &RemoteRequestError{Service: "script", Message: message, Err: err}
}

func NewSpeechError(message string, err error) error {
	return &RemoteRequestError{Service: "speech", Message: message, Err: err}
}
