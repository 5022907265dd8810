package studio

import (
	"context"
	"errors"
	"fmt"
)

type ActionType string

const (
	ActionSetTopic     ActionType = "set_topic"
	ActionSetTone      ActionType = "set_tone"
	ActionEditScript   ActionType = "edit_script"
	ActionSelectVoice  ActionType = "select_voice"
	ActionDraftScript  ActionType = "draft_script"
	ActionVoiceover    ActionType = "voiceover"
	ActionStopPlayback ActionType = "stop_playback"
)

// Action is a user command. Value carries the text for the setters and the
// persona id for ActionSelectVoice.
type Action struct {
	Type  ActionType `json:"type"`
	Value string     `json:"value,omitempty"`
}

// ErrRequestDropped is returned by Dispatch when a draft or voiceover was not
// started because the input was empty or another request was in flight.
var ErrRequestDropped = errors.New("request dropped: controller busy or input empty")

// Dispatch applies a to the controller. Remote requests run synchronously.
func (c *Controller) Dispatch(ctx context.Context, a Action) error {
	switch a.Type {
	case ActionSetTopic:
		c.SetTopic(a.Value)
	case ActionSetTone:
		c.SetTone(a.Value)
	case ActionEditScript:
		c.EditScript(a.Value)
	case ActionSelectVoice:
		return c.SelectVoice(a.Value)
	case ActionDraftScript:
		if !c.RequestScript(ctx) {
			return ErrRequestDropped
		}
	case ActionVoiceover:
		if !c.RequestVoiceover(ctx) {
			return ErrRequestDropped
		}
	case ActionStopPlayback:
		c.StopPlayback()
	default:
		return fmt.Errorf("unknown action: %q", a.Type)
	}
	return nil
}
