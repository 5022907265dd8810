package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dooshek/celebcast/internal/persona"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

type ListVoicesArgs struct{}

type DraftScriptArgs struct {
	Topic string `json:"topic" jsonschema:"Celebrity or event to write about"`
	Tone  string `json:"tone,omitempty" jsonschema:"Narrative tone name or 1-based index (default: Excited and Gossipy)"`
}

type VoiceoverArgs struct {
	Script string `json:"script,omitempty" jsonschema:"Text to read; the current script is used when empty"`
	Voice  string `json:"voice,omitempty" jsonschema:"Voice persona id from list_voices"`
}

type StopPlaybackArgs struct{}

var errBusy = errors.New("another request is in progress or the input is empty")

func textResult(lines ...string) *sdk.CallToolResult {
	content := make([]sdk.Content, 0, len(lines))
	for _, l := range lines {
		content = append(content, &sdk.TextContent{Text: l})
	}
	return &sdk.CallToolResult{Content: content}
}

func (s *Server) handleListVoices(ctx context.Context, req *sdk.CallToolRequest, args ListVoicesArgs) (*sdk.CallToolResult, any, error) {
	selected := s.studio.State().Voice

	lines := []string{fmt.Sprintf("Voices (%d):", len(persona.Catalog()))}
	for _, p := range persona.Catalog() {
		marker := ""
		if p.ID == selected {
			marker = " [selected]"
		}
		lines = append(lines, fmt.Sprintf("- %s: %s, %s%s", p.ID, p.Name, p.Description, marker))
	}
	return textResult(lines...), nil, nil
}

func (s *Server) handleDraftScript(ctx context.Context, req *sdk.CallToolRequest, args DraftScriptArgs) (*sdk.CallToolResult, any, error) {
	if strings.TrimSpace(args.Topic) == "" {
		return nil, nil, fmt.Errorf("topic is required")
	}
	if args.Tone != "" {
		tone, ok := persona.ResolveTone(args.Tone)
		if !ok {
			return nil, nil, fmt.Errorf("unknown tone %q (available: %s)", args.Tone, strings.Join(persona.Tones(), ", "))
		}
		s.studio.SetTone(tone)
	}
	s.studio.SetTopic(args.Topic)

	if !s.studio.RequestScript(ctx) {
		return nil, nil, errBusy
	}

	state := s.studio.State()
	if state.Error != "" {
		return nil, nil, errors.New(state.Error)
	}
	return textResult(state.Script), nil, nil
}

func (s *Server) handleVoiceover(ctx context.Context, req *sdk.CallToolRequest, args VoiceoverArgs) (*sdk.CallToolResult, any, error) {
	if args.Voice != "" {
		if err := s.studio.SelectVoice(args.Voice); err != nil {
			return nil, nil, err
		}
	}
	if args.Script != "" {
		s.studio.EditScript(args.Script)
	}

	if !s.studio.RequestVoiceover(ctx) {
		return nil, nil, errBusy
	}

	state := s.studio.State()
	if state.Error != "" {
		return nil, nil, errors.New(state.Error)
	}
	return textResult(fmt.Sprintf("Playing voiceover with %s", s.studio.Persona().Name)), nil, nil
}

func (s *Server) handleStopPlayback(ctx context.Context, req *sdk.CallToolRequest, args StopPlaybackArgs) (*sdk.CallToolResult, any, error) {
	s.studio.StopPlayback()
	return textResult("Playback stopped"), nil, nil
}
