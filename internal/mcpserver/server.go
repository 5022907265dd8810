// Package mcpserver exposes the studio as MCP tools over stdio.
package mcpserver

import (
	"context"

	"github.com/dooshek/celebcast/internal/studio"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

type Config struct {
	ServerName    string
	ServerVersion string
}

type Server struct {
	config    Config
	mcpServer *sdk.Server
	studio    *studio.Controller
}

func NewServer(cfg Config, ctrl *studio.Controller) *Server {
	s := &Server{
		config: cfg,
		studio: ctrl,
	}

	s.mcpServer = sdk.NewServer(&sdk.Implementation{
		Name:    cfg.ServerName,
		Version: cfg.ServerVersion,
	}, nil)

	s.registerTools()

	return s
}

// Run serves over stdin/stdout until the client disconnects or ctx ends.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &sdk.StdioTransport{})
}

func (s *Server) registerTools() {
	sdk.AddTool(s.mcpServer, &sdk.Tool{
		Name:        "list_voices",
		Description: "List the voice personas available for voiceovers",
	}, s.handleListVoices)

	sdk.AddTool(s.mcpServer, &sdk.Tool{
		Name:        "draft_script",
		Description: "Draft a short celebrity news broadcast script about a topic",
	}, s.handleDraftScript)

	sdk.AddTool(s.mcpServer, &sdk.Tool{
		Name:        "voiceover",
		Description: "Read a script aloud on the local speakers with a voice persona",
	}, s.handleVoiceover)

	sdk.AddTool(s.mcpServer, &sdk.Tool{
		Name:        "stop_playback",
		Description: "Stop the voiceover that is currently playing",
	}, s.handleStopPlayback)
}
