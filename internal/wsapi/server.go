// Package wsapi exposes the studio over a WebSocket: clients send actions and
// receive a state snapshot after every change.
package wsapi

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/dooshek/celebcast/internal/logger"
	"github.com/dooshek/celebcast/internal/persona"
	"github.com/dooshek/celebcast/internal/studio"
	"github.com/gorilla/websocket"
)

const sendBuffer = 16

// Message is the envelope for everything the server sends.
type Message struct {
	Type    string            `json:"type"` // "state", "voices" or "error"
	State   *studio.State     `json:"state,omitempty"`
	Voices  []VoiceSummary    `json:"voices,omitempty"`
	Message string            `json:"message,omitempty"`
	Action  studio.ActionType `json:"action,omitempty"`
}

type VoiceSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Style       string `json:"style"`
}

type client struct {
	conn *websocket.Conn
	send chan Message
}

// Server fans controller state out to every connected client.
type Server struct {
	studio   *studio.Controller
	upgrader websocket.Upgrader
	ctx      context.Context

	mu      sync.Mutex
	clients map[*client]struct{}
}

func NewServer(ctrl *studio.Controller) *Server {
	s := &Server{
		studio:  ctrl,
		ctx:     context.Background(),
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	ctrl.Subscribe(s.broadcastState)
	return s
}

func voiceSummaries() []VoiceSummary {
	var out []VoiceSummary
	for _, p := range persona.Catalog() {
		out = append(out, VoiceSummary{ID: p.ID, Name: p.Name, Description: p.Description, Style: p.Style})
	}
	return out
}

func (s *Server) broadcastState(state studio.State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for c := range s.clients {
		select {
		case c.send <- Message{Type: "state", State: &state}:
		default:
			logger.Warn("WebSocket client too slow, dropping state update")
		}
	}
}

// ServeHTTP upgrades the request and serves one client until it disconnects.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("WebSocket upgrade failed", err)
		return
	}

	c := &client{conn: conn, send: make(chan Message, sendBuffer)}
	state := s.studio.State()
	c.send <- Message{Type: "voices", Voices: voiceSummaries()}
	c.send <- Message{Type: "state", State: &state}

	s.mu.Lock()
	s.clients[c] = struct{}{}
	s.mu.Unlock()

	logger.Debugf("WebSocket client connected: %s", r.RemoteAddr)

	go s.writeLoop(c)
	s.readLoop(c)

	s.mu.Lock()
	delete(s.clients, c)
	close(c.send)
	s.mu.Unlock()

	logger.Debugf("WebSocket client disconnected: %s", r.RemoteAddr)
}

func (s *Server) readLoop(c *client) {
	defer c.conn.Close()

	for {
		var action studio.Action
		if err := c.conn.ReadJSON(&action); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Error("WebSocket read error", err)
			}
			return
		}

		switch action.Type {
		case studio.ActionDraftScript, studio.ActionVoiceover:
			// Remote requests block; results arrive as state updates
			go s.dispatch(c, action)
		default:
			s.dispatch(c, action)
		}
	}
}

func (s *Server) dispatch(c *client, action studio.Action) {
	err := s.studio.Dispatch(s.ctx, action)
	if err == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[c]; !ok {
		return
	}
	select {
	case c.send <- Message{Type: "error", Message: err.Error(), Action: action.Type}:
	default:
	}
}

func (s *Server) writeLoop(c *client) {
	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			logger.Debugf("WebSocket write failed: %v", err)
			c.conn.Close()
			// drain until the read loop unregisters us
			for range c.send {
			}
			return
		}
	}
}

// Run serves /ws and /healthz on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	s.ctx = ctx

	mux := http.NewServeMux()
	mux.Handle("/ws", s)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	logger.Infof("🌐 WebSocket endpoint listening on ws://%s/ws", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("WebSocket server shutdown error", err)
	}
	return nil
}
