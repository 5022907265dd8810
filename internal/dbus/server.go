package dbus

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/dooshek/celebcast/internal/logger"
	"github.com/dooshek/celebcast/internal/notification"
	"github.com/dooshek/celebcast/internal/persona"
	"github.com/dooshek/celebcast/internal/studio"
	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
)

const (
	dbusServiceName = "com.dooshek.celebcast"
	dbusObjectPath  = "/com/dooshek/celebcast/Studio"
	dbusInterface   = "com.dooshek.celebcast.Studio"
)

// StatsSource exposes usage statistics as JSON
type StatsSource interface {
	GetStatsJSON() (string, error)
	Reset() error
}

// Server implements D-Bus service for controlling the studio
type Server struct {
	conn     *dbus.Conn
	studio   *studio.Controller
	notifier notification.Notifier
	stats    StatsSource
	ctx      context.Context
	cancel   context.CancelFunc

	mu   sync.Mutex
	prev studio.State

	// emit sends a signal; replaced in tests
	emit func(name string, args ...interface{})
}

// NewServer creates a new D-Bus server instance bound to ctrl
func NewServer(ctrl *studio.Controller, notifier notification.Notifier, stats StatsSource) *Server {
	ctx, cancel := context.WithCancel(context.Background())

	if notifier == nil {
		notifier = notification.NewSilent()
	}

	s := &Server{
		studio:   ctrl,
		notifier: notifier,
		stats:    stats,
		ctx:      ctx,
		cancel:   cancel,
		prev:     ctrl.State(),
	}
	s.emit = s.emitSignal
	ctrl.Subscribe(s.observe)

	return s
}

// Start starts the D-Bus server
func (s *Server) Start() error {
	var err error
	s.conn, err = dbus.ConnectSessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}

	reply, err := s.conn.RequestName(dbusServiceName, dbus.NameFlagDoNotQueue)
	if err != nil {
		s.conn.Close()
		return fmt.Errorf("failed to request name: %w", err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		s.conn.Close()
		return fmt.Errorf("name already taken")
	}

	err = s.conn.ExportWithMap(s, map[string]string{"StopPlayback": "Stop"}, dbusObjectPath, dbusInterface)
	if err != nil {
		s.conn.Close()
		return fmt.Errorf("failed to export object: %w", err)
	}

	err = s.conn.Export(introspect.NewIntrospectable(introspection()), dbusObjectPath, "org.freedesktop.DBus.Introspectable")
	if err != nil {
		s.conn.Close()
		return fmt.Errorf("failed to export introspectable: %w", err)
	}

	logger.Infof("🔌 D-Bus service started: %s", dbusServiceName)

	return nil
}

func introspection() *introspect.Node {
	return &introspect.Node{
		Name: dbusObjectPath,
		Interfaces: []introspect.Interface{{
			Name: dbusInterface,
			Methods: []introspect.Method{
				{
					Name: "DraftScript",
					Args: []introspect.Arg{
						{Name: "topic", Type: "s", Direction: "in"},
						{Name: "tone", Type: "s", Direction: "in"},
					},
				},
				{
					Name: "SetScript",
					Args: []introspect.Arg{
						{Name: "text", Type: "s", Direction: "in"},
					},
				},
				{
					Name: "SelectVoice",
					Args: []introspect.Arg{
						{Name: "voice", Type: "s", Direction: "in"},
					},
				},
				{Name: "Voiceover"},
				{Name: "Stop"},
				{
					Name: "GetStatus",
					Args: []introspect.Arg{
						{Name: "state", Type: "s", Direction: "out"},
					},
				},
				{
					Name: "GetStats",
					Args: []introspect.Arg{
						{Name: "stats", Type: "s", Direction: "out"},
					},
				},
				{Name: "ResetStats"},
			},
			Signals: []introspect.Signal{
				{
					Name: "StateChanged",
					Args: []introspect.Arg{
						{Name: "state", Type: "s"},
					},
				},
				{
					Name: "ScriptReady",
					Args: []introspect.Arg{
						{Name: "script", Type: "s"},
					},
				},
				{
					Name: "VoiceoverStarted",
					Args: []introspect.Arg{
						{Name: "voice", Type: "s"},
					},
				},
				{
					Name: "Error",
					Args: []introspect.Arg{
						{Name: "error", Type: "s"},
					},
				},
			},
		}},
	}
}

// Close stops the D-Bus server and cancels in-flight requests
func (s *Server) Close() {
	s.cancel()
	if s.conn != nil {
		s.conn.Close()
	}
	logger.Infof("🔌 D-Bus service stopped")
}

// DraftScript sets topic and tone and drafts in the background (D-Bus method).
// An empty tone keeps the current one.
func (s *Server) DraftScript(topic, tone string) *dbus.Error {
	logger.Debugf("D-Bus: DraftScript called (topic %q, tone %q)", topic, tone)

	if strings.TrimSpace(tone) != "" {
		resolved, ok := persona.ResolveTone(tone)
		if !ok {
			return dbus.MakeFailedError(fmt.Errorf("unknown tone: %q", tone))
		}
		s.studio.SetTone(resolved)
	}
	s.studio.SetTopic(topic)

	go s.studio.RequestScript(s.ctx)
	return nil
}

// SetScript replaces the script text (D-Bus method)
func (s *Server) SetScript(text string) *dbus.Error {
	s.studio.EditScript(text)
	return nil
}

// SelectVoice switches the persona (D-Bus method)
func (s *Server) SelectVoice(id string) *dbus.Error {
	if err := s.studio.SelectVoice(id); err != nil {
		return dbus.MakeFailedError(err)
	}
	return nil
}

// Voiceover synthesizes and plays the current script in the background (D-Bus method)
func (s *Server) Voiceover() *dbus.Error {
	logger.Debugf("D-Bus: Voiceover called")
	go s.studio.RequestVoiceover(s.ctx)
	return nil
}

// StopPlayback halts playback (D-Bus method Stop)
func (s *Server) StopPlayback() *dbus.Error {
	s.studio.StopPlayback()
	return nil
}

// GetStatus returns the current state as JSON (D-Bus method)
func (s *Server) GetStatus() (string, *dbus.Error) {
	data, err := json.Marshal(s.studio.State())
	if err != nil {
		return "", dbus.MakeFailedError(err)
	}
	return string(data), nil
}

// GetStats returns usage statistics as JSON (D-Bus method)
func (s *Server) GetStats() (string, *dbus.Error) {
	if s.stats == nil {
		return "{}", nil
	}
	js, err := s.stats.GetStatsJSON()
	if err != nil {
		return "", dbus.MakeFailedError(err)
	}
	return js, nil
}

// ResetStats clears usage statistics (D-Bus method)
func (s *Server) ResetStats() *dbus.Error {
	if s.stats == nil {
		return nil
	}
	if err := s.stats.Reset(); err != nil {
		return dbus.MakeFailedError(err)
	}
	logger.Infof("📊 Usage statistics reset")
	return nil
}

// observe turns state transitions into signals and desktop notifications.
func (s *Server) observe(next studio.State) {
	s.mu.Lock()
	prev := s.prev
	s.prev = next
	s.mu.Unlock()

	if data, err := json.Marshal(next); err == nil {
		s.emit("StateChanged", string(data))
	}

	if next.Status != studio.StatusIdle || prev.Status == studio.StatusIdle {
		return
	}

	if next.Error != "" {
		s.emit("Error", next.Error)
		s.notifier.NotifyError(next.Error)
		return
	}

	switch prev.Status {
	case studio.StatusDraftingScript:
		s.emit("ScriptReady", next.Script)
		s.notifier.NotifyScriptReady(next.Topic)
	case studio.StatusSynthesizingVoice:
		s.emit("VoiceoverStarted", next.Voice)
		s.notifier.NotifyVoiceoverStarted(s.studio.Persona().Name)
	}
}

// emitSignal emits a D-Bus signal
func (s *Server) emitSignal(name string, args ...interface{}) {
	if s.conn == nil {
		logger.Warnf("D-Bus: Cannot emit signal %s - no connection", name)
		return
	}

	signalPath := dbus.ObjectPath(dbusObjectPath)
	signalName := dbusInterface + "." + name

	err := s.conn.Emit(signalPath, signalName, args...)
	if err != nil {
		logger.Error("D-Bus: Failed to emit signal "+name, err)
	} else {
		logger.Debugf("D-Bus: Emitted signal: %s", name)
	}
}
