package notification

import (
	"runtime"

	"github.com/dooshek/celebcast/internal/logger"
)

const appTitle = "Celebcast"

// Notifier defines the interface for system notifications
type Notifier interface {
	NotifyScriptReady(headline string) error
	NotifyVoiceoverStarted(voice string) error
	NotifyError(message string) error
	Notify(title, message string) error
}

// SilentNotifier is a no-op implementation for interactive mode
type SilentNotifier struct{}

func NewSilent() Notifier {
	return &SilentNotifier{}
}

func (s *SilentNotifier) NotifyScriptReady(headline string) error   { return nil }
func (s *SilentNotifier) NotifyVoiceoverStarted(voice string) error { return nil }
func (s *SilentNotifier) NotifyError(message string) error          { return nil }
func (s *SilentNotifier) Notify(title, message string) error        { return nil }

type baseNotifier struct {
	platform platformNotifier
}

type platformNotifier interface {
	send(title, message string) error
}

// New creates a new platform-specific notification service
func New() Notifier {
	logger.Debug("Initializing notification system")
	var platform platformNotifier
	switch runtime.GOOS {
	case "darwin":
		logger.Debug("Using Darwin (macOS) notifier")
		platform = newDarwinNotifier()
	default:
		logger.Debug("Using Linux notifier")
		platform = newLinuxNotifier()
	}
	return &baseNotifier{platform: platform}
}

func (n *baseNotifier) NotifyScriptReady(headline string) error {
	logger.Debug("Sending script ready notification")
	if headline == "" {
		return n.Notify(appTitle, "Script ready")
	}
	return n.Notify(appTitle, "Script ready: "+headline)
}

func (n *baseNotifier) NotifyVoiceoverStarted(voice string) error {
	return n.Notify(appTitle, "On air with "+voice)
}

func (n *baseNotifier) NotifyError(message string) error {
	return n.Notify(appTitle+" error", message)
}

func (n *baseNotifier) Notify(title, message string) error {
	return n.platform.send(title, message)
}
