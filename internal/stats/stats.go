package stats

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/dooshek/celebcast/internal/logger"
)

// VoiceStats holds statistics for a specific voice persona
type VoiceStats struct {
	TotalSeconds   float64 `json:"total_seconds"`
	VoiceoverCount int     `json:"voiceover_count"`
}

// Stats holds all voiceover statistics
type Stats struct {
	Voices map[string]*VoiceStats `json:"voices"`
}

// StatsManager manages voiceover statistics persistence
type StatsManager struct {
	stats    Stats
	filePath string
	mu       sync.Mutex
}

// NewStatsManager creates a new stats manager and loads existing data
func NewStatsManager(configDir string) *StatsManager {
	sm := &StatsManager{
		filePath: filepath.Join(configDir, "stats.json"),
		stats: Stats{
			Voices: make(map[string]*VoiceStats),
		},
	}

	if err := sm.load(); err != nil {
		logger.Debugf("Could not load stats (will start fresh): %v", err)
	}

	return sm
}

// AddVoiceover adds a played voiceover to statistics and persists immediately
func (sm *StatsManager) AddVoiceover(voice string, durationSeconds float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.stats.Voices == nil {
		sm.stats.Voices = make(map[string]*VoiceStats)
	}

	if _, exists := sm.stats.Voices[voice]; !exists {
		sm.stats.Voices[voice] = &VoiceStats{}
	}

	sm.stats.Voices[voice].TotalSeconds += durationSeconds
	sm.stats.Voices[voice].VoiceoverCount++

	if err := sm.save(); err != nil {
		logger.Error("Failed to save stats after adding voiceover", err)
	}
}

// GetStats returns a deep copy of current statistics
func (sm *StatsManager) GetStats() Stats {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	statsCopy := Stats{
		Voices: make(map[string]*VoiceStats),
	}

	for voice, voiceStats := range sm.stats.Voices {
		statsCopy.Voices[voice] = &VoiceStats{
			TotalSeconds:   voiceStats.TotalSeconds,
			VoiceoverCount: voiceStats.VoiceoverCount,
		}
	}

	return statsCopy
}

// GetStatsJSON returns statistics as a JSON string (for D-Bus)
func (sm *StatsManager) GetStatsJSON() (string, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	data, err := json.Marshal(sm.stats)
	if err != nil {
		return "", fmt.Errorf("failed to marshal stats to JSON: %w", err)
	}

	return string(data), nil
}

// Reset clears all statistics and persists empty state
func (sm *StatsManager) Reset() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.stats = Stats{
		Voices: make(map[string]*VoiceStats),
	}

	if err := sm.save(); err != nil {
		return fmt.Errorf("failed to save reset stats: %w", err)
	}

	return nil
}

func (sm *StatsManager) load() error {
	data, err := os.ReadFile(sm.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debugf("Stats file not found, starting fresh: %s", sm.filePath)
			return nil
		}
		return fmt.Errorf("failed to read stats file: %w", err)
	}

	if err := json.Unmarshal(data, &sm.stats); err != nil {
		return fmt.Errorf("failed to unmarshal stats: %w", err)
	}

	if sm.stats.Voices == nil {
		sm.stats.Voices = make(map[string]*VoiceStats)
	}

	logger.Debugf("Loaded stats from %s", sm.filePath)
	return nil
}

func (sm *StatsManager) save() error {
	dir := filepath.Dir(sm.filePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create stats directory: %w", err)
	}

	data, err := json.MarshalIndent(sm.stats, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}

	// Write atomically by writing to temp file and renaming
	tempFile := sm.filePath + ".tmp"
	if err := os.WriteFile(tempFile, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temp stats file: %w", err)
	}

	if err := os.Rename(tempFile, sm.filePath); err != nil {
		return fmt.Errorf("failed to rename temp stats file: %w", err)
	}

	return nil
}
