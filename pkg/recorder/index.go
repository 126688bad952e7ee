package recorder

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

// SessionInfo describes one recording session.
type SessionInfo struct {
	SessionID string    `yaml:"session_id"`
	Started   time.Time `yaml:"started"`
	Ended     time.Time `yaml:"ended"`
	File      string    `yaml:"file"`
	KeyCount  int       `yaml:"key_count"`
}

// SessionIndex represents the <dir>/index.yaml file.
type SessionIndex struct {
	Sessions []SessionInfo `yaml:"sessions"`
}

// GenerateSessionID creates a timestamp session ID, second precision.
// Format: YYYY-MM-DDTHH-MM-SS
func GenerateSessionID(t time.Time) string {
	return t.Format("2006-01-02T15-04-05")
}

// GetSessionLogPath returns the log file for a session.
func GetSessionLogPath(baseDir, sessionID string) string {
	return filepath.Join(baseDir, sessionID+".log")
}

// GetSessionsIndexPath returns the path to the sessions index file.
func GetSessionsIndexPath(baseDir string) string {
	return filepath.Join(baseDir, "index.yaml")
}

// LoadSessionIndex reads the index; a missing file is an empty index.
func LoadSessionIndex(baseDir string) (SessionIndex, error) {
	var index SessionIndex
	data, err := os.ReadFile(GetSessionsIndexPath(baseDir))
	if os.IsNotExist(err) {
		return index, nil
	}
	if err != nil {
		return index, fmt.Errorf("failed to read session index: %w", err)
	}
	if err := yaml.Unmarshal(data, &index); err != nil {
		return index, fmt.Errorf("failed to parse session index: %w", err)
	}
	return index, nil
}

// UpdateSessionIndex adds or updates a session entry in index.yaml.
func UpdateSessionIndex(baseDir string, info SessionInfo) error {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return fmt.Errorf("failed to create recordings directory: %w", err)
	}

	index, err := LoadSessionIndex(baseDir)
	if err != nil {
		return err
	}

	found := false
	for i, s := range index.Sessions {
		if s.SessionID == info.SessionID {
			index.Sessions[i] = info
			found = true
			break
		}
	}
	if !found {
		index.Sessions = append(index.Sessions, info)
	}

	// Timestamp IDs sort chronologically; newest first.
	sort.Slice(index.Sessions, func(i, j int) bool {
		return index.Sessions[i].SessionID > index.Sessions[j].SessionID
	})

	output, err := yaml.Marshal(&index)
	if err != nil {
		return fmt.Errorf("failed to marshal session index: %w", err)
	}
	if err := os.WriteFile(GetSessionsIndexPath(baseDir), output, 0644); err != nil {
		return fmt.Errorf("failed to write session index: %w", err)
	}
	return nil
}
