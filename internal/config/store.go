package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ytget/yt-audio/internal/model"
)

// Preferences file location
const (
	AppDirName          = "yt-audio"
	PreferencesFileName = "config.json"
	DefaultDirPerm      = 0755
	DefaultFilePerm     = 0644
)

// storedPreferences mirrors the file layout; pointer fields tell missing keys apart
type storedPreferences struct {
	LastPlatform *string `json:"last_platform"`
	InputFolder  *string `json:"input_folder"`
	OutputFolder *string `json:"output_folder"`
}

// Store reads and writes the preferences file
type Store struct {
	path string
}

// NewStore creates a store for the file at path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPreferencesPath returns <user config dir>/yt-audio/config.json
func DefaultPreferencesPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, AppDirName, PreferencesFileName)
}

// Path returns the preferences file path
func (s *Store) Path() string {
	return s.path
}

// Load returns the saved preferences. A missing, unreadable or malformed file yields
// the defaults; missing keys keep their default values.
func (s *Store) Load() model.Preferences {
	prefs := model.DefaultPreferences()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return prefs
	}

	var stored storedPreferences
	if err := json.Unmarshal(data, &stored); err != nil {
		return prefs
	}

	if stored.LastPlatform != nil {
		prefs.LastPlatform = model.ParsePlatform(*stored.LastPlatform)
	}
	if stored.InputFolder != nil {
		prefs.InputDirectory = *stored.InputFolder
	}
	if stored.OutputFolder != nil {
		prefs.OutputDirectory = *stored.OutputFolder
	}
	return prefs
}

// Save writes all fields of prefs. The file is replaced through a rename so readers
// never observe a partial record.
func (s *Store) Save(prefs model.Preferences) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, DefaultDirPerm); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	platform := prefs.LastPlatform.String()
	data, err := json.MarshalIndent(storedPreferences{
		LastPlatform: &platform,
		InputFolder:  &prefs.InputDirectory,
		OutputFolder: &prefs.OutputDirectory,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+PreferencesFileName+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp preferences file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	if err := os.Chmod(tmpName, DefaultFilePerm); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set preferences permissions: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace preferences file: %w", err)
	}
	return nil
}
