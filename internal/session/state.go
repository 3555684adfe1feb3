// Package session holds the values the window shows between actions.
package session

import (
	"image"
	"sync"

	"github.com/ytget/yt-audio/internal/model"
)

// State is the in-memory view of the current session. It is safe for
// concurrent use.
type State struct {
	mu           sync.RWMutex
	platform     model.Platform
	inputDir     string
	outputDir    string
	progress     float64
	thumbnail    image.Image
	lastDownload string
}

// FromPreferences creates a state seeded with saved preferences
func FromPreferences(prefs model.Preferences) *State {
	platform := prefs.LastPlatform
	if platform == "" {
		platform = model.PlatformUnselected
	}
	return &State{
		platform:  platform,
		inputDir:  prefs.InputDirectory,
		outputDir: prefs.OutputDirectory,
	}
}

// Preferences returns a snapshot of the persisted fields
func (s *State) Preferences() model.Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return model.Preferences{
		LastPlatform:    s.platform,
		InputDirectory:  s.inputDir,
		OutputDirectory: s.outputDir,
	}
}

// Platform returns the selected platform
func (s *State) Platform() model.Platform {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.platform
}

// SetPlatform stores the selected platform
func (s *State) SetPlatform(p model.Platform) {
	s.mu.Lock()
	s.platform = p
	s.mu.Unlock()
}

// InputDirectory returns the MP3 folder, or ""
func (s *State) InputDirectory() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inputDir
}

// SetInputDirectory stores the MP3 folder
func (s *State) SetInputDirectory(dir string) {
	s.mu.Lock()
	s.inputDir = dir
	s.mu.Unlock()
}

// OutputDirectory returns the WAV folder, or ""
func (s *State) OutputDirectory() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.outputDir
}

// SetOutputDirectory stores the WAV folder
func (s *State) SetOutputDirectory(dir string) {
	s.mu.Lock()
	s.outputDir = dir
	s.mu.Unlock()
}

// Progress returns the download progress in [0, 100]
func (s *State) Progress() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.progress
}

// SetProgress stores p clamped to [0, 100]
func (s *State) SetProgress(p float64) {
	switch {
	case p < 0:
		p = 0
	case p > 100:
		p = 100
	}
	s.mu.Lock()
	s.progress = p
	s.mu.Unlock()
}

// Thumbnail returns the image of the last download, or nil
func (s *State) Thumbnail() image.Image {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.thumbnail
}

// SetThumbnail stores the preview image; nil clears it
func (s *State) SetThumbnail(img image.Image) {
	s.mu.Lock()
	s.thumbnail = img
	s.mu.Unlock()
}

// LastDownload returns the path of the last downloaded file, or ""
func (s *State) LastDownload() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastDownload
}

// SetLastDownload stores the path of the newest download
func (s *State) SetLastDownload(path string) {
	s.mu.Lock()
	s.lastDownload = path
	s.mu.Unlock()
}

// DirectoriesSet reports whether both folders were chosen
func (s *State) DirectoriesSet() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inputDir != "" && s.outputDir != ""
}
