package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// LoadIcon loads the window icon from path. An empty path or a read error falls
// back to the theme's music icon; the error is returned so the caller can log it.
func LoadIcon(path string) (fyne.Resource, error) {
	if path == "" {
		return theme.MediaMusicIcon(), nil
	}
	res, err := fyne.LoadResourceFromPath(path)
	if err != nil {
		return theme.MediaMusicIcon(), err
	}
	return res, nil
}
