package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// AudioTheme is the default theme with a green accent and slightly tighter spacing
type AudioTheme struct{}

// NewAudioTheme creates the application theme
func NewAudioTheme() fyne.Theme {
	return &AudioTheme{}
}

// Color returns theme colors
func (t *AudioTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary, theme.ColorNameFocus:
		return color.RGBA{R: 29, G: 185, B: 84, A: 255}
	case theme.ColorNameSuccess:
		return color.RGBA{R: 30, G: 140, B: 70, A: 255}
	case theme.ColorNameWarning:
		return color.RGBA{R: 240, G: 160, B: 20, A: 255}
	case theme.ColorNameError:
		return color.RGBA{R: 200, G: 40, B: 40, A: 255}
	case theme.ColorNameBackground:
		if variant == theme.VariantDark {
			return color.RGBA{R: 24, G: 24, B: 24, A: 255}
		}
		return color.RGBA{R: 246, G: 246, B: 246, A: 255}
	}
	return theme.DefaultTheme().Color(name, variant)
}

// Font returns the default theme fonts
func (t *AudioTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns the default theme icons
func (t *AudioTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes
func (t *AudioTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 5
	case theme.SizeNameInnerPadding:
		return 7
	case theme.SizeNameInputRadius, theme.SizeNameSelectionRadius:
		return 4
	}
	return theme.DefaultTheme().Size(name)
}
