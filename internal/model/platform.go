package model

import "strings"

// Platform identifies the remote service a URL is downloaded from.
// Values are the strings stored in the preferences file.
type Platform string

const (
	PlatformUnselected Platform = "Select Platform"
	PlatformYouTube    Platform = "Youtube"
	PlatformSoundCloud Platform = "SoundCloud"
)

// Platforms returns the selectable platforms in display order.
func Platforms() []Platform {
	return []Platform{PlatformYouTube, PlatformSoundCloud}
}

// ParsePlatform maps a stored or typed value to a Platform.
// Unknown values map to PlatformUnselected.
func ParsePlatform(value string) Platform {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "youtube", "yt":
		return PlatformYouTube
	case "soundcloud", "sc":
		return PlatformSoundCloud
	default:
		return PlatformUnselected
	}
}

// IsSelected reports whether p names an actual platform.
func (p Platform) IsSelected() bool {
	return p == PlatformYouTube || p == PlatformSoundCloud
}

// String returns the stored representation of the platform.
func (p Platform) String() string {
	if p == "" {
		return string(PlatformUnselected)
	}
	return string(p)
}
