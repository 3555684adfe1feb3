package platform

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/ytget/yt-audio/internal/model"
)

// URL parameters and templates
const (
	PlaylistParam           = "list"
	YouTubeVideoURLTemplate = "https://www.youtube.com/watch?v=%s"
)

// Hosts recognized per platform; subdomains match too
var (
	YouTubeHosts    = []string{"youtube.com", "youtu.be", "youtube-nocookie.com"}
	SoundCloudHosts = []string{"soundcloud.com", "snd.sc"}
)

// ValidateURL checks that input is an absolute http(s) URL
func ValidateURL(input string) error {
	parsedURL, err := url.Parse(strings.TrimSpace(input))
	if err != nil {
		return err
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("URL must start with http:// or https://")
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("URL has no host")
	}
	return nil
}

// DetectPlatform guesses the platform from the URL host.
// Unknown hosts return model.PlatformUnselected.
func DetectPlatform(rawURL string) model.Platform {
	parsedURL, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return model.PlatformUnselected
	}
	host := strings.ToLower(parsedURL.Hostname())
	switch {
	case hostMatches(host, YouTubeHosts):
		return model.PlatformYouTube
	case hostMatches(host, SoundCloudHosts):
		return model.PlatformSoundCloud
	default:
		return model.PlatformUnselected
	}
}

func hostMatches(host string, domains []string) bool {
	for _, domain := range domains {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

// ExtractPlaylistID returns the list= query value of a YouTube URL, or ""
func ExtractPlaylistID(rawURL string) string {
	parsedURL, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	return parsedURL.Query().Get(PlaylistParam)
}

// IsPlaylistURL reports whether rawURL is a YouTube URL naming a playlist
func IsPlaylistURL(rawURL string) bool {
	return DetectPlatform(rawURL) == model.PlatformYouTube && ExtractPlaylistID(rawURL) != ""
}
