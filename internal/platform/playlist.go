package platform

import (
	"context"
	"fmt"
	"time"

	"github.com/ytget/ytdlp/v2"

	"github.com/ytget/yt-audio/internal/model"
)

// Timeout constants
const (
	DefaultListTimeout = 60 * time.Second
)

// PlaylistLister lists the items of a YouTube playlist
type PlaylistLister struct {
	timeout time.Duration
}

// NewPlaylistLister creates a new lister
func NewPlaylistLister() *PlaylistLister {
	return &PlaylistLister{
		timeout: DefaultListTimeout,
	}
}

// SetTimeout sets the timeout for listing operations; zero or less restores the default
func (p *PlaylistLister) SetTimeout(timeout time.Duration) {
	if timeout <= 0 {
		timeout = DefaultListTimeout
	}
	p.timeout = timeout
}

// ListPlaylist returns the entries of the playlist referenced by rawURL
func (p *PlaylistLister) ListPlaylist(ctx context.Context, rawURL string) ([]model.PlaylistEntry, error) {
	playlistID := ExtractPlaylistID(rawURL)
	if playlistID == "" {
		return nil, fmt.Errorf("could not extract playlist ID from URL: %s", rawURL)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	d := ytdlp.New()
	items, err := d.GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist items: %w", err)
	}

	entries := make([]model.PlaylistEntry, 0, len(items))
	for _, it := range items {
		if it.VideoID == "" {
			continue
		}
		entries = append(entries, model.PlaylistEntry{
			VideoID: it.VideoID,
			Title:   it.Title,
			URL:     fmt.Sprintf(YouTubeVideoURLTemplate, it.VideoID),
		})
	}
	return entries, nil
}
