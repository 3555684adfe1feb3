package model

// DownloadResult describes a finished download. It is not persisted.
type DownloadResult struct {
	FilePath     string // produced MP3 file
	ThumbnailURL string // empty when the remote reported none
	Title        string
}

// HasThumbnail reports whether the remote reported a thumbnail URL.
func (r *DownloadResult) HasThumbnail() bool {
	return r != nil && r.ThumbnailURL != ""
}

// PlaylistEntry is a single item of a listed playlist.
type PlaylistEntry struct {
	VideoID string
	Title   string
	URL     string
}
