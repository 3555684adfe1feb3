package download

import (
	"context"

	"github.com/ytget/yt-audio/internal/model"
)

// Request is what the extraction engine is asked to produce
type Request struct {
	URL            string
	OutputTemplate string // <dir>/%(title)s.%(ext)s
	Format         string // stream selector
	AudioFormat    string // target codec after extraction
	AudioQuality   string
}

// EngineResult is the metadata reported by the engine for a finished download
type EngineResult struct {
	Title        string
	Filename     string // file written by the engine, possibly before post-processing
	ThumbnailURL string
}

// ProgressFunc receives raw byte counts; total is 0 when unknown
type ProgressFunc func(downloaded, total int64)

// Engine resolves a URL into a local audio file
type Engine interface {
	Fetch(ctx context.Context, req Request, onProgress ProgressFunc) (*EngineResult, error)
}

// PlaylistLister expands a playlist URL into its entries
type PlaylistLister interface {
	ListPlaylist(ctx context.Context, url string) ([]model.PlaylistEntry, error)
}

// Downloader is the fetcher API used by the controller
type Downloader interface {
	SetProgressCallback(func(percent float64))
	Download(ctx context.Context, url string, platform model.Platform, destDir string) (*model.DownloadResult, error)
	DownloadAll(ctx context.Context, url string, platform model.Platform, destDir string) ([]*model.DownloadResult, error)
}
