package download

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/ytget/yt-audio/internal/logging"
	"github.com/ytget/yt-audio/internal/model"
	"github.com/ytget/yt-audio/internal/platform"
)

// Extraction settings
const (
	BestAudioFormat    = "bestaudio/best"
	AudioFormatMP3     = "mp3"
	AudioQuality320    = "320K"
	OutputTemplateName = "%(title)s.%(ext)s"
	MP3Extension       = ".mp3"
)

// Validation errors, returned before any filesystem or network activity
var (
	ErrMissingURL          = errors.New("URL is empty")
	ErrPlatformNotSelected = errors.New("platform is not selected")
	ErrEmptyPlaylist       = errors.New("playlist has no entries")
)

// Fetcher downloads remote audio into a directory as MP3
type Fetcher struct {
	engine     Engine
	lister     PlaylistLister
	logger     *zap.Logger
	onProgress func(percent float64)
	onItem     func(index, total int, name string)
}

// NewFetcher creates a fetcher backed by engine
func NewFetcher(engine Engine, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		engine: engine,
		logger: logging.OrNop(logger),
	}
}

// SetPlaylistLister enables playlist expansion in DownloadAll
func (f *Fetcher) SetPlaylistLister(lister PlaylistLister) {
	f.lister = lister
}

// SetItemCallback registers an observer called by DownloadAll before each item
// starts; index is 1-based
func (f *Fetcher) SetItemCallback(callback func(index, total int, name string)) {
	f.onItem = callback
}

// SetProgressCallback registers the observer receiving 0-100 progress values
func (f *Fetcher) SetProgressCallback(callback func(percent float64)) {
	f.onProgress = callback
}

// Download fetches url into destDir and returns the produced MP3 path and the
// remote thumbnail URL. Errors are returned as is; partial files are left in place.
func (f *Fetcher) Download(ctx context.Context, url string, p model.Platform, destDir string) (*model.DownloadResult, error) {
	url = strings.TrimSpace(url)
	if err := validate(url, p); err != nil {
		return nil, err
	}

	if err := platform.CreateDirectoryIfNotExists(destDir); err != nil {
		return nil, fmt.Errorf("failed to create destination directory: %w", err)
	}

	req := Request{
		URL:            url,
		OutputTemplate: filepath.Join(destDir, OutputTemplateName),
		Format:         BestAudioFormat,
		AudioFormat:    AudioFormatMP3,
		AudioQuality:   AudioQuality320,
	}

	f.logger.Info("download started",
		zap.String("url", url),
		zap.String("platform", p.String()),
		zap.String("dir", destDir))

	res, err := f.engine.Fetch(ctx, req, func(downloaded, total int64) {
		f.notifyProgress(Percent(downloaded, total))
	})
	if err != nil {
		f.logger.Error("download failed", zap.String("url", url), zap.Error(err))
		return nil, fmt.Errorf("download failed: %w", err)
	}

	result := &model.DownloadResult{
		FilePath:     f.resolveOutputPath(destDir, res),
		ThumbnailURL: res.ThumbnailURL,
		Title:        res.Title,
	}
	f.notifyProgress(100)

	f.logger.Info("download completed",
		zap.String("file", result.FilePath),
		zap.Bool("thumbnail", result.HasThumbnail()))
	return result, nil
}

// DownloadAll downloads every entry of a YouTube playlist URL one after another.
// Failed entries are logged and skipped; their errors are joined into the returned
// error next to the successful results. Other URLs are downloaded as a single item.
func (f *Fetcher) DownloadAll(ctx context.Context, url string, p model.Platform, destDir string) ([]*model.DownloadResult, error) {
	url = strings.TrimSpace(url)
	if err := validate(url, p); err != nil {
		return nil, err
	}

	if f.lister == nil || p != model.PlatformYouTube || !platform.IsPlaylistURL(url) {
		f.notifyItem(1, 1, url)
		res, err := f.Download(ctx, url, p, destDir)
		if err != nil {
			return nil, err
		}
		return []*model.DownloadResult{res}, nil
	}

	entries, err := f.lister.ListPlaylist(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to list playlist: %w", err)
	}
	if len(entries) == 0 {
		return nil, ErrEmptyPlaylist
	}

	f.logger.Info("playlist listed", zap.String("url", url), zap.Int("entries", len(entries)))

	var (
		results []*model.DownloadResult
		errs    []error
	)
	for i, entry := range entries {
		f.notifyItem(i+1, len(entries), entryName(entry))
		res, err := f.Download(ctx, entry.URL, p, destDir)
		if err != nil {
			f.logger.Warn("playlist entry failed",
				zap.Int("index", i+1),
				zap.String("title", entry.Title),
				zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", entryName(entry), err))
			continue
		}
		results = append(results, res)
	}

	return results, errors.Join(errs...)
}

// resolveOutputPath maps the engine file name onto the extracted MP3
func (f *Fetcher) resolveOutputPath(destDir string, res *EngineResult) string {
	var path string
	switch {
	case res.Filename != "":
		path = platform.ReplaceExt(res.Filename, MP3Extension)
		if !filepath.IsAbs(path) && filepath.Dir(path) == "." {
			path = filepath.Join(destDir, path)
		}
	case res.Title != "":
		path = filepath.Join(destDir, res.Title+MP3Extension)
	default:
		return destDir
	}

	found, err := platform.FindFileWithFallback(path)
	if err != nil {
		f.logger.Debug("output file not located", zap.String("path", path), zap.Error(err))
		return path
	}
	return found
}

// notifyItem calls the item callback if set
func (f *Fetcher) notifyItem(index, total int, name string) {
	if f.onItem != nil {
		f.onItem(index, total, name)
	}
}

// notifyProgress calls the progress callback if set
func (f *Fetcher) notifyProgress(percent float64) {
	if f.onProgress != nil {
		f.onProgress(percent)
	}
}

func validate(url string, p model.Platform) error {
	if url == "" {
		return ErrMissingURL
	}
	if !p.IsSelected() {
		return ErrPlatformNotSelected
	}
	return nil
}

func entryName(entry model.PlaylistEntry) string {
	if entry.Title != "" {
		return entry.Title
	}
	return entry.VideoID
}
