// Package controller implements the window actions on top of the download,
// thumbnail and conversion services. Handlers are synchronous; the caller decides
// which goroutine runs them.
package controller

import (
	"context"
	"errors"
	"fmt"
	"image"

	"go.uber.org/zap"

	"github.com/ytget/yt-audio/internal/convert"
	"github.com/ytget/yt-audio/internal/download"
	"github.com/ytget/yt-audio/internal/logging"
	"github.com/ytget/yt-audio/internal/model"
	"github.com/ytget/yt-audio/internal/platform"
	"github.com/ytget/yt-audio/internal/session"
	"github.com/ytget/yt-audio/internal/thumbnail"
)

// Dialog titles and messages
const (
	TitleSuccess          = "Success"
	TitleInputError       = "Input Error"
	TitleDownloadError    = "Download Error"
	TitleThumbnailError   = "Thumbnail Error"
	TitleDirectoryError   = "Directory Error"
	TitleConversionError  = "Conversion Error"
	TitleRevealError      = "Error"
	MsgMissingURL         = "Please enter a URL"
	MsgPlatformMissing    = "Please select a platform (YouTube or SoundCloud)"
	MsgInvalidURL         = "Please enter a valid http(s) URL"
	MsgDirectoriesMissing = "Please select both input and output directories."
	MsgNoThumbnail        = "No thumbnail URL available."
	MsgConversionDone     = "MP3 to WAV conversion complete"
	MsgNothingDownloaded  = "Nothing has been downloaded yet."

	InputLabelPrefix  = "Input Directory: "
	OutputLabelPrefix = "Output Directory: "
	NotSelected       = "Not Selected"
)

var (
	// ErrDirectoriesNotSet is returned by Convert when a folder is missing
	ErrDirectoriesNotSet = errors.New("input and output directories must be selected")

	// ErrInvalidURL is returned by Download for text that is not an http(s) URL
	ErrInvalidURL = errors.New("invalid URL")
)

// PreferencesStore loads and saves the preferences record
type PreferencesStore interface {
	Load() model.Preferences
	Save(prefs model.Preferences) error
}

// ThumbnailFetcher returns a display-ready image for a thumbnail URL
type ThumbnailFetcher interface {
	Fetch(ctx context.Context, url string) (image.Image, error)
}

// View is the part of the window the controller drives
type View interface {
	ShowInfo(title, message string)
	ShowWarning(title, message string)
	ShowError(title, message string)
	SetProgress(percent float64)
	SetThumbnail(img image.Image)
	SetInputLabel(text string)
	SetOutputLabel(text string)
}

// Controller handles the user actions of the main window
type Controller struct {
	state      *session.State
	store      PreferencesStore
	downloader download.Downloader
	thumbnails ThumbnailFetcher
	converter  convert.FolderConverter
	view       View
	logger     *zap.Logger
	reveal     func(path string) error
}

// New creates a controller seeded with the stored preferences
func New(store PreferencesStore, downloader download.Downloader, thumbnails ThumbnailFetcher, converter convert.FolderConverter, logger *zap.Logger) *Controller {
	c := &Controller{
		state:      session.FromPreferences(store.Load()),
		store:      store,
		downloader: downloader,
		thumbnails: thumbnails,
		converter:  converter,
		view:       nopView{},
		logger:     logging.OrNop(logger),
		reveal:     platform.OpenFileInManager,
	}
	downloader.SetProgressCallback(c.onProgress)
	return c
}

// SetView attaches the window and pushes the current state to it
func (c *Controller) SetView(view View) {
	if view == nil {
		view = nopView{}
	}
	c.view = view
	c.view.SetInputLabel(InputLabel(c.state.InputDirectory()))
	c.view.SetOutputLabel(OutputLabel(c.state.OutputDirectory()))
	c.view.SetProgress(c.state.Progress())
	c.view.SetThumbnail(c.state.Thumbnail())
}

// State returns the session state
func (c *Controller) State() *session.State {
	return c.state
}

// SelectInputDirectory stores the folder downloads go to and conversions read from
func (c *Controller) SelectInputDirectory(path string) {
	c.state.SetInputDirectory(path)
	c.persist()
	c.view.SetInputLabel(InputLabel(path))
}

// SelectOutputDirectory stores the folder WAV files are written to
func (c *Controller) SelectOutputDirectory(path string) {
	c.state.SetOutputDirectory(path)
	c.persist()
	c.view.SetOutputLabel(OutputLabel(path))
}

// ChangePlatform stores the selected platform
func (c *Controller) ChangePlatform(p model.Platform) {
	c.state.SetPlatform(p)
	c.persist()
}

// Download fetches url into the input directory and shows its thumbnail.
// Every outcome is reported through the view; the error is returned for callers
// that need it.
func (c *Controller) Download(ctx context.Context, url string) error {
	p := c.state.Platform()
	if err := validateInput(url, p); err != nil {
		switch {
		case errors.Is(err, download.ErrMissingURL):
			c.view.ShowError(TitleInputError, MsgMissingURL)
		case errors.Is(err, download.ErrPlatformNotSelected):
			c.view.ShowError(TitleInputError, MsgPlatformMissing)
		default:
			c.view.ShowError(TitleInputError, fmt.Sprintf("%s (%v)", MsgInvalidURL, err))
		}
		return err
	}

	c.onProgress(0)
	c.persist()

	destDir := c.downloadDir()
	results, err := c.downloader.DownloadAll(ctx, url, p, destDir)
	if len(results) == 0 {
		if err == nil {
			err = download.ErrEmptyPlaylist
		}
		c.logger.Error("download failed", zap.String("url", url), zap.Error(err))
		c.view.ShowError(TitleDownloadError, fmt.Sprintf("An error occurred: %v", err))
		return err
	}

	last := results[len(results)-1]
	c.state.SetLastDownload(last.FilePath)
	c.view.ShowInfo(TitleSuccess, downloadedMessage(results))
	if err != nil {
		c.view.ShowError(TitleDownloadError, fmt.Sprintf("An error occurred: %v", err))
	}

	c.showThumbnail(ctx, last)
	return err
}

// Convert runs the batch conversion over the selected folders
func (c *Controller) Convert(ctx context.Context) error {
	if !c.state.DirectoriesSet() {
		c.view.ShowError(TitleDirectoryError, MsgDirectoriesMissing)
		return ErrDirectoriesNotSet
	}

	report, err := c.converter.ConvertFolder(ctx, c.state.InputDirectory(), c.state.OutputDirectory())
	if err != nil {
		c.logger.Error("conversion failed", zap.Error(err))
		c.view.ShowError(TitleConversionError, fmt.Sprintf("An error occurred: %v", err))
		return err
	}

	c.view.ShowInfo(TitleSuccess, conversionMessage(report))
	return nil
}

// RevealLastDownload opens the last downloaded file in the file manager
func (c *Controller) RevealLastDownload() error {
	path := c.state.LastDownload()
	if path == "" {
		c.view.ShowInfo(TitleRevealError, MsgNothingDownloaded)
		return nil
	}
	if err := c.reveal(path); err != nil {
		c.logger.Warn("failed to reveal file", zap.String("file", path), zap.Error(err))
		c.view.ShowError(TitleRevealError, err.Error())
		return err
	}
	return nil
}

func (c *Controller) showThumbnail(ctx context.Context, result *model.DownloadResult) {
	if !result.HasThumbnail() {
		c.state.SetThumbnail(nil)
		c.view.SetThumbnail(nil)
		c.view.ShowWarning(TitleThumbnailError, MsgNoThumbnail)
		return
	}

	img, err := c.thumbnails.Fetch(ctx, result.ThumbnailURL)
	if err != nil {
		c.logger.Warn("thumbnail fetch failed", zap.String("url", result.ThumbnailURL), zap.Error(err))
		c.state.SetThumbnail(nil)
		c.view.SetThumbnail(nil)
		if errors.Is(err, thumbnail.ErrNoThumbnail) {
			c.view.ShowWarning(TitleThumbnailError, MsgNoThumbnail)
		} else {
			c.view.ShowWarning(TitleThumbnailError, fmt.Sprintf("An error occurred while fetching the thumbnail: %v", err))
		}
		return
	}

	c.state.SetThumbnail(img)
	c.view.SetThumbnail(img)
}

// downloadDir is the input folder, or the user's music folder when none is set
func (c *Controller) downloadDir() string {
	if dir := c.state.InputDirectory(); dir != "" {
		return dir
	}
	dir, err := platform.GetHomeMusicDir()
	if err != nil {
		c.logger.Warn("music directory unavailable", zap.Error(err))
		return "."
	}
	return dir
}

func (c *Controller) onProgress(percent float64) {
	c.state.SetProgress(percent)
	c.view.SetProgress(c.state.Progress())
}

// persist writes the whole preference record. Failures are logged only.
func (c *Controller) persist() {
	prefs := c.state.Preferences()
	if err := c.store.Save(prefs); err != nil {
		c.logger.Warn("failed to save preferences", zap.Error(err))
	}
}
