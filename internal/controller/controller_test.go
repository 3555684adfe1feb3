package controller

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/yt-audio/internal/download"
	"github.com/ytget/yt-audio/internal/model"
	"github.com/ytget/yt-audio/internal/thumbnail"
)

type fakeStore struct {
	prefs   model.Preferences
	saved   []model.Preferences
	saveErr error
}

func (s *fakeStore) Load() model.Preferences { return s.prefs }

func (s *fakeStore) Save(prefs model.Preferences) error {
	s.saved = append(s.saved, prefs)
	return s.saveErr
}

type fakeDownloader struct {
	calls    int
	destDir  string
	platform model.Platform
	results  []*model.DownloadResult
	err      error
	progress []float64
	onPct    func(float64)
}

func (d *fakeDownloader) SetProgressCallback(cb func(float64)) { d.onPct = cb }

func (d *fakeDownloader) Download(ctx context.Context, url string, p model.Platform, destDir string) (*model.DownloadResult, error) {
	results, err := d.DownloadAll(ctx, url, p, destDir)
	if len(results) == 0 {
		return nil, err
	}
	return results[0], err
}

func (d *fakeDownloader) DownloadAll(ctx context.Context, url string, p model.Platform, destDir string) ([]*model.DownloadResult, error) {
	d.calls++
	d.destDir = destDir
	d.platform = p
	for _, pct := range d.progress {
		d.onPct(pct)
	}
	return d.results, d.err
}

type fakeThumbnails struct {
	calls int
	img   image.Image
	err   error
}

func (f *fakeThumbnails) Fetch(ctx context.Context, url string) (image.Image, error) {
	f.calls++
	if url == "" {
		return nil, thumbnail.ErrNoThumbnail
	}
	return f.img, f.err
}

type fakeConverter struct {
	calls  int
	report *model.BatchReport
	err    error
}

func (f *fakeConverter) ConvertFolder(ctx context.Context, in, out string) (*model.BatchReport, error) {
	f.calls++
	return f.report, f.err
}

type dialog struct{ kind, title, message string }

type fakeView struct {
	dialogs    []dialog
	progress   []float64
	thumbnail  image.Image
	inputText  string
	outputText string
}

func (v *fakeView) ShowInfo(title, message string) {
	v.dialogs = append(v.dialogs, dialog{"info", title, message})
}

func (v *fakeView) ShowWarning(title, message string) {
	v.dialogs = append(v.dialogs, dialog{"warning", title, message})
}

func (v *fakeView) ShowError(title, message string) {
	v.dialogs = append(v.dialogs, dialog{"error", title, message})
}

func (v *fakeView) SetProgress(p float64)      { v.progress = append(v.progress, p) }
func (v *fakeView) SetThumbnail(i image.Image) { v.thumbnail = i }
func (v *fakeView) SetInputLabel(t string)     { v.inputText = t }
func (v *fakeView) SetOutputLabel(t string)    { v.outputText = t }

type fixture struct {
	store      *fakeStore
	downloader *fakeDownloader
	thumbs     *fakeThumbnails
	converter  *fakeConverter
	view       *fakeView
	ctrl       *Controller
}

func newFixture(prefs model.Preferences) *fixture {
	f := &fixture{
		store:      &fakeStore{prefs: prefs},
		downloader: &fakeDownloader{},
		thumbs:     &fakeThumbnails{img: image.NewRGBA(image.Rect(0, 0, 200, 112))},
		converter:  &fakeConverter{report: &model.BatchReport{}},
		view:       &fakeView{},
	}
	f.ctrl = New(f.store, f.downloader, f.thumbs, f.converter, nil)
	f.ctrl.SetView(f.view)
	f.view.progress = nil
	return f
}

func youtubePrefs() model.Preferences {
	return model.Preferences{LastPlatform: model.PlatformYouTube, InputDirectory: "/music/mp3", OutputDirectory: "/music/wav"}
}

func TestSetView_ShowsSavedDirectories(t *testing.T) {
	f := newFixture(model.Preferences{InputDirectory: "/music/mp3"})
	assert.Equal(t, "Input Directory: /music/mp3", f.view.inputText)
	assert.Equal(t, "Output Directory: Not Selected", f.view.outputText)
}

func TestSelectDirectories_PersistFullRecord(t *testing.T) {
	f := newFixture(model.Preferences{LastPlatform: model.PlatformSoundCloud})

	f.ctrl.SelectInputDirectory("/in")
	f.ctrl.SelectOutputDirectory("/out")

	require.Len(t, f.store.saved, 2)
	assert.Equal(t, model.Preferences{LastPlatform: model.PlatformSoundCloud, InputDirectory: "/in"}, f.store.saved[0])
	assert.Equal(t, model.Preferences{LastPlatform: model.PlatformSoundCloud, InputDirectory: "/in", OutputDirectory: "/out"}, f.store.saved[1])
	assert.Equal(t, "Input Directory: /in", f.view.inputText)
	assert.Equal(t, "Output Directory: /out", f.view.outputText)
}

func TestChangePlatform_Persists(t *testing.T) {
	f := newFixture(youtubePrefs())
	f.ctrl.ChangePlatform(model.PlatformSoundCloud)

	require.Len(t, f.store.saved, 1)
	assert.Equal(t, model.PlatformSoundCloud, f.store.saved[0].LastPlatform)
	assert.Equal(t, "/music/mp3", f.store.saved[0].InputDirectory)
}

func TestSaveFailureIsNotSurfaced(t *testing.T) {
	f := newFixture(youtubePrefs())
	f.store.saveErr = errors.New("read-only file system")

	f.ctrl.SelectInputDirectory("/in")
	assert.Empty(t, f.view.dialogs)
	assert.Equal(t, "/in", f.ctrl.State().InputDirectory())
}

func TestDownload_EmptyURL(t *testing.T) {
	f := newFixture(youtubePrefs())

	err := f.ctrl.Download(context.Background(), "   ")
	assert.ErrorIs(t, err, download.ErrMissingURL)
	assert.Equal(t, []dialog{{"error", "Input Error", "Please enter a URL"}}, f.view.dialogs)
	assert.Zero(t, f.downloader.calls)
	assert.Empty(t, f.store.saved)
}

func TestDownload_PlatformUnselected(t *testing.T) {
	f := newFixture(model.Preferences{InputDirectory: "/music/mp3"})

	err := f.ctrl.Download(context.Background(), "https://youtu.be/abc")
	assert.ErrorIs(t, err, download.ErrPlatformNotSelected)
	assert.Equal(t, []dialog{{"error", "Input Error", "Please select a platform (YouTube or SoundCloud)"}}, f.view.dialogs)
	assert.Zero(t, f.downloader.calls)
	assert.Empty(t, f.store.saved)
}

func TestDownload_InvalidURL(t *testing.T) {
	f := newFixture(youtubePrefs())

	for _, url := range []string{"youtube.com/watch?v=abc", "ftp://youtube.com/x", "https://"} {
		err := f.ctrl.Download(context.Background(), url)
		assert.ErrorIs(t, err, ErrInvalidURL, url)
	}

	require.Len(t, f.view.dialogs, 3)
	assert.Equal(t, "error", f.view.dialogs[0].kind)
	assert.Equal(t, "Input Error", f.view.dialogs[0].title)
	assert.Contains(t, f.view.dialogs[0].message, MsgInvalidURL)
	assert.Zero(t, f.downloader.calls)
	assert.Empty(t, f.store.saved)
}

func TestDownload_Success(t *testing.T) {
	f := newFixture(youtubePrefs())
	f.ctrl.State().SetProgress(80)
	f.downloader.progress = []float64{30, 100}
	f.downloader.results = []*model.DownloadResult{{FilePath: "/music/mp3/Song.mp3", ThumbnailURL: "https://i.ytimg.com/vi/abc/hq.jpg"}}

	require.NoError(t, f.ctrl.Download(context.Background(), "https://youtu.be/abc"))

	assert.Equal(t, []float64{0, 30, 100}, f.view.progress)
	assert.Equal(t, "/music/mp3", f.downloader.destDir)
	assert.Equal(t, model.PlatformYouTube, f.downloader.platform)
	require.Len(t, f.store.saved, 1)
	assert.Equal(t, youtubePrefs(), f.store.saved[0])
	assert.Equal(t, []dialog{{"info", "Success", "Downloaded: /music/mp3/Song.mp3"}}, f.view.dialogs)
	assert.Equal(t, 1, f.thumbs.calls)
	assert.Same(t, f.thumbs.img, f.view.thumbnail)
	assert.Equal(t, "/music/mp3/Song.mp3", f.ctrl.State().LastDownload())
}

func TestDownload_NoThumbnailWarns(t *testing.T) {
	f := newFixture(youtubePrefs())
	f.downloader.results = []*model.DownloadResult{{FilePath: "/music/mp3/Song.mp3"}}

	require.NoError(t, f.ctrl.Download(context.Background(), "https://soundcloud.com/a/b"))

	assert.Zero(t, f.thumbs.calls)
	require.Len(t, f.view.dialogs, 2)
	assert.Equal(t, dialog{"warning", "Thumbnail Error", "No thumbnail URL available."}, f.view.dialogs[1])
	assert.Nil(t, f.view.thumbnail)
}

func TestDownload_ThumbnailErrorWarns(t *testing.T) {
	f := newFixture(youtubePrefs())
	f.thumbs.err = errors.New("unexpected status 404")
	f.downloader.results = []*model.DownloadResult{{FilePath: "/a.mp3", ThumbnailURL: "https://x/y.jpg"}}

	require.NoError(t, f.ctrl.Download(context.Background(), "https://youtu.be/abc"))

	require.Len(t, f.view.dialogs, 2)
	assert.Equal(t, "warning", f.view.dialogs[1].kind)
	assert.Contains(t, f.view.dialogs[1].message, "unexpected status 404")
	assert.Nil(t, f.ctrl.State().Thumbnail())
}

func TestDownload_EngineError(t *testing.T) {
	f := newFixture(youtubePrefs())
	f.downloader.err = errors.New("yt-dlp: video unavailable")

	err := f.ctrl.Download(context.Background(), "https://youtu.be/abc")
	require.Error(t, err)

	assert.Equal(t, []dialog{{"error", "Download Error", "An error occurred: yt-dlp: video unavailable"}}, f.view.dialogs)
	assert.Len(t, f.store.saved, 1)
	assert.Zero(t, f.thumbs.calls)
	assert.Empty(t, f.ctrl.State().LastDownload())
}

func TestDownload_PartialPlaylist(t *testing.T) {
	f := newFixture(youtubePrefs())
	f.downloader.results = []*model.DownloadResult{
		{FilePath: "/music/mp3/One.mp3"},
		{FilePath: "/music/mp3/Two.mp3", ThumbnailURL: "https://x/2.jpg"},
	}
	f.downloader.err = errors.New("Three: private video")

	err := f.ctrl.Download(context.Background(), "https://www.youtube.com/playlist?list=PL1")
	require.Error(t, err)

	require.Len(t, f.view.dialogs, 2)
	assert.Equal(t, "info", f.view.dialogs[0].kind)
	assert.Contains(t, f.view.dialogs[0].message, "Downloaded 2 files:")
	assert.Equal(t, "error", f.view.dialogs[1].kind)
	assert.Equal(t, "/music/mp3/Two.mp3", f.ctrl.State().LastDownload())
	assert.Equal(t, 1, f.thumbs.calls)
}

func TestDownload_DefaultsToMusicDir(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	f := newFixture(model.Preferences{LastPlatform: model.PlatformYouTube})
	f.downloader.results = []*model.DownloadResult{{FilePath: "/x.mp3"}}

	require.NoError(t, f.ctrl.Download(context.Background(), "https://youtu.be/abc"))
	assert.NotEmpty(t, f.downloader.destDir)
}

func TestConvert_DirectoriesMissing(t *testing.T) {
	f := newFixture(model.Preferences{InputDirectory: "/in"})

	err := f.ctrl.Convert(context.Background())
	assert.ErrorIs(t, err, ErrDirectoriesNotSet)
	assert.Equal(t, []dialog{{"error", "Directory Error", "Please select both input and output directories."}}, f.view.dialogs)
	assert.Zero(t, f.converter.calls)
}

func TestConvert_Success(t *testing.T) {
	f := newFixture(youtubePrefs())
	f.converter.report = &model.BatchReport{Items: []*model.ConversionItem{
		{SourcePath: "/in/a.mp3", Status: model.ItemStatusCompleted},
		{SourcePath: "/in/b.mp3", Status: model.ItemStatusError, LastError: "transcode: exit status 1"},
	}}

	require.NoError(t, f.ctrl.Convert(context.Background()))

	require.Len(t, f.view.dialogs, 1)
	d := f.view.dialogs[0]
	assert.Equal(t, "info", d.kind)
	assert.Contains(t, d.message, "MP3 to WAV conversion complete")
	assert.Contains(t, d.message, "Processed: 2, converted: 1, failed: 1")
	assert.Contains(t, d.message, "b: transcode: exit status 1")
}

func TestConvert_Error(t *testing.T) {
	f := newFixture(youtubePrefs())
	f.converter.err = errors.New("failed to read input directory")

	require.Error(t, f.ctrl.Convert(context.Background()))
	assert.Equal(t, []dialog{{"error", "Conversion Error", "An error occurred: failed to read input directory"}}, f.view.dialogs)
}

func TestRevealLastDownload(t *testing.T) {
	f := newFixture(youtubePrefs())
	var revealed string
	f.ctrl.reveal = func(path string) error { revealed = path; return nil }

	require.NoError(t, f.ctrl.RevealLastDownload())
	assert.Empty(t, revealed)
	assert.Equal(t, "info", f.view.dialogs[0].kind)

	f.ctrl.State().SetLastDownload("/music/mp3/Song.mp3")
	require.NoError(t, f.ctrl.RevealLastDownload())
	assert.Equal(t, "/music/mp3/Song.mp3", revealed)

	f.ctrl.reveal = func(string) error { return errors.New("no file manager") }
	assert.Error(t, f.ctrl.RevealLastDownload())
	assert.Equal(t, "error", f.view.dialogs[len(f.view.dialogs)-1].kind)
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "Input Directory: Not Selected", InputLabel(""))
	assert.Equal(t, "Output Directory: /out", OutputLabel("/out"))
}
