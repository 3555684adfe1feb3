package download

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lrstanley/go-ytdlp"
	"go.uber.org/zap"

	"github.com/ytget/yt-audio/internal/logging"
	"github.com/ytget/yt-audio/internal/platform"
)

// Engine defaults
const (
	YTDLPCommand             = "yt-dlp"
	DefaultProgressFrequency = 250 * time.Millisecond
)

// YTDLPEngine runs the yt-dlp executable through go-ytdlp
type YTDLPEngine struct {
	executable  string // empty: resolve on PATH
	autoInstall bool
	frequency   time.Duration
	logger      *zap.Logger

	resolveOnce sync.Once
	resolveErr  error
}

// NewYTDLPEngine creates an engine. When autoInstall is set and yt-dlp cannot be
// found, go-ytdlp downloads a copy on first use.
func NewYTDLPEngine(executable string, autoInstall bool, logger *zap.Logger) *YTDLPEngine {
	return &YTDLPEngine{
		executable:  executable,
		autoInstall: autoInstall,
		frequency:   DefaultProgressFrequency,
		logger:      logging.OrNop(logger),
	}
}

// Fetch downloads req.URL and extracts its audio track
func (e *YTDLPEngine) Fetch(ctx context.Context, req Request, onProgress ProgressFunc) (*EngineResult, error) {
	if err := e.resolve(ctx); err != nil {
		return nil, err
	}

	dl := ytdlp.New().
		NoPlaylist().
		Format(req.Format).
		ExtractAudio().
		AudioFormat(req.AudioFormat).
		AudioQuality(req.AudioQuality).
		Output(req.OutputTemplate).
		PrintJSON()

	if e.executable != "" {
		dl.SetExecutable(e.executable)
	}

	dl.ProgressFunc(e.frequency, func(update ytdlp.ProgressUpdate) {
		if onProgress == nil || update.Status != ytdlp.ProgressStatusDownloading {
			return
		}
		onProgress(int64(update.DownloadedBytes), int64(update.TotalBytes))
	})

	result, err := dl.Run(ctx, req.URL)
	if err != nil {
		return nil, fmt.Errorf("yt-dlp: %w", err)
	}

	info, err := result.GetExtractedInfo()
	if err != nil {
		return nil, fmt.Errorf("failed to read yt-dlp output: %w", err)
	}
	if len(info) == 0 {
		return nil, fmt.Errorf("yt-dlp reported no downloaded item for %s", req.URL)
	}

	first := info[0]
	return &EngineResult{
		Title:        deref(first.Title),
		Filename:     deref(first.Filename),
		ThumbnailURL: deref(first.Thumbnail),
	}, nil
}

// resolve locates yt-dlp once, installing it when allowed
func (e *YTDLPEngine) resolve(ctx context.Context) error {
	e.resolveOnce.Do(func() {
		name := e.executable
		if name == "" {
			name = YTDLPCommand
		}
		path, err := platform.LookupTool(name)
		if err == nil {
			e.executable = path
			return
		}
		if !e.autoInstall {
			e.resolveErr = fmt.Errorf("yt-dlp is not available: %w", err)
			return
		}

		e.logger.Info("installing yt-dlp")
		resolved, installErr := ytdlp.Install(ctx, nil)
		if installErr != nil {
			e.resolveErr = fmt.Errorf("failed to install yt-dlp: %w", installErr)
			return
		}
		e.executable = resolved.Executable
		e.logger.Info("yt-dlp installed", zap.String("path", resolved.Executable))
	})
	return e.resolveErr
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
