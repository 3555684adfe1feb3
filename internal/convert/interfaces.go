// Package convert turns a folder of MP3 files into WAV files, one file at a time,
// asking for an optional new name after each conversion.
package convert

import (
	"context"

	"github.com/ytget/yt-audio/internal/model"
)

// Transcoder decodes src and writes dst in the target format.
// onProgress receives values in [0, 1] when the duration is known.
type Transcoder interface {
	Transcode(ctx context.Context, src, dst string, onProgress func(float64)) error
}

// Prompter asks for a replacement base name for a freshly written file.
// An empty answer keeps the current name.
type Prompter interface {
	PromptRename(ctx context.Context, outputPath string) (string, error)
}

// Notifier reports the outcome of each file to the user
type Notifier interface {
	Notify(title, message string)
}

// FolderConverter is the batch API used by the controller
type FolderConverter interface {
	ConvertFolder(ctx context.Context, inputDir, outputDir string) (*model.BatchReport, error)
}
