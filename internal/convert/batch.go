package convert

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ytget/yt-audio/internal/logging"
	"github.com/ytget/yt-audio/internal/model"
	"github.com/ytget/yt-audio/internal/platform"
)

// File extensions and IDs
const (
	SourceExtension = ".mp3"
	TargetExtension = ".wav"
	ItemIDPrefix    = "convert-"
)

// Notification titles
const (
	TitleRenamed  = "File Renamed"
	TitleNoRename = "No Rename"
)

// ItemUpdate describes the progress of one file inside a batch
type ItemUpdate struct {
	Item     *model.ConversionItem
	Index    int // 1-based position among matching files
	Total    int
	Progress float64 // 0-1 transcoding progress
}

// Batch converts every MP3 of a folder to WAV
type Batch struct {
	transcoder Transcoder
	prompter   Prompter
	notifier   Notifier
	logger     *zap.Logger
	onUpdate   func(ItemUpdate)
}

// NewBatch creates a batch converter. prompter and notifier may be nil, which keeps
// every name and skips notifications.
func NewBatch(transcoder Transcoder, prompter Prompter, notifier Notifier, logger *zap.Logger) *Batch {
	return &Batch{
		transcoder: transcoder,
		prompter:   prompter,
		notifier:   notifier,
		logger:     logging.OrNop(logger),
	}
}

// SetUpdateCallback sets the callback function for item updates
func (b *Batch) SetUpdateCallback(callback func(ItemUpdate)) {
	b.onUpdate = callback
}

// ConvertFolder converts each .mp3 file of inputDir (case-insensitive) into
// outputDir. For every file it transcodes, asks for a new name, renames, notifies,
// then deletes the source, in that order. A failing file is recorded and logged and
// the loop moves on; its source is kept. Only an unreadable inputDir fails the call.
func (b *Batch) ConvertFolder(ctx context.Context, inputDir, outputDir string) (*model.BatchReport, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	report := &model.BatchReport{InputDir: inputDir, OutputDir: outputDir}

	var sources []string
	for _, entry := range entries {
		if entry.IsDir() || !IsSourceFile(entry.Name()) {
			report.Skipped++
			continue
		}
		sources = append(sources, entry.Name())
	}

	if len(sources) > 0 {
		if err := platform.CreateDirectoryIfNotExists(outputDir); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	for i, name := range sources {
		item := &model.ConversionItem{
			ID:         generateItemID(),
			SourcePath: filepath.Join(inputDir, name),
			OutputPath: filepath.Join(outputDir, OutputName(name)),
			Status:     model.ItemStatusPending,
			StartedAt:  time.Now(),
		}
		report.Items = append(report.Items, item)

		if err := b.convertOne(ctx, item, i+1, len(sources)); err != nil {
			item.Status = model.ItemStatusError
			item.LastError = err.Error()
			b.logger.Error("conversion failed",
				zap.String("id", item.ID),
				zap.String("file", item.SourcePath),
				zap.Error(err))
		} else {
			item.Status = model.ItemStatusCompleted
		}
		item.FinishedAt = time.Now()
		b.notifyUpdate(ItemUpdate{Item: item, Index: i + 1, Total: len(sources), Progress: 1})
	}

	b.logger.Info("batch finished",
		zap.String("input", inputDir),
		zap.String("output", outputDir),
		zap.Int("converted", report.Converted()),
		zap.Int("failed", report.Failed()),
		zap.Int("skipped", report.Skipped))

	return report, nil
}

// convertOne runs the four steps for one file
func (b *Batch) convertOne(ctx context.Context, item *model.ConversionItem, index, total int) error {
	item.Status = model.ItemStatusConverting
	b.notifyUpdate(ItemUpdate{Item: item, Index: index, Total: total})

	err := b.transcoder.Transcode(ctx, item.SourcePath, item.OutputPath, func(p float64) {
		b.notifyUpdate(ItemUpdate{Item: item, Index: index, Total: total, Progress: p})
	})
	if err != nil {
		return fmt.Errorf("transcode: %w", err)
	}
	item.FinalPath = item.OutputPath
	b.logger.Info("converted", zap.String("from", item.SourcePath), zap.String("to", item.OutputPath))

	item.Status = model.ItemStatusAwaitingName
	b.notifyUpdate(ItemUpdate{Item: item, Index: index, Total: total, Progress: 1})

	newName, err := b.askName(ctx, item.OutputPath)
	if err != nil {
		return fmt.Errorf("rename prompt: %w", err)
	}

	if newName != "" {
		target, err := RenameTarget(filepath.Dir(item.OutputPath), newName)
		if err != nil {
			return err
		}
		if err := os.Rename(item.OutputPath, target); err != nil {
			return fmt.Errorf("rename: %w", err)
		}
		item.FinalPath = target
		item.Renamed = true
		b.notify(TitleRenamed, fmt.Sprintf("The file was renamed to: %s", target))
	} else {
		b.notify(TitleNoRename, "The file was not renamed.")
	}

	if err := os.Remove(item.SourcePath); err != nil {
		return fmt.Errorf("delete source: %w", err)
	}
	b.logger.Info("deleted", zap.String("file", item.SourcePath))
	return nil
}

func (b *Batch) askName(ctx context.Context, outputPath string) (string, error) {
	if b.prompter == nil {
		return "", nil
	}
	name, err := b.prompter.PromptRename(ctx, outputPath)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(name), nil
}

// notify calls the notifier if set
func (b *Batch) notify(title, message string) {
	if b.notifier != nil {
		b.notifier.Notify(title, message)
	}
}

// notifyUpdate calls the update callback if set
func (b *Batch) notifyUpdate(update ItemUpdate) {
	if b.onUpdate != nil {
		b.onUpdate(update)
	}
}

// IsSourceFile reports whether name ends in .mp3, ignoring case
func IsSourceFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), SourceExtension)
}

// OutputName maps "song.MP3" to "song.wav"
func OutputName(sourceName string) string {
	return strings.TrimSuffix(sourceName, filepath.Ext(sourceName)) + TargetExtension
}

// RenameTarget returns <dir>/<name>.wav for a user supplied base name. A trailing
// .wav typed by the user is not doubled; names with path elements are rejected.
func RenameTarget(dir, name string) (string, error) {
	name = strings.TrimSpace(name)
	if strings.EqualFold(filepath.Ext(name), TargetExtension) {
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("invalid file name: %q", name)
	}
	return filepath.Join(dir, name+TargetExtension), nil
}

// generateItemID generates a unique, time ordered item ID
func generateItemID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(ItemIDPrefix+"%d", time.Now().UnixNano())
	}
	return ItemIDPrefix + id.String()
}
