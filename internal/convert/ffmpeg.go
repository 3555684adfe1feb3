package convert

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ytget/yt-audio/internal/logging"
)

// FFmpeg constants for WAV output
const (
	SampleRate     = 44100
	PCMCodec       = "pcm_s16le"
	FFmpegCommand  = "ffmpeg"
	FFprobeCommand = "ffprobe"

	FFprobeLogLevel     = "error"
	FFprobeShowEntries  = "format=duration"
	FFprobeOutputFormat = "csv=p=0"
	ProgressPipeTarget  = "pipe:2"
	ProgressTimePrefix  = "out_time_us="
)

// FFmpegTranscoder converts audio with the ffmpeg executable
type FFmpegTranscoder struct {
	ffmpegPath  string
	ffprobePath string
	sampleRate  int
	logger      *zap.Logger
}

// NewFFmpegTranscoder creates a transcoder writing 16-bit PCM WAV at 44.1 kHz.
// Empty paths fall back to ffmpeg and ffprobe on PATH.
func NewFFmpegTranscoder(ffmpegPath, ffprobePath string, logger *zap.Logger) *FFmpegTranscoder {
	if ffmpegPath == "" {
		ffmpegPath = FFmpegCommand
	}
	if ffprobePath == "" {
		ffprobePath = FFprobeCommand
	}
	return &FFmpegTranscoder{
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
		sampleRate:  SampleRate,
		logger:      logging.OrNop(logger),
	}
}

// Transcode runs ffmpeg on src. A failed run removes the partial dst.
func (t *FFmpegTranscoder) Transcode(ctx context.Context, src, dst string, onProgress func(float64)) error {
	if _, err := os.Stat(src); err != nil {
		return fmt.Errorf("input file does not exist: %s", src)
	}

	duration := 0.0
	if onProgress != nil {
		d, err := t.probeDuration(ctx, src)
		if err != nil {
			t.logger.Debug("duration unknown, progress disabled", zap.String("file", src), zap.Error(err))
		} else {
			duration = d
		}
	}

	cmd := exec.CommandContext(ctx, t.ffmpegPath, t.BuildFFmpegArgs(src, dst)...)

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("failed to create stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	// stderr must be drained before Wait closes the pipe
	msg := <-monitorProgress(stderr, duration, onProgress)

	if err := cmd.Wait(); err != nil {
		os.Remove(dst)
		if msg != "" {
			return fmt.Errorf("ffmpeg failed: %w: %s", err, msg)
		}
		return fmt.Errorf("ffmpeg failed: %w", err)
	}

	if onProgress != nil {
		onProgress(1)
	}
	return nil
}

// BuildFFmpegArgs builds the ffmpeg command arguments
func (t *FFmpegTranscoder) BuildFFmpegArgs(inputPath, outputPath string) []string {
	return []string{
		"-y",            // Overwrite output file
		"-i", inputPath, // Input file
		"-vn",                             // Drop embedded cover art
		"-ar", strconv.Itoa(t.sampleRate), // Sample rate
		"-c:a", PCMCodec, // 16-bit PCM
		"-progress", ProgressPipeTarget, // Progress to stderr
		"-nostats",
		outputPath,
	}
}

// probeDuration gets the duration of an audio file in seconds using ffprobe
func (t *FFmpegTranscoder) probeDuration(ctx context.Context, filePath string) (float64, error) {
	cmd := exec.CommandContext(ctx, t.ffprobePath, "-v", FFprobeLogLevel, "-show_entries", FFprobeShowEntries, "-of", FFprobeOutputFormat, filePath)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("failed to run ffprobe: %w", err)
	}
	return parseDuration(string(output))
}

func parseDuration(output string) (float64, error) {
	duration, err := strconv.ParseFloat(strings.TrimSpace(output), 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration: %w", err)
	}
	return duration, nil
}

// monitorProgress reads ffmpeg's -progress output until EOF. The returned channel
// yields the last non-progress line, which carries ffmpeg's error message.
func monitorProgress(stderr io.Reader, totalDuration float64, onProgress func(float64)) <-chan string {
	done := make(chan string, 1)
	go func() {
		var last string
		scanner := bufio.NewScanner(stderr)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if progress, ok := parseProgressLine(line, totalDuration); ok {
				if onProgress != nil {
					onProgress(progress)
				}
				continue
			}
			if line != "" && !strings.Contains(line, "=") {
				last = line
			}
		}
		done <- last
	}()
	return done
}

// parseProgressLine parses "out_time_us=123456" into a 0-1 fraction of totalDuration
func parseProgressLine(line string, totalDuration float64) (float64, bool) {
	if !strings.HasPrefix(line, ProgressTimePrefix) || totalDuration <= 0 {
		return 0, false
	}
	us, err := strconv.ParseInt(strings.TrimPrefix(line, ProgressTimePrefix), 10, 64)
	if err != nil || us < 0 {
		return 0, false
	}
	progress := float64(us) / 1e6 / totalDuration
	if progress > 1 {
		progress = 1
	}
	return progress, true
}
