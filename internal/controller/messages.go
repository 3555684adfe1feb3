package controller

import (
	"fmt"
	"image"
	"strings"

	"github.com/ytget/yt-audio/internal/download"
	"github.com/ytget/yt-audio/internal/model"
	"github.com/ytget/yt-audio/internal/platform"
)

// InputLabel formats the input folder label
func InputLabel(dir string) string {
	return InputLabelPrefix + orNotSelected(dir)
}

// OutputLabel formats the output folder label
func OutputLabel(dir string) string {
	return OutputLabelPrefix + orNotSelected(dir)
}

func orNotSelected(dir string) string {
	if dir == "" {
		return NotSelected
	}
	return dir
}

// validateInput runs the fetcher checks up front so nothing is saved for invalid input
func validateInput(url string, p model.Platform) error {
	if strings.TrimSpace(url) == "" {
		return download.ErrMissingURL
	}
	if !p.IsSelected() {
		return download.ErrPlatformNotSelected
	}
	if err := platform.ValidateURL(url); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	return nil
}

func downloadedMessage(results []*model.DownloadResult) string {
	if len(results) == 1 {
		return fmt.Sprintf("Downloaded: %s", results[0].FilePath)
	}
	lines := make([]string, 0, len(results)+1)
	lines = append(lines, fmt.Sprintf("Downloaded %d files:", len(results)))
	for _, r := range results {
		lines = append(lines, r.FilePath)
	}
	return strings.Join(lines, "\n")
}

func conversionMessage(report *model.BatchReport) string {
	msg := fmt.Sprintf("%s\n\nProcessed: %d, converted: %d, failed: %d",
		MsgConversionDone, report.Processed(), report.Converted(), report.Failed())
	for _, item := range report.FailedItems() {
		msg += fmt.Sprintf("\n%s: %s", item.GetDisplayName(), item.LastError)
	}
	return msg
}

// nopView is used until a window is attached
type nopView struct{}

func (nopView) ShowInfo(string, string)    {}
func (nopView) ShowWarning(string, string) {}
func (nopView) ShowError(string, string)   {}
func (nopView) SetProgress(float64)        {}
func (nopView) SetThumbnail(image.Image)   {}
func (nopView) SetInputLabel(string)       {}
func (nopView) SetOutputLabel(string)      {}
