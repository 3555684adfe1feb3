package ui

import (
	"context"
	"image"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/ytget/yt-audio/internal/controller"
	"github.com/ytget/yt-audio/internal/logging"
	"github.com/ytget/yt-audio/internal/model"
)

// RootUI is the main window. It implements controller.View.
type RootUI struct {
	window fyne.Window
	ctrl   *controller.Controller
	logger *zap.Logger

	urlEntry       *widget.Entry
	platformSelect *widget.Select
	downloadBtn    *widget.Button
	revealBtn      *widget.Button
	progressBar    *widget.ProgressBar
	thumbnail      *canvas.Image
	inputBtn       *widget.Button
	inputLabel     *widget.Label
	outputBtn      *widget.Button
	outputLabel    *widget.Label
	convertBtn     *widget.Button

	mu    sync.Mutex
	busy  bool
	tasks sync.WaitGroup
}

// NewRootUI builds the window content and attaches it to ctrl
func NewRootUI(window fyne.Window, ctrl *controller.Controller, logger *zap.Logger) *RootUI {
	ui := &RootUI{
		window: window,
		ctrl:   ctrl,
		logger: logging.OrNop(logger),
	}
	ui.setupUI()
	ctrl.SetView(ui)
	return ui
}

// setupUI creates and arranges all widgets
func (ui *RootUI) setupUI() {
	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder(URLPlaceholder)
	ui.urlEntry.OnSubmitted = func(string) { ui.onDownloadClick() }

	options := make([]string, 0, len(model.Platforms()))
	for _, p := range model.Platforms() {
		options = append(options, p.String())
	}
	ui.platformSelect = widget.NewSelect(options, nil)
	ui.platformSelect.PlaceHolder = model.PlatformUnselected.String()
	if p := ui.ctrl.State().Platform(); p.IsSelected() {
		ui.platformSelect.SetSelected(p.String())
	}
	// set after the initial selection so loading does not write preferences
	ui.platformSelect.OnChanged = ui.onPlatformChanged

	ui.downloadBtn = widget.NewButtonWithIcon(LabelDownload, theme.DownloadIcon(), ui.onDownloadClick)
	ui.downloadBtn.Importance = widget.HighImportance
	ui.revealBtn = widget.NewButtonWithIcon(LabelReveal, theme.FolderOpenIcon(), ui.onRevealClick)

	ui.progressBar = widget.NewProgressBar()
	ui.progressBar.Max = 100

	ui.thumbnail = &canvas.Image{FillMode: canvas.ImageFillContain}
	ui.thumbnail.SetMinSize(fyne.NewSize(ThumbnailSize, ThumbnailSize))

	ui.inputBtn = widget.NewButtonWithIcon(LabelInputButton, theme.FolderIcon(), ui.onSelectInput)
	ui.inputLabel = widget.NewLabel(controller.InputLabel(""))
	ui.inputLabel.Truncation = fyne.TextTruncateEllipsis
	ui.outputBtn = widget.NewButtonWithIcon(LabelOutputButton, theme.FolderIcon(), ui.onSelectOutput)
	ui.outputLabel = widget.NewLabel(controller.OutputLabel(""))
	ui.outputLabel.Truncation = fyne.TextTruncateEllipsis

	ui.convertBtn = widget.NewButtonWithIcon(LabelConvert, theme.MediaRecordIcon(), ui.onConvertClick)

	downloadSection := container.NewVBox(
		widget.NewLabel(LabelEnterURL),
		ui.urlEntry,
		widget.NewLabel(LabelSelectPlatform),
		ui.platformSelect,
		container.NewGridWithColumns(2, ui.downloadBtn, ui.revealBtn),
		ui.progressBar,
		container.NewCenter(ui.thumbnail),
	)

	convertSection := container.NewVBox(
		ui.inputBtn,
		ui.inputLabel,
		ui.outputBtn,
		ui.outputLabel,
		ui.convertBtn,
	)

	ui.window.SetContent(container.NewPadded(container.NewVBox(
		downloadSection,
		widget.NewSeparator(),
		convertSection,
	)))
}

func (ui *RootUI) onPlatformChanged(selected string) {
	ui.ctrl.ChangePlatform(model.ParsePlatform(selected))
}

func (ui *RootUI) onDownloadClick() {
	url := ui.urlEntry.Text
	ui.runTask(func(ctx context.Context) {
		ui.ctrl.Download(ctx, url)
	})
}

func (ui *RootUI) onConvertClick() {
	ui.runTask(func(ctx context.Context) {
		ui.ctrl.Convert(ctx)
	})
}

func (ui *RootUI) onRevealClick() {
	ui.ctrl.RevealLastDownload()
}

// onSelectInput opens a folder chooser; cancelling keeps the current folder
func (ui *RootUI) onSelectInput() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		ui.ctrl.SelectInputDirectory(uri.Path())
	}, ui.window)
}

func (ui *RootUI) onSelectOutput() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		ui.ctrl.SelectOutputDirectory(uri.Path())
	}, ui.window)
}

// runTask runs fn on a worker goroutine with the action buttons disabled.
// A click while a task is running is ignored.
func (ui *RootUI) runTask(fn func(ctx context.Context)) {
	ui.mu.Lock()
	if ui.busy {
		ui.mu.Unlock()
		ui.logger.Debug("action ignored, another task is running")
		return
	}
	ui.busy = true
	ui.mu.Unlock()

	ui.setActionsEnabled(false)
	ui.tasks.Add(1)
	go func() {
		defer ui.tasks.Done()
		defer func() {
			ui.mu.Lock()
			ui.busy = false
			ui.mu.Unlock()
			ui.setActionsEnabled(true)
		}()
		fn(context.Background())
	}()
}

// Wait blocks until the running task, if any, has finished
func (ui *RootUI) Wait() {
	ui.tasks.Wait()
}

func (ui *RootUI) setActionsEnabled(enabled bool) {
	fyne.Do(func() {
		for _, btn := range []*widget.Button{ui.downloadBtn, ui.convertBtn, ui.inputBtn, ui.outputBtn} {
			if enabled {
				btn.Enable()
			} else {
				btn.Disable()
			}
		}
		if enabled {
			ui.platformSelect.Enable()
		} else {
			ui.platformSelect.Disable()
		}
	})
}

// ShowInfo shows an information dialog
func (ui *RootUI) ShowInfo(title, message string) {
	ui.showMessage(title, message, theme.InfoIcon())
}

// ShowWarning shows a warning dialog
func (ui *RootUI) ShowWarning(title, message string) {
	ui.logger.Warn(message, zap.String("title", title))
	ui.showMessage(title, message, theme.WarningIcon())
}

// ShowError shows an error dialog
func (ui *RootUI) ShowError(title, message string) {
	ui.logger.Error(message, zap.String("title", title))
	ui.showMessage(title, message, theme.ErrorIcon())
}

func (ui *RootUI) showMessage(title, message string, icon fyne.Resource) {
	fyne.Do(func() {
		newMessageDialog(title, message, icon, ui.window).Show()
	})
}

// SetProgress updates the progress bar, value in [0, 100]
func (ui *RootUI) SetProgress(percent float64) {
	fyne.Do(func() {
		ui.progressBar.SetValue(percent)
	})
}

// SetThumbnail shows img, or clears the preview when img is nil
func (ui *RootUI) SetThumbnail(img image.Image) {
	fyne.Do(func() {
		ui.thumbnail.Image = img
		ui.thumbnail.Refresh()
	})
}

// SetInputLabel sets the input folder label
func (ui *RootUI) SetInputLabel(text string) {
	fyne.Do(func() {
		ui.inputLabel.SetText(text)
	})
}

// SetOutputLabel sets the output folder label
func (ui *RootUI) SetOutputLabel(text string) {
	fyne.Do(func() {
		ui.outputLabel.SetText(text)
	})
}

var _ controller.View = (*RootUI)(nil)
