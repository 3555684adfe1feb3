package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ytget/yt-audio/internal/controller"
	"github.com/ytget/yt-audio/internal/convert"
	"github.com/ytget/yt-audio/internal/ui"
)

var guiCmd = &cobra.Command{
	Use:   "gui",
	Short: "Open the desktop window (default)",
	Args:  cobra.NoArgs,
	RunE:  runGUI,
}

func runGUI(cmd *cobra.Command, args []string) error {
	fyneApp := app.NewWithID(ui.AppID)
	fyneApp.Settings().SetTheme(ui.NewAudioTheme())

	window := fyneApp.NewWindow(ui.AppName)
	window.Resize(fyne.NewSize(ui.WindowWidth, ui.WindowHeight))

	icon, err := ui.LoadIcon(settings.IconPath)
	if err != nil {
		logger.Warn("failed to load icon", zap.String("path", settings.IconPath), zap.Error(err))
	}
	window.SetIcon(icon)

	transcoder := convert.NewFFmpegTranscoder(settings.FFmpegPath, settings.FFprobePath, logger.Named("ffmpeg"))
	batch := convert.NewBatch(transcoder, ui.NewDialogPrompter(window), ui.NewDialogNotifier(window), logger.Named("convert"))

	ctrl := controller.New(newStore(), newFetcher(), newThumbnailLoader(), batch, logger.Named("controller"))
	ui.NewRootUI(window, ctrl, logger.Named("ui"))

	window.ShowAndRun()
	return nil
}
