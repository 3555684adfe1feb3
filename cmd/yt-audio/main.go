package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ytget/yt-audio/internal/config"
	"github.com/ytget/yt-audio/internal/download"
	"github.com/ytget/yt-audio/internal/logging"
	"github.com/ytget/yt-audio/internal/platform"
	"github.com/ytget/yt-audio/internal/thumbnail"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

var (
	configPath string
	logLevel   string

	// set by PersistentPreRunE
	settings *config.Settings
	logger   *zap.Logger

	rootCmd = &cobra.Command{
		Use:               "yt-audio",
		Short:             "Download audio from YouTube or SoundCloud and convert MP3 folders to WAV",
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		RunE:              runGUI,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "settings file (default <user config dir>/yt-audio/settings.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(guiCmd)
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(convertCmd)
}

func main() {
	err := rootCmd.Execute()
	if logger != nil {
		_ = logger.Sync()
	}
	if err != nil {
		os.Exit(1)
	}
}

// setup loads settings and builds the logger shared by all commands
func setup(cmd *cobra.Command, args []string) error {
	var err error
	settings, err = config.LoadSettings(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		settings.Log.Level = logLevel
	}

	logger, err = logging.New(logging.Config{
		Level:      settings.Log.Level,
		Format:     settings.Log.Format,
		OutputPath: settings.Log.Output,
	})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	logger.Debug("starting",
		zap.String("version", version),
		zap.String("command", cmd.Name()),
		zap.String("preferences", settings.PreferencesPath))
	return nil
}

func newStore() *config.Store {
	return config.NewStore(settings.PreferencesPath)
}

// newFetcher wires the yt-dlp engine and the playlist lister
func newFetcher() *download.Fetcher {
	engine := download.NewYTDLPEngine(settings.YTDLPPath, settings.AutoInstall, logger.Named("ytdlp"))
	fetcher := download.NewFetcher(engine, logger.Named("download"))
	lister := platform.NewPlaylistLister()
	lister.SetTimeout(settings.PlaylistTimeout)
	fetcher.SetPlaylistLister(lister)
	return fetcher
}

func newThumbnailLoader() *thumbnail.Loader {
	return thumbnail.NewLoader(nil, settings.ThumbnailTimeout, logger.Named("thumbnail"))
}
