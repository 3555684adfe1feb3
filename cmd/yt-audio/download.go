package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v4"
	"go.uber.org/zap"

	"github.com/ytget/yt-audio/internal/model"
	"github.com/ytget/yt-audio/internal/platform"
)

var downloadCmd = &cobra.Command{
	Use:   "download [url]",
	Short: "Download the audio of a URL as a 320 kbps MP3",
	Args:  cobra.ExactArgs(1),
	RunE:  runDownload,
}

func init() {
	downloadCmd.Flags().StringP("platform", "p", "", "youtube or soundcloud (default: detected from the URL)")
	downloadCmd.Flags().StringP("dir", "d", "", "destination directory (default: saved input folder)")
}

func runDownload(cmd *cobra.Command, args []string) error {
	url := strings.TrimSpace(args[0])
	if err := platform.ValidateURL(url); err != nil {
		return fmt.Errorf("invalid URL %q: %w", url, err)
	}
	platformFlag, _ := cmd.Flags().GetString("platform")
	destDir, _ := cmd.Flags().GetString("dir")

	p := platform.DetectPlatform(url)
	if platformFlag != "" {
		p = model.ParsePlatform(platformFlag)
	}
	if !p.IsSelected() {
		return fmt.Errorf("unknown platform for %s, pass --platform youtube|soundcloud", url)
	}

	store := newStore()
	prefs := store.Load()
	if destDir == "" {
		destDir = prefs.InputDirectory
	}
	if destDir == "" {
		dir, err := platform.GetHomeMusicDir()
		if err != nil {
			return err
		}
		destDir = dir
	}

	prefs.LastPlatform = p
	if err := store.Save(prefs); err != nil {
		logger.Warn("failed to save preferences", zap.Error(err))
	}

	bars := newItemBars(mpb.New(mpb.WithWidth(64), mpb.WithOutput(cmd.ErrOrStderr())))

	fetcher := newFetcher()
	fetcher.SetItemCallback(bars.start)
	fetcher.SetProgressCallback(bars.set)

	results, err := fetcher.DownloadAll(cmd.Context(), url, p, destDir)
	bars.wait()

	for _, r := range results {
		fmt.Fprintf(cmd.OutOrStdout(), "Downloaded: %s\n", r.FilePath)
		if !r.HasThumbnail() {
			logger.Debug("no thumbnail", zap.String("file", r.FilePath))
		}
	}
	return err
}
