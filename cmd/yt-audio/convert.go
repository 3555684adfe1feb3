package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ytget/yt-audio/internal/controller"
	"github.com/ytget/yt-audio/internal/convert"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert every MP3 of a folder to WAV, asking for a new name after each file",
	Args:  cobra.NoArgs,
	RunE:  runConvert,
}

func init() {
	convertCmd.Flags().StringP("input", "i", "", "folder with MP3 files (default: saved input folder)")
	convertCmd.Flags().StringP("output", "o", "", "folder for WAV files (default: saved output folder)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	inputDir, _ := cmd.Flags().GetString("input")
	outputDir, _ := cmd.Flags().GetString("output")

	prefs := newStore().Load()
	if inputDir == "" {
		inputDir = prefs.InputDirectory
	}
	if outputDir == "" {
		outputDir = prefs.OutputDirectory
	}
	if inputDir == "" || outputDir == "" {
		return controller.ErrDirectoriesNotSet
	}

	out := cmd.OutOrStdout()
	transcoder := convert.NewFFmpegTranscoder(settings.FFmpegPath, settings.FFprobePath, logger.Named("ffmpeg"))
	batch := convert.NewBatch(transcoder, convert.NewLinePrompter(os.Stdin, out), convert.NewWriterNotifier(out), logger.Named("convert"))
	var current string
	batch.SetUpdateCallback(func(u convert.ItemUpdate) {
		switch {
		case u.Item.Status.IsActive() && u.Item.ID != current:
			current = u.Item.ID
			fmt.Fprintf(out, "[%d/%d] %s\n", u.Index, u.Total, u.Item.GetDisplayName())
		case u.Item.Status.IsFinished():
			fmt.Fprintf(out, "[%d/%d] %s: %s\n", u.Index, u.Total, u.Item.GetDisplayName(), u.Item.Status)
		}
	})

	report, err := batch.ConvertFolder(cmd.Context(), inputDir, outputDir)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s: %d processed, %d converted, %d failed, %d skipped\n",
		controller.MsgConversionDone, report.Processed(), report.Converted(), report.Failed(), report.Skipped)
	for _, item := range report.FailedItems() {
		fmt.Fprintf(out, "  %s: %s\n", item.GetDisplayName(), item.LastError)
	}
	if report.Failed() > 0 {
		return fmt.Errorf("%d of %d files failed", report.Failed(), len(report.Items))
	}
	return nil
}
