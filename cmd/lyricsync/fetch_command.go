package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simonhull/lyricsync/internal/download"
	"github.com/simonhull/lyricsync/internal/pipeline"
)

func newFetchCommand(ctx *commandContext) *cobra.Command {
	var (
		format        string
		quality       string
		skipSubtitles bool
		noMove        bool
		noCleanup     bool
		exportDir     string
	)

	cmd := &cobra.Command{
		Use:   "fetch <url>...",
		Short: "Download audio with yt-dlp and embed lyrics and cover art",
		Long: `Download each URL as audio with yt-dlp, convert its subtitles to synced
lyrics, turn the thumbnail into a JPEG cover, and embed both into the file.
URLs are processed one at a time; a failure only affects its own URL.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.configCopy(cmd)
			if err != nil {
				return err
			}
			if format != "" {
				cfg.Download.Format = format
			}
			if quality != "" {
				cfg.Download.Quality = quality
				if quality == "lossless" {
					cfg.Download.Format = "flac"
				}
			}
			if skipSubtitles {
				cfg.Download.SkipSubtitles = true
			}
			if noMove {
				cfg.Features.MoveFiles = false
			}
			if noCleanup {
				cfg.Features.Cleanup = false
			}
			if exportDir != "" {
				cfg.Paths.ExportDir = exportDir
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid options: %w", err)
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return err
			}

			logger := ctx.log()
			dl := download.New(download.Options{
				Format:         cfg.Download.Format,
				Quality:        cfg.Download.Quality,
				SubtitleLangs:  cfg.Download.SubtitleLangs,
				SubtitleFormat: cfg.Download.SubtitleFormat,
				SkipSubtitles:  cfg.Download.SkipSubtitles,
				Binary:         cfg.Download.Binary,
				AutoInstall:    cfg.Download.AutoInstall,
				WorkDir:        cfg.Paths.WorkDir,
				Logger:         logger,
			})
			if err := dl.Install(cmd.Context()); err != nil {
				return err
			}

			logger.Info("starting fetch",
				"format", cfg.Download.Format,
				"quality", cfg.Download.Quality,
				"skip_subtitles", cfg.Download.SkipSubtitles,
				"urls", len(args),
			)
			outcomes := pipeline.New(cfg, dl, logger).Run(cmd.Context(), args...)
			return printOutcomes(cmd.OutOrStdout(), outcomes)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Audio format: m4a, mp4, mp3 or flac")
	cmd.Flags().StringVarP(&quality, "quality", "q", "", "Audio quality: low, medium, high or lossless")
	cmd.Flags().BoolVar(&skipSubtitles, "skip-subtitles", false, "Do not download subtitles or embed lyrics")
	cmd.Flags().BoolVar(&noMove, "no-move", false, "Leave files in the work directory")
	cmd.Flags().BoolVar(&noCleanup, "no-cleanup", false, "Keep subtitles and thumbnails after embedding")
	cmd.Flags().StringVarP(&exportDir, "export-dir", "o", "", "Override paths.export_dir")
	return cmd
}
