package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/simonhull/lyricsync"
	"github.com/simonhull/lyricsync/internal/config"
	"github.com/simonhull/lyricsync/internal/pipeline"
)

func newEmbedCommand(ctx *commandContext) *cobra.Command {
	var (
		subtitles     string
		cover         string
		move          bool
		cleanup       bool
		noLRC         bool
		backup        string
		preserveMTime bool
		noLock        bool
	)

	cmd := &cobra.Command{
		Use:   "embed <audio>...",
		Short: "Embed lyrics and cover art into local audio files",
		Long: `Embed lyrics and cover art into audio files that are already on disk.

For each file, subtitles named "<title>.<lang>.vtt" or "<title>.vtt" and a
thumbnail named "<title>.jpg", ".webp" or ".png" are picked up from the same
directory. --subtitles and --cover name them explicitly for a single file.
Companion files are left in place unless --cleanup is given.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (subtitles != "" || cover != "") && len(args) > 1 {
				return errors.New("--subtitles and --cover can only be used with a single audio file")
			}

			cfg, err := ctx.configCopy(cmd)
			if err != nil {
				return err
			}
			applyEmbedFlags(&cfg, move, cleanup, noLRC)
			if move {
				if err := cfg.EnsureDirectories(); err != nil {
					return err
				}
			}

			items := make([]pipeline.Item, 0, len(args))
			for _, path := range args {
				item := pipeline.Discover(path, cfg.Download.SubtitleLangs)
				if subtitles != "" {
					item.SubtitlePath = subtitles
				}
				if cover != "" {
					item.ThumbnailPath = cover
				}
				items = append(items, item)
			}

			var opts []lyricsync.EmbedOption
			if backup != "" {
				opts = append(opts, lyricsync.WithBackup(backup))
			}
			if preserveMTime {
				opts = append(opts, lyricsync.WithPreserveModTime())
			}
			if noLock {
				opts = append(opts, lyricsync.WithoutLock())
			}

			outcomes := pipeline.New(cfg, nil, ctx.log(), opts...).ProcessAll(cmd.Context(), items...)
			return printOutcomes(cmd.OutOrStdout(), outcomes)
		},
	}

	cmd.Flags().StringVarP(&subtitles, "subtitles", "s", "", "WebVTT subtitle file to convert and embed")
	cmd.Flags().StringVar(&cover, "cover", "", "Cover image (JPEG, WebP or PNG)")
	cmd.Flags().BoolVar(&move, "move", false, "Move tagged files into paths.export_dir")
	cmd.Flags().BoolVar(&cleanup, "cleanup", false, "Remove subtitles and thumbnails after a successful embed")
	cmd.Flags().BoolVar(&noLRC, "no-lrc", false, "Do not write a .lrc sidecar next to the audio file")
	cmd.Flags().StringVar(&backup, "backup", "", "Copy each file to <file><suffix> before writing")
	cmd.Flags().BoolVar(&preserveMTime, "preserve-mtime", false, "Keep each file's modification time")
	cmd.Flags().BoolVar(&noLock, "no-lock", false, "Skip the per-file advisory lock")
	return cmd
}

// applyEmbedFlags adjusts feature toggles for local files. Moving and cleanup
// are opt-in here since the inputs belong to the user.
func applyEmbedFlags(cfg *config.Config, move, cleanup, noLRC bool) {
	cfg.Features.MoveFiles = move
	cfg.Features.Cleanup = cleanup
	if noLRC {
		cfg.Features.WriteLRC = false
	}
}
