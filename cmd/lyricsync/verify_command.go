package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
	"github.com/spf13/cobra"

	"github.com/simonhull/lyricsync"
	"github.com/simonhull/lyricsync/internal/lrc"
)

func newVerifyCommand(ctx *commandContext) *cobra.Command {
	var (
		lyricsPath string
		coverPath  string
		probe      bool
	)

	cmd := &cobra.Command{
		Use:   "verify --lyrics <file> <audio>...",
		Short: "Check that audio files carry the expected lyrics",
		Long: `Check that each file carries the --lyrics text verbatim; a .vtt file is
converted first. --cover also checks the embedded front cover against a
JPEG file. --probe adds an independent read through a general purpose tag
library.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expected, err := expectedLyrics(lyricsPath)
			if err != nil {
				return err
			}
			var cover []byte
			if coverPath != "" {
				if cover, err = os.ReadFile(coverPath); err != nil {
					return fmt.Errorf("read cover: %w", err)
				}
			}
			return checkEmbedded(cmd, ctx, args, expected, cover, probe)
		},
	}

	cmd.Flags().StringVarP(&lyricsPath, "lyrics", "l", "", "Expected lyrics (.lrc text or .vtt subtitles)")
	cmd.Flags().StringVar(&coverPath, "cover", "", "Expected front cover (JPEG)")
	cmd.Flags().BoolVar(&probe, "probe", false, "Also read tags with an independent tag library")
	_ = cmd.MarkFlagRequired("lyrics") //nolint:errcheck // Flag is defined above
	return cmd
}

// expectedLyrics loads the reference lyrics, converting subtitles when the
// file is a .vtt track.
func expectedLyrics(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read lyrics: %w", err)
	}
	text := string(raw)
	if strings.EqualFold(filepath.Ext(path), ".vtt") {
		text = lrc.Convert(text)
	}
	text = strings.TrimRight(text, "\r\n")
	if len(lrc.Parse(text)) == 0 {
		return "", fmt.Errorf("%s: no time-tagged lyrics lines", path)
	}
	return text, nil
}

func checkEmbedded(cmd *cobra.Command, ctx *commandContext, paths []string, expected string, cover []byte, probe bool) error {
	headers := []string{"File", "Format", "Result", "Detail"}
	if probe {
		headers = append(headers, "Probe")
	}

	failed := 0
	rows := make([][]string, 0, len(paths))
	for _, path := range paths {
		format := lyricsync.FormatFromPath(path)
		err := lyricsync.VerifyDetailed(path, format, expected)
		if err == nil && len(cover) > 0 {
			err = lyricsync.VerifyCover(path, format, cover)
		}

		result, detail := "ok", ""
		if err != nil {
			failed++
			detail = err.Error()
			var mismatch *lyricsync.VerificationMismatchError
			if errors.As(err, &mismatch) {
				result = "mismatch"
			} else {
				result = "error"
			}
			ctx.log().Warn("verification failed", "path", path, "error", err)
		}
		row := []string{filepath.Base(path), format.String(), result, detail}
		if probe {
			row = append(row, probeSummary(path, expected))
		}
		rows = append(rows, row)
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, nil))
	if failed > 0 {
		return fmt.Errorf("%d of %d files do not carry the expected tags", failed, len(paths))
	}
	return nil
}

// probeSummary reads path with dhowden/tag and reports whether that library
// sees the same lyrics and a cover.
func probeSummary(path, expected string) string {
	f, err := os.Open(path)
	if err != nil {
		return "error: " + err.Error()
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return "error: " + err.Error()
	}

	var parts []string
	switch {
	case m.Lyrics() == "":
		parts = append(parts, "no lyrics")
	case !strings.Contains(m.Lyrics(), expected):
		parts = append(parts, "lyrics differ")
	default:
		parts = append(parts, "lyrics")
	}
	if pic := m.Picture(); pic != nil {
		parts = append(parts, "cover "+pic.MIMEType)
	} else {
		parts = append(parts, "no cover")
	}
	return strings.Join(parts, ", ")
}
