package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/simonhull/lyricsync/internal/lrc"
	"github.com/simonhull/lyricsync/internal/subtitle"
)

func newConvertCommand() *cobra.Command {
	var (
		output string
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "convert <subtitles.vtt|->",
		Short: "Convert WebVTT subtitles into LRC lyrics",
		Long: `Convert a WebVTT subtitle file into "[MM:SS.cc]text" lyrics lines.
Use "-" to read from standard input. With --strict, discarded timing lines
are reported on standard error.`,
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{skipConfigLoad: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			transcript, diags := subtitle.ParseStrict(string(raw))
			if strict {
				for _, d := range diags {
					fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", d)
				}
			}
			lyrics := lrc.Format(transcript)

			if output == "" || output == "-" {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), lyrics)
				return err
			}
			if err := os.WriteFile(output, []byte(lyrics), 0o644); err != nil {
				return fmt.Errorf("write lyrics: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d lines to %s\n", transcript.Len(), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write lyrics to this file instead of stdout")
	cmd.Flags().BoolVar(&strict, "strict", false, "Report discarded timing lines")
	return cmd
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read subtitles: %w", err)
	}
	return data, nil
}
