package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simonhull/lyricsync"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print version information",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipConfigLoad: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			info := lyricsync.ReadBuildInfo()
			revision := info.Revision
			if info.Modified {
				revision += " (modified)"
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "lyricsync %s\n", info.Version)
			fmt.Fprintf(out, "  commit: %s\n", revision)
			fmt.Fprintf(out, "  date:   %s\n", info.Time)
			fmt.Fprintf(out, "  go:     %s\n", info.GoVersion)
			return nil
		},
	}
}
