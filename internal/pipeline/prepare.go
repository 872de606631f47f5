package pipeline

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/simonhull/lyricsync/internal/lrc"
)

type inputs struct {
	lyrics string
	cover  []byte
}

// prepare reads and converts the subtitle track and reads the cover image
// concurrently. Either path may be empty.
func (p *Pipeline) prepare(ctx context.Context, subtitlePath, coverPath string) (inputs, error) {
	var in inputs
	g, ctx := errgroup.WithContext(ctx)

	needLyrics := p.cfg.Features.EmbedLyrics || p.cfg.Features.WriteLRC
	if needLyrics && subtitlePath != "" {
		g.Go(func() error {
			raw, err := os.ReadFile(subtitlePath)
			if err != nil {
				return fmt.Errorf("read subtitles: %w", err)
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			in.lyrics = lrc.Convert(string(raw))
			return nil
		})
	}

	if coverPath != "" {
		g.Go(func() error {
			data, err := os.ReadFile(coverPath)
			if err != nil {
				return fmt.Errorf("read cover: %w", err)
			}
			in.cover = data
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return inputs{}, err
	}
	return in, nil
}
