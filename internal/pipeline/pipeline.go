// Package pipeline runs the download-to-tagged-file flow: fetch, cover
// conversion, subtitle-to-lyrics conversion, move, embed, verify, cleanup.
//
// Files are processed one after another. Each file gets its own Outcome and a
// failure in one never stops the next.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/simonhull/lyricsync"
	"github.com/simonhull/lyricsync/internal/config"
	"github.com/simonhull/lyricsync/internal/download"
	"github.com/simonhull/lyricsync/internal/fileutil"
	"github.com/simonhull/lyricsync/internal/thumbnail"
	"github.com/simonhull/lyricsync/internal/types"
)

// Fetcher downloads one URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*download.Result, error)
}

// Item is one audio file with its optional companions.
type Item struct {
	Source        string
	Title         string
	AudioPath     string
	SubtitlePath  string
	ThumbnailPath string

	// Dir is a scratch directory removed during cleanup once it is empty.
	Dir string
}

// ItemFromResult converts a download result into an Item.
func ItemFromResult(res *download.Result) Item {
	return Item{
		Source:        res.URL,
		Title:         res.Title,
		AudioPath:     res.AudioPath,
		SubtitlePath:  res.SubtitlePath,
		ThumbnailPath: res.ThumbnailPath,
		Dir:           res.Dir,
	}
}

// Pipeline processes items according to a Config.
type Pipeline struct {
	cfg       config.Config
	fetcher   Fetcher
	logger    *slog.Logger
	runID     string
	embedOpts []lyricsync.EmbedOption
}

// New returns a Pipeline. fetcher may be nil when only Process is used.
// opts are passed to every Embed call after the pipeline's own options.
func New(cfg config.Config, fetcher Fetcher, logger *slog.Logger, opts ...lyricsync.EmbedOption) *Pipeline {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	runID := uuid.NewString()
	return &Pipeline{
		cfg:       cfg,
		fetcher:   fetcher,
		logger:    logger.With(slog.String("run_id", runID)),
		runID:     runID,
		embedOpts: opts,
	}
}

// RunID identifies this pipeline's log records.
func (p *Pipeline) RunID() string {
	return p.runID
}

// Run fetches and processes each URL in order. Once ctx is cancelled the
// remaining URLs are reported as skipped.
func (p *Pipeline) Run(ctx context.Context, urls ...string) []Outcome {
	outcomes := make([]Outcome, 0, len(urls))
	for _, url := range urls {
		if err := ctx.Err(); err != nil {
			outcomes = append(outcomes, Outcome{Source: url, Status: StatusSkipped, Step: StepFetch, Err: err})
			continue
		}
		outcomes = append(outcomes, p.fetchAndProcess(ctx, url))
	}
	p.logSummary(outcomes)
	return outcomes
}

// ProcessAll processes local items in order, with the same cancellation
// behaviour as Run.
func (p *Pipeline) ProcessAll(ctx context.Context, items ...Item) []Outcome {
	outcomes := make([]Outcome, 0, len(items))
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			outcomes = append(outcomes, Outcome{Source: item.Source, File: item.AudioPath, Status: StatusSkipped, Step: StepPrepare, Err: err})
			continue
		}
		outcomes = append(outcomes, p.Process(ctx, item))
	}
	p.logSummary(outcomes)
	return outcomes
}

func (p *Pipeline) fetchAndProcess(ctx context.Context, url string) Outcome {
	if p.fetcher == nil {
		return Outcome{Source: url, Status: StatusFailed, Step: StepFetch, Err: errors.New("no fetcher configured")}
	}

	start := time.Now()
	p.logger.Info("fetching", slog.String("url", url))
	res, err := p.fetcher.Fetch(ctx, url)
	if err != nil {
		p.logger.Error("fetch failed", slog.String("url", url), slog.Any("error", err))
		return Outcome{Source: url, Status: StatusFailed, Step: StepFetch, Err: err, Duration: time.Since(start)}
	}

	out := p.Process(ctx, ItemFromResult(res))
	out.Duration = time.Since(start)
	return out
}

// Process runs every post-download step for one item.
func (p *Pipeline) Process(ctx context.Context, item Item) Outcome {
	start := time.Now()
	title := item.Title
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(item.AudioPath), filepath.Ext(item.AudioPath))
	}
	source := item.Source
	if source == "" {
		source = item.AudioPath
	}

	out := Outcome{Source: source, Title: title, File: item.AudioPath}
	log := p.logger.With(slog.String("title", title))
	finish := func(status Status, step lyricsync.Step, err error) Outcome {
		out.Status, out.Step, out.Err = status, step, err
		out.Duration = time.Since(start)
		return out
	}

	if _, err := os.Stat(item.AudioPath); err != nil {
		return finish(StatusFailed, StepPrepare, fmt.Errorf("audio file: %w", err))
	}

	coverPath := p.coverFor(item, log)

	in, err := p.prepare(ctx, item.SubtitlePath, coverPath)
	if err != nil {
		log.Error("prepare failed", slog.Any("error", err))
		return finish(StatusFailed, StepPrepare, err)
	}
	if item.SubtitlePath != "" && in.lyrics == "" {
		log.Warn("subtitles produced no lyrics", slog.String("subtitle", item.SubtitlePath))
	}
	if len(in.cover) > 0 && !types.IsJPEG(in.cover) {
		log.Warn("cover is not JPEG data, skipping cover", slog.String("cover", coverPath))
		in.cover = nil
	}

	audioPath := item.AudioPath
	if p.cfg.Features.WriteLRC && in.lyrics != "" {
		out.LRCPath = strings.TrimSuffix(audioPath, filepath.Ext(audioPath)) + ".lrc"
		if err := os.WriteFile(out.LRCPath, []byte(in.lyrics), 0o644); err != nil {
			out.LRCPath = ""
			return finish(StatusFailed, StepLRC, fmt.Errorf("write lyrics sidecar: %w", err))
		}
	}

	if p.cfg.Features.MoveFiles {
		moved, err := fileutil.Move(audioPath, p.cfg.Paths.ExportDir)
		if err != nil {
			log.Error("move failed", slog.Any("error", err))
			return finish(StatusFailed, StepMove, err)
		}
		audioPath = moved
		out.File = moved
		if out.LRCPath != "" {
			if out.LRCPath, err = fileutil.Move(out.LRCPath, p.cfg.Paths.ExportDir); err != nil {
				return finish(StatusFailed, StepMove, err)
			}
		}
		log.Info("moved to export dir", slog.String("path", moved))
	}

	var lyrics *string
	if p.cfg.Features.EmbedLyrics && in.lyrics != "" {
		lyrics = &in.lyrics
	}
	var cover []byte
	if p.cfg.Features.EmbedCover {
		cover = in.cover
	}
	req := lyricsync.NewEmbedRequest(audioPath, lyrics, cover)

	status, step, err := p.embed(ctx, req, log)
	if status == StatusFailed || status == StatusUnsupported {
		return finish(status, step, err)
	}
	out.Lyrics, out.Cover = req.HasLyrics(), req.HasCover()

	// Companions are the only copy of the lyrics source until read-back
	// confirms the embed.
	if p.cfg.Features.Cleanup && status == StatusSuccess {
		p.cleanup(item, coverPath, log)
	}
	return finish(status, step, err)
}

// coverFor returns the JPEG cover path for item, converting the thumbnail
// when enabled. Conversion failures only cost the cover.
func (p *Pipeline) coverFor(item Item, log *slog.Logger) string {
	if item.ThumbnailPath == "" || !p.cfg.Features.EmbedCover {
		return ""
	}
	if !p.cfg.Features.ConvertThumbnail {
		switch strings.ToLower(filepath.Ext(item.ThumbnailPath)) {
		case ".jpg", ".jpeg":
			return item.ThumbnailPath
		}
		log.Info("thumbnail conversion disabled, no cover", slog.String("thumbnail", item.ThumbnailPath))
		return ""
	}

	jpg, err := thumbnail.ToJPEG(item.ThumbnailPath)
	if err != nil {
		log.Warn("thumbnail conversion failed", slog.String("step", string(StepThumbnail)), slog.Any("error", err))
		return ""
	}
	if jpg != item.ThumbnailPath {
		log.Debug("converted thumbnail", slog.String("cover", jpg))
	}
	return jpg
}

func (p *Pipeline) embed(ctx context.Context, req lyricsync.EmbedRequest, log *slog.Logger) (Status, lyricsync.Step, error) {
	if !req.HasLyrics() && !req.HasCover() {
		log.Info("nothing to embed")
		return StatusSkipped, StepEmbed, nil
	}

	opts := []lyricsync.EmbedOption{lyricsync.WithLogger(log)}
	if p.cfg.Paths.LockDir != "" {
		opts = append(opts, lyricsync.WithLockDir(p.cfg.Paths.LockDir))
	}
	opts = append(opts, p.embedOpts...)

	if err := lyricsync.Embed(ctx, req, opts...); err != nil {
		var unsupported *lyricsync.UnsupportedFormatError
		if errors.As(err, &unsupported) {
			log.Warn("unsupported format for embedding", slog.String("format", req.Format.String()))
			return StatusUnsupported, StepEmbed, err
		}
		step := StepEmbed
		var tagErr *lyricsync.TagError
		if errors.As(err, &tagErr) {
			step = tagErr.Step
		}
		log.Error("embed failed", slog.String("step", string(step)), slog.Any("error", err))
		return StatusFailed, step, err
	}

	if req.HasLyrics() {
		if err := lyricsync.VerifyDetailed(req.AudioPath, req.Format, *req.Lyrics); err != nil {
			log.Warn("lyrics verification failed", slog.Any("error", err))
			return StatusMismatch, lyricsync.StepVerify, err
		}
	}
	if req.HasCover() {
		if err := lyricsync.VerifyCover(req.AudioPath, req.Format, req.Cover); err != nil {
			log.Warn("cover verification failed", slog.Any("error", err))
			return StatusMismatch, lyricsync.StepVerify, err
		}
	}
	log.Info("verified embed", slog.Bool("lyrics", req.HasLyrics()), slog.Bool("cover", req.HasCover()))
	return StatusSuccess, "", nil
}

// cleanup removes intermediate files. The audio file and lyrics sidecar are
// never removed.
func (p *Pipeline) cleanup(item Item, coverPath string, log *slog.Logger) {
	leftovers := []string{item.SubtitlePath, item.ThumbnailPath}
	if coverPath != item.ThumbnailPath {
		leftovers = append(leftovers, coverPath)
	}
	if err := fileutil.Remove(leftovers...); err != nil {
		log.Warn("cleanup failed", slog.String("step", string(StepCleanup)), slog.Any("error", err))
	}
	if item.Dir != "" {
		_ = os.Remove(item.Dir) //nolint:errcheck // Only succeeds once the directory is empty
	}
}

func (p *Pipeline) logSummary(outcomes []Outcome) {
	s := Summarize(outcomes)
	p.logger.Info("run finished",
		slog.Int("total", s.Total),
		slog.Int("succeeded", s.Succeeded),
		slog.Int("failed", s.Failed),
		slog.Int("unsupported", s.Unsupported),
		slog.Int("mismatched", s.Mismatched),
		slog.Int("skipped", s.Skipped),
	)
}
