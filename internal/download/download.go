// Package download fetches audio, subtitles and thumbnails with yt-dlp.
//
// Each Fetch runs in its own directory under the configured work dir so the
// produced files can be found by name without racing other downloads.
package download

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lrstanley/go-ytdlp"

	"github.com/simonhull/lyricsync/internal/thumbnail"
)

// Bitrates for the lossy quality presets, in kbps.
var qualityBitrates = map[string]string{
	"low":    "128",
	"medium": "192",
	"high":   "320",
}

// ErrNoAudio is returned when yt-dlp finished but no audio file of the
// requested format was produced.
var ErrNoAudio = errors.New("no audio file produced")

// Options configures a Downloader.
type Options struct {
	// Format is the requested container: m4a, mp4, mp3 or flac.
	Format string

	// Quality is one of low, medium, high or lossless.
	Quality string

	SubtitleLangs  []string
	SubtitleFormat string
	SkipSubtitles  bool

	// Binary is the yt-dlp executable. Empty uses the one on PATH.
	Binary string

	// AutoInstall downloads yt-dlp when it cannot be found.
	AutoInstall bool

	// WorkDir is the parent of the per-fetch directories.
	WorkDir string

	Logger *slog.Logger
}

// Result lists the files a fetch produced. Optional files are empty when
// yt-dlp did not write them.
type Result struct {
	URL   string
	Title string

	// Dir is the per-fetch directory holding every file below.
	Dir string

	AudioPath     string
	SubtitlePath  string
	ThumbnailPath string
}

// Runner executes yt-dlp for one URL, writing into dir.
type Runner interface {
	Run(ctx context.Context, dir, url string) error
}

// RunnerFunc adapts a function to Runner.
type RunnerFunc func(ctx context.Context, dir, url string) error

// Run calls f.
func (f RunnerFunc) Run(ctx context.Context, dir, url string) error {
	return f(ctx, dir, url)
}

// Downloader fetches one URL at a time.
type Downloader struct {
	opts   Options
	runner Runner
}

// New returns a Downloader that shells out to yt-dlp.
func New(opts Options) *Downloader {
	d := &Downloader{opts: opts}
	d.runner = RunnerFunc(d.runYtDlp)
	return d
}

// NewWithRunner returns a Downloader that uses r instead of yt-dlp.
func NewWithRunner(opts Options, r Runner) *Downloader {
	return &Downloader{opts: opts, runner: r}
}

// Install makes sure a yt-dlp executable is available when AutoInstall is set.
func (d *Downloader) Install(ctx context.Context) error {
	if !d.opts.AutoInstall {
		return nil
	}
	if _, err := ytdlp.Install(ctx, nil); err != nil {
		return fmt.Errorf("install yt-dlp: %w", err)
	}
	return nil
}

// Fetch downloads url into a fresh directory under the work dir.
func (d *Downloader) Fetch(ctx context.Context, url string) (*Result, error) {
	if err := os.MkdirAll(d.opts.WorkDir, 0o755); err != nil {
		return nil, fmt.Errorf("create work dir: %w", err)
	}
	dir, err := os.MkdirTemp(d.opts.WorkDir, "fetch-*")
	if err != nil {
		return nil, fmt.Errorf("create fetch dir: %w", err)
	}

	if err := d.runner.Run(ctx, dir, url); err != nil {
		return nil, fmt.Errorf("yt-dlp %s: %w", url, err)
	}

	res, err := d.collect(dir)
	if err != nil {
		return nil, fmt.Errorf("yt-dlp %s: %w", url, err)
	}
	res.URL = url
	return res, nil
}

// collect finds the produced files. The audio file determines the title;
// subtitles and thumbnails share its stem.
func (d *Downloader) collect(dir string) (*Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	ext := "." + AudioExtension(d.opts.Format, d.opts.Quality)
	res := &Result{Dir: dir}
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ext) {
			continue
		}
		res.AudioPath = filepath.Join(dir, entry.Name())
		res.Title = strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		break
	}
	if res.AudioPath == "" {
		return nil, fmt.Errorf("%w (%s in %s)", ErrNoAudio, ext, dir)
	}

	if !d.opts.SkipSubtitles {
		format := d.subtitleFormat()
		for _, lang := range d.opts.SubtitleLangs {
			path := filepath.Join(dir, res.Title+"."+lang+"."+format)
			if _, err := os.Stat(path); err == nil {
				res.SubtitlePath = path
				break
			}
		}
	}

	res.ThumbnailPath = thumbnail.Find(dir, res.Title)
	return res, nil
}

func (d *Downloader) subtitleFormat() string {
	if d.opts.SubtitleFormat == "" {
		return "vtt"
	}
	return d.opts.SubtitleFormat
}

// AudioExtension returns the file extension yt-dlp produces for the given
// format and quality. Lossless always yields FLAC; mp4 requests extract to
// an m4a audio stream.
func AudioExtension(format, quality string) string {
	if quality == "lossless" {
		return "flac"
	}
	switch format {
	case "mp4", "":
		return "m4a"
	default:
		return format
	}
}

func (d *Downloader) command(dir string) *ytdlp.Command {
	codec := AudioExtension(d.opts.Format, d.opts.Quality)

	cmd := ytdlp.New().
		Format("bestaudio/best").
		ExtractAudio().
		AudioFormat(codec).
		ForceOverwrites().
		WriteThumbnail().
		Output(filepath.Join(dir, "%(title)s.%(ext)s"))

	if d.opts.Binary != "" {
		cmd = cmd.SetExecutable(d.opts.Binary)
	}
	// FLAC is never re-encoded to a bitrate.
	if bitrate, ok := qualityBitrates[d.opts.Quality]; ok && codec != "flac" {
		cmd = cmd.AudioQuality(bitrate + "K")
	}
	if !d.opts.SkipSubtitles {
		cmd = cmd.
			WriteSubs().
			WriteAutoSubs().
			SubLangs(strings.Join(d.opts.SubtitleLangs, ",")).
			SubFormat(d.subtitleFormat())
	}
	return cmd
}

func (d *Downloader) runYtDlp(ctx context.Context, dir, url string) error {
	logger := d.opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	cmd := d.command(dir).ProgressFunc(time.Second, func(p ytdlp.ProgressUpdate) {
		logger.Debug("download progress",
			"url", url,
			"status", string(p.Status),
			"file", filepath.Base(p.Filename),
			"percent", fmt.Sprintf("%.1f", p.Percent()),
		)
	})

	_, err := cmd.Run(ctx, url)
	return err
}
