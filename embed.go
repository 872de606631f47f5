package lyricsync

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/simonhull/lyricsync/internal/fileutil"
	"github.com/simonhull/lyricsync/internal/registry"
	"github.com/simonhull/lyricsync/internal/types"
)

// Embed writes the request's lyrics text and cover image into the tag block
// of its audio file, replacing any prior lyrics and cover entries.
//
// The container format is taken from req.Format and looked up once. A
// format without a registered editor yields *UnsupportedFormatError before
// the file is opened. Lyrics steps run only when req.Lyrics is set and
// cover steps only when req.Cover is non-empty, so an absent cover leaves
// the existing one in place. Cover bytes that are not JPEG data are treated
// as absent and logged as a warning; the lyrics are still written.
//
// Every other failure is a *TagError naming the step. Edits are held in
// memory until the final persist step, so an error or cancellation before
// it leaves the file unchanged.
//
// Example:
//
//	lyrics := "[00:01.50]Hello world"
//	req := lyricsync.NewEmbedRequest("song.mp3", &lyrics, cover)
//	if err := lyricsync.Embed(ctx, req); err != nil {
//		return err
//	}
func Embed(ctx context.Context, req EmbedRequest, opts ...EmbedOption) (err error) {
	options := defaultEmbedOptions()
	for _, opt := range opts {
		opt(options)
	}

	opener := registry.GetOpener(req.Format)
	if opener == nil || !req.Format.Supported() {
		return &UnsupportedFormatError{
			Path:   req.AudioPath,
			Format: req.Format,
			Reason: fmt.Sprintf("no tag editor for %s files", req.Format),
		}
	}

	log := options.logger.With(
		slog.String("path", req.AudioPath),
		slog.String("format", req.Format.String()),
	)
	fail := func(step Step, err error) error {
		return &TagError{Err: err, Path: req.AudioPath, Step: step, Format: req.Format}
	}

	if req.HasCover() && !types.IsJPEG(req.Cover) {
		log.Warn("cover is not JPEG data, leaving existing cover", slog.Int("bytes", len(req.Cover)))
		req.Cover = nil
	}
	if !req.HasLyrics() && !req.HasCover() {
		log.Debug("nothing to embed")
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if options.lock {
		unlock, err := lockAudioFile(options.lockDir, req.AudioPath)
		if err != nil {
			return fail(StepOpen, err)
		}
		defer unlock()
	}

	var modTime time.Time
	if options.preserveModTime {
		if info, err := os.Stat(req.AudioPath); err == nil {
			modTime = info.ModTime()
		}
	}

	if options.backupSuffix != "" {
		if err := fileutil.Copy(req.AudioPath, req.AudioPath+options.backupSuffix); err != nil {
			return fail(StepOpen, fmt.Errorf("create backup: %w", err))
		}
	}

	editor, err := opener.Open(req.AudioPath)
	if err != nil {
		return fail(StepOpen, err)
	}
	defer func() {
		if cerr := editor.Close(); cerr != nil && err == nil {
			err = fail(StepPersist, fmt.Errorf("close: %w", cerr))
		}
	}()

	for _, s := range plan(req, editor) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.run(); err != nil {
			return fail(s.step, err)
		}
		log.Debug("embed step done", slog.String("step", string(s.step)))
	}

	if !modTime.IsZero() {
		_ = os.Chtimes(req.AudioPath, modTime, modTime) //nolint:errcheck // Non-fatal: file was written successfully
	}

	log.Info("embedded metadata",
		slog.Bool("lyrics", req.HasLyrics()),
		slog.Bool("cover", req.HasCover()),
	)
	return nil
}

type step struct {
	step Step
	run  func() error
}

// plan lists the editor calls for req in protocol order.
func plan(req EmbedRequest, editor registry.TagEditor) []step {
	var steps []step
	if req.HasLyrics() {
		lyrics := *req.Lyrics
		steps = append(steps,
			step{StepRemoveLyrics, editor.RemoveLyrics},
			step{StepWriteLyrics, func() error { return editor.WriteLyrics(lyrics) }},
		)
	}
	if req.HasCover() {
		steps = append(steps,
			step{StepRemoveCover, editor.RemoveCover},
			step{StepWriteCover, func() error { return editor.WriteCover(req.Cover) }},
		)
	}
	return append(steps, step{StepPersist, editor.Persist})
}

// lockAudioFile takes an exclusive advisory lock for path without waiting.
// Lock files live in dir, named after a hash of the absolute path, so the
// audio directory stays clean.
func lockAudioFile(dir, path string) (func(), error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create lock dir: %w", err)
	}

	sum := sha256.Sum256([]byte(abs))
	lock := flock.New(filepath.Join(dir, hex.EncodeToString(sum[:8])+".lock"))

	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, ErrFileLocked
	}
	return func() { _ = lock.Unlock() }, nil //nolint:errcheck // Released on process exit regardless
}
