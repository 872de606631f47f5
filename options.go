package lyricsync

import (
	"log/slog"
	"os"
	"path/filepath"
)

// EmbedOption configures behavior when embedding into audio files.
//
// Options use the functional options pattern for clean, extensible APIs.
//
// Example:
//
//	err := lyricsync.Embed(ctx, req,
//	    lyricsync.WithBackup(".bak"),
//	    lyricsync.WithPreserveModTime(),
//	)
type EmbedOption func(*embedOptions)

// embedOptions holds configuration for one embed.
type embedOptions struct {
	logger          *slog.Logger
	backupSuffix    string // Suffix for backup file (e.g., ".bak")
	preserveModTime bool   // Keep original modification time
	lock            bool   // Hold an exclusive per-file lock
	lockDir         string // Where lock files live
}

// defaultEmbedOptions returns the default configuration for embedding.
func defaultEmbedOptions() *embedOptions {
	return &embedOptions{
		logger:  slog.New(slog.DiscardHandler),
		lock:    true,
		lockDir: filepath.Join(os.TempDir(), "lyricsync-locks"),
	}
}

// WithLogger sets the logger used for step-level diagnostics. Embed is
// silent by default.
func WithLogger(logger *slog.Logger) EmbedOption {
	return func(o *embedOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithBackup creates a backup of the original file before embedding.
//
// The backup file will have the specified suffix appended to the original
// filename. For example, WithBackup(".bak") will create "song.mp3.bak"
// before modifying "song.mp3".
//
// If the backup file already exists, it will be overwritten.
func WithBackup(suffix string) EmbedOption {
	return func(o *embedOptions) {
		o.backupSuffix = suffix
	}
}

// WithPreserveModTime keeps the original file modification time.
//
// By default, embedding updates the file's modification time to the
// current time.
func WithPreserveModTime() EmbedOption {
	return func(o *embedOptions) {
		o.preserveModTime = true
	}
}

// WithoutLock skips the per-file advisory lock. Use it only when the
// caller already serializes access to the file.
func WithoutLock() EmbedOption {
	return func(o *embedOptions) {
		o.lock = false
	}
}

// WithLockDir sets the directory holding per-file lock files.
func WithLockDir(dir string) EmbedOption {
	return func(o *embedOptions) {
		if dir != "" {
			o.lockDir = dir
		}
	}
}
