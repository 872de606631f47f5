package lyricsync

import (
	"errors"

	"github.com/simonhull/lyricsync/internal/types"
)

// OutOfBoundsError is an alias to types.OutOfBoundsError.
// Re-exporting from internal/types to maintain public API.
type OutOfBoundsError = types.OutOfBoundsError

// UnsupportedFormatError is an alias to types.UnsupportedFormatError.
// Re-exporting from internal/types to maintain public API.
type UnsupportedFormatError = types.UnsupportedFormatError

// CorruptedFileError is an alias to types.CorruptedFileError.
// Re-exporting from internal/types to maintain public API.
type CorruptedFileError = types.CorruptedFileError

// TagError is an alias to types.TagError.
type TagError = types.TagError

// VerificationMismatchError is an alias to types.VerificationMismatchError.
type VerificationMismatchError = types.VerificationMismatchError

// Step is an alias to types.Step.
type Step = types.Step

// Embed protocol steps.
const (
	StepOpen         = types.StepOpen
	StepRemoveLyrics = types.StepRemoveLyrics
	StepWriteLyrics  = types.StepWriteLyrics
	StepRemoveCover  = types.StepRemoveCover
	StepWriteCover   = types.StepWriteCover
	StepPersist      = types.StepPersist
	StepVerify       = types.StepVerify
)

// ErrFileLocked is wrapped in a TagError when another process holds the
// lock for the same audio file.
var ErrFileLocked = errors.New("audio file is locked by another process")
