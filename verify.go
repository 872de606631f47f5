package lyricsync

import (
	"bytes"
	"strings"

	"github.com/simonhull/lyricsync/internal/registry"
	"github.com/simonhull/lyricsync/internal/types"
)

// Verify reports whether the file's tag block carries lyrics verbatim in
// one of its lyrics entries. It returns false for unsupported formats and
// on any read failure; use VerifyDetailed for the reason.
func Verify(path string, format Format, lyrics string) bool {
	return VerifyDetailed(path, format, lyrics) == nil
}

// VerifyDetailed re-reads the file's lyrics entries without modifying it.
//
// It returns nil when an entry contains lyrics, *VerificationMismatchError
// when none does, *UnsupportedFormatError when the format has no reader,
// and a *TagError for read failures.
func VerifyDetailed(path string, format Format, lyrics string) error {
	reader := registry.GetReader(format)
	if reader == nil {
		return &UnsupportedFormatError{Path: path, Format: format, Reason: "no tag reader for " + format.String() + " files"}
	}

	entries, err := reader.ReadLyrics(path)
	if err != nil {
		return &TagError{Err: err, Path: path, Step: StepVerify, Format: format}
	}

	for _, e := range entries {
		if strings.Contains(e, lyrics) {
			return nil
		}
	}
	return &VerificationMismatchError{Path: path, Format: format, Entries: len(entries)}
}

// VerifyCover re-reads the file's pictures and reports whether a front
// cover carries exactly the given JPEG bytes. Errors follow VerifyDetailed.
func VerifyCover(path string, format Format, jpeg []byte) error {
	reader := registry.GetReader(format)
	if reader == nil {
		return &UnsupportedFormatError{Path: path, Format: format, Reason: "no tag reader for " + format.String() + " files"}
	}

	covers, err := reader.ReadCovers(path)
	if err != nil {
		return &TagError{Err: err, Path: path, Step: StepVerify, Format: format}
	}

	for _, c := range covers {
		if c.Type == types.ArtworkFrontCover && bytes.Equal(c.Data, jpeg) {
			return nil
		}
	}
	return &VerificationMismatchError{Path: path, Format: format, Entries: len(covers), Cover: true}
}
