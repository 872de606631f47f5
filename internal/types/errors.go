package types

import "fmt"

// OutOfBoundsError is returned when attempting to read beyond file bounds.
type OutOfBoundsError struct {
	Path   string
	What   string
	Offset int64
	Length int
	Size   int64
}

func (e *OutOfBoundsError) Error() string {
	if e.Offset >= e.Size {
		return fmt.Sprintf("%s: offset %d out of bounds (file size: %d) while reading %s",
			e.Path, e.Offset, e.Size, e.What)
	}
	return fmt.Sprintf("%s: read of %d bytes at offset %d would exceed file size %d while reading %s",
		e.Path, e.Length, e.Offset, e.Size, e.What)
}

// UnsupportedFormatError is returned when an embed or verify targets a file
// whose extension maps to no supported container.
type UnsupportedFormatError struct {
	Path   string
	Format Format
	Reason string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: unsupported format: %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("%s: unsupported format %s", e.Path, e.Format)
}

// CorruptedFileError is returned when file structure is invalid.
type CorruptedFileError struct {
	Path   string
	Reason string
	Offset int64
}

func (e *CorruptedFileError) Error() string {
	return fmt.Sprintf("%s: corrupted file at offset %d: %s", e.Path, e.Offset, e.Reason)
}

// Step names one stage of the embed protocol.
type Step string

// Embed protocol steps, in execution order.
const (
	StepOpen         Step = "open"
	StepRemoveLyrics Step = "remove-lyrics"
	StepWriteLyrics  Step = "write-lyrics"
	StepRemoveCover  Step = "remove-cover"
	StepWriteCover   Step = "write-cover"
	StepPersist      Step = "persist"
	StepVerify       Step = "verify"
)

// TagError reports that a tag block could not be opened, edited, or saved.
//
// Step identifies which part of the embed protocol failed so callers can
// report it per file.
type TagError struct {
	Err    error
	Path   string
	Step   Step
	Format Format
}

func (e *TagError) Error() string {
	return fmt.Sprintf("%s: %s tag %s failed: %v", e.Path, e.Format, e.Step, e.Err)
}

func (e *TagError) Unwrap() error {
	return e.Err
}

// VerificationMismatchError is returned when a written file does not carry
// the expected lyrics text, or the expected cover, on read-back.
//
// It is a warning-level outcome: the file is left in its written state.
type VerificationMismatchError struct {
	Path    string
	Format  Format
	Entries int  // entries of the checked kind found on read-back
	Cover   bool // the cover was checked rather than the lyrics
}

func (e *VerificationMismatchError) Error() string {
	if e.Cover {
		if e.Entries == 0 {
			return fmt.Sprintf("%s: %s cover missing after write", e.Path, e.Format)
		}
		return fmt.Sprintf("%s: %s cover bytes not found in %d pictures", e.Path, e.Format, e.Entries)
	}
	if e.Entries == 0 {
		return fmt.Sprintf("%s: %s lyrics missing after write", e.Path, e.Format)
	}
	return fmt.Sprintf("%s: %s lyrics text not found in %d lyrics entries", e.Path, e.Format, e.Entries)
}
