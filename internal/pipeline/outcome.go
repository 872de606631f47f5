package pipeline

import (
	"time"

	"github.com/simonhull/lyricsync"
)

// Status classifies how processing one file ended.
type Status int

const (
	// StatusSuccess means every enabled step completed and verification passed.
	StatusSuccess Status = iota

	// StatusFailed means a step failed; Outcome.Step names it.
	StatusFailed

	// StatusUnsupported means the audio container has no tag editor.
	StatusUnsupported

	// StatusMismatch means the file was written but read-back did not find
	// the lyrics. The file is left as written.
	StatusMismatch

	// StatusSkipped means nothing was embedded, either because there was
	// nothing to write or because the run was cancelled first.
	StatusSkipped
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusFailed:
		return "failed"
	case StatusUnsupported:
		return "unsupported"
	case StatusMismatch:
		return "mismatch"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Pipeline steps surrounding the embed protocol steps.
const (
	StepFetch     lyricsync.Step = "fetch"
	StepThumbnail lyricsync.Step = "thumbnail"
	StepPrepare   lyricsync.Step = "prepare"
	StepLRC       lyricsync.Step = "write-lrc"
	StepMove      lyricsync.Step = "move"
	StepEmbed     lyricsync.Step = "embed"
	StepCleanup   lyricsync.Step = "cleanup"
)

// Outcome reports the result of processing one source.
type Outcome struct {
	// Source is the URL or local path the item came from.
	Source string
	Title  string

	// File is the audio file's final location.
	File string

	// LRCPath is the lyrics sidecar, when one was written.
	LRCPath string

	Status Status

	// Step is the failing step for StatusFailed, StatusMismatch and
	// StatusSkipped outcomes.
	Step lyricsync.Step
	Err  error

	Lyrics   bool
	Cover    bool
	Duration time.Duration
}

// Summary counts outcomes by status.
type Summary struct {
	Total       int
	Succeeded   int
	Failed      int
	Unsupported int
	Mismatched  int
	Skipped     int
}

// Summarize tallies outcomes.
func Summarize(outcomes []Outcome) Summary {
	s := Summary{Total: len(outcomes)}
	for _, o := range outcomes {
		switch o.Status {
		case StatusSuccess:
			s.Succeeded++
		case StatusFailed:
			s.Failed++
		case StatusUnsupported:
			s.Unsupported++
		case StatusMismatch:
			s.Mismatched++
		case StatusSkipped:
			s.Skipped++
		}
	}
	return s
}

// OK reports whether no file failed outright.
func (s Summary) OK() bool {
	return s.Failed == 0 && s.Unsupported == 0
}
