package lyricsync

import (
	"github.com/simonhull/lyricsync/internal/lrc"
	"github.com/simonhull/lyricsync/internal/subtitle"
)

// Transcript is the ordered list of cues parsed from a subtitle track.
type Transcript = subtitle.Transcript

// Cue is one timed subtitle entry.
type Cue = subtitle.Cue

// ParseSubtitles parses raw WebVTT-style subtitle text into a transcript.
// Malformed blocks are skipped; it never fails.
func ParseSubtitles(raw string) Transcript {
	return subtitle.Parse(raw)
}

// SanitizeText strips markup and decodes entities from one subtitle line.
func SanitizeText(text string) string {
	return subtitle.Sanitize(text)
}

// FormatLyrics renders a transcript as "[MM:SS.cc]text" lines.
func FormatLyrics(t Transcript) string {
	return lrc.Format(t)
}

// ConvertSubtitles parses raw subtitle text and renders it as lyrics.
func ConvertSubtitles(raw string) string {
	return lrc.Convert(raw)
}
