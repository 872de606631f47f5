// Package lrc renders caption transcripts as line-synchronized lyrics.
//
// Each lyric line carries a [MM:SS.cc] time tag. The minute field is padded
// to two digits but grows past 99 for long tracks.
package lrc

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/simonhull/lyricsync/internal/subtitle"
)

// Line is one time-tagged lyric line.
type Line struct {
	Minute      uint
	Second      uint
	Centisecond uint
	Text        string
}

// Tag returns the [MM:SS.cc] time tag of the line.
func (l Line) Tag() string {
	return fmt.Sprintf("[%02d:%02d.%02d]", l.Minute, l.Second, l.Centisecond)
}

func (l Line) String() string {
	return l.Tag() + l.Text
}

// Format renders a transcript as lyrics text.
//
// Cues with empty text are skipped. Lines are joined with "\n" and the
// result has no trailing newline.
func Format(t subtitle.Transcript) string {
	var b strings.Builder
	for _, cue := range t.Cues {
		if cue.Text == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(Line{
			Minute:      cue.StartMinute,
			Second:      cue.StartSecond,
			Centisecond: cue.StartCentisecond,
			Text:        cue.Text,
		}.String())
	}
	return b.String()
}

// Convert parses a WebVTT caption track and renders it as lyrics text.
func Convert(raw string) string {
	return Format(subtitle.Parse(raw))
}

var lineRe = regexp.MustCompile(`^\[(\d+):(\d{2})\.(\d{2})\](.*)$`)

// Parse reads lyrics text back into lines. Lines without a leading time
// tag are ignored.
func Parse(text string) []Line {
	var lines []Line
	for _, raw := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		m := lineRe.FindStringSubmatch(raw)
		if m == nil {
			continue
		}
		minute, err := strconv.ParseUint(m[1], 10, 32)
		if err != nil {
			continue
		}
		second, _ := strconv.ParseUint(m[2], 10, 8)      //nolint:errcheck // two digits always parse
		centisecond, _ := strconv.ParseUint(m[3], 10, 8) //nolint:errcheck // two digits always parse
		lines = append(lines, Line{
			Minute:      uint(minute),
			Second:      uint(second),
			Centisecond: uint(centisecond),
			Text:        m[4],
		})
	}
	return lines
}
