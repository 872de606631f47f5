package subtitle

import (
	"regexp"
	"strconv"
	"strings"
)

// timingLineRe matches "H:MM:SS.fff --> H:MM:SS.fff" at the start of a line.
// Cue settings after the end timestamp are allowed and ignored.
var timingLineRe = regexp.MustCompile(`^(\d+):(\d+):(\d+)\.(\d+) --> (\d+):(\d+):(\d+)\.(\d+)`)

// Parse extracts the cues of a WebVTT caption track.
//
// Parse never fails; anything it cannot use is skipped.
func Parse(raw string) Transcript {
	t, _ := parse(raw)
	return t
}

// ParseStrict parses like Parse and also returns a diagnostic for every
// timing line that was discarded.
func ParseStrict(raw string) (Transcript, []Diagnostic) {
	return parse(raw)
}

func parse(raw string) (Transcript, []Diagnostic) {
	lines := splitLines(raw)

	var (
		transcript Transcript
		diags      []Diagnostic
	)

	for i := 0; i < len(lines); {
		line := strings.TrimSpace(lines[i])
		m := timingLineRe.FindStringSubmatch(line)
		if m == nil {
			if strings.Contains(line, "-->") {
				diags = append(diags, Diagnostic{Line: i + 1, Text: line, Reason: "malformed timing line"})
			}
			i++
			continue
		}

		cue, reason := startOf(m)
		if reason != "" {
			diags = append(diags, Diagnostic{Line: i + 1, Text: line, Reason: reason})
		}
		i++

		var text []string
		for i < len(lines) && strings.TrimSpace(lines[i]) != "" {
			if cleaned := Sanitize(strings.TrimSpace(lines[i])); cleaned != "" {
				text = append(text, cleaned)
			}
			i++
		}

		if reason != "" {
			continue
		}
		cue.Text = strings.TrimSpace(strings.Join(text, " "))
		if cue.Text != "" {
			transcript.Cues = append(transcript.Cues, cue)
		}
	}

	return transcript, diags
}

// startOf converts the start timestamp groups of a timing line match into a
// Cue. A non-empty reason means the timestamp is unusable.
func startOf(m []string) (Cue, string) {
	hours, err1 := strconv.ParseUint(m[1], 10, 32)
	minutes, err2 := strconv.ParseUint(m[2], 10, 32)
	seconds, err3 := strconv.ParseUint(m[3], 10, 32)
	if err1 != nil || err2 != nil || err3 != nil {
		return Cue{}, "timestamp field overflow"
	}
	if seconds >= 60 {
		return Cue{}, "seconds out of range"
	}

	return Cue{
		StartMinute:      uint(hours*60 + minutes),
		StartSecond:      uint(seconds),
		StartCentisecond: centiseconds(m[4]),
	}, ""
}

// centiseconds truncates a fractional-second digit string to hundredths.
// Up to three digits are read as milliseconds ("5" is 5ms, "50" is 50ms);
// digits past the third are dropped.
func centiseconds(frac string) uint {
	if len(frac) > 3 {
		frac = frac[:3]
	}
	ms, err := strconv.ParseUint(frac, 10, 16)
	if err != nil {
		return 0
	}
	return uint(ms / 10)
}

func splitLines(raw string) []string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	return strings.Split(raw, "\n")
}
