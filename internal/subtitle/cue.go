package subtitle

import "fmt"

// Cue is one timed line of caption text.
type Cue struct {
	StartMinute      uint // hours*60 + minutes, unbounded
	StartSecond      uint // 0-59
	StartCentisecond uint // 0-99
	Text             string
}

// Offset returns the cue start as a number of centiseconds.
func (c Cue) Offset() uint {
	return (c.StartMinute*60+c.StartSecond)*100 + c.StartCentisecond
}

// String renders the cue start as MM:SS.cc followed by the text.
func (c Cue) String() string {
	return fmt.Sprintf("%02d:%02d.%02d %s", c.StartMinute, c.StartSecond, c.StartCentisecond, c.Text)
}

// Transcript is the ordered list of cues of one caption track.
//
// Cues keep the order in which they appear in the source. Cues whose text
// is empty after sanitizing are never added.
type Transcript struct {
	Cues []Cue
}

// Len returns the number of cues.
func (t Transcript) Len() int {
	return len(t.Cues)
}

// Empty reports whether the transcript has no cues.
func (t Transcript) Empty() bool {
	return len(t.Cues) == 0
}

// Diagnostic describes a timing line the parser discarded.
type Diagnostic struct {
	Line   int // 1-based line number
	Text   string
	Reason string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: %s: %q", d.Line, d.Reason, d.Text)
}
