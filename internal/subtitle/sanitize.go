package subtitle

import (
	"html"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// markupRe matches a markup tag. The match is non-greedy and has no notion
// of nesting, so an unclosed '<' swallows text up to the next '>'.
var markupRe = regexp.MustCompile(`<.*?>`)

const musicNote = "♪"

// Sanitize turns raw cue text into plain lyric text.
//
// HTML character references are decoded first, then every <...> tag and
// music-note glyph is removed, the result is NFC-normalized and trimmed.
// Text made only of markup, decoration or whitespace yields "".
func Sanitize(text string) string {
	text = html.UnescapeString(text)
	text = markupRe.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, musicNote, "")
	text = norm.NFC.String(text)
	return strings.TrimSpace(text)
}
