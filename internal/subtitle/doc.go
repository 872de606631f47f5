// Package subtitle extracts timed cues from WebVTT caption tracks.
//
// Parsing is best effort: lines that are neither a timing line nor part of a
// cue's text block are skipped silently. Headers, cue identifiers, NOTE and
// STYLE blocks all fall into that category. ParseStrict runs the same parser
// but also reports timing lines it had to discard.
//
// Only the start timestamp of a cue is kept. It is normalized to minutes,
// seconds and centiseconds, with the hour folded into the minute so tracks
// longer than an hour keep a monotonically increasing minute field.
//
// Cue text is NFC-normalized after markup removal. A decomposed accent
// ("e" followed by U+0301) therefore comes out precomposed ("é"), where
// cleaning without normalization would keep the decomposed bytes.
package subtitle
