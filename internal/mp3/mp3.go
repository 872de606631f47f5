// Package mp3 edits and reads lyrics and cover frames in ID3v2 tags.
//
// Writes go through github.com/bogem/id3v2 and always produce an ID3v2.4
// tag so UTF-8 text frames are valid. Reads use a small frame scanner in
// this package, which lets verification check the bytes on disk without
// trusting the writer's own parser.
package mp3

import (
	"github.com/simonhull/lyricsync/internal/registry"
	"github.com/simonhull/lyricsync/internal/types"
)

const (
	frameLyrics  = "USLT"
	framePicture = "APIC"

	lyricsLanguage   = "eng"
	lyricsDescriptor = "Lyrics"
)

func init() {
	registry.RegisterOpener(types.FormatMP3, opener{})
	registry.RegisterReader(types.FormatMP3, reader{})
}
