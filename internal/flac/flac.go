// Package flac edits and reads lyrics comments and picture blocks in FLAC
// metadata.
//
// Writes parse the whole file with github.com/go-flac/go-flac and replace it
// atomically. Reads walk only the metadata block headers and decode the
// blocks they need, so verification never loads audio frames.
package flac

import (
	"github.com/simonhull/lyricsync/internal/registry"
	"github.com/simonhull/lyricsync/internal/types"
)

// Metadata block types
const (
	blockTypeStreamInfo    = 0
	blockTypePadding       = 1
	blockTypeVorbisComment = 4
	blockTypePicture       = 6
)

func init() {
	registry.RegisterOpener(types.FormatFLAC, opener{})
	registry.RegisterReader(types.FormatFLAC, reader{})
}
