package lyricsync

import (
	"github.com/simonhull/lyricsync/internal/types"

	// Tag editors and readers register themselves per format.
	_ "github.com/simonhull/lyricsync/internal/flac"
	_ "github.com/simonhull/lyricsync/internal/m4a"
	_ "github.com/simonhull/lyricsync/internal/mp3"
)

// Format is an alias to types.Format.
// Re-exporting from internal/types to maintain public API.
type Format = types.Format

// Re-export all format constants.
const (
	FormatUnknown = types.FormatUnknown
	FormatMP4     = types.FormatMP4
	FormatMP3     = types.FormatMP3
	FormatFLAC    = types.FormatFLAC
)

// FormatFromPath derives the container format from a file extension.
// Content is never sniffed.
func FormatFromPath(path string) Format {
	return types.FormatFromPath(path)
}

// EmbedRequest is an alias to types.EmbedRequest.
type EmbedRequest = types.EmbedRequest

// NewEmbedRequest builds a request whose format is derived from path.
func NewEmbedRequest(path string, lyrics *string, cover []byte) EmbedRequest {
	return types.NewEmbedRequest(path, lyrics, cover)
}
