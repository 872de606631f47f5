// Package types provides the core data structures shared by the embedding
// packages: container formats, embed requests, cover artwork, and errors.
package types

// EmbedRequest describes one embedding operation on one audio file.
//
// Lyrics is nil when no lyrics should be written. Cover is nil or empty when
// the cover step should be skipped; a skipped cover step leaves any existing
// cover untouched.
type EmbedRequest struct {
	AudioPath string
	Format    Format
	Lyrics    *string
	Cover     []byte
}

// NewEmbedRequest builds a request whose Format is derived from the path's
// extension.
func NewEmbedRequest(path string, lyrics *string, cover []byte) EmbedRequest {
	return EmbedRequest{
		AudioPath: path,
		Format:    FormatFromPath(path),
		Lyrics:    lyrics,
		Cover:     cover,
	}
}

// HasLyrics reports whether the request carries lyrics text.
func (r EmbedRequest) HasLyrics() bool {
	return r.Lyrics != nil
}

// HasCover reports whether the request carries cover image bytes.
func (r EmbedRequest) HasCover() bool {
	return len(r.Cover) > 0
}
