package types

import (
	"path/filepath"
	"strings"
)

// Format represents the container format of an audio file.
//
// The format decides which tag block an embed writes: MP4 atoms, ID3v2
// frames, or FLAC Vorbis comments and PICTURE blocks.
type Format int

const (
	// FormatUnknown represents an extension no embedder handles.
	FormatUnknown Format = iota
	// FormatMP4 represents MP4/M4A files tagged with iTunes atoms.
	FormatMP4
	// FormatMP3 represents MP3 files tagged with ID3v2 frames.
	FormatMP3
	// FormatFLAC represents FLAC files tagged with Vorbis comments.
	FormatFLAC
)

// String returns the display name of the format.
func (f Format) String() string {
	switch f {
	case FormatMP4:
		return "MP4"
	case FormatMP3:
		return "MP3"
	case FormatFLAC:
		return "FLAC"
	default:
		return "Unknown"
	}
}

// Extensions returns the file extensions mapped to this format.
func (f Format) Extensions() []string {
	switch f {
	case FormatMP4:
		return []string{".m4a", ".mp4"}
	case FormatMP3:
		return []string{".mp3"}
	case FormatFLAC:
		return []string{".flac"}
	case FormatUnknown:
		return nil
	default:
		return nil
	}
}

// Supported reports whether the format has an embedder.
func (f Format) Supported() bool {
	return f == FormatMP4 || f == FormatMP3 || f == FormatFLAC
}

// FormatFromPath maps a file extension to a Format.
//
// The mapping is by extension only; file content is never sniffed. An
// extension outside the supported set yields FormatUnknown.
func FormatFromPath(path string) Format {
	return FormatFromExtension(filepath.Ext(path))
}

// FormatFromExtension maps an extension, with or without the leading dot,
// to a Format. Matching is case-insensitive.
func FormatFromExtension(ext string) Format {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	for _, f := range []Format{FormatMP4, FormatMP3, FormatFLAC} {
		for _, candidate := range f.Extensions() {
			if ext == candidate {
				return f
			}
		}
	}
	return FormatUnknown
}
