package types

import (
	"errors"
	"strings"
	"testing"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"song.m4a", FormatMP4},
		{"video.MP4", FormatMP4},
		{"/music/track.mp3", FormatMP3},
		{"Track.Mp3", FormatMP3},
		{"album/01.flac", FormatFLAC},
		{"song.ogg", FormatUnknown},
		{"song.wav", FormatUnknown},
		{"noext", FormatUnknown},
		{"archive.flac.bak", FormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := FormatFromPath(tt.path); got != tt.want {
				t.Errorf("FormatFromPath(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestFormatFromExtension_WithoutDot(t *testing.T) {
	if got := FormatFromExtension("FLAC"); got != FormatFLAC {
		t.Errorf("FormatFromExtension(FLAC) = %v, want FLAC", got)
	}
	if got := FormatFromExtension(""); got != FormatUnknown {
		t.Errorf("FormatFromExtension(\"\") = %v, want Unknown", got)
	}
}

func TestFormat_Supported(t *testing.T) {
	for _, f := range []Format{FormatMP4, FormatMP3, FormatFLAC} {
		if !f.Supported() {
			t.Errorf("%v should be supported", f)
		}
	}
	if FormatUnknown.Supported() {
		t.Error("FormatUnknown should not be supported")
	}
	if Format(42).String() != "Unknown" {
		t.Errorf("out-of-range format String() = %q", Format(42).String())
	}
}

func TestNewEmbedRequest(t *testing.T) {
	lyrics := "[00:01.50]Hello"
	req := NewEmbedRequest("a/b/song.m4a", &lyrics, nil)

	if req.Format != FormatMP4 {
		t.Errorf("Format = %v, want MP4", req.Format)
	}
	if !req.HasLyrics() {
		t.Error("HasLyrics() = false, want true")
	}
	if req.HasCover() {
		t.Error("HasCover() = true for nil cover")
	}
	req.Cover = []byte{}
	if req.HasCover() {
		t.Error("HasCover() = true for empty cover")
	}
}

func TestTagError_Unwrap(t *testing.T) {
	inner := errors.New("disk full")
	err := &TagError{Path: "song.mp3", Format: FormatMP3, Step: StepPersist, Err: inner}

	if !errors.Is(err, inner) {
		t.Error("TagError should unwrap to the inner error")
	}
	msg := err.Error()
	for _, want := range []string{"song.mp3", "MP3", "persist", "disk full"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error message %q should contain %q", msg, want)
		}
	}
}

func TestVerificationMismatchError_Error(t *testing.T) {
	missing := &VerificationMismatchError{Path: "a.flac", Format: FormatFLAC}
	if !strings.Contains(missing.Error(), "missing") {
		t.Errorf("unexpected message: %s", missing.Error())
	}

	differs := &VerificationMismatchError{Path: "a.flac", Format: FormatFLAC, Entries: 2}
	if !strings.Contains(differs.Error(), "2 lyrics entries") {
		t.Errorf("unexpected message: %s", differs.Error())
	}
}

func TestIsJPEG(t *testing.T) {
	if !IsJPEG([]byte{0xFF, 0xD8, 0xFF, 0xE0}) {
		t.Error("JPEG SOI not detected")
	}
	if IsJPEG([]byte("\x89PNG\r\n\x1a\n")) {
		t.Error("PNG reported as JPEG")
	}
}
