package thumbnail

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/simonhull/lyricsync/internal/types"
)

// 1x1 lossless WebP.
const webpPixel = "UklGRhoAAABXRUJQVlA4TA0AAAAvAAAAEAcQERGIiP4HAA=="

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := range 4 {
		for x := range 4 {
			img.Set(x, y, color.NRGBA{R: 200, A: uint8(x * 60)})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func jpegBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, image.NewGray(image.Rect(0, 0, 2, 2)), nil); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func webpBytes(t *testing.T) []byte {
	t.Helper()
	data, err := base64.StdEncoding.DecodeString(webpPixel)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestToJPEG(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		data    func(*testing.T) []byte
		wantOut string
	}{
		{"webp", "Song.webp", webpBytes, "Song.jpg"},
		{"png", "Song.png", pngBytes, "Song.jpg"},
		{"jpeg kept", "Song.jpg", jpegBytes, "Song.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			src := filepath.Join(dir, tt.file)
			if err := os.WriteFile(src, tt.data(t), 0o644); err != nil {
				t.Fatal(err)
			}

			got, err := ToJPEG(src)
			if err != nil {
				t.Fatalf("ToJPEG returned error: %v", err)
			}
			if want := filepath.Join(dir, tt.wantOut); got != want {
				t.Errorf("ToJPEG = %q, want %q", got, want)
			}

			out, err := os.ReadFile(got)
			if err != nil {
				t.Fatal(err)
			}
			if !types.IsJPEG(out) {
				t.Errorf("output does not start with a JPEG marker: % x", out[:min(4, len(out))])
			}
			if _, err := jpeg.Decode(bytes.NewReader(out)); err != nil {
				t.Errorf("output is not decodable: %v", err)
			}
		})
	}
}

func TestToJPEGErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := ToJPEG(filepath.Join(dir, "missing.webp")); err == nil {
		t.Error("expected error for missing file")
	}

	garbage := filepath.Join(dir, "garbage.webp")
	if err := os.WriteFile(garbage, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ToJPEG(garbage); err == nil {
		t.Error("expected error for undecodable data")
	}
	if _, err := os.Stat(filepath.Join(dir, "garbage.jpg")); !os.IsNotExist(err) {
		t.Error("no output should be written on failure")
	}
}

func TestFind(t *testing.T) {
	dir := t.TempDir()
	if got := Find(dir, "Song"); got != "" {
		t.Errorf("Find in empty dir = %q", got)
	}

	for _, name := range []string{"Song.webp", "Song.jpg"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if got := Find(dir, "Song"); got != filepath.Join(dir, "Song.jpg") {
		t.Errorf("Find = %q, want the jpg first", got)
	}
}
