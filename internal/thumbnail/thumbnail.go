// Package thumbnail turns downloaded video thumbnails into JPEG cover art.
//
// yt-dlp usually writes WebP thumbnails, but the tag writers only accept
// JPEG covers, so anything else is decoded and re-encoded.
package thumbnail

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	_ "image/png" // register PNG decoder
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/webp" // register WebP decoder

	"github.com/simonhull/lyricsync/internal/types"
)

// Quality is the JPEG encoder quality used for converted covers.
const Quality = 90

// Extensions lists thumbnail extensions yt-dlp may produce, in preference order.
var Extensions = []string{".jpg", ".jpeg", ".webp", ".png"}

// ToJPEG converts the image at src into a JPEG next to it and returns the
// JPEG path. A source that already holds JPEG data is returned unchanged.
func ToJPEG(src string) (string, error) {
	data, err := os.ReadFile(src)
	if err != nil {
		return "", fmt.Errorf("read thumbnail: %w", err)
	}
	if types.IsJPEG(data) {
		return src, nil
	}

	out, err := Encode(data)
	if err != nil {
		return "", fmt.Errorf("convert %s: %w", filepath.Base(src), err)
	}

	dst := strings.TrimSuffix(src, filepath.Ext(src)) + ".jpg"
	if err := os.WriteFile(dst, out, 0o644); err != nil {
		return "", fmt.Errorf("write cover: %w", err)
	}
	return dst, nil
}

// Encode decodes a WebP, PNG or JPEG image and returns it as baseline JPEG.
// Transparency is flattened onto white.
func Encode(data []byte) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	if format == "jpeg" {
		return data, nil
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, image.White, image.Point{}, draw.Src)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Over)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, rgba, &jpeg.Options{Quality: Quality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// Find returns the first thumbnail named stem plus one of Extensions inside
// dir, or "" when none exists.
func Find(dir, stem string) string {
	for _, ext := range Extensions {
		path := filepath.Join(dir, stem+ext)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}
