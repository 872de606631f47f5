package pipeline

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/simonhull/lyricsync/internal/thumbnail"
)

// Discover builds an Item for a local audio file by looking for companion
// files that share its name: "<title>.<lang>.vtt" for each lang in order,
// then "<title>.vtt", and a thumbnail as yt-dlp would have written it.
func Discover(audioPath string, langs []string) Item {
	dir := filepath.Dir(audioPath)
	title := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))

	item := Item{
		Source:        audioPath,
		Title:         title,
		AudioPath:     audioPath,
		ThumbnailPath: thumbnail.Find(dir, title),
	}

	candidates := make([]string, 0, len(langs)+1)
	for _, lang := range langs {
		candidates = append(candidates, title+"."+lang+".vtt")
	}
	candidates = append(candidates, title+".vtt")
	for _, name := range candidates {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			item.SubtitlePath = path
			break
		}
	}
	return item
}
