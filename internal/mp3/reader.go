package mp3

import (
	"github.com/simonhull/lyricsync/internal/types"
)

type reader struct{}

// ReadLyrics returns the text of every USLT frame in the file.
func (reader) ReadLyrics(path string) ([]string, error) {
	frames, err := readFrames(path)
	if err != nil {
		return nil, err
	}

	var out []string
	for _, fr := range frames {
		if fr.ID != frameLyrics {
			continue
		}
		_, _, text, err := parseUSLTFrame(fr.Data)
		if err != nil {
			continue
		}
		out = append(out, text)
	}
	return out, nil
}

// ReadCovers returns every attached picture in the file.
func (reader) ReadCovers(path string) ([]types.Artwork, error) {
	frames, err := readFrames(path)
	if err != nil {
		return nil, err
	}

	var out []types.Artwork
	for _, fr := range frames {
		if fr.ID != framePicture {
			continue
		}
		art, err := parseAPICFrame(fr.Data)
		if err != nil {
			continue
		}
		out = append(out, art)
	}
	return out, nil
}
