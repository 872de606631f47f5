package mp3

import (
	"fmt"

	"github.com/bogem/id3v2/v2"

	"github.com/simonhull/lyricsync/internal/registry"
	"github.com/simonhull/lyricsync/internal/types"
)

type opener struct{}

// Open parses the file's ID3v2 tag. A file with no tag gets an empty one.
func (opener) Open(path string) (registry.TagEditor, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, fmt.Errorf("open id3v2 tag: %w", err)
	}
	return &editor{path: path, tag: tag}, nil
}

type editor struct {
	path string
	tag  *id3v2.Tag
}

func (e *editor) RemoveLyrics() error {
	e.tag.DeleteFrames(e.tag.CommonID("Unsynchronised lyrics/text transcription"))
	return nil
}

func (e *editor) WriteLyrics(text string) error {
	e.tag.AddUnsynchronisedLyricsFrame(id3v2.UnsynchronisedLyricsFrame{
		Encoding:          id3v2.EncodingUTF8,
		Language:          lyricsLanguage,
		ContentDescriptor: lyricsDescriptor,
		Lyrics:            text,
	})
	return nil
}

func (e *editor) RemoveCover() error {
	e.tag.DeleteFrames(e.tag.CommonID("Attached picture"))
	return nil
}

func (e *editor) WriteCover(jpeg []byte) error {
	e.tag.AddAttachedPicture(id3v2.PictureFrame{
		Encoding:    id3v2.EncodingUTF8,
		MimeType:    types.MIMETypeJPEG,
		PictureType: id3v2.PTFrontCover,
		Description: types.CoverDescription,
		Picture:     jpeg,
	})
	return nil
}

// Persist rewrites the tag as ID3v2.4. id3v2 writes through a temporary
// file and renames it over the original.
func (e *editor) Persist() error {
	e.tag.SetVersion(4)
	if err := e.tag.Save(); err != nil {
		return fmt.Errorf("save id3v2 tag: %w", err)
	}
	return nil
}

func (e *editor) Close() error {
	return e.tag.Close()
}
