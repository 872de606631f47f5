package flac

import (
	"fmt"
	"io"

	goflac "github.com/go-flac/go-flac"
	"github.com/go-flac/flacpicture"
	"github.com/go-flac/flacvorbis"

	"github.com/simonhull/lyricsync/internal/fileutil"
	"github.com/simonhull/lyricsync/internal/registry"
	"github.com/simonhull/lyricsync/internal/types"
	"github.com/simonhull/lyricsync/internal/vorbis"
)

type opener struct{}

// minFrameBytes is the frame sync code go-flac reads after the metadata.
const minFrameBytes = 2

func (opener) Open(path string) (registry.TagEditor, error) {
	frames, err := walkBlocks(path, checkBlock)
	if err != nil {
		return nil, fmt.Errorf("parse flac: %w", err)
	}
	if frames < minFrameBytes {
		return nil, &types.CorruptedFileError{Path: path, Reason: "no audio frames after metadata"}
	}

	f, err := goflac.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("parse flac: %w", err)
	}

	e := &editor{path: path, file: f, commentIdx: -1}
	for i, block := range f.Meta {
		if block.Type != goflac.VorbisComment {
			continue
		}
		if err := checkVorbisComment(block.Data); err != nil {
			return nil, &types.CorruptedFileError{
				Path:   path,
				Reason: fmt.Sprintf("vorbis comment block %d: %v", i, err),
			}
		}
		cmt, err := flacvorbis.ParseFromMetaDataBlock(*block)
		if err != nil {
			return nil, &types.CorruptedFileError{
				Path:   path,
				Reason: fmt.Sprintf("vorbis comment block %d: %v", i, err),
			}
		}
		// Only the first comment block is kept; extras are folded into it.
		if e.comments == nil {
			e.comments = cmt
			e.commentIdx = i
			continue
		}
		e.comments.Comments = append(e.comments.Comments, cmt.Comments...)
		e.dropped = append(e.dropped, i)
	}
	return e, nil
}

type editor struct {
	path string
	file *goflac.File

	comments   *flacvorbis.MetaDataBlockVorbisComment
	commentIdx int
	dropped    []int
}

func (e *editor) RemoveLyrics() error {
	if e.comments == nil {
		return nil
	}
	e.comments.Comments, _ = vorbis.Without(e.comments.Comments, vorbis.LyricsFields...)
	return nil
}

func (e *editor) WriteLyrics(text string) error {
	if e.comments == nil {
		e.comments = flacvorbis.New()
	}
	return e.comments.Add(vorbis.FieldLyrics, text)
}

func (e *editor) RemoveCover() error {
	meta := e.file.Meta[:0]
	for i, block := range e.file.Meta {
		if block.Type == goflac.Picture {
			e.shift(i)
			continue
		}
		meta = append(meta, block)
	}
	e.file.Meta = meta
	return nil
}

// shift keeps block indexes valid after block i is removed.
func (e *editor) shift(removed int) {
	if e.commentIdx > removed {
		e.commentIdx--
	}
	for j, d := range e.dropped {
		if d > removed {
			e.dropped[j]--
		}
	}
}

func (e *editor) WriteCover(jpeg []byte) error {
	pic, err := flacpicture.NewFromImageData(
		flacpicture.PictureTypeFrontCover,
		types.CoverDescription,
		jpeg,
		types.MIMETypeJPEG,
	)
	if err != nil {
		return fmt.Errorf("build picture block: %w", err)
	}
	block := pic.Marshal()
	e.file.Meta = append(e.file.Meta, &block)
	return nil
}

func (e *editor) Persist() error {
	if e.comments != nil {
		block := e.comments.Marshal()
		if e.commentIdx >= 0 {
			e.file.Meta[e.commentIdx] = &block
		} else {
			e.file.Meta = append(e.file.Meta, &block)
			e.commentIdx = len(e.file.Meta) - 1
		}
	}

	if len(e.dropped) > 0 {
		drop := make(map[int]bool, len(e.dropped))
		for _, d := range e.dropped {
			drop[d] = true
		}
		meta := e.file.Meta[:0]
		for i, block := range e.file.Meta {
			if !drop[i] {
				meta = append(meta, block)
			}
		}
		e.file.Meta = meta
		e.dropped = nil
	}

	return fileutil.Replace(e.path, func(w io.Writer) error {
		_, err := w.Write(e.file.Marshal())
		return err
	})
}

func (e *editor) Close() error {
	e.file = nil
	return nil
}
