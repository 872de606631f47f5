package flac

import (
	"fmt"
	"os"

	goflac "github.com/go-flac/go-flac"
	"github.com/go-flac/flacpicture"
	"github.com/go-flac/flacvorbis"

	"github.com/simonhull/lyricsync/internal/binary"
	"github.com/simonhull/lyricsync/internal/types"
	"github.com/simonhull/lyricsync/internal/vorbis"
)

type reader struct{}

// ReadLyrics returns the value of every LYRICS comment, in block order.
func (reader) ReadLyrics(path string) ([]string, error) {
	var out []string
	_, err := walkBlocks(path, func(blockType uint8, data []byte) error {
		if blockType != blockTypeVorbisComment {
			return nil
		}
		if err := checkVorbisComment(data); err != nil {
			return err
		}
		cmt, err := flacvorbis.ParseFromMetaDataBlock(goflac.MetaDataBlock{Type: goflac.VorbisComment, Data: data})
		if err != nil {
			return err
		}
		out = append(out, vorbis.Values(cmt.Comments, vorbis.FieldLyrics)...)
		return nil
	})
	return out, err
}

// ReadCovers returns every picture block.
func (reader) ReadCovers(path string) ([]types.Artwork, error) {
	var out []types.Artwork
	_, err := walkBlocks(path, func(blockType uint8, data []byte) error {
		if blockType != blockTypePicture || checkPicture(data) != nil {
			return nil
		}
		pic, err := flacpicture.ParseFromMetaDataBlock(goflac.MetaDataBlock{Type: goflac.Picture, Data: data})
		if err != nil {
			// Skip this picture but continue
			return nil
		}
		out = append(out, types.Artwork{
			Type:        types.ArtworkTypeFromCode(uint32(pic.PictureType)),
			MIMEType:    pic.MIME,
			Description: pic.Description,
			Data:        pic.ImageData,
		})
		return nil
	})
	return out, err
}

// walkBlocks calls fn with the type and body of each comment and picture
// block until the block flagged as last. It returns the number of bytes
// following the metadata.
func walkBlocks(path string, fn func(blockType uint8, data []byte) error) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, err
	}
	size := info.Size()
	sr := binary.NewSafeReader(f, size, path)

	magic := make([]byte, 4)
	if err := sr.ReadAt(magic, 0, "FLAC magic bytes"); err != nil {
		return 0, fmt.Errorf("read FLAC magic: %w", err)
	}
	if string(magic) != "fLaC" {
		return 0, &types.CorruptedFileError{
			Path:   path,
			Offset: 0,
			Reason: "invalid FLAC magic bytes",
		}
	}

	offset := int64(4) // After "fLaC"
	for offset < size {
		header, err := binary.Read[uint32](sr, offset, "metadata block header")
		if err != nil {
			return 0, err
		}

		isLast := (header >> 31) == 1
		blockType := uint8((header >> 24) & 0x7F)
		blockLength := int64(header & 0x00FFFFFF)
		offset += 4

		switch blockType {
		case blockTypeVorbisComment, blockTypePicture:
			data, err := sr.ReadBytes(offset, blockLength, fmt.Sprintf("metadata block type %d", blockType))
			if err != nil {
				return 0, err
			}
			if err := fn(blockType, data); err != nil {
				return 0, &types.CorruptedFileError{Path: path, Offset: offset, Reason: err.Error()}
			}
		default:
			// STREAMINFO, padding, seek table and the rest carry no tags
		}

		offset += blockLength
		if isLast {
			break
		}
	}
	return max(size-offset, 0), nil
}
