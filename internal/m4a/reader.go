package m4a

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/simonhull/lyricsync/internal/binary"
	"github.com/simonhull/lyricsync/internal/types"
)

type reader struct{}

// ReadLyrics returns the text of every data atom under every ©lyr item.
func (reader) ReadLyrics(path string) ([]string, error) {
	var out []string
	err := walkItems(path, typeLyrics, func(sr *binary.SafeReader, data *Atom) error {
		value, err := readDataValue(sr, data)
		if err != nil {
			return err
		}
		out = append(out, strings.TrimRight(string(value), "\x00"))
		return nil
	})
	return out, err
}

// ReadCovers returns every image under every covr item.
func (reader) ReadCovers(path string) ([]types.Artwork, error) {
	var out []types.Artwork
	err := walkItems(path, typeCover, func(sr *binary.SafeReader, data *Atom) error {
		art, err := parseCovrData(sr, data)
		if err != nil {
			// Some artwork is better than none
			return nil
		}
		out = append(out, art)
		return nil
	})
	return out, err
}

// walkItems navigates moov → udta → meta → ilst and calls fn for each data
// atom inside every item of the given type. Missing levels mean no items.
func walkItems(path, itemType string, fn func(*binary.SafeReader, *Atom) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	sr := binary.NewSafeReader(f, info.Size(), path)

	ilst, err := findIlst(sr, info.Size())
	if err != nil || ilst == nil {
		return err
	}

	items, err := readAtoms(sr, ilst.DataOffset(), ilst.End())
	if err != nil {
		return err
	}
	for _, item := range items {
		if item.Type != itemType {
			continue
		}
		children, err := readAtoms(sr, item.DataOffset(), item.End())
		if err != nil {
			return err
		}
		for _, c := range children {
			if c.Type != typeData {
				continue
			}
			if err := fn(sr, c); err != nil {
				return err
			}
		}
	}
	return nil
}

// findIlst returns the ilst atom or nil when the file carries no iTunes
// metadata.
func findIlst(sr *binary.SafeReader, size int64) (*Atom, error) {
	var cur *Atom
	start, end := int64(0), size

	for _, t := range []string{typeMoov, typeUdta, typeMeta, typeIlst} {
		next, err := findAtom(sr, start, end, t)
		if errors.Is(err, errAtomNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		cur = next
		start, end = cur.DataOffset(), cur.End()

		if t == typeMeta {
			n, err := metaPrefixLen(sr, cur)
			if err != nil {
				return nil, err
			}
			start += n
		}
	}
	return cur, nil
}

// readDataValue returns the value bytes of a data atom.
//
// Layout:
//
//	[1 byte]   version
//	[3 bytes]  flags (type indicator)
//	[4 bytes]  locale
//	[rest]     value
func readDataValue(sr *binary.SafeReader, data *Atom) ([]byte, error) {
	size := int64(data.DataSize()) - 8
	if size < 0 {
		return nil, &types.CorruptedFileError{
			Path:   sr.Path(),
			Offset: data.Offset,
			Reason: fmt.Sprintf("data atom too short: %d bytes", data.DataSize()),
		}
	}
	return sr.ReadBytes(data.DataOffset()+8, size, "data atom value")
}

// parseCovrData extracts artwork from a single covr data atom.
func parseCovrData(sr *binary.SafeReader, dataAtom *Atom) (types.Artwork, error) {
	versionFlags, err := binary.Read[uint32](sr, dataAtom.DataOffset(), "data version+flags")
	if err != nil {
		return types.Artwork{}, err
	}

	imageData, err := readDataValue(sr, dataAtom)
	if err != nil {
		return types.Artwork{}, err
	}
	if len(imageData) == 0 {
		return types.Artwork{}, fmt.Errorf("empty cover data atom at offset %d", dataAtom.Offset)
	}

	return types.Artwork{
		Type:     types.ArtworkFrontCover, // covr has no picture type
		MIMEType: flagsToMIMEType(uint8(versionFlags & 0xFF)),
		Data:     imageData,
	}, nil
}

// flagsToMIMEType converts the data atom type indicator to a MIME type.
func flagsToMIMEType(flags byte) string {
	switch flags {
	case flagJPEG:
		return types.MIMETypeJPEG
	case flagPNG:
		return "image/png"
	case flagBMP:
		return "image/bmp"
	default:
		return types.MIMETypeJPEG
	}
}
