package m4a

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/simonhull/lyricsync/internal/binary"
	"github.com/simonhull/lyricsync/internal/fileutil"
	"github.com/simonhull/lyricsync/internal/registry"
	"github.com/simonhull/lyricsync/internal/types"
)

type opener struct{}

// Open loads the moov atom of the file at path into memory.
func (opener) Open(path string) (registry.TagEditor, error) {
	e := &editor{path: path}
	if err := e.load(); err != nil {
		e.Close()
		return nil, err
	}
	return e, nil
}

type editor struct {
	path string
	f    *os.File
	size int64

	moovAtom *Atom
	moov     *box
}

func (e *editor) load() error {
	f, err := os.Open(e.path)
	if err != nil {
		return err
	}
	e.f = f

	info, err := f.Stat()
	if err != nil {
		return err
	}
	e.size = info.Size()

	sr := binary.NewSafeReader(f, e.size, e.path)
	top, err := readAtoms(sr, 0, e.size)
	if err != nil {
		return err
	}

	for _, a := range top {
		switch a.Type {
		case typeMoof:
			return &types.UnsupportedFormatError{
				Path:   e.path,
				Format: types.FormatMP4,
				Reason: "fragmented MP4 files cannot be retagged",
			}
		case typeMoov:
			if e.moovAtom == nil {
				e.moovAtom = a
			}
		}
	}
	if e.moovAtom == nil {
		return &types.CorruptedFileError{Path: e.path, Reason: "no moov atom"}
	}

	raw, err := sr.ReadBytes(e.moovAtom.Offset, int64(e.moovAtom.Size), "moov atom")
	if err != nil {
		return err
	}
	msr := binary.NewSafeReader(bytes.NewReader(raw), int64(len(raw)), e.path)
	header, err := readAtomHeader(msr, 0, int64(len(raw)))
	if err != nil {
		return err
	}

	e.moov, err = parseBox(msr, header)
	return err
}

// metadataPath reports an error when the existing udta/meta/ilst chain
// could not be parsed, since editing it would keep stale entries.
func (e *editor) metadataPath() error {
	cur := e.moov
	for _, t := range []string{typeUdta, typeMeta, typeIlst} {
		if cur = cur.child(t); cur == nil {
			return nil
		}
		if cur.opaque {
			return &types.CorruptedFileError{
				Path:   e.path,
				Offset: e.moovAtom.Offset,
				Reason: fmt.Sprintf("unparseable '%s' atom", t),
			}
		}
	}
	return nil
}

func (e *editor) removeItems(typ string) error {
	if err := e.metadataPath(); err != nil {
		return err
	}
	if ilst := ilstOf(e.moov); ilst != nil {
		ilst.removeAll(typ)
	}
	return nil
}

func (e *editor) addItem(item *box) error {
	if err := e.metadataPath(); err != nil {
		return err
	}
	ilst := ensureIlst(e.moov)
	ilst.children = append(ilst.children, item)
	return nil
}

func (e *editor) RemoveLyrics() error {
	return e.removeItems(typeLyrics)
}

func (e *editor) WriteLyrics(text string) error {
	return e.addItem(newItem(typeLyrics, flagUTF8, []byte(text)))
}

// RemoveCover drops every covr item, so files carrying several collapse to
// the one written next.
func (e *editor) RemoveCover() error {
	return e.removeItems(typeCover)
}

func (e *editor) WriteCover(jpeg []byte) error {
	return e.addItem(newItem(typeCover, flagJPEG, jpeg))
}

// Persist writes the edited moov in place of the original one and copies
// every other byte of the file through unchanged.
func (e *editor) Persist() error {
	oldEnd := e.moovAtom.End()
	newSize := e.moov.size()
	delta := int64(newSize) - int64(e.moovAtom.Size)

	if err := shiftChunkOffsets(e.moov, oldEnd, delta); err != nil {
		return &types.CorruptedFileError{Path: e.path, Offset: e.moovAtom.Offset, Reason: err.Error()}
	}

	err := fileutil.Replace(e.path, func(w io.Writer) error {
		if _, err := io.Copy(w, io.NewSectionReader(e.f, 0, e.moovAtom.Offset)); err != nil {
			return err
		}
		if err := e.moov.writeTo(binary.NewSafeWriter(w)); err != nil {
			return err
		}
		_, err := io.Copy(w, io.NewSectionReader(e.f, oldEnd, e.size-oldEnd))
		return err
	})
	if err != nil {
		// Undo so a retry starts from the original offsets
		_ = shiftChunkOffsets(e.moov, oldEnd+delta, -delta) //nolint:errcheck // Reverses a shift that succeeded
		return err
	}

	return e.reopen(newSize)
}

// reopen points the editor at the file just written.
func (e *editor) reopen(moovSize uint64) error {
	if e.f != nil {
		_ = e.f.Close() //nolint:errcheck // Replaced file
	}
	f, err := os.Open(e.path)
	if err != nil {
		e.f = nil
		return err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close() //nolint:errcheck // Already failing
		e.f = nil
		return err
	}

	e.f = f
	e.size = info.Size()
	e.moovAtom = &Atom{
		Type:     typeMoov,
		Offset:   e.moovAtom.Offset,
		Size:     moovSize,
		Extended: moovSize > 0xFFFFFFFF,
	}
	return nil
}

func (e *editor) Close() error {
	if e.f == nil {
		return nil
	}
	err := e.f.Close()
	e.f = nil
	return err
}
