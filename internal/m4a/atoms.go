package m4a

import (
	"fmt"

	"github.com/simonhull/lyricsync/internal/binary"
	"github.com/simonhull/lyricsync/internal/types"
)

// Atom represents an MP4/M4A atom (box) header as found in a file.
type Atom struct {
	Size     uint64 // Total size including header
	Type     string // 4-character type code
	Offset   int64  // Position in file
	Extended bool   // Whether this uses 64-bit extended size
}

// HeaderSize returns the length of the atom header.
func (a *Atom) HeaderSize() int64 {
	if a.Extended {
		return 16
	}
	return 8
}

// DataSize returns the size of the atom's data (excluding header)
func (a *Atom) DataSize() uint64 {
	headerSize := uint64(a.HeaderSize())
	if a.Size < headerSize {
		return 0
	}
	return a.Size - headerSize
}

// DataOffset returns the file offset where the atom's data starts
func (a *Atom) DataOffset() int64 {
	return a.Offset + a.HeaderSize()
}

// End returns the file offset just past the atom.
func (a *Atom) End() int64 {
	return a.Offset + int64(a.Size)
}

// IsContainer returns true if this atom type holds only child atoms after
// its (optional) version/flags prefix.
func (a *Atom) IsContainer() bool {
	return isContainer(a.Type)
}

func isContainer(atomType string) bool {
	switch atomType {
	case typeMoov, typeTrak, typeMdia, typeMinf, typeStbl,
		typeUdta, typeMeta, typeIlst, "edts", "dinf", "mvex", "moof", "traf":
		return true
	}
	return false
}

// readAtomHeader reads an atom header at the given offset. A size field of
// zero means the atom extends to limit.
func readAtomHeader(sr *binary.SafeReader, offset, limit int64) (*Atom, error) {
	size32, err := binary.Read[uint32](sr, offset, "atom size")
	if err != nil {
		return nil, err
	}

	typeBytes := make([]byte, 4)
	if err := sr.ReadAt(typeBytes, offset+4, "atom type"); err != nil {
		return nil, err
	}

	atom := &Atom{
		Type:   string(typeBytes),
		Offset: offset,
	}

	switch size32 {
	case 0:
		atom.Size = uint64(limit - offset)
	case 1:
		// 64-bit size follows the type
		size64, err := binary.Read[uint64](sr, offset+8, "extended atom size")
		if err != nil {
			return nil, err
		}
		atom.Size = size64
		atom.Extended = true
	default:
		atom.Size = uint64(size32)
	}

	if atom.Size < uint64(atom.HeaderSize()) {
		return nil, &types.CorruptedFileError{
			Path:   sr.Path(),
			Offset: offset,
			Reason: fmt.Sprintf("invalid atom size %d (minimum is %d)", atom.Size, atom.HeaderSize()),
		}
	}

	if atom.End() > limit {
		return nil, &types.CorruptedFileError{
			Path:   sr.Path(),
			Offset: offset,
			Reason: fmt.Sprintf("atom '%s' of size %d overruns its parent ending at %d", atom.Type, atom.Size, limit),
		}
	}

	return atom, nil
}

// readAtoms returns every atom header in [start, end).
func readAtoms(sr *binary.SafeReader, start, end int64) ([]*Atom, error) {
	var atoms []*Atom
	for offset := start; offset+8 <= end; {
		atom, err := readAtomHeader(sr, offset, end)
		if err != nil {
			return atoms, err
		}
		atoms = append(atoms, atom)
		offset = atom.End()
	}
	return atoms, nil
}

// findAtom searches for an atom of the given type within a range.
// Returns the first matching atom or an error if not found.
func findAtom(sr *binary.SafeReader, start, end int64, atomType string) (*Atom, error) {
	for offset := start; offset+8 <= end; {
		atom, err := readAtomHeader(sr, offset, end)
		if err != nil {
			return nil, err
		}

		if atom.Type == atomType {
			return atom, nil
		}

		offset = atom.End()
	}

	return nil, fmt.Errorf("%w: '%s'", errAtomNotFound, atomType)
}
