// Package m4a edits and reads lyrics and cover items in the iTunes-style
// metadata of MP4/M4A files.
//
// The editor loads the moov atom into a tree, edits moov/udta/meta/ilst in
// memory, and writes a new file with every other top-level atom copied
// through. Chunk offset tables are shifted when the moov size change moves
// media data.
package m4a

import (
	"errors"

	"github.com/simonhull/lyricsync/internal/registry"
	"github.com/simonhull/lyricsync/internal/types"
)

// Atom type codes. In MP4, © is the byte 0xA9, so "©lyr" is "\xA9lyr".
const (
	typeFtyp = "ftyp"
	typeMoov = "moov"
	typeMdat = "mdat"
	typeMoof = "moof"
	typeTrak = "trak"
	typeMdia = "mdia"
	typeMinf = "minf"
	typeStbl = "stbl"
	typeStco = "stco"
	typeCo64 = "co64"
	typeUdta = "udta"
	typeMeta = "meta"
	typeHdlr = "hdlr"
	typeIlst = "ilst"
	typeData = "data"

	typeLyrics = "\xA9lyr"
	typeCover  = "covr"
)

// Well-known type indicators stored in the flags of a data atom.
const (
	flagUTF8 = 0x01
	flagJPEG = 0x0D
	flagPNG  = 0x0E
	flagBMP  = 0x1B
)

var errAtomNotFound = errors.New("atom not found")

func init() {
	registry.RegisterOpener(types.FormatMP4, opener{})
	registry.RegisterReader(types.FormatMP4, reader{})
}
