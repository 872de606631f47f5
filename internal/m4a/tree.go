package m4a

import (
	"fmt"
	"math"
	"slices"

	"github.com/simonhull/lyricsync/internal/binary"
)

// box is an atom held in memory. Containers keep their children parsed,
// along with any bytes before the first child (the version/flags of meta)
// and after the last one (some encoders pad udta with zeros). Every other
// atom keeps its body verbatim.
type box struct {
	typ      string
	prefix   []byte
	payload  []byte
	suffix   []byte
	children []*box

	// opaque marks a container whose children could not be parsed and
	// whose body is held in payload instead.
	opaque bool
}

// parseBox loads the atom described by a and, for containers, its subtree.
func parseBox(sr *binary.SafeReader, a *Atom) (*box, error) {
	b := &box{typ: a.Type}

	if !a.IsContainer() {
		payload, err := sr.ReadBytes(a.DataOffset(), int64(a.DataSize()), fmt.Sprintf("'%s' payload", a.Type))
		if err != nil {
			return nil, err
		}
		b.payload = payload
		return b, nil
	}

	start := a.DataOffset()
	if a.Type == typeMeta {
		n, err := metaPrefixLen(sr, a)
		if err != nil {
			return nil, err
		}
		if b.prefix, err = sr.ReadBytes(start, n, "meta version+flags"); err != nil {
			return nil, err
		}
		start += n
	}

	end, err := b.parseChildren(sr, start, a.End())
	if err != nil {
		if mustParse(a.Type) {
			return nil, err
		}
		// Keep an unparseable optional container as an opaque body
		b.prefix, b.children, b.opaque = nil, nil, true
		if b.payload, err = sr.ReadBytes(a.DataOffset(), int64(a.DataSize()), fmt.Sprintf("'%s' payload", a.Type)); err != nil {
			return nil, err
		}
		return b, nil
	}

	if end < a.End() {
		if b.suffix, err = sr.ReadBytes(end, a.End()-end, fmt.Sprintf("'%s' trailing bytes", a.Type)); err != nil {
			return nil, err
		}
	}

	return b, nil
}

func (b *box) parseChildren(sr *binary.SafeReader, start, end int64) (int64, error) {
	children, err := readAtoms(sr, start, end)
	if err != nil {
		return 0, err
	}

	last := start
	for _, c := range children {
		child, err := parseBox(sr, c)
		if err != nil {
			return 0, err
		}
		b.children = append(b.children, child)
		last = c.End()
	}
	return last, nil
}

// mustParse reports whether a container lies on a path the editor relies
// on: the sample tables whose chunk offsets get shifted.
func mustParse(atomType string) bool {
	switch atomType {
	case typeMoov, typeTrak, typeMdia, typeMinf, typeStbl:
		return true
	}
	return false
}

// metaPrefixLen returns 4 for an ISO full-box meta atom and 0 for the
// QuickTime form, which starts directly with its hdlr child.
func metaPrefixLen(sr *binary.SafeReader, a *Atom) (int64, error) {
	if a.DataSize() < 8 {
		return int64(min(a.DataSize(), 4)), nil
	}
	probe, err := sr.ReadBytes(a.DataOffset()+4, 4, "meta probe")
	if err != nil {
		return 0, err
	}
	if string(probe) == typeHdlr {
		return 0, nil
	}
	return 4, nil
}

func (b *box) isContainer() bool {
	return isContainer(b.typ)
}

// size returns the encoded size of the box, header included.
func (b *box) size() uint64 {
	body := uint64(len(b.prefix) + len(b.payload) + len(b.suffix))
	for _, c := range b.children {
		body += c.size()
	}
	if body+8 > math.MaxUint32 {
		return body + 16
	}
	return body + 8
}

// writeTo encodes the box and its subtree.
func (b *box) writeTo(sw *binary.SafeWriter) error {
	size := b.size()
	if size > math.MaxUint32 {
		binary.Write[uint32](sw, 1)
		sw.WriteString(b.typ)
		binary.Write[uint64](sw, size)
	} else {
		binary.Write[uint32](sw, uint32(size))
		sw.WriteString(b.typ)
	}

	sw.WriteBytes(b.prefix)
	sw.WriteBytes(b.payload)
	for _, c := range b.children {
		if err := c.writeTo(sw); err != nil {
			return err
		}
	}
	sw.WriteBytes(b.suffix)

	return sw.Err()
}

// child returns the first direct child of the given type, or nil.
func (b *box) child(typ string) *box {
	for _, c := range b.children {
		if c.typ == typ {
			return c
		}
	}
	return nil
}

// path follows a chain of child types and returns the last box, or nil.
func (b *box) path(kinds ...string) *box {
	cur := b
	for _, t := range kinds {
		if cur = cur.child(t); cur == nil {
			return nil
		}
	}
	return cur
}

// removeAll drops every direct child of the given type and reports how many
// were removed.
func (b *box) removeAll(typ string) int {
	before := len(b.children)
	b.children = slices.DeleteFunc(b.children, func(c *box) bool { return c.typ == typ })
	return before - len(b.children)
}

// ensure returns the first child of the given type, appending a new one
// built by create when none exists.
func (b *box) ensure(typ string, create func() *box) *box {
	if c := b.child(typ); c != nil {
		return c
	}
	c := create()
	b.children = append(b.children, c)
	return c
}

// walk visits b and every descendant, depth first.
func (b *box) walk(fn func(*box)) {
	fn(b)
	for _, c := range b.children {
		c.walk(fn)
	}
}

// ilstOf returns moov/udta/meta/ilst, or nil when any level is missing.
func ilstOf(moov *box) *box {
	return moov.path(typeUdta, typeMeta, typeIlst)
}

// ensureIlst returns moov/udta/meta/ilst, creating the missing levels with
// an iTunes metadata handler.
func ensureIlst(moov *box) *box {
	udta := moov.ensure(typeUdta, func() *box { return &box{typ: typeUdta} })
	meta := udta.ensure(typeMeta, newMeta)
	return meta.ensure(typeIlst, func() *box { return &box{typ: typeIlst} })
}

func newMeta() *box {
	// version/flags, pre_defined, handler type, reserved (vendor "appl"), empty name
	hdlr := make([]byte, 0, 25)
	hdlr = append(hdlr, 0, 0, 0, 0, 0, 0, 0, 0)
	hdlr = append(hdlr, "mdirappl"...)
	hdlr = append(hdlr, make([]byte, 9)...)

	return &box{
		typ:      typeMeta,
		prefix:   []byte{0, 0, 0, 0},
		children: []*box{{typ: typeHdlr, payload: hdlr}},
	}
}

// newItem builds an ilst item holding a single data atom.
func newItem(typ string, flag uint8, value []byte) *box {
	data := make([]byte, 0, 16+len(value))
	data = append(data, binary.Encode(uint32(16+len(value)))...)
	data = append(data, typeData...)
	data = append(data, 0, 0, 0, flag) // version + type indicator
	data = append(data, 0, 0, 0, 0)    // locale
	data = append(data, value...)
	return &box{typ: typ, payload: data}
}
