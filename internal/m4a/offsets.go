package m4a

import (
	"encoding/binary"
	"fmt"
	"math"
)

// shiftChunkOffsets adds delta to every stco/co64 entry that points at or
// beyond from. Entries before from (media stored ahead of moov) are left
// alone.
func shiftChunkOffsets(moov *box, from, delta int64) error {
	if delta == 0 {
		return nil
	}

	var err error
	moov.walk(func(b *box) {
		if err != nil {
			return
		}
		switch b.typ {
		case typeStco:
			err = shiftTable(b.payload, 4, from, delta)
		case typeCo64:
			err = shiftTable(b.payload, 8, from, delta)
		}
	})
	return err
}

// shiftTable patches a chunk offset table in place.
//
// Layout:
//
//	[4 bytes]        version + flags
//	[4 bytes]        entry count
//	[count × width]  offsets
func shiftTable(payload []byte, width int, from, delta int64) error {
	if len(payload) < 8 {
		return fmt.Errorf("chunk offset table too short: %d bytes", len(payload))
	}

	count := int(binary.BigEndian.Uint32(payload[4:8]))
	if 8+count*width > len(payload) {
		return fmt.Errorf("chunk offset table declares %d entries but holds %d bytes", count, len(payload)-8)
	}

	for i := range count {
		pos := 8 + i*width
		if width == 4 {
			off := int64(binary.BigEndian.Uint32(payload[pos:]))
			if off < from {
				continue
			}
			shifted := off + delta
			if shifted < 0 || shifted > math.MaxUint32 {
				return fmt.Errorf("chunk offset %d does not fit 32 bits after shifting by %d", off, delta)
			}
			binary.BigEndian.PutUint32(payload[pos:], uint32(shifted))
			continue
		}

		off := int64(binary.BigEndian.Uint64(payload[pos:]))
		if off < from {
			continue
		}
		binary.BigEndian.PutUint64(payload[pos:], uint64(off+delta))
	}
	return nil
}
