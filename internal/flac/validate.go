package flac

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// go-flac and its companions size allocations from length fields without
// checking them against the block. Every block is checked here first.

var errTruncated = errors.New("field length runs past end of block")

// checkVorbisComment walks a VORBIS_COMMENT body: a vendor string, a
// comment count, then count length-prefixed comments. Lengths are little
// endian.
func checkVorbisComment(data []byte) error {
	off := 0
	vendor, ok := le32(data, off)
	if !ok {
		return fmt.Errorf("vendor length: %w", errTruncated)
	}
	off += 4
	if uint64(vendor) > uint64(len(data)-off) {
		return fmt.Errorf("vendor string: %w", errTruncated)
	}
	off += int(vendor)

	count, ok := le32(data, off)
	if !ok {
		return fmt.Errorf("comment count: %w", errTruncated)
	}
	off += 4
	// Each comment carries at least its 4-byte length
	if uint64(count) > uint64(len(data)-off)/4 {
		return fmt.Errorf("comment count %d exceeds block size %d", count, len(data))
	}

	for i := range count {
		n, ok := le32(data, off)
		if !ok {
			return fmt.Errorf("comment %d length: %w", i, errTruncated)
		}
		off += 4
		if uint64(n) > uint64(len(data)-off) {
			return fmt.Errorf("comment %d: %w", i, errTruncated)
		}
		off += int(n)
	}
	return nil
}

// checkPicture walks a PICTURE body: type, MIME, description, four
// dimension fields and the image data. Lengths are big endian.
func checkPicture(data []byte) error {
	off := 4 // picture type
	for _, field := range []string{"mime type", "description"} {
		n, ok := be32(data, off)
		if !ok {
			return fmt.Errorf("%s length: %w", field, errTruncated)
		}
		off += 4
		if uint64(n) > uint64(len(data)-off) {
			return fmt.Errorf("%s: %w", field, errTruncated)
		}
		off += int(n)
	}

	off += 16 // width, height, depth, indexed colors
	n, ok := be32(data, off)
	if !ok {
		return fmt.Errorf("image length: %w", errTruncated)
	}
	off += 4
	if uint64(n) > uint64(len(data)-off) {
		return fmt.Errorf("image data: %w", errTruncated)
	}
	return nil
}

func checkBlock(blockType uint8, data []byte) error {
	switch blockType {
	case blockTypeVorbisComment:
		return checkVorbisComment(data)
	case blockTypePicture:
		return checkPicture(data)
	default:
		return nil
	}
}

func le32(data []byte, off int) (uint32, bool) {
	if off < 0 || len(data)-off < 4 {
		return 0, false
	}
	return binary.LittleEndian.Uint32(data[off:]), true
}

func be32(data []byte, off int) (uint32, bool) {
	if off < 0 || len(data)-off < 4 {
		return 0, false
	}
	return binary.BigEndian.Uint32(data[off:]), true
}
