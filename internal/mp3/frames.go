package mp3

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf16"

	binutil "github.com/simonhull/lyricsync/internal/binary"
	"github.com/simonhull/lyricsync/internal/types"
)

// ID3v2Header represents an ID3v2 tag header
type ID3v2Header struct {
	Version  byte // Major version (3 or 4)
	Revision byte // Minor version
	Flags    byte
	Size     uint32 // Tag size (excluding header), synchsafe
}

// ID3v2Frame represents a single ID3v2 frame
type ID3v2Frame struct {
	ID    string // 4-character frame ID (e.g., "USLT", "APIC")
	Flags uint16
	Data  []byte
}

var (
	errUSLTTooShort   = errors.New("USLT frame too short")
	errAPICTooShort   = errors.New("APIC frame too short")
	errAPICNoMIMETerm = errors.New("APIC MIME type not null-terminated")
	errAPICTruncated  = errors.New("APIC frame truncated after MIME type")
	errAPICNoImage    = errors.New("APIC frame has no image data")
)

// readFrames returns every frame of the leading ID3v2 tag in file order. A
// file without an ID3v2 tag yields no frames and no error.
func readFrames(path string) ([]ID3v2Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	return scanFrames(binutil.NewSafeReader(f, info.Size(), path))
}

func scanFrames(sr *binutil.SafeReader) ([]ID3v2Frame, error) {
	if sr.Size() < 10 {
		return nil, nil
	}

	buf := make([]byte, 10)
	if err := sr.ReadAt(buf, 0, "ID3v2 header"); err != nil {
		return nil, err
	}
	if string(buf[0:3]) != "ID3" {
		return nil, nil
	}

	header := ID3v2Header{
		Version:  buf[3],
		Revision: buf[4],
		Flags:    buf[5],
		Size:     decodeSynchsafe(buf[6:10]),
	}

	if header.Version != 3 && header.Version != 4 {
		return nil, &types.UnsupportedFormatError{
			Path:   sr.Path(),
			Format: types.FormatMP3,
			Reason: fmt.Sprintf("unsupported ID3v2 version: 2.%d", header.Version),
		}
	}

	offset := int64(10)
	if header.Flags&0x40 != 0 {
		ext, err := binutil.Read[uint32](sr, offset, "extended header size")
		if err != nil {
			return nil, err
		}
		if header.Version == 4 {
			offset += int64(decodeSynchsafe(binutil.Encode(ext)))
		} else {
			offset += int64(ext) + 4
		}
	}

	tagEnd := min(int64(10+header.Size), sr.Size())

	var frames []ID3v2Frame
	for offset+10 <= tagEnd {
		fh := make([]byte, 10)
		if err := sr.ReadAt(fh, offset, "frame header"); err != nil {
			return frames, err
		}

		// Padding
		if fh[0] == 0 {
			break
		}

		id := string(fh[0:4])
		var size uint32
		if header.Version == 4 {
			size = decodeSynchsafe(fh[4:8])
		} else {
			size = binary.BigEndian.Uint32(fh[4:8])
		}

		data, err := sr.ReadBytes(offset+10, int64(size), fmt.Sprintf("frame %s data", id))
		if err != nil {
			return frames, &types.CorruptedFileError{
				Path:   sr.Path(),
				Reason: fmt.Sprintf("frame %s overruns tag: %v", id, err),
				Offset: offset,
			}
		}

		frames = append(frames, ID3v2Frame{
			ID:    id,
			Flags: binary.BigEndian.Uint16(fh[8:10]),
			Data:  data,
		})
		offset += 10 + int64(size)
	}

	return frames, nil
}

// decodeSynchsafe decodes a synchsafe integer (7 bits per byte)
func decodeSynchsafe(b []byte) uint32 {
	if len(b) != 4 {
		return 0
	}
	return uint32(b[0]&0x7F)<<21 |
		uint32(b[1]&0x7F)<<14 |
		uint32(b[2]&0x7F)<<7 |
		uint32(b[3]&0x7F)
}

// parseUSLTFrame extracts the lyrics text of an unsynchronised lyrics frame.
//
// Format:
//
//	[1 byte]              Text encoding
//	[3 bytes]             Language
//	[null-terminated]     Content descriptor
//	[remaining]           Lyrics text
func parseUSLTFrame(data []byte) (lang, desc, text string, err error) {
	if len(data) < 4 {
		return "", "", "", errUSLTTooShort
	}

	encoding := data[0]
	lang = string(data[1:4])
	rest := data[4:]

	end := findNullTerminator(rest, encoding)
	if end < 0 {
		// Missing descriptor terminator; treat it all as text
		return lang, "", decodeText(rest, encoding), nil
	}

	desc = decodeText(rest[:end], encoding)
	text = decodeText(rest[end+terminatorSize(encoding):], encoding)
	return lang, desc, text, nil
}

// parseAPICFrame parses an attached picture frame.
//
// Format:
//
//	[1 byte]              Text encoding
//	[null-terminated]     MIME type
//	[1 byte]              Picture type
//	[null-terminated]     Description
//	[remaining]           Picture data
func parseAPICFrame(data []byte) (types.Artwork, error) {
	if len(data) < 4 {
		return types.Artwork{}, errAPICTooShort
	}

	encoding := data[0]
	pos := 1

	// MIME type is always ISO-8859-1
	mimeEnd := bytes.IndexByte(data[pos:], 0)
	if mimeEnd < 0 {
		return types.Artwork{}, errAPICNoMIMETerm
	}
	mimeType := string(data[pos : pos+mimeEnd])
	pos += mimeEnd + 1

	switch mimeType {
	case "JPG", "jpg":
		mimeType = types.MIMETypeJPEG
	case "PNG", "png":
		mimeType = "image/png"
	}

	if pos >= len(data) {
		return types.Artwork{}, errAPICTruncated
	}

	pictureType := data[pos]
	pos++

	description := ""
	if descEnd := findNullTerminator(data[pos:], encoding); descEnd >= 0 {
		description = decodeText(data[pos:pos+descEnd], encoding)
		pos += descEnd + terminatorSize(encoding)
	}

	if pos >= len(data) {
		return types.Artwork{}, errAPICNoImage
	}

	return types.Artwork{
		Type:        types.ArtworkTypeFromCode(uint32(pictureType)),
		MIMEType:    mimeType,
		Description: description,
		Data:        data[pos:],
	}, nil
}

// decodeText decodes text based on ID3v2 encoding byte
func decodeText(data []byte, encoding byte) string {
	if len(data) == 0 {
		return ""
	}

	switch encoding {
	case 1: // UTF-16 with BOM
		return trimNulls(decodeUTF16(data))
	case 2: // UTF-16BE
		return trimNulls(decodeUTF16BE(data))
	case 0:
		return trimNulls(latin1(data))
	default: // UTF-8
		return trimNulls(string(data))
	}
}

func latin1(data []byte) string {
	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return string(runes)
}

func trimNulls(s string) string {
	return strings.TrimRight(s, "\x00")
}

// decodeUTF16 decodes UTF-16 with BOM
func decodeUTF16(data []byte) string {
	if len(data) < 2 {
		return ""
	}

	if data[0] == 0xFF && data[1] == 0xFE {
		return decodeUTF16LE(data[2:])
	} else if data[0] == 0xFE && data[1] == 0xFF {
		return decodeUTF16BE(data[2:])
	}

	// No BOM - assume big-endian
	return decodeUTF16BE(data)
}

// decodeUTF16LE decodes UTF-16 little-endian
func decodeUTF16LE(data []byte) string {
	if len(data)%2 != 0 {
		data = data[:len(data)-1]
	}

	u16 := make([]uint16, len(data)/2)
	for i := range u16 {
		u16[i] = uint16(data[i*2]) | uint16(data[i*2+1])<<8
	}

	return string(utf16.Decode(u16))
}

// decodeUTF16BE decodes UTF-16 big-endian
func decodeUTF16BE(data []byte) string {
	if len(data)%2 != 0 {
		data = data[:len(data)-1]
	}

	u16 := make([]uint16, len(data)/2)
	for i := range u16 {
		u16[i] = uint16(data[i*2])<<8 | uint16(data[i*2+1])
	}

	return string(utf16.Decode(u16))
}

// findNullTerminator finds the null terminator based on encoding
func findNullTerminator(data []byte, encoding byte) int {
	switch encoding {
	case 1, 2: // UTF-16 (double-byte null)
		for i := 0; i < len(data)-1; i += 2 {
			if data[i] == 0 && data[i+1] == 0 {
				return i
			}
		}
		return -1
	default:
		return bytes.IndexByte(data, 0)
	}
}

// terminatorSize returns the size of the null terminator for the encoding
func terminatorSize(encoding byte) int {
	switch encoding {
	case 1, 2:
		return 2
	default:
		return 1
	}
}
