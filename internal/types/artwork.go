package types

import "bytes"

// MIMETypeJPEG is the only cover encoding this module writes.
const MIMETypeJPEG = "image/jpeg"

// CoverDescription is the description written alongside cover pictures
// in formats that carry one.
const CoverDescription = "Cover"

// Artwork is an embedded picture as read back from a tag block.
type Artwork struct {
	Type        ArtworkType
	MIMEType    string
	Description string
	Data        []byte
}

// ArtworkType is the picture type code shared by ID3v2 APIC frames and
// FLAC PICTURE blocks.
type ArtworkType int

// Picture type codes used by this module. The numbering follows the APIC
// table; codes not listed here read back as ArtworkOther.
const (
	ArtworkOther      ArtworkType = 0
	ArtworkFrontCover ArtworkType = 3
	ArtworkBackCover  ArtworkType = 4
)

// ArtworkTypeFromCode maps a raw picture type code to an ArtworkType.
func ArtworkTypeFromCode(code uint32) ArtworkType {
	switch ArtworkType(code) {
	case ArtworkFrontCover:
		return ArtworkFrontCover
	case ArtworkBackCover:
		return ArtworkBackCover
	default:
		return ArtworkOther
	}
}

func (t ArtworkType) String() string {
	switch t {
	case ArtworkFrontCover:
		return "Front cover"
	case ArtworkBackCover:
		return "Back cover"
	default:
		return "Other"
	}
}

var jpegSOI = []byte{0xFF, 0xD8, 0xFF}

// IsJPEG reports whether data starts with a JPEG start-of-image marker.
func IsJPEG(data []byte) bool {
	return bytes.HasPrefix(data, jpegSOI)
}
