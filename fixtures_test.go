package lyricsync

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/simonhull/lyricsync/internal/registry"
	"github.com/simonhull/lyricsync/internal/types"
)

// createMinimalMP3 returns a few silent MPEG-1 Layer III frames with no tag.
func createMinimalMP3() []byte {
	buf := &bytes.Buffer{}
	for range 4 {
		frame := make([]byte, 417)
		copy(frame, []byte{0xFF, 0xFB, 0x90, 0x64})
		buf.Write(frame)
	}
	return buf.Bytes()
}

// createMinimalFLAC returns a FLAC stream with only a STREAMINFO block
// followed by a stand-in audio frame.
func createMinimalFLAC() []byte {
	buf := &bytes.Buffer{}
	buf.WriteString("fLaC")
	buf.Write([]byte{0x80, 0x00, 0x00, 0x22}) // last block, STREAMINFO, 34 bytes

	binary.Write(buf, binary.BigEndian, uint16(4096))
	binary.Write(buf, binary.BigEndian, uint16(4096))
	buf.Write(make([]byte, 6))
	packed := uint64(44100)<<44 | uint64(1)<<41 | uint64(15)<<36 | uint64(44100)
	binary.Write(buf, binary.BigEndian, packed)
	buf.Write(make([]byte, 16))

	buf.Write([]byte{0xFF, 0xF8, 0x69, 0x08, 0x00, 0x00, 0x00, 0x00})
	return buf.Bytes()
}

func mockAtom(atomType string, data ...[]byte) []byte {
	body := bytes.Join(data, nil)
	buf := &bytes.Buffer{}
	binary.Write(buf, binary.BigEndian, uint32(8+len(body)))
	buf.WriteString(atomType)
	buf.Write(body)
	return buf.Bytes()
}

// createMinimalM4A returns ftyp/moov/mdat with one chunk offset pointing at
// the media payload and no metadata.
func createMinimalM4A() []byte {
	ftyp := mockAtom("ftyp", []byte("M4A \x00\x00\x02\x00M4A mp42isom"))
	mdat := mockAtom("mdat", []byte("AUDIO-PAYLOAD"))

	moov := func(offset uint32) []byte {
		stco := &bytes.Buffer{}
		stco.Write([]byte{0, 0, 0, 0, 0, 0, 0, 1})
		binary.Write(stco, binary.BigEndian, offset)
		stbl := mockAtom("stbl", mockAtom("stco", stco.Bytes()))
		trak := mockAtom("trak", mockAtom("mdia", mockAtom("minf", stbl)))
		return mockAtom("moov", mockAtom("mvhd", make([]byte, 100)), trak)
	}

	offset := uint32(len(ftyp) + len(moov(0)) + 8)
	return bytes.Join([][]byte{ftyp, moov(offset), mdat}, nil)
}

func testJPEG(t *testing.T, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for x := range 16 {
		for y := range 16 {
			img.Set(x, y, c)
		}
	}
	buf := &bytes.Buffer{}
	if err := jpeg.Encode(buf, img, nil); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	return buf.Bytes()
}

func writeFixture(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

type fixture struct {
	name string
	file string
	data func() []byte
}

var fixtures = []fixture{
	{"MP4", "song.m4a", createMinimalM4A},
	{"MP3", "song.mp3", createMinimalMP3},
	{"FLAC", "song.flac", createMinimalFLAC},
}

// tagBlock is what a file's reader returns for its lyrics and pictures.
type tagBlock struct {
	Format Format
	Lyrics []string
	Covers []types.Artwork
}

func readBack(t *testing.T, path string) tagBlock {
	t.Helper()
	format := FormatFromPath(path)
	reader := registry.GetReader(format)
	if reader == nil {
		t.Fatalf("no reader for %s", path)
	}
	lyrics, err := reader.ReadLyrics(path)
	if err != nil {
		t.Fatalf("ReadLyrics: %v", err)
	}
	covers, err := reader.ReadCovers(path)
	if err != nil {
		t.Fatalf("ReadCovers: %v", err)
	}
	return tagBlock{Format: format, Lyrics: lyrics, Covers: covers}
}
