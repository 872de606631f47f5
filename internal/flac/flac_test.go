package flac

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/simonhull/lyricsync/internal/registry"
	"github.com/simonhull/lyricsync/internal/types"
)

type rawBlock struct {
	blockType byte
	data      []byte
}

// createMinimalFLAC creates a FLAC file with a STREAMINFO block, the given
// extra metadata blocks and a few bytes standing in for audio frames.
func createMinimalFLAC(blocks ...rawBlock) []byte {
	buf := &bytes.Buffer{}
	buf.WriteString("fLaC")

	streamInfo := &bytes.Buffer{}
	binary.Write(streamInfo, binary.BigEndian, uint16(4096))
	binary.Write(streamInfo, binary.BigEndian, uint16(4096))
	streamInfo.Write(make([]byte, 6)) // min/max frame size

	// [sample_rate(20)] [channels-1(3)] [bits-1(5)] [total_samples(36)]
	packed := uint64(44100)<<44 | uint64(1)<<41 | uint64(15)<<36 | uint64(44100)
	binary.Write(streamInfo, binary.BigEndian, packed)
	streamInfo.Write(make([]byte, 16)) // MD5

	all := append([]rawBlock{{blockTypeStreamInfo, streamInfo.Bytes()}}, blocks...)
	for i, b := range all {
		head := b.blockType
		if i == len(all)-1 {
			head |= 0x80
		}
		buf.WriteByte(head)
		n := len(b.data)
		buf.Write([]byte{byte(n >> 16), byte(n >> 8), byte(n)})
		buf.Write(b.data)
	}

	// Frame sync code followed by filler
	buf.Write([]byte{0xFF, 0xF8, 0x69, 0x08, 0x00, 0x00, 0x00, 0x00})
	return buf.Bytes()
}

func commentBlock(comments ...string) rawBlock {
	data := &bytes.Buffer{}
	vendor := "lyricsync-test"
	binary.Write(data, binary.LittleEndian, uint32(len(vendor)))
	data.WriteString(vendor)
	binary.Write(data, binary.LittleEndian, uint32(len(comments)))
	for _, c := range comments {
		binary.Write(data, binary.LittleEndian, uint32(len(c)))
		data.WriteString(c)
	}
	return rawBlock{blockTypeVorbisComment, data.Bytes()}
}

func pictureBlock(picType uint32, mime, desc string, img []byte) rawBlock {
	data := &bytes.Buffer{}
	binary.Write(data, binary.BigEndian, picType)
	binary.Write(data, binary.BigEndian, uint32(len(mime)))
	data.WriteString(mime)
	binary.Write(data, binary.BigEndian, uint32(len(desc)))
	data.WriteString(desc)
	binary.Write(data, binary.BigEndian, [4]uint32{8, 8, 24, 0})
	binary.Write(data, binary.BigEndian, uint32(len(img)))
	data.Write(img)
	return rawBlock{blockTypePicture, data.Bytes()}
}

func testJPEG(t *testing.T, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := range 8 {
		for y := range 8 {
			img.Set(x, y, c)
		}
	}
	buf := &bytes.Buffer{}
	if err := jpeg.Encode(buf, img, nil); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	return buf.Bytes()
}

func writeTemp(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "track.flac")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func runSteps(t *testing.T, path string, lyrics string, cover []byte) {
	t.Helper()
	ed, err := opener{}.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer ed.Close()

	if err := ed.RemoveLyrics(); err != nil {
		t.Fatalf("RemoveLyrics: %v", err)
	}
	if err := ed.WriteLyrics(lyrics); err != nil {
		t.Fatalf("WriteLyrics: %v", err)
	}
	if cover != nil {
		if err := ed.RemoveCover(); err != nil {
			t.Fatalf("RemoveCover: %v", err)
		}
		if err := ed.WriteCover(cover); err != nil {
			t.Fatalf("WriteCover: %v", err)
		}
	}
	if err := ed.Persist(); err != nil {
		t.Fatalf("Persist: %v", err)
	}
}

func TestReader_Scan(t *testing.T) {
	img := testJPEG(t, color.White)
	path := writeTemp(t, createMinimalFLAC(
		commentBlock("TITLE=Song", "LYRICS=[00:01.00]one", "lyrics=[00:02.00]two"),
		pictureBlock(3, "image/jpeg", "Cover", img),
	))

	lyrics, err := reader{}.ReadLyrics(path)
	if err != nil {
		t.Fatalf("ReadLyrics: %v", err)
	}
	if len(lyrics) != 2 || lyrics[0] != "[00:01.00]one" || lyrics[1] != "[00:02.00]two" {
		t.Errorf("lyrics = %q", lyrics)
	}

	covers, err := reader{}.ReadCovers(path)
	if err != nil {
		t.Fatalf("ReadCovers: %v", err)
	}
	if len(covers) != 1 || covers[0].Type != types.ArtworkFrontCover || !bytes.Equal(covers[0].Data, img) {
		t.Errorf("covers = %v", covers)
	}
}

func TestReader_InvalidMagic(t *testing.T) {
	path := writeTemp(t, []byte("OggS not a flac file"))
	if _, err := (reader{}).ReadLyrics(path); err == nil {
		t.Error("expected error for invalid magic")
	}
}

func TestEditor_ReplacesLyricsAndPictures(t *testing.T) {
	old := testJPEG(t, color.Black)
	path := writeTemp(t, createMinimalFLAC(
		commentBlock("TITLE=Song", "LYRICS=stale", "Lyrics=stale too", "UNSYNCEDLYRICS=alias", "ARTIST=Band"),
		pictureBlock(3, "image/jpeg", "Old", old),
		pictureBlock(4, "image/jpeg", "Back", old),
	))
	fresh := testJPEG(t, color.RGBA{G: 255, A: 255})

	runSteps(t, path, "[00:01.50]Hello world", fresh)

	lyrics, err := reader{}.ReadLyrics(path)
	if err != nil {
		t.Fatalf("ReadLyrics: %v", err)
	}
	if len(lyrics) != 1 || lyrics[0] != "[00:01.50]Hello world" {
		t.Errorf("lyrics = %q, want single fresh entry", lyrics)
	}

	covers, err := reader{}.ReadCovers(path)
	if err != nil {
		t.Fatalf("ReadCovers: %v", err)
	}
	if len(covers) != 1 {
		t.Fatalf("got %d pictures, want 1", len(covers))
	}
	c := covers[0]
	if c.Type != types.ArtworkFrontCover || c.MIMEType != types.MIMETypeJPEG || c.Description != types.CoverDescription {
		t.Errorf("cover = %v %s %q", c.Type, c.MIMEType, c.Description)
	}
	if !bytes.Equal(c.Data, fresh) {
		t.Error("picture bytes differ from input")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, keep := range []string{"TITLE=Song", "ARTIST=Band"} {
		if !bytes.Contains(raw, []byte(keep)) {
			t.Errorf("unrelated comment %q lost", keep)
		}
	}
	if bytes.Contains(raw, []byte("UNSYNCEDLYRICS")) {
		t.Error("lyrics alias not removed")
	}
	if !bytes.HasSuffix(raw, []byte{0xFF, 0xF8, 0x69, 0x08, 0x00, 0x00, 0x00, 0x00}) {
		t.Error("audio frames not preserved")
	}
}

func TestEditor_CreatesCommentBlock(t *testing.T) {
	path := writeTemp(t, createMinimalFLAC())

	runSteps(t, path, "[00:00.10]first", nil)

	lyrics, err := reader{}.ReadLyrics(path)
	if err != nil {
		t.Fatalf("ReadLyrics: %v", err)
	}
	if len(lyrics) != 1 || lyrics[0] != "[00:00.10]first" {
		t.Errorf("lyrics = %q", lyrics)
	}
}

func TestEditor_MergesDuplicateCommentBlocks(t *testing.T) {
	path := writeTemp(t, createMinimalFLAC(
		commentBlock("LYRICS=a"),
		rawBlock{blockTypePadding, make([]byte, 16)},
		commentBlock("LYRICS=b", "GENRE=Rock"),
	))

	runSteps(t, path, "fresh", nil)

	lyrics, err := reader{}.ReadLyrics(path)
	if err != nil {
		t.Fatalf("ReadLyrics: %v", err)
	}
	if len(lyrics) != 1 || lyrics[0] != "fresh" {
		t.Errorf("lyrics = %q", lyrics)
	}
}

func TestRegistered(t *testing.T) {
	if registry.GetOpener(types.FormatFLAC) == nil || registry.GetReader(types.FormatFLAC) == nil {
		t.Error("FLAC not registered")
	}
}

func rawCommentBlock(vendorLen, count uint32, rest ...byte) rawBlock {
	data := binary.LittleEndian.AppendUint32(nil, vendorLen)
	data = append(data, "v"...)
	data = binary.LittleEndian.AppendUint32(data, count)
	return rawBlock{blockTypeVorbisComment, append(data, rest...)}
}

func TestMalformedBlocksAreRejected(t *testing.T) {
	hugePicture := pictureBlock(3, "image/jpeg", "Cover", []byte{0xFF, 0xD8, 0xFF})
	binary.BigEndian.PutUint32(hugePicture.data[len(hugePicture.data)-7:], 0xFFFFFFF0)

	tests := []struct {
		name        string
		block       rawBlock
		lyricsError bool
	}{
		{"comment count beyond block", rawCommentBlock(1, 0x7FFFFFFF), true},
		{"vendor length beyond block", rawCommentBlock(0xFFFFFFFF, 0), true},
		{"comment length beyond block", rawCommentBlock(1, 1, 0xFF, 0xFF, 0xFF, 0x0F, 'a'), true},
		{"missing comment count", rawBlock{blockTypeVorbisComment, []byte{1, 0, 0, 0, 'v'}}, true},
		{"picture length beyond block", hugePicture, false},
		{"truncated picture", rawBlock{blockTypePicture, []byte{0, 0, 0, 3, 0xFF, 0xFF}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTemp(t, createMinimalFLAC(tt.block))

			_, err := reader{}.ReadLyrics(path)
			if tt.lyricsError {
				var corrupt *types.CorruptedFileError
				if !errors.As(err, &corrupt) {
					t.Errorf("ReadLyrics error = %v, want CorruptedFileError", err)
				}
			} else if err != nil {
				t.Errorf("ReadLyrics error = %v", err)
			}

			covers, err := reader{}.ReadCovers(path)
			if err != nil && !tt.lyricsError {
				t.Errorf("ReadCovers error = %v", err)
			}
			if len(covers) != 0 {
				t.Errorf("got %d covers from a malformed block", len(covers))
			}

			if ed, err := (opener{}).Open(path); err == nil {
				ed.Close()
				t.Error("Open accepted a malformed block")
			}
		})
	}
}

func TestOpen_RequiresAudioFrames(t *testing.T) {
	full := createMinimalFLAC(commentBlock("TITLE=Song"))
	metadataOnly := full[:len(full)-8]

	for _, tail := range [][]byte{nil, {0xFF}} {
		path := writeTemp(t, append(append([]byte{}, metadataOnly...), tail...))
		ed, err := opener{}.Open(path)
		if err == nil {
			ed.Close()
			t.Errorf("Open accepted %d frame bytes", len(tail))
			continue
		}
		var corrupt *types.CorruptedFileError
		if !errors.As(err, &corrupt) {
			t.Errorf("error = %v, want CorruptedFileError", err)
		}
	}
}
