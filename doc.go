// Package lyricsync turns timed subtitle tracks into synchronized lyrics
// and embeds them, with cover art, into audio file tags.
//
// Three containers are supported, each with its own tagging scheme: MP4/M4A
// (iTunes metadata atoms), MP3 (ID3v2 frames) and FLAC (Vorbis comments and
// picture blocks). One embed contract covers all three, and every embed
// can be checked by reading the tag block back.
//
// # Quick Start
//
// Converting a subtitle track and embedding it:
//
//	raw, err := os.ReadFile("song.en.vtt")
//	if err != nil {
//		log.Fatal(err)
//	}
//	lyrics := lyricsync.ConvertSubtitles(string(raw))
//
//	cover, _ := os.ReadFile("song.jpg")
//	req := lyricsync.NewEmbedRequest("song.m4a", &lyrics, cover)
//	if err := lyricsync.Embed(ctx, req); err != nil {
//		log.Fatal(err)
//	}
//
//	if !lyricsync.Verify(req.AudioPath, req.Format, lyrics) {
//		log.Printf("lyrics missing after embed")
//	}
//
// # Lyrics Format
//
// Each subtitle cue becomes one "[MM:SS.cc]text" line. Minutes include the
// hours (01:05:10.250 becomes [65:10.25]), the fractional part is truncated
// to centiseconds, and the cue end time is dropped. Cue text is stripped of
// markup, HTML entities are decoded, and cues left empty are omitted.
//
// # Embedding
//
// The format is derived from the file extension and dispatched once to a
// per-format tag editor. Prior lyrics entries are removed before the new
// one is written, and the same holds for the front cover, so a file never
// carries more than one of each after a successful embed. A request without
// cover bytes leaves the existing cover alone.
//
//	[Embed]
//	  ├─ m4a   - moov/udta/meta/ilst ©lyr and covr items
//	  ├─ mp3   - USLT and APIC frames (ID3v2.4)
//	  └─ flac  - LYRICS comment and PICTURE blocks
//
// # Error Handling
//
// Embed and VerifyDetailed return typed errors:
//
//   - *UnsupportedFormatError: the extension maps to no supported container;
//     the file is never opened
//   - *TagError: a tag block could not be opened, edited or saved; Step names
//     the failed part of the protocol
//   - *VerificationMismatchError: the file was written but the lyrics were not
//     found on read-back
//
// Use errors.As to tell them apart:
//
//	var tagErr *lyricsync.TagError
//	if errors.As(err, &tagErr) {
//		log.Printf("%s failed at %s", tagErr.Path, tagErr.Step)
//	}
//
// # Concurrency
//
// Embed holds an exclusive advisory lock per audio file for its duration.
// Within one process, embeds are expected to run one file at a time.
package lyricsync
