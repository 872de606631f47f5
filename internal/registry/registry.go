// Package registry maps container formats to their tag editors and readers.
//
// Format packages register themselves from init functions. Callers look up
// a format once and drive the returned editor through the whole embed
// protocol; no per-step dispatch happens outside this package.
package registry

import (
	"sync"

	"github.com/simonhull/lyricsync/internal/types"
)

// TagEditor edits the tag block of one opened audio file.
//
// Steps are applied in memory and only reach the disk on Persist. Close
// releases every resource the editor holds and must be called on all paths.
type TagEditor interface {
	// RemoveLyrics deletes every existing lyrics entry.
	RemoveLyrics() error
	// WriteLyrics adds a single lyrics entry.
	WriteLyrics(text string) error
	// RemoveCover deletes every existing cover picture.
	RemoveCover() error
	// WriteCover adds a single JPEG front-cover picture.
	WriteCover(jpeg []byte) error
	// Persist saves the edited tag block to the file.
	Persist() error
	// Close releases the file.
	Close() error
}

// Opener opens a TagEditor for a file path.
type Opener interface {
	Open(path string) (TagEditor, error)
}

// TagReader reads tag entries back without modifying the file.
type TagReader interface {
	// ReadLyrics returns the text of every lyrics entry in file order.
	ReadLyrics(path string) ([]string, error)
	// ReadCovers returns every embedded picture in file order.
	ReadCovers(path string) ([]types.Artwork, error)
}

var (
	mu      sync.RWMutex
	openers = make(map[types.Format]Opener)
	readers = make(map[types.Format]TagReader)
)

// RegisterOpener registers the editor opener for a format.
func RegisterOpener(format types.Format, o Opener) {
	mu.Lock()
	defer mu.Unlock()
	openers[format] = o
}

// GetOpener returns the opener for a format, or nil.
func GetOpener(format types.Format) Opener {
	mu.RLock()
	defer mu.RUnlock()
	return openers[format]
}

// RegisterReader registers the tag reader for a format.
func RegisterReader(format types.Format, r TagReader) {
	mu.Lock()
	defer mu.Unlock()
	readers[format] = r
}

// GetReader returns the reader for a format, or nil.
func GetReader(format types.Format) TagReader {
	mu.RLock()
	defer mu.RUnlock()
	return readers[format]
}
