// Package vorbis provides helpers for Vorbis comment lists.
//
// A comment is a UTF-8 string in "KEY=VALUE" form. Field names are
// case-insensitive ASCII, so every lookup here folds case.
package vorbis

import (
	"strings"
)

// Field names used for lyrics. LYRICS is the one written; UNSYNCEDLYRICS
// is a common alias that is removed alongside it.
const (
	FieldLyrics         = "LYRICS"
	FieldUnsyncedLyrics = "UNSYNCEDLYRICS"
)

// LyricsFields lists every field name treated as a lyrics entry.
var LyricsFields = []string{FieldLyrics, FieldUnsyncedLyrics}

// Split separates a comment into key and value. ok is false when the
// comment has no '=' separator.
func Split(comment string) (key, value string, ok bool) {
	key, value, ok = strings.Cut(comment, "=")
	return key, value, ok
}

// HasKey reports whether the comment's field name matches any of keys,
// ignoring case.
func HasKey(comment string, keys ...string) bool {
	key, _, ok := Split(comment)
	if !ok {
		return false
	}
	for _, k := range keys {
		if strings.EqualFold(key, k) {
			return true
		}
	}
	return false
}

// Without returns comments minus every entry whose field name matches one
// of keys, and the number of entries removed. Malformed entries are kept.
func Without(comments []string, keys ...string) ([]string, int) {
	out := make([]string, 0, len(comments))
	removed := 0
	for _, c := range comments {
		if HasKey(c, keys...) {
			removed++
			continue
		}
		out = append(out, c)
	}
	return out, removed
}

// Values returns the value of every comment whose field name matches key.
func Values(comments []string, key string) []string {
	var out []string
	for _, c := range comments {
		k, v, ok := Split(c)
		if ok && strings.EqualFold(k, key) {
			out = append(out, v)
		}
	}
	return out
}
