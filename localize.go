// Copyright 2024 The codff Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ff

import "fmt"

// localizeHeaderSize is the fixed portion preceding the inline key/value
// strings: a value pointer and a key pointer, both inline markers.
const localizeHeaderSize = 8

// minLocalizeKeyLen / maxLocalizeKeyLen bound a plausible localize key
// (spec.md §4.6).
const (
	minLocalizeKeyLen = 3
	maxLocalizeKeyLen = 150
	// localizeKeyIdenticalRun is the shortest run of identical characters
	// treated as noise rather than part of a real key.
	localizeKeyIdenticalRun = 4
)

// LocalizedEntry is a decoded localize asset: a translation key and its
// value string. Some builds carry a key-only degenerate form with no value
// string at all.
type LocalizedEntry struct {
	Key   string
	Value string

	// KeyOnly marks the degenerate form spec.md §4.6 calls out, where the
	// value pointer is absent rather than inline-empty.
	KeyOnly bool

	offset    uint32
	totalSize uint32
}

// ParseLocalizedEntry decodes one localize record at offset: value string
// then key string, both inline NUL-terminated ASCII.
func ParseLocalizedEntry(zone []byte, offset uint32) (LocalizedEntry, error) {
	if uint64(offset)+localizeHeaderSize > uint64(len(zone)) {
		return LocalizedEntry{}, fmt.Errorf("%w: localize header", ErrTruncated)
	}
	cursor := offset + localizeHeaderSize

	valuePtrInline := isInlineMarker(zone[offset : offset+4])
	keyOnly := !valuePtrInline

	var value string
	if !keyOnly {
		v, next, err := cstring(zone, cursor)
		if err != nil {
			return LocalizedEntry{}, fmt.Errorf("%w: localize value", err)
		}
		value = v
		cursor = next
	}

	key, next, err := cstring(zone, cursor)
	if err != nil {
		return LocalizedEntry{}, fmt.Errorf("%w: localize key", err)
	}
	if !isValidLocalizeKey([]byte(key)) {
		return LocalizedEntry{}, fmt.Errorf("%w: localize key %q", ErrValidationFailure, key)
	}

	return LocalizedEntry{
		Key:       key,
		Value:     value,
		KeyOnly:   keyOnly,
		offset:    offset,
		totalSize: next - offset,
	}, nil
}

// isValidLocalizeKey enforces spec.md §4.6's probe-scanning rule: ASCII,
// 3-150 chars, starting with an uppercase letter, drawn only from
// [A-Z0-9_], with at least one underscore, at least two uppercase
// letters, and no run of 4+ identical characters.
func isValidLocalizeKey(key []byte) bool {
	if len(key) < minLocalizeKeyLen || len(key) > maxLocalizeKeyLen {
		return false
	}
	if key[0] < 'A' || key[0] > 'Z' {
		return false
	}

	underscores := 0
	upper := 0
	for _, c := range key {
		switch {
		case c >= 'A' && c <= 'Z':
			upper++
		case c >= '0' && c <= '9':
		case c == '_':
			underscores++
		default:
			return false
		}
	}
	if underscores < 1 || upper < 2 {
		return false
	}
	if hasRunOf(key, localizeKeyIdenticalRun) {
		return false
	}
	return true
}

// Encode re-serializes e as a localize record. A KeyOnly entry omits the
// value pointer and string, preserving the degenerate form on round-trip.
func (e LocalizedEntry) Encode() []byte {
	out := make([]byte, localizeHeaderSize)
	if !e.KeyOnly {
		copy(out[0:4], inlineMarker[:])
	}
	copy(out[4:8], inlineMarker[:])

	if !e.KeyOnly {
		out = append(out, []byte(e.Value)...)
		out = append(out, 0)
	}
	out = append(out, []byte(e.Key)...)
	out = append(out, 0)
	return out
}

// Size returns the total byte span this entry occupied when parsed.
func (e LocalizedEntry) Size() uint32 { return e.totalSize }

// Offset returns the byte offset this entry was parsed from.
func (e LocalizedEntry) Offset() uint32 { return e.offset }
