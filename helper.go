// Copyright 2024 The codff Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ff

import (
	"bytes"
	"encoding/binary"
)

// inlineMarker is the FF FF FF FF placeholder the format uses in place of
// a runtime pointer, meaning "the real value follows inline" (spec.md §9:
// model this as a distinct constant, never as an address).
var inlineMarker = [4]byte{0xFF, 0xFF, 0xFF, 0xFF}

func isInlineMarker(b []byte) bool {
	return len(b) >= 4 && bytes.Equal(b[:4], inlineMarker[:])
}

// readUint32 reads a bounds-checked u32 at offset using the given order.
func readUint32(buf []byte, offset uint32, order binary.ByteOrder) (uint32, error) {
	if uint64(offset)+4 > uint64(len(buf)) {
		return 0, ErrTruncated
	}
	return order.Uint32(buf[offset:]), nil
}

// readUint16 reads a bounds-checked u16 at offset using the given order.
func readUint16(buf []byte, offset uint32, order binary.ByteOrder) (uint16, error) {
	if uint64(offset)+2 > uint64(len(buf)) {
		return 0, ErrTruncated
	}
	return order.Uint16(buf[offset:]), nil
}

func writeUint32(buf []byte, offset uint32, v uint32, order binary.ByteOrder) {
	order.PutUint32(buf[offset:offset+4], v)
}

func writeUint16(buf []byte, offset uint32, v uint16, order binary.ByteOrder) {
	order.PutUint16(buf[offset:offset+2], v)
}

// cstring reads a NUL-terminated ASCII string starting at offset and
// returns it along with the offset just past the terminating NUL.
func cstring(buf []byte, offset uint32) (string, uint32, error) {
	if uint64(offset) > uint64(len(buf)) {
		return "", 0, ErrTruncated
	}
	end := offset
	for end < uint32(len(buf)) && buf[end] != 0 {
		end++
	}
	if end >= uint32(len(buf)) {
		return "", 0, ErrTruncated
	}
	return string(buf[offset:end]), end + 1, nil
}

// allFF reports whether buf[offset:offset+n] is entirely 0xFF bytes.
func allFF(buf []byte, offset, n uint32) bool {
	if uint64(offset)+uint64(n) > uint64(len(buf)) {
		return false
	}
	for i := uint32(0); i < n; i++ {
		if buf[offset+i] != 0xFF {
			return false
		}
	}
	return true
}

// isPrintableASCII reports whether b holds only printable, non-control
// ASCII bytes. Nothing in the package calls it.
func isPrintableASCII(b []byte) bool {
	for _, c := range b {
		if c < 0x20 || c > 0x7E {
			return false
		}
	}
	return true
}

// hasRunOf reports whether s contains a run of n or more identical bytes,
// used by the localize key validator to reject noise.
func hasRunOf(s []byte, n int) bool {
	if n <= 1 {
		return len(s) > 0
	}
	run := 1
	for i := 1; i < len(s); i++ {
		if s[i] == s[i-1] {
			run++
			if run >= n {
				return true
			}
		} else {
			run = 1
		}
	}
	return false
}

// alignUp rounds offset up to the next multiple of n (n a power of two).
func alignUp(offset, n uint32) uint32 {
	return (offset + n - 1) &^ (n - 1)
}

func minU32(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}

func maxU32(a, b uint32) uint32 {
	if a > b {
		return a
	}
	return b
}
