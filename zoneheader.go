// Copyright 2024 The codff Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ff

import "fmt"

// zoneSizeOffset / memAlloc1Offset / memAlloc2Offset are fixed across every
// known variant: the header always opens with the total zone size followed
// by the two mem-alloc constants (spec.md §3, §4.4).
const (
	zoneSizeOffset  uint32 = 0
	memAlloc1Offset uint32 = 4
	memAlloc2Offset uint32 = 8
)

// ZoneHeader is the decoded view of a zone's fixed-size header. Every field
// the codec does not model is left untouched in the raw bytes it was parsed
// from; Bytes() re-encodes only the fields Mutate and Synthesize can change.
type ZoneHeader struct {
	raw    []byte
	info   VariantInfo
	Size   uint32
	Alloc1 uint32
	Alloc2 uint32

	AssetCount        uint32
	ScriptStringCount uint32
}

// ParseZoneHeader reads the fixed-size header at the front of a decompressed
// zone buffer.
func ParseZoneHeader(zone []byte, info VariantInfo) (ZoneHeader, error) {
	if uint32(len(zone)) < info.ZoneHeaderSize {
		return ZoneHeader{}, fmt.Errorf("%w: zone header", ErrTruncated)
	}
	raw := make([]byte, info.ZoneHeaderSize)
	copy(raw, zone[:info.ZoneHeaderSize])

	h := ZoneHeader{raw: raw, info: info}
	var err error
	if h.Size, err = readUint32(raw, zoneSizeOffset, info.Endian); err != nil {
		return ZoneHeader{}, err
	}
	if h.Alloc1, err = readUint32(raw, memAlloc1Offset, info.Endian); err != nil {
		return ZoneHeader{}, err
	}
	if h.Alloc2, err = readUint32(raw, memAlloc2Offset, info.Endian); err != nil {
		return ZoneHeader{}, err
	}
	if h.AssetCount, err = readUint32(raw, info.AssetCountOffset, info.Endian); err != nil {
		return ZoneHeader{}, err
	}
	if h.ScriptStringCount, err = readUint32(raw, info.ScriptStringCountOffset, info.Endian); err != nil {
		return ZoneHeader{}, err
	}
	return h, nil
}

// VerifyGame cross-checks the mem-alloc pair against the registry, the
// definitive refinement spec.md §4.1 describes: the archive-level magic and
// version can be ambiguous, but the decompressed mem-alloc pair is not.
func (h ZoneHeader) VerifyGame() error {
	game, ok := gameByMemAlloc(h.Alloc1, h.Alloc2)
	if !ok {
		return fmt.Errorf("%w: mem_alloc pair %#x/%#x matches no known game", ErrInvariantViolation, h.Alloc1, h.Alloc2)
	}
	if game != h.info.Game {
		return fmt.Errorf("%w: mem_alloc pair selects %s but archive framing selected %s", ErrInvariantViolation, game, h.info.Game)
	}
	return nil
}

// Bytes re-encodes the header, writing back Size, AssetCount and
// ScriptStringCount over the original raw bytes. Every other field -
// including the mem-alloc pair, which Mutate never changes - is preserved
// verbatim.
func (h ZoneHeader) Bytes() []byte {
	out := make([]byte, len(h.raw))
	copy(out, h.raw)
	writeUint32(out, zoneSizeOffset, h.Size, h.info.Endian)
	writeUint32(out, h.info.AssetCountOffset, h.AssetCount, h.info.Endian)
	writeUint32(out, h.info.ScriptStringCountOffset, h.ScriptStringCount, h.info.Endian)
	return out
}

// WithSize returns a copy of h with Size replaced, used by rebuild after a
// mutation recomputes the zone's total byte length.
func (h ZoneHeader) WithSize(size uint32) ZoneHeader {
	h2 := h
	h2.Size = size
	return h2
}
