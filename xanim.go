// Copyright 2024 The codff Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ff

import "fmt"

// xanimHeaderSize is the fixed portion this package inspects: name pointer
// plus the six count fields that drive the offset calculation below.
// Inspection-only, like image.go (spec.md §3.1, supplemented from
// original_source/).
const xanimHeaderSize = 28

// XAnimOffsets is the set of derived byte offsets into an xanim asset's
// variable-length payload, computed from its count fields rather than
// stored directly on disk.
type XAnimOffsets struct {
	DataByte  uint32
	DataShort uint32
	DataInt   uint32
	Indices   uint32
	Notifies  uint32
	DeltaPart uint32

	// IndexEntryWidth is 1 when the frame count fits a byte, 2 otherwise:
	// the format packs indices as narrow as the frame count allows.
	IndexEntryWidth uint8
}

// ComputeXAnimOffsets decodes the count fields at offset and derives each
// sub-array's byte offset. Every sub-array is 4-byte aligned; the notify
// and delta-part arrays follow the index array whose entry width depends
// on whether the frame count fits one byte (spec.md §4.6 alignment rule).
func ComputeXAnimOffsets(zone []byte, info VariantInfo, offset uint32) (XAnimOffsets, error) {
	if uint64(offset)+xanimHeaderSize > uint64(len(zone)) {
		return XAnimOffsets{}, fmt.Errorf("%w: xanim header", ErrTruncated)
	}

	numFrames, err := readUint32(zone, offset+4, info.Endian)
	if err != nil {
		return XAnimOffsets{}, err
	}
	byteCount, err := readUint32(zone, offset+8, info.Endian)
	if err != nil {
		return XAnimOffsets{}, err
	}
	shortCount, err := readUint32(zone, offset+12, info.Endian)
	if err != nil {
		return XAnimOffsets{}, err
	}
	intCount, err := readUint32(zone, offset+16, info.Endian)
	if err != nil {
		return XAnimOffsets{}, err
	}
	indexCount, err := readUint32(zone, offset+20, info.Endian)
	if err != nil {
		return XAnimOffsets{}, err
	}
	notifyCount, err := readUint32(zone, offset+24, info.Endian)
	if err != nil {
		return XAnimOffsets{}, err
	}

	var out XAnimOffsets
	cursor := offset + xanimHeaderSize

	out.DataByte = cursor
	cursor = alignUp(cursor+byteCount, 4)

	out.DataShort = cursor
	cursor = alignUp(cursor+shortCount*2, 4)

	out.DataInt = cursor
	cursor = alignUp(cursor+intCount*4, 4)

	out.Indices = cursor
	if numFrames <= 0xFF {
		out.IndexEntryWidth = 1
		cursor = alignUp(cursor+indexCount, 4)
	} else {
		out.IndexEntryWidth = 2
		cursor = alignUp(cursor+indexCount*2, 4)
	}

	out.Notifies = cursor
	cursor = alignUp(cursor+notifyCount*12, 4)

	out.DeltaPart = cursor

	return out, nil
}
