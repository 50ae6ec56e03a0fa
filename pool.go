// Copyright 2024 The codff Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ff

import "fmt"

// poolRecordSize is the width of one asset pool record: a 4-byte pointer
// word and a 4-byte type word, in either order (spec.md §4.5).
const poolRecordSize = 8

// PoolEntry is one decoded asset pool record.
type PoolEntry struct {
	// Index is this record's position in the pool, 0-based.
	Index int
	// TypeID is the raw on-disk type byte. Use VariantInfo.AssetTypeIDs (or
	// typeIDToAssetType) to map it back to an AssetType.
	TypeID uint8
	// Pointer is the record's pointer word. It is the inline marker on
	// every asset this codec understands; a real runtime pointer here
	// would mean an asset shape outside this package's scope.
	Pointer uint32
	Inline  bool
	// Offset is this record's byte offset within the zone buffer.
	Offset uint32
}

// typeIDToAssetType inverts a variant's AssetTypeIDs table.
func typeIDToAssetType(info VariantInfo, id uint8) (AssetType, bool) {
	for at, tid := range info.AssetTypeIDs {
		if tid == id {
			return AssetType(at), true
		}
	}
	return 0, false
}

// AssetType looks up e's decoded asset type for the given variant.
func (e PoolEntry) AssetType(info VariantInfo) (AssetType, bool) {
	return typeIDToAssetType(info, e.TypeID)
}

// ParsePool walks the asset pool starting at poolOffset (the tag section
// end, or 0 if absent), per spec.md §4.5: read 8 bytes at a time, stop at
// an all-0xFF sentinel record, and otherwise accept a candidate record
// only when its type id belongs to the variant's asset enumeration;
// anything else is skipped with a 1-byte probe instead of aborting the
// walk. It returns the decoded entries and the offset just past the
// sentinel, i.e. the start of the payload area.
func ParsePool(zone []byte, info VariantInfo, poolOffset uint32) ([]PoolEntry, uint32, error) {
	offset := poolOffset
	var entries []PoolEntry

	for {
		if uint64(offset)+poolRecordSize > uint64(len(zone)) {
			return nil, 0, fmt.Errorf("%w: asset pool", ErrTruncated)
		}
		if allFF(zone, offset, poolRecordSize) {
			return entries, offset + poolRecordSize, nil
		}
		if entry, ok := decodePoolRecord(zone[offset:offset+poolRecordSize], info, offset, len(entries)); ok {
			entries = append(entries, entry)
			offset += poolRecordSize
			continue
		}
		offset++
	}
}

// decodePoolRecord tries both 8-byte encodings for rec, preferring
// pointer-first when the leading quad is the inline marker and
// type-first otherwise (spec.md §4.5 tie-break), accepting only a
// candidate whose type id belongs to info's asset enumeration.
func decodePoolRecord(rec []byte, info VariantInfo, offset uint32, index int) (PoolEntry, bool) {
	decode := func(pointerFirst bool) (PoolEntry, bool) {
		var ptrWord, typeWord uint32
		var err error
		if pointerFirst {
			ptrWord, err = readUint32(rec, 0, info.Endian)
			if err == nil {
				typeWord, err = readUint32(rec, 4, info.Endian)
			}
		} else {
			typeWord, err = readUint32(rec, 0, info.Endian)
			if err == nil {
				ptrWord, err = readUint32(rec, 4, info.Endian)
			}
		}
		if err != nil || typeWord&^0xFF != 0 {
			return PoolEntry{}, false
		}
		typeID := uint8(typeWord & 0xFF)
		if _, ok := typeIDToAssetType(info, typeID); !ok {
			return PoolEntry{}, false
		}
		return PoolEntry{
			Index:   index,
			TypeID:  typeID,
			Pointer: ptrWord,
			Inline:  ptrWord == 0xFFFFFFFF,
			Offset:  offset,
		}, true
	}

	pointerFirst := isInlineMarker(rec[0:4])
	if entry, ok := decode(pointerFirst); ok {
		return entry, true
	}
	return decode(!pointerFirst)
}
