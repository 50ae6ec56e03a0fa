// Copyright 2024 The codff Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ff

import "fmt"

// ZoneIndex is the fully parsed structural view of a zone: its header, its
// asset pool, and the decoded rawfile/localize payloads the mutator and
// synthesizer operate on. Image and xanim assets are left as pool entries;
// callers that need them call ParseImageAssetInfo / ComputeXAnimOffsets
// directly, since this package never mutates them.
type ZoneIndex struct {
	Header ZoneHeader
	Pool   []PoolEntry

	RawFiles   map[int]RawFile
	Localized  map[int]LocalizedEntry
	poolOffset uint32
}

// ParseZone decodes a decompressed zone buffer end to end: header, asset
// pool, then every rawfile and localize payload the pool references
// (spec.md §4.4-§4.6, the C5/C6 pipeline).
func ParseZone(zone []byte, info VariantInfo) (*ZoneIndex, error) {
	header, err := ParseZoneHeader(zone, info)
	if err != nil {
		return nil, err
	}
	if err := header.VerifyGame(); err != nil {
		return nil, err
	}

	poolOffset, err := locateTagSectionEnd(zone, info, header.ScriptStringCount)
	if err != nil {
		return nil, err
	}
	pool, payloadOffset, err := ParsePool(zone, info, poolOffset)
	if err != nil {
		return nil, err
	}

	idx := &ZoneIndex{
		Header:     header,
		Pool:       pool,
		RawFiles:   make(map[int]RawFile),
		Localized:  make(map[int]LocalizedEntry),
		poolOffset: poolOffset,
	}

	for _, entry := range pool {
		at, ok := entry.AssetType(info)
		if !ok {
			continue
		}
		switch at {
		case AssetTypeRawFile:
			rf, err := ParseRawFile(zone, info, payloadOffset)
			if err != nil {
				return nil, fmt.Errorf("pool entry %d: %w", entry.Index, err)
			}
			idx.RawFiles[entry.Index] = rf
			payloadOffset += rf.Size()
		case AssetTypeLocalize:
			le, err := ParseLocalizedEntry(zone, payloadOffset)
			if err != nil {
				return nil, fmt.Errorf("pool entry %d: %w", entry.Index, err)
			}
			idx.Localized[entry.Index] = le
			payloadOffset += le.Size()
		}
	}

	return idx, nil
}

// EntryByName finds the pool index of the rawfile with the given name.
func (idx *ZoneIndex) EntryByName(name string) (int, bool) {
	for i, rf := range idx.RawFiles {
		if rf.Name == name {
			return i, true
		}
	}
	return 0, false
}

// LocalizeByKey finds the pool index of the localize entry with the given key.
func (idx *ZoneIndex) LocalizeByKey(key string) (int, bool) {
	for i, le := range idx.Localized {
		if le.Key == key {
			return i, true
		}
	}
	return 0, false
}
