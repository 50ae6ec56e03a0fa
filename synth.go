// Copyright 2024 The codff Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ff

import (
	"bytes"
	"fmt"
)

// defaultZoneName is the zone name Synthesize's footer carries when the
// caller leaves SynthesisInput.ZoneName empty (spec.md §4.8).
const defaultZoneName = "patch_mp"

// SynthesisInput is the content Synthesize assembles into a fresh zone.
// Synthesize only supports rawfile and localize assets (spec.md §4.8,
// Non-goals: it never fabricates xmodel/material/image/sound assets).
type SynthesisInput struct {
	RawFiles      []RawFile
	Localized     []LocalizedEntry
	ScriptStrings []string

	// ZoneName names the synthesized zone in its footer. Defaults to
	// "patch_mp" when empty.
	ZoneName string
}

// Synthesize builds a brand new zone from scratch: header, tag section,
// asset pool (terminated by the all-0xFF sentinel), payload area, footer,
// then padding, matching the byte-level shape ParseZone expects to read
// back (spec.md §4.8).
func Synthesize(info VariantInfo, input SynthesisInput, level CompressionLevel) ([]byte, error) {
	if len(input.RawFiles) == 0 && len(input.Localized) == 0 {
		return nil, fmt.Errorf("%w: synthesis requires at least one asset", ErrUnsupportedAssetAtRebuild)
	}

	zoneName := input.ZoneName
	if zoneName == "" {
		zoneName = defaultZoneName
	}

	recordCount := uint32(len(input.RawFiles) + len(input.Localized))
	// asset_count includes the trailing sentinel record (spec.md §3: "the
	// number of pool records including the trailing sentinel-associated
	// rawfile spacer entry").
	assetCount := recordCount + 1
	scriptStringCount := uint32(len(input.ScriptStrings))

	header := make([]byte, info.ZoneHeaderSize)
	writeUint32(header, info.AssetCountOffset, assetCount, info.Endian)
	writeUint32(header, info.ScriptStringCountOffset, scriptStringCount, info.Endian)
	writeUint32(header, memAlloc1Offset, info.MemAlloc1, info.Endian)
	writeUint32(header, memAlloc2Offset, info.MemAlloc2, info.Endian)

	var tagSection []byte
	for _, s := range input.ScriptStrings {
		tagSection = append(tagSection, []byte(s)...)
		tagSection = append(tagSection, 0)
	}

	type poolAsset struct {
		typeID uint8
		body   []byte
	}
	assets := make([]poolAsset, 0, recordCount)
	for _, rf := range input.RawFiles {
		body, err := rf.Encode(info, level)
		if err != nil {
			return nil, err
		}
		assets = append(assets, poolAsset{typeID: info.RawFileTypeID(), body: body})
	}
	for _, le := range input.Localized {
		assets = append(assets, poolAsset{typeID: info.LocalizeTypeID(), body: le.Encode()})
	}

	pool := make([]byte, recordCount*poolRecordSize)
	for i, a := range assets {
		rec := pool[uint32(i)*poolRecordSize : uint32(i+1)*poolRecordSize]
		if info.PoolPointerFirst {
			copy(rec[0:4], inlineMarker[:])
			writeUint32(rec, 4, uint32(a.typeID), info.Endian)
		} else {
			writeUint32(rec, 0, uint32(a.typeID), info.Endian)
			copy(rec[4:8], inlineMarker[:])
		}
	}

	var zone []byte
	zone = append(zone, header...)
	zone = append(zone, tagSection...)
	zone = append(zone, pool...)
	zone = append(zone, bytes.Repeat([]byte{0xFF}, poolRecordSize)...)
	for _, a := range assets {
		zone = append(zone, a.body...)
	}
	zone = append(zone, synthesizeFooter(info, zoneName)...)

	padded := alignUp(uint32(len(zone)), blockUncompressedSize)
	for uint32(len(zone)) < padded {
		zone = append(zone, 0)
	}

	writeUint32(zone, zoneSizeOffset, uint32(len(zone)), info.Endian)

	if _, err := ParseZone(zone, info); err != nil {
		return nil, fmt.Errorf("%w: synthesized zone failed to re-parse: %v", ErrInvariantViolation, err)
	}
	return zone, nil
}

// synthesizeFooter builds the trailing zoned-name record: a zero-size
// spacer bracketed by inline markers, then the zone name (spec.md §4.8
// item 5). MW2 carries an extra zeroed word over CoD4/WaW.
func synthesizeFooter(info VariantInfo, zoneName string) []byte {
	var out []byte
	out = append(out, inlineMarker[:]...)
	out = append(out, 0, 0, 0, 0)
	if info.Game == GameMW2 {
		out = append(out, 0, 0, 0, 0)
	}
	out = append(out, inlineMarker[:]...)
	out = append(out, []byte(zoneName)...)
	out = append(out, 0)
	return out
}
