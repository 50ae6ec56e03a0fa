// Copyright 2024 The codff Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ff

import "testing"

func appendSentinel(zone []byte) []byte {
	return append(zone, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF)
}

func TestParsePoolTypeFirst(t *testing.T) {
	info := testVariant(t)
	zone := make([]byte, poolRecordSize*2)
	writeUint32(zone, 0, uint32(info.RawFileTypeID()), info.Endian)
	copy(zone[4:8], inlineMarker[:])
	writeUint32(zone, 8, uint32(info.LocalizeTypeID()), info.Endian)
	copy(zone[12:16], inlineMarker[:])
	zone = appendSentinel(zone)

	entries, poolEnd, err := ParsePool(zone, info, 0)
	if err != nil {
		t.Fatalf("ParsePool: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if poolEnd != uint32(len(zone)) {
		t.Errorf("poolEnd = %d, want %d", poolEnd, len(zone))
	}
	at0, ok := entries[0].AssetType(info)
	if !ok || at0 != AssetTypeRawFile {
		t.Errorf("entries[0].AssetType = %v, %v, want AssetTypeRawFile, true", at0, ok)
	}
	if !entries[0].Inline {
		t.Error("expected entries[0] to report an inline pointer")
	}
}

func TestParsePoolPointerFirst(t *testing.T) {
	info, ok := Lookup(Variant{Game: GameMW2, Platform: PlatformPC})
	if !ok {
		t.Fatal("missing MW2 PC variant")
	}
	zone := make([]byte, poolRecordSize)
	copy(zone[0:4], inlineMarker[:])
	writeUint32(zone, 4, uint32(info.RawFileTypeID()), info.Endian)
	zone = appendSentinel(zone)

	entries, _, err := ParsePool(zone, info, 0)
	if err != nil {
		t.Fatalf("ParsePool: %v", err)
	}
	at, ok := entries[0].AssetType(info)
	if !ok || at != AssetTypeRawFile {
		t.Errorf("AssetType = %v, %v, want AssetTypeRawFile, true", at, ok)
	}
}

func TestParsePoolByteProbeSkipsGap(t *testing.T) {
	info := testVariant(t)
	var zone []byte
	// A single stray byte before the first real record: the walker must
	// probe forward one byte at a time to resynchronize (spec.md §4.5).
	// 0x01 (rather than 0x00) keeps the 8-byte window straddling it from
	// coincidentally decoding as a spurious AssetTypeXModel (id 0) record.
	zone = append(zone, 0x01)
	rec := make([]byte, poolRecordSize)
	writeUint32(rec, 0, uint32(info.RawFileTypeID()), info.Endian)
	copy(rec[4:8], inlineMarker[:])
	zone = append(zone, rec...)
	zone = appendSentinel(zone)

	entries, poolEnd, err := ParsePool(zone, info, 0)
	if err != nil {
		t.Fatalf("ParsePool: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].Offset != 1 {
		t.Errorf("entries[0].Offset = %d, want 1 (after the stray byte)", entries[0].Offset)
	}
	if poolEnd != uint32(len(zone)) {
		t.Errorf("poolEnd = %d, want %d", poolEnd, len(zone))
	}
}

func TestParsePoolStopsAtSentinelImmediately(t *testing.T) {
	info := testVariant(t)
	zone := appendSentinel(nil)

	entries, poolEnd, err := ParsePool(zone, info, 0)
	if err != nil {
		t.Fatalf("ParsePool: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("got %d entries, want 0", len(entries))
	}
	if poolEnd != poolRecordSize {
		t.Errorf("poolEnd = %d, want %d", poolEnd, poolRecordSize)
	}
}

func TestParsePoolTruncatedNeverFindsSentinel(t *testing.T) {
	info := testVariant(t)
	zone := []byte{0x01, 0x02, 0x03}
	if _, _, err := ParsePool(zone, info, 0); err == nil {
		t.Fatal("expected a pool with no sentinel to fail as truncated")
	}
}
