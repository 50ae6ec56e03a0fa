// Copyright 2024 The codff Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ff

import (
	"bytes"
	"testing"
)

func TestCompressDecompressBlockFramed(t *testing.T) {
	info, ok := Lookup(Variant{Game: GameCoD4, Platform: PlatformPS3})
	if !ok {
		t.Fatal("missing CoD4 PS3 variant")
	}
	zone := bytes.Repeat([]byte("fast file zone content "), 4096)

	archive, err := Compress(zone, info, CompressOptions{Level: LevelOptimal})
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}

	got, gotInfo, _, err := Decompress(archive)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if !bytes.Equal(got, zone) {
		t.Fatal("round trip through block framing changed the zone bytes")
	}
	if gotInfo.Game != GameCoD4 {
		t.Errorf("Decompress resolved game %v, want CoD4", gotInfo.Game)
	}
}

func TestCompressDecompressSingleStream(t *testing.T) {
	info, ok := Lookup(Variant{Game: GameMW2, Platform: PlatformPC})
	if !ok {
		t.Fatal("missing MW2 PC variant")
	}
	zone := bytes.Repeat([]byte("mw2 single stream zone "), 1024)

	archive, err := Compress(zone, info, CompressOptions{Level: LevelOptimal})
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}

	got, _, _, err := Decompress(archive)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if !bytes.Equal(got, zone) {
		t.Fatal("round trip through single-stream framing changed the zone bytes")
	}
}

func TestCompressDecompressSigned(t *testing.T) {
	info, ok := Lookup(Variant{Game: GameCoD4, Platform: PlatformXbox360, IsSigned: true})
	if !ok {
		t.Fatal("missing signed CoD4 Xbox 360 variant")
	}
	if info.Magic != MagicSigned {
		t.Fatalf("signed variant prelude magic = %q, want %q", info.Magic, MagicSigned)
	}
	zone := bytes.Repeat([]byte("signed xbox 360 zone content "), 2048)
	hashTable := bytes.Repeat([]byte{0xAB}, streamingHashTableSize)

	archive, err := Compress(zone, info, CompressOptions{Level: LevelSmallest, HashTable: hashTable})
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if !bytes.HasPrefix(archive, []byte(MagicSigned)) {
		t.Fatalf("signed archive prelude = %q, want %q", archive[:8], MagicSigned)
	}
	if !bytes.Equal(archive[preludeSize:preludeSize+8], []byte(MagicStream)) {
		t.Fatalf("signed archive in-body marker = %q, want %q", archive[preludeSize:preludeSize+8], MagicStream)
	}

	got, gotInfo, gotHashTable, err := Decompress(archive)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if !bytes.Equal(got, zone) {
		t.Fatal("round trip through signed framing changed the zone bytes")
	}
	if !gotInfo.IsSigned {
		t.Error("Decompress lost the signed flag")
	}
	if !bytes.Equal(gotHashTable, hashTable) {
		t.Error("Decompress did not return the verbatim hash table")
	}
}

func TestCompressSignedRejectsMissingHashTable(t *testing.T) {
	info, ok := Lookup(Variant{Game: GameCoD4, Platform: PlatformXbox360, IsSigned: true})
	if !ok {
		t.Fatal("missing signed CoD4 Xbox 360 variant")
	}
	if _, err := Compress([]byte("zone"), info, CompressOptions{Level: LevelOptimal}); err == nil {
		t.Fatal("expected Compress to reject a signed rewrite with no hash table")
	}
}

func TestDetectRejectsShortInput(t *testing.T) {
	if _, err := Detect([]byte{1, 2, 3}); err != ErrTruncated {
		t.Errorf("Detect on short input = %v, want ErrTruncated", err)
	}
}

func TestDetectRejectsUnknownMagic(t *testing.T) {
	bad := append([]byte("XXXXXXXX"), 0, 0, 0, 1)
	if _, err := Detect(bad); err != ErrMagicMismatch {
		t.Errorf("Detect on unknown magic = %v, want ErrMagicMismatch", err)
	}
}
