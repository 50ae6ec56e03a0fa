// Copyright 2024 The codff Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ff

import (
	"bytes"
	"testing"
)

func TestEncodeDecodeBlockRaw(t *testing.T) {
	data := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog "), 64)

	encoded, err := encodeBlockRaw(data, LevelOptimal)
	if err != nil {
		t.Fatalf("encodeBlockRaw: %v", err)
	}
	if isZlibStream(encoded) {
		t.Fatal("raw deflate output should not look like a zlib stream")
	}

	decoded, err := decodeBlock(encoded)
	if err != nil {
		t.Fatalf("decodeBlock: %v", err)
	}
	if !bytes.Equal(decoded, data) {
		t.Fatal("round trip through raw deflate changed the content")
	}
}

func TestEncodeDecodeBlockZlib(t *testing.T) {
	data := bytes.Repeat([]byte("zlib framed payload "), 64)

	encoded, err := encodeBlockZlib(data, LevelSmallest)
	if err != nil {
		t.Fatalf("encodeBlockZlib: %v", err)
	}
	if !isZlibStream(encoded) {
		t.Fatal("zlib output should be auto-detected")
	}

	decoded, err := decodeBlock(encoded)
	if err != nil {
		t.Fatalf("decodeBlock: %v", err)
	}
	if !bytes.Equal(decoded, data) {
		t.Fatal("round trip through zlib changed the content")
	}
}

func TestEncodeBlockDispatchesOnVariant(t *testing.T) {
	info, _ := Lookup(Variant{Game: GameMW2, Platform: PlatformPC})
	encoded, err := encodeBlock([]byte("payload"), info, LevelOptimal)
	if err != nil {
		t.Fatalf("encodeBlock: %v", err)
	}
	if !isZlibStream(encoded) {
		t.Fatal("MW2 variant should zlib-frame its blocks")
	}

	info, _ = Lookup(Variant{Game: GameCoD4, Platform: PlatformPS3})
	encoded, err = encodeBlock([]byte("payload"), info, LevelOptimal)
	if err != nil {
		t.Fatalf("encodeBlock: %v", err)
	}
	if isZlibStream(encoded) {
		t.Fatal("CoD4 variant should use raw deflate")
	}
}

func TestDecodeBlockRejectsGarbage(t *testing.T) {
	if _, err := decodeBlock([]byte{0x01, 0x02, 0x03}); err == nil {
		t.Fatal("expected garbage input to fail decoding")
	}
}
