// Copyright 2024 The codff Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ff

// Fuzz is a go-fuzz style entrypoint exercising the full read path:
// Decompress then ParseZone. It returns 1 when data parsed into a usable
// zone (the corpus should keep it), 0 when data was rejected cleanly, and
// panics only on a codec bug the fuzzer should report (mirrors the
// saferwall-style raw-input fuzz harness).
func Fuzz(data []byte) int {
	zone, info, _, err := Decompress(data)
	if err != nil {
		return 0
	}
	if _, err := ParseZone(zone, info); err != nil {
		return 0
	}
	return 1
}

// FuzzPool exercises ParsePool directly against arbitrary zone-shaped
// bytes, independent of a valid archive framing or header.
func FuzzPool(data []byte) int {
	if len(data) < int(preludeSize) {
		return 0
	}
	info, ok := Lookup(Variant{Game: GameMW2, Platform: PlatformPS3})
	if !ok {
		return 0
	}
	if _, _, err := ParsePool(data, info, 0); err != nil {
		return 0
	}
	return 1
}
