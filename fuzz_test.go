// Copyright 2024 The codff Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ff

import "testing"

func TestFuzzAcceptsValidArchive(t *testing.T) {
	info := testVariant(t)
	input := SynthesisInput{RawFiles: []RawFile{{Name: "a.gsc", Content: []byte("main(){}\n")}}}
	zone, err := Synthesize(info, input, LevelOptimal)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	archive, err := Compress(zone, info, CompressOptions{Level: LevelOptimal})
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}

	if got := Fuzz(archive); got != 1 {
		t.Errorf("Fuzz(valid archive) = %d, want 1", got)
	}
}

func TestFuzzRejectsGarbage(t *testing.T) {
	if got := Fuzz([]byte{0, 1, 2, 3}); got != 0 {
		t.Errorf("Fuzz(garbage) = %d, want 0", got)
	}
}
