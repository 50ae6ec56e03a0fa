// Copyright 2024 The codff Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ff

import "testing"

func TestComputeXAnimOffsetsNarrowIndices(t *testing.T) {
	info := testVariant(t)
	zone := make([]byte, xanimHeaderSize+64)
	writeUint32(zone, 4, 10, info.Endian)  // numFrames, fits a byte
	writeUint32(zone, 8, 3, info.Endian)   // byteCount
	writeUint32(zone, 12, 2, info.Endian)  // shortCount
	writeUint32(zone, 16, 1, info.Endian)  // intCount
	writeUint32(zone, 20, 5, info.Endian)  // indexCount
	writeUint32(zone, 24, 0, info.Endian)  // notifyCount

	offs, err := ComputeXAnimOffsets(zone, info, 0)
	if err != nil {
		t.Fatalf("ComputeXAnimOffsets: %v", err)
	}
	if offs.IndexEntryWidth != 1 {
		t.Errorf("IndexEntryWidth = %d, want 1 for a sub-256 frame count", offs.IndexEntryWidth)
	}
	if offs.DataByte != xanimHeaderSize {
		t.Errorf("DataByte = %d, want %d", offs.DataByte, xanimHeaderSize)
	}
	if offs.DataShort%4 != 0 || offs.DataInt%4 != 0 || offs.Indices%4 != 0 {
		t.Error("every sub-array offset must be 4-byte aligned")
	}
}

func TestComputeXAnimOffsetsWideIndices(t *testing.T) {
	info := testVariant(t)
	zone := make([]byte, xanimHeaderSize+64)
	writeUint32(zone, 4, 1000, info.Endian) // numFrames, needs 2 bytes
	writeUint32(zone, 20, 4, info.Endian)   // indexCount

	offs, err := ComputeXAnimOffsets(zone, info, 0)
	if err != nil {
		t.Fatalf("ComputeXAnimOffsets: %v", err)
	}
	if offs.IndexEntryWidth != 2 {
		t.Errorf("IndexEntryWidth = %d, want 2 for a frame count above 255", offs.IndexEntryWidth)
	}
}
