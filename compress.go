// Copyright 2024 The codff Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ff

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zlib"
)

// CompressionLevel selects the encode_block level policy of spec.md §4.2:
// "optimal" for ordinary writes, "smallest-size" to match the signed
// Xbox 360 path's observed output.
type CompressionLevel int

const (
	// LevelOptimal is the default write policy.
	LevelOptimal CompressionLevel = iota
	// LevelSmallest matches the signed Xbox 360 loader's reference output.
	LevelSmallest
)

func (l CompressionLevel) flateLevel() int {
	if l == LevelSmallest {
		return flate.BestCompression
	}
	return flate.DefaultCompression
}

// encodeBlockRaw deflates data with no zlib wrapper, used by CoD4/WaW
// block framing and PC/console single-stream MW2 never uses this path.
func encodeBlockRaw(data []byte, level CompressionLevel) ([]byte, error) {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, level.flateLevel())
	if err != nil {
		return nil, fmt.Errorf("ff: raw deflate writer: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("ff: raw deflate write: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("ff: raw deflate close: %w", err)
	}
	return buf.Bytes(), nil
}

// encodeBlockZlib deflates data wrapped in a zlib header/checksum, used by
// all MW2 framings and by the MW2 compressed-rawfile payload encoding.
func encodeBlockZlib(data []byte, level CompressionLevel) ([]byte, error) {
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, level.flateLevel())
	if err != nil {
		return nil, fmt.Errorf("ff: zlib writer: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("ff: zlib write: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("ff: zlib close: %w", err)
	}
	return buf.Bytes(), nil
}

// isZlibStream reports whether the first byte of data looks like a zlib
// header (0x78). decodeBlock uses this to auto-detect zlib vs raw deflate
// per spec.md §4.2.
func isZlibStream(data []byte) bool {
	return len(data) > 0 && data[0] == 0x78
}

// decodeBlock decodes either a raw-deflate or zlib-wrapped-deflate block,
// auto-detecting which framing was used.
func decodeBlock(data []byte) ([]byte, error) {
	if isZlibStream(data) {
		r, err := zlib.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%w: zlib header: %v", ErrDecodeFailure, err)
		}
		defer r.Close()
		out, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("%w: zlib body: %v", ErrDecodeFailure, err)
		}
		return out, nil
	}

	r := flate.NewReader(bytes.NewReader(data))
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: raw deflate: %v", ErrDecodeFailure, err)
	}
	return out, nil
}

// encodeBlock picks raw or zlib-wrapped deflate according to the variant's
// archive framing (spec.md §4.2: "selected by variant").
func encodeBlock(data []byte, info VariantInfo, level CompressionLevel) ([]byte, error) {
	if info.ZlibFramed {
		return encodeBlockZlib(data, level)
	}
	return encodeBlockRaw(data, level)
}
