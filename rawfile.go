// Copyright 2024 The codff Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ff

import "fmt"

// rawFileHeaderSize is the standard CoD4/WaW rawfile payload header:
// 0xFFx4 | size_be_u32 | 0xFFx4 | name..., both quads inline markers
// sandwiching the content length (spec.md §3, §8 scenario 2).
const rawFileHeaderSize = 12

// mw2RawFileHeaderSize extends the standard header with a second length
// field: MW2 rawfiles can carry their content zlib-compressed behind this
// 16-byte header, laid out 0xFFx4 | compressed_len_be_u32 |
// uncompressed_len_be_u32 | 0xFFx4 | name... (spec.md §3, §4.6).
const mw2RawFileHeaderSize = 16

// RawFile is a decoded rawfile payload: a name and its raw (already
// decompressed, if applicable) byte content.
type RawFile struct {
	Name    string
	Content []byte

	// Compressed records whether this entry used the MW2 compressed
	// encoding, so Mutate can round-trip the same encoding on write.
	Compressed bool

	// headerOffset / totalSize locate the entry within its
	// owning zone buffer for in-place mutation and TransferSpace bookkeeping.
	headerOffset uint32
	totalSize    uint32
}

// ParseRawFile decodes the rawfile payload record starting at offset. The
// name is read as an inline NUL-terminated string immediately following the
// fixed header, matching the payload-area layout spec.md §3 describes.
func ParseRawFile(zone []byte, info VariantInfo, offset uint32) (RawFile, error) {
	if info.CompressedRawFile {
		return parseRawFileMW2(zone, info, offset)
	}
	return parseRawFileStandard(zone, info, offset)
}

func parseRawFileStandard(zone []byte, info VariantInfo, offset uint32) (RawFile, error) {
	if uint64(offset)+rawFileHeaderSize > uint64(len(zone)) {
		return RawFile{}, fmt.Errorf("%w: rawfile header", ErrTruncated)
	}
	// bytes[0:4] marker, bytes[4:8] size, bytes[8:12] marker.
	length, err := readUint32(zone, offset+4, info.Endian)
	if err != nil {
		return RawFile{}, err
	}

	name, next, err := cstring(zone, offset+rawFileHeaderSize)
	if err != nil {
		return RawFile{}, fmt.Errorf("%w: rawfile name", err)
	}
	if uint64(next)+uint64(length) > uint64(len(zone)) {
		return RawFile{}, fmt.Errorf("%w: rawfile content", ErrTruncated)
	}
	content := make([]byte, length)
	copy(content, zone[next:next+length])

	return RawFile{
		Name:         name,
		Content:      content,
		headerOffset: offset,
		totalSize:    (next + length) - offset,
	}, nil
}

func parseRawFileMW2(zone []byte, info VariantInfo, offset uint32) (RawFile, error) {
	if uint64(offset)+mw2RawFileHeaderSize > uint64(len(zone)) {
		return RawFile{}, fmt.Errorf("%w: mw2 rawfile header", ErrTruncated)
	}
	// bytes[0:4] marker, bytes[4:8] compressed_len, bytes[8:12]
	// uncompressed_len, bytes[12:16] marker.
	compLen, err := readUint32(zone, offset+4, info.Endian)
	if err != nil {
		return RawFile{}, err
	}
	uncompLen, err := readUint32(zone, offset+8, info.Endian)
	if err != nil {
		return RawFile{}, err
	}

	name, next, err := cstring(zone, offset+mw2RawFileHeaderSize)
	if err != nil {
		return RawFile{}, fmt.Errorf("%w: mw2 rawfile name", err)
	}

	// compLen == 0 (or == uncompLen with no trailing zlib header) marks an
	// uncompressed entry: MW2 only pays the zlib tax when it shrinks the
	// payload (spec.md §4.6 heuristic).
	compressed := compLen != 0 && compLen != uncompLen
	storedLen := compLen
	if !compressed {
		storedLen = uncompLen
	}
	if uint64(next)+uint64(storedLen) > uint64(len(zone)) {
		return RawFile{}, fmt.Errorf("%w: mw2 rawfile content", ErrTruncated)
	}

	raw := zone[next : next+storedLen]
	content := raw
	if compressed {
		decoded, err := decodeBlock(raw)
		if err != nil {
			return RawFile{}, fmt.Errorf("%w: mw2 rawfile body: %v", ErrDecodeFailure, err)
		}
		if uint32(len(decoded)) != uncompLen {
			return RawFile{}, fmt.Errorf("%w: mw2 rawfile decoded length mismatch", ErrDecodeFailure)
		}
		content = decoded
	}

	out := make([]byte, len(content))
	copy(out, content)

	return RawFile{
		Name:         name,
		Content:      out,
		Compressed:   compressed,
		headerOffset: offset,
		totalSize:    (next + storedLen) - offset,
	}, nil
}

// Encode re-serializes r's payload record, reusing its original encoding
// choice (compressed vs not) unless the caller overrides it.
func (r RawFile) Encode(info VariantInfo, level CompressionLevel) ([]byte, error) {
	if !info.CompressedRawFile {
		return r.encodeStandard(info)
	}
	return r.encodeMW2(info, level)
}

func (r RawFile) encodeStandard(info VariantInfo) ([]byte, error) {
	out := make([]byte, rawFileHeaderSize)
	copy(out[0:4], inlineMarker[:])
	writeUint32(out, 4, uint32(len(r.Content)), info.Endian)
	copy(out[8:12], inlineMarker[:])
	out = append(out, []byte(r.Name)...)
	out = append(out, 0)
	out = append(out, r.Content...)
	return out, nil
}

func (r RawFile) encodeMW2(info VariantInfo, level CompressionLevel) ([]byte, error) {
	out := make([]byte, mw2RawFileHeaderSize)
	copy(out[0:4], inlineMarker[:])

	body := r.Content
	compLen := uint32(0)
	if r.Compressed {
		compressed, err := encodeBlockZlib(r.Content, level)
		if err != nil {
			return nil, err
		}
		if len(compressed) < len(r.Content) {
			body = compressed
			compLen = uint32(len(compressed))
		}
	}
	writeUint32(out, 4, compLen, info.Endian)
	writeUint32(out, 8, uint32(len(r.Content)), info.Endian)
	copy(out[12:16], inlineMarker[:])

	out = append(out, []byte(r.Name)...)
	out = append(out, 0)
	out = append(out, body...)
	return out, nil
}

// Size returns the total byte span this entry occupied when parsed.
func (r RawFile) Size() uint32 { return r.totalSize }

// Offset returns the byte offset this entry was parsed from.
func (r RawFile) Offset() uint32 { return r.headerOffset }

// ExportRaw returns the entry's decoded content, with no payload header
// attached (spec.md §6.3 export_raw).
func (r RawFile) ExportRaw() []byte {
	out := make([]byte, len(r.Content))
	copy(out, r.Content)
	return out
}

// ExportRawWithHeader re-serializes the entry's full payload record — the
// fixed header, the NUL-terminated name, and the content, encoded exactly
// as Encode would write it back into a zone — for callers that want the
// on-disk record verbatim rather than just the content (spec.md §6.3
// export_raw_with_header).
func (r RawFile) ExportRawWithHeader(info VariantInfo, level CompressionLevel) ([]byte, error) {
	return r.Encode(info, level)
}
