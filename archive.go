// Copyright 2024 The codff Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ff

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// preludeSize is the fixed {magic[8], version_be_u32} prefix shared by
// every FastFile framing.
const preludeSize = 12

// mw2ExtHeaderEntrySize is the width of one entry in the MW2 extended
// header's entry table.
const mw2ExtHeaderEntrySize = 20

// streamingHashTableSize is the opaque, verbatim-preserved region that
// follows the IWffs100 streaming magic on signed Xbox 360 archives
// (0x400C - 0x14, per spec.md §6.1).
const streamingHashTableSize = 0x400C - 0x14

// blockUncompressedSize is the uncompressed size of one block-framed
// chunk (64 KiB).
const blockUncompressedSize = 64 * 1024

// endMarker terminates block framing.
var endMarker = [2]byte{0x00, 0x01}

// mw2ExtHeader is the 25-byte extended header MW2 carries after the
// prelude, on every framing (spec.md §4.3).
type mw2ExtHeader struct {
	AllowOnlineUpdate uint8
	FileCreationTime  uint64
	Region            uint32
	EntryCount        uint32
	Entries           []byte // EntryCount * 20 bytes, opaque
	FileSizes         uint64
}

func (h mw2ExtHeader) size() int {
	return 1 + 8 + 4 + 4 + len(h.Entries) + 8
}

func readMW2ExtHeader(r *bytes.Reader) (mw2ExtHeader, error) {
	var h mw2ExtHeader
	var err error
	readU8 := func() uint8 {
		if err != nil {
			return 0
		}
		b, e := r.ReadByte()
		err = e
		return b
	}
	readU32BE := func() uint32 {
		if err != nil {
			return 0
		}
		var buf [4]byte
		_, err = r.Read(buf[:])
		return binary.BigEndian.Uint32(buf[:])
	}
	readU64BE := func() uint64 {
		if err != nil {
			return 0
		}
		var buf [8]byte
		_, err = r.Read(buf[:])
		return binary.BigEndian.Uint64(buf[:])
	}

	h.AllowOnlineUpdate = readU8()
	h.FileCreationTime = readU64BE()
	h.Region = readU32BE()
	h.EntryCount = readU32BE()
	if err != nil {
		return h, fmt.Errorf("%w: mw2 extended header", ErrTruncated)
	}
	entries := make([]byte, int(h.EntryCount)*mw2ExtHeaderEntrySize)
	if _, err = r.Read(entries); err != nil && len(entries) > 0 {
		return h, fmt.Errorf("%w: mw2 extended header entries", ErrTruncated)
	}
	h.Entries = entries
	h.FileSizes = readU64BE()
	if err != nil {
		return h, fmt.Errorf("%w: mw2 extended header tail", ErrTruncated)
	}
	return h, nil
}

func writeMW2ExtHeader(h mw2ExtHeader) []byte {
	buf := make([]byte, 0, h.size())
	buf = append(buf, h.AllowOnlineUpdate)
	var tmp8 [8]byte
	binary.BigEndian.PutUint64(tmp8[:], h.FileCreationTime)
	buf = append(buf, tmp8[:]...)
	var tmp4 [4]byte
	binary.BigEndian.PutUint32(tmp4[:], h.Region)
	buf = append(buf, tmp4[:]...)
	binary.BigEndian.PutUint32(tmp4[:], h.EntryCount)
	buf = append(buf, tmp4[:]...)
	buf = append(buf, h.Entries...)
	binary.BigEndian.PutUint64(tmp8[:], h.FileSizes)
	buf = append(buf, tmp8[:]...)
	return buf
}

// Detect inspects the archive prelude and returns the best VariantInfo
// match. The platform is a best-effort guess when multiple platforms
// share identical magic/version (spec.md §9 notes this ambiguity);
// Decompress resolves it definitively by trying each candidate framing.
func Detect(data []byte) (VariantInfo, error) {
	if len(data) < preludeSize {
		return VariantInfo{}, ErrTruncated
	}

	magic := Magic(data[:8])
	version := binary.BigEndian.Uint32(data[8:12])

	switch magic {
	case MagicUnsigned, MagicSigned, MagicStream:
	default:
		return VariantInfo{}, ErrMagicMismatch
	}

	game, ok := versionToGame[version]
	if !ok {
		return VariantInfo{}, ErrUnknownVersion
	}

	for _, cand := range candidatesFor(game, magic) {
		if cand.Version == version {
			return cand, nil
		}
	}
	return VariantInfo{}, ErrUnknownVersion
}

// candidatesFor returns every registered variant for a game that could
// plausibly produce the given magic, in the order Decompress should try
// their framings.
func candidatesFor(game Game, magic Magic) []VariantInfo {
	var out []VariantInfo
	isSigned := magic == MagicSigned
	for _, p := range []Platform{PlatformPS3, PlatformXbox360, PlatformPC, PlatformWii} {
		if info, ok := Lookup(Variant{Game: game, Platform: p, IsSigned: isSigned}); ok {
			out = append(out, info)
		}
	}
	return out
}

// Decompress turns a FastFile archive into its raw zone bytes, detecting
// the variant from the prelude and trying each framing a matching variant
// could use until one decodes cleanly. For signed variants, hashTable
// carries the verbatim streaming hash table the archive was signed with;
// it is nil for every other framing and must be fed back into
// CompressOptions.HashTable to rewrite the archive (spec.md §6.1).
func Decompress(data []byte) (zone []byte, info VariantInfo, hashTable []byte, err error) {
	info, err = Detect(data)
	if err != nil {
		return nil, VariantInfo{}, nil, err
	}

	cursor := preludeSize
	if info.Game == GameMW2 {
		r := bytes.NewReader(data[cursor:])
		h, err := readMW2ExtHeader(r)
		if err != nil {
			return nil, info, nil, err
		}
		cursor += h.size()
	}

	switch {
	case info.IsSigned:
		z, ht, err := decodeStreamingSigned(data, cursor)
		return z, info, ht, err
	case info.SingleStream:
		z, err := decodeSingleStream(data, cursor)
		if err == nil {
			return z, info, nil, nil
		}
		// Fall back to block framing: the candidate list can include a
		// sibling platform sharing this game/magic/version.
		z, blockErr := decodeBlocks(data, cursor)
		if blockErr == nil {
			return z, info, nil, nil
		}
		return nil, info, nil, err
	default:
		z, err := decodeBlocks(data, cursor)
		if err == nil {
			return z, info, nil, nil
		}
		// Fall back to a single-stream sibling platform sharing this
		// game/magic/version (MW2 PS3 vs Xbox 360).
		for _, cand := range candidatesFor(info.Game, Magic(data[:8])) {
			if cand.Version != info.Version || !cand.SingleStream {
				continue
			}
			if z, ssErr := decodeSingleStream(data, cursor); ssErr == nil {
				return z, cand, nil, nil
			}
		}
		return nil, info, nil, err
	}
}

// decodeBlocks reads the block-framed body: a sequence of
// {len_be_u16, compressed[len]} chunks terminated by 0x00 0x01 or a block
// whose length is <= 1 (spec.md §4.3).
func decodeBlocks(data []byte, offset int) ([]byte, error) {
	var zone bytes.Buffer
	for {
		if offset+2 > len(data) {
			return nil, fmt.Errorf("%w: block length", ErrTruncated)
		}
		length := binary.BigEndian.Uint16(data[offset:])
		offset += 2

		if length <= 1 {
			break
		}
		if offset+int(length) > len(data) {
			return nil, fmt.Errorf("%w: block body", ErrTruncated)
		}
		block, err := decodeBlock(data[offset : offset+int(length)])
		if err != nil {
			return nil, err
		}
		zone.Write(block)
		offset += int(length)

		if offset+2 <= len(data) && data[offset] == endMarker[0] && data[offset+1] == endMarker[1] {
			offset += 2
			break
		}
	}
	return zone.Bytes(), nil
}

// decodeSingleStream reads the MW2 single-stream body: one continuous
// zlib stream covering the entire zone, no block framing, no end marker.
func decodeSingleStream(data []byte, offset int) ([]byte, error) {
	if offset > len(data) {
		return nil, ErrTruncated
	}
	return decodeBlock(data[offset:])
}

// decodeStreamingSigned reads the signed Xbox 360 framing: the streaming
// magic, a verbatim-preserved hash table, then one continuous zlib stream.
// It returns the hash table alongside the zone so callers can reuse it
// when re-framing the archive (spec.md §6.1).
func decodeStreamingSigned(data []byte, offset int) ([]byte, []byte, error) {
	if offset+8 > len(data) || string(data[offset:offset+8]) != string(MagicStream) {
		return nil, nil, fmt.Errorf("%w: streaming magic", ErrMagicMismatch)
	}
	offset += 8
	if offset+streamingHashTableSize > len(data) {
		return nil, nil, fmt.Errorf("%w: hash table", ErrTruncated)
	}
	hashTable := make([]byte, streamingHashTableSize)
	copy(hashTable, data[offset:offset+streamingHashTableSize])
	offset += streamingHashTableSize
	zone, err := decodeBlock(data[offset:])
	if err != nil {
		return nil, nil, err
	}
	return zone, hashTable, nil
}

// CompressOptions controls Compress's write-back policy.
type CompressOptions struct {
	// Level selects "optimal" vs "smallest-size" (spec.md §4.2). Defaults
	// to LevelOptimal; signed Xbox 360 archives should pass LevelSmallest
	// to match observed game files.
	Level CompressionLevel

	// HashTable is the opaque streaming hash table to preserve verbatim
	// when re-framing a signed Xbox 360 archive. Required when
	// info.IsSigned is true; the original archive's table must be reused
	// since the editor never regenerates signatures (spec.md Non-goals).
	HashTable []byte

	// ExtHeader carries the MW2 extended header fields to re-emit. A zero
	// value emits a zero-filled header of EntryCount 0.
	ExtHeader mw2ExtHeader
}

// Compress frames zone bytes back into a valid FastFile archive for info.
func Compress(zone []byte, info VariantInfo, opts CompressOptions) ([]byte, error) {
	var out bytes.Buffer
	out.WriteString(string(info.Magic))
	var verBuf [4]byte
	binary.BigEndian.PutUint32(verBuf[:], info.Version)
	out.Write(verBuf[:])

	if info.Game == GameMW2 {
		out.Write(writeMW2ExtHeader(opts.ExtHeader))
	}

	switch {
	case info.IsSigned:
		if len(opts.HashTable) != streamingHashTableSize {
			return nil, fmt.Errorf("ff: signed rewrite requires a %d-byte hash table", streamingHashTableSize)
		}
		out.WriteString(string(MagicStream))
		out.Write(opts.HashTable)
		stream, err := encodeBlockZlib(zone, opts.Level)
		if err != nil {
			return nil, err
		}
		out.Write(stream)
	case info.SingleStream:
		stream, err := encodeBlock(zone, info, opts.Level)
		if err != nil {
			return nil, err
		}
		out.Write(stream)
	default:
		if err := writeBlocks(&out, zone, info, opts.Level); err != nil {
			return nil, err
		}
	}

	return out.Bytes(), nil
}

// writeBlocks chunks zone into blockUncompressedSize pieces, compresses
// each, and frames it with {len_be_u16, bytes} followed by the end marker.
func writeBlocks(out *bytes.Buffer, zone []byte, info VariantInfo, level CompressionLevel) error {
	for offset := 0; offset < len(zone) || (offset == 0 && len(zone) == 0); {
		end := offset + blockUncompressedSize
		if end > len(zone) {
			end = len(zone)
		}
		chunk, err := encodeBlock(zone[offset:end], info, level)
		if err != nil {
			return err
		}
		if len(chunk) > 0xFFFF {
			return fmt.Errorf("ff: compressed block exceeds u16 length field (%d bytes)", len(chunk))
		}
		var lenBuf [2]byte
		binary.BigEndian.PutUint16(lenBuf[:], uint16(len(chunk)))
		out.Write(lenBuf[:])
		out.Write(chunk)

		offset = end
		if offset >= len(zone) {
			break
		}
	}
	out.Write(endMarker[:])
	return nil
}
