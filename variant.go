// Copyright 2024 The codff Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ff

import "encoding/binary"

// Game identifies the title a zone or archive belongs to.
type Game uint8

// Supported games.
const (
	GameUnknown Game = iota
	GameCoD4         // Call of Duty 4: Modern Warfare
	GameWaW          // Call of Duty: World at War
	GameMW2          // Call of Duty: Modern Warfare 2
)

func (g Game) String() string {
	switch g {
	case GameCoD4:
		return "CoD4"
	case GameWaW:
		return "WaW"
	case GameMW2:
		return "MW2"
	default:
		return "Unknown"
	}
}

// Platform identifies the target console or OS a zone was built for.
type Platform uint8

// Supported platforms.
const (
	PlatformUnknown Platform = iota
	PlatformPS3
	PlatformXbox360
	PlatformPC
	PlatformWii
)

func (p Platform) String() string {
	switch p {
	case PlatformPS3:
		return "PS3"
	case PlatformXbox360:
		return "Xbox360"
	case PlatformPC:
		return "PC"
	case PlatformWii:
		return "Wii"
	default:
		return "Unknown"
	}
}

// Magic identifies the archive-level framing: plain, signed, or the
// streaming-signed Xbox 360 suffix.
type Magic string

// Known FastFile magics. All are 8 ASCII bytes followed by a big-endian
// u32 version in the archive prelude.
const (
	MagicUnsigned Magic = "IWffu100"
	MagicSigned   Magic = "IWff0100"
	MagicStream   Magic = "IWffs100"
)

// AssetType enumerates the asset pool record types recognized by the
// walker. Only RawFile and Localize carry a mutate-level contract; the
// rest are exposed for inspection-only parsers (image, xanim).
type AssetType uint8

// Known asset pool type ids. These differ per game build; the variant
// registry maps each game to its own AssetType -> RawFile/Localize/Image
// assignment instead of hard-coding one global enumeration (spec.md
// "duck-typed platform flags" redesign note: never scatter per-variant
// constants across conditionals).
const (
	AssetTypeXModel AssetType = iota
	AssetTypeMaterial
	AssetTypeImage
	AssetTypeSound
	AssetTypeFont
	AssetTypeMenuList
	AssetTypeMenu
	AssetTypeLocalize
	AssetTypeWeapon
	AssetTypeFx
	AssetTypeRawFile
	AssetTypeStringTable
	AssetTypeXAnim
	numAssetTypes
)

// VariantInfo carries every per-variant constant the codec needs, in one
// record. Constants are never scattered across conditionals (spec.md §9).
type VariantInfo struct {
	Game     Game
	Platform Platform
	IsSigned bool

	// Magic and Version identify this variant on the wire.
	Magic   Magic
	Version uint32

	// Endian is the byte order used for the zone header and pool type
	// words. PC zones are little-endian; console zones are big-endian.
	Endian binary.ByteOrder

	// ZoneHeaderSize is 48 (MW2 Xbox 360), 52 (CoD4/WaW, and MW2 on PS3)
	// or 56 (PC).
	ZoneHeaderSize uint32

	// AssetCountOffset / ScriptStringCountOffset locate the matching
	// fields within the zone header.
	AssetCountOffset        uint32
	ScriptStringCountOffset uint32

	// MemAlloc1 / MemAlloc2 are the pair of header constants that
	// uniquely identify the game on a decompressed zone.
	MemAlloc1 uint32
	MemAlloc2 uint32

	// PoolPointerFirst selects the pool record encoding: pointer-first
	// (FF FF FF FF 00 00 00 TT) for MW2 and some PC layouts, type-first
	// (00 00 00 TT FF FF FF FF) otherwise.
	PoolPointerFirst bool

	// CompressedRawFile marks variants whose rawfile payloads carry an
	// internal zlib stream behind a 16-byte header (MW2, all platforms).
	CompressedRawFile bool

	// ZlibFramed marks variants whose archive body is zlib-wrapped
	// deflate rather than raw deflate (MW2, all platforms).
	ZlibFramed bool

	// SingleStream marks variants with no block framing: the whole zone
	// is one continuous compressed stream (MW2 Xbox 360 unsigned, MW2 PC).
	SingleStream bool

	// AssetTypeIDs maps the closed AssetType enumeration to this
	// variant's on-disk numeric ids.
	AssetTypeIDs [numAssetTypes]uint8
}

// RawFileTypeID and LocalizeTypeID are convenience accessors for the two
// pool type ids the mutator and synthesizer care about.
func (v VariantInfo) RawFileTypeID() uint8 { return v.AssetTypeIDs[AssetTypeRawFile] }
func (v VariantInfo) LocalizeTypeID() uint8 { return v.AssetTypeIDs[AssetTypeLocalize] }

// Variant is the closed tagged key identifying one row of the registry.
type Variant struct {
	Game     Game
	Platform Platform
	IsSigned bool
}

// cod4TypeIDs / wawTypeIDs / mw2TypeIDs assign on-disk pool type ids per
// game. Every CoD title reorders and extends the asset-type enumeration
// between builds; these orderings follow the commonly documented IW3/
// IWtreyarch/IW4 asset lists for the titles in scope.
var cod4TypeIDs = [numAssetTypes]uint8{
	AssetTypeXModel: 0, AssetTypeMaterial: 1, AssetTypeImage: 3, AssetTypeSound: 4,
	AssetTypeFont: 5, AssetTypeMenuList: 6, AssetTypeMenu: 7, AssetTypeLocalize: 8,
	AssetTypeWeapon: 9, AssetTypeFx: 11, AssetTypeRawFile: 13, AssetTypeStringTable: 14,
	AssetTypeXAnim: 15,
}

var wawTypeIDs = [numAssetTypes]uint8{
	AssetTypeXModel: 0, AssetTypeMaterial: 1, AssetTypeImage: 3, AssetTypeSound: 4,
	AssetTypeFont: 6, AssetTypeMenuList: 7, AssetTypeMenu: 8, AssetTypeLocalize: 9,
	AssetTypeWeapon: 10, AssetTypeFx: 13, AssetTypeRawFile: 16, AssetTypeStringTable: 17,
	AssetTypeXAnim: 18,
}

var mw2TypeIDs = [numAssetTypes]uint8{
	AssetTypeXModel: 0, AssetTypeMaterial: 2, AssetTypeImage: 4, AssetTypeSound: 5,
	AssetTypeFont: 8, AssetTypeMenuList: 9, AssetTypeMenu: 10, AssetTypeLocalize: 11,
	AssetTypeWeapon: 12, AssetTypeFx: 16, AssetTypeRawFile: 19, AssetTypeStringTable: 20,
	AssetTypeXAnim: 21,
}

// registry holds the single source of truth for every supported variant.
var registry = map[Variant]VariantInfo{
	{GameCoD4, PlatformPS3, false}: {
		Game: GameCoD4, Platform: PlatformPS3, Magic: MagicUnsigned, Version: 0x1A2,
		Endian: binary.BigEndian, ZoneHeaderSize: 52, AssetCountOffset: 40, ScriptStringCountOffset: 32,
		MemAlloc1: 0x0F70, MemAlloc2: 0x0, AssetTypeIDs: cod4TypeIDs,
	},
	{GameCoD4, PlatformXbox360, false}: {
		Game: GameCoD4, Platform: PlatformXbox360, Magic: MagicUnsigned, Version: 0x1A2,
		Endian: binary.BigEndian, ZoneHeaderSize: 52, AssetCountOffset: 40, ScriptStringCountOffset: 32,
		MemAlloc1: 0x0F70, MemAlloc2: 0x0, AssetTypeIDs: cod4TypeIDs,
	},
	{GameCoD4, PlatformXbox360, true}: {
		// The prelude magic is IWff0100 (MagicSigned); IWffs100 is a
		// separate in-body marker Compress/decodeStreamingSigned write
		// after the prelude, not the prelude itself (spec.md §6.1, §4.3).
		Game: GameCoD4, Platform: PlatformXbox360, IsSigned: true, Magic: MagicSigned, Version: 0x1A2,
		Endian: binary.BigEndian, ZoneHeaderSize: 52, AssetCountOffset: 40, ScriptStringCountOffset: 32,
		MemAlloc1: 0x0F70, MemAlloc2: 0x0, AssetTypeIDs: cod4TypeIDs,
	},
	{GameWaW, PlatformPS3, false}: {
		Game: GameWaW, Platform: PlatformPS3, Magic: MagicUnsigned, Version: 0x19B,
		Endian: binary.BigEndian, ZoneHeaderSize: 52, AssetCountOffset: 40, ScriptStringCountOffset: 32,
		MemAlloc1: 0x10B0, MemAlloc2: 0x5F8F0, AssetTypeIDs: wawTypeIDs,
	},
	{GameWaW, PlatformXbox360, false}: {
		Game: GameWaW, Platform: PlatformXbox360, Magic: MagicUnsigned, Version: 0x19B,
		Endian: binary.BigEndian, ZoneHeaderSize: 52, AssetCountOffset: 40, ScriptStringCountOffset: 32,
		MemAlloc1: 0x10B0, MemAlloc2: 0x5F8F0, AssetTypeIDs: wawTypeIDs,
	},
	{GameWaW, PlatformXbox360, true}: {
		Game: GameWaW, Platform: PlatformXbox360, IsSigned: true, Magic: MagicSigned, Version: 0x19B,
		Endian: binary.BigEndian, ZoneHeaderSize: 52, AssetCountOffset: 40, ScriptStringCountOffset: 32,
		MemAlloc1: 0x10B0, MemAlloc2: 0x5F8F0, AssetTypeIDs: wawTypeIDs,
	},
	{GameMW2, PlatformPS3, false}: {
		// 52-byte header: spec.md §3 reserves the 48-byte layout for MW2
		// Xbox 360 only, every other CoD4/WaW/MW2 case uses 52.
		Game: GameMW2, Platform: PlatformPS3, Magic: MagicUnsigned, Version: 0x114,
		Endian: binary.BigEndian, ZoneHeaderSize: 52, AssetCountOffset: 40, ScriptStringCountOffset: 32,
		MemAlloc1: 0x03B4, MemAlloc2: 0x1000, PoolPointerFirst: true,
		CompressedRawFile: true, ZlibFramed: true, AssetTypeIDs: mw2TypeIDs,
	},
	{GameMW2, PlatformXbox360, false}: {
		Game: GameMW2, Platform: PlatformXbox360, Magic: MagicUnsigned, Version: 0x114,
		Endian: binary.BigEndian, ZoneHeaderSize: 48, AssetCountOffset: 36, ScriptStringCountOffset: 28,
		MemAlloc1: 0x03B4, MemAlloc2: 0x1000, PoolPointerFirst: true,
		CompressedRawFile: true, ZlibFramed: true, SingleStream: true, AssetTypeIDs: mw2TypeIDs,
	},
	{GameMW2, PlatformPC, false}: {
		Game: GameMW2, Platform: PlatformPC, Magic: MagicUnsigned, Version: 0x10D,
		Endian: binary.LittleEndian, ZoneHeaderSize: 56, AssetCountOffset: 40, ScriptStringCountOffset: 32,
		MemAlloc1: 0x03B4, MemAlloc2: 0x1000, PoolPointerFirst: true,
		CompressedRawFile: true, ZlibFramed: true, SingleStream: true, AssetTypeIDs: mw2TypeIDs,
	},
}

// Lookup returns the registry row for a (game, platform, signed) triple.
func Lookup(v Variant) (VariantInfo, bool) {
	info, ok := registry[v]
	return info, ok
}

// versionToGame maps an archive version word to the game it selects,
// used by Detect before the definitive mem-alloc refinement is available.
var versionToGame = map[uint32]Game{
	0x01:  GameCoD4,
	0x05:  GameCoD4,
	0x1A2: GameCoD4,
	0x183: GameWaW,
	0x19B: GameWaW,
	0x10D: GameMW2,
	0x114: GameMW2,
	0xFD:  GameMW2,
}

// gameByMemAlloc refines a Detect guess once the zone header is visible:
// the mem-alloc constant pair uniquely identifies the game regardless of
// what the archive-level magic/version suggested.
func gameByMemAlloc(a, b uint32) (Game, bool) {
	switch {
	case a == 0x0F70 && b == 0x0:
		return GameCoD4, true
	case a == 0x10B0 && b == 0x5F8F0:
		return GameWaW, true
	case a == 0x03B4 && b == 0x1000:
		return GameMW2, true
	default:
		return GameUnknown, false
	}
}
