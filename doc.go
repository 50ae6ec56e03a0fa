// Copyright 2024 The codff Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package ff implements a codec and editor for Call of Duty "FastFile"
// (.ff) archives across CoD4, World at War and Modern Warfare 2, on PS3,
// Xbox 360 and PC.
//
// A FastFile wraps a single compressed "zone" blob: a header, a tag/string
// table, a typed asset pool, and per-asset payloads laid out contiguously
// in memory-image form. The package exposes the archive framer (detect,
// decompress, compress), the zone parser (ParseZone), the in-place mutator
// (TransferSpace and the Session methods ReplaceContent, ResizeSlot, Rename
// and RenameLocalize) and the fresh-zone synthesizer (Synthesize), plus a small
// source-code beautifier/minifier (FormatCode, MinifyCode) applied to
// rawfile payloads and a pair of export helpers (RawFile.ExportRaw,
// RawFile.ExportRawWithHeader) for callers that want a decoded asset's
// bytes outside the zone it came from.
package ff
