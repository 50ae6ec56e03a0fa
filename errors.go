// Copyright 2024 The codff Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ff

import "errors"

// Sentinel errors returned by the archive framer, zone parser and mutator.
//
// The categories mirror the error kinds a caller needs to branch on: a
// Truncated or MagicMismatch means "not this file"; a DecodeFailure or
// InvariantViolation means "this file is corrupt or our model of it is
// wrong"; ContentTooLarge means "retry through ReplaceContent or Synthesize".
var (
	// ErrTruncated is returned when the blob is shorter than a required
	// field implies.
	ErrTruncated = errors.New("ff: truncated blob")

	// ErrMagicMismatch is returned when the archive prelude does not match
	// any known variant.
	ErrMagicMismatch = errors.New("ff: magic does not match any known variant")

	// ErrUnknownVersion is returned when the magic is recognized but the
	// version word does not match any known game.
	ErrUnknownVersion = errors.New("ff: unrecognized version for this magic")

	// ErrDecodeFailure is returned when deflate/zlib decoding fails or
	// produces an implausible length.
	ErrDecodeFailure = errors.New("ff: decode failure")

	// ErrInvariantViolation is returned when a post-write zone fails one of
	// the structural invariants of the format.
	ErrInvariantViolation = errors.New("ff: zone invariant violation")

	// ErrContentTooLarge is returned when requested content exceeds the
	// target slot (ResizeSlot returns it). The caller may retry via
	// ReplaceContent, which grows the slot, or Synthesize.
	ErrContentTooLarge = errors.New("ff: content too large for slot")

	// ErrUnsupportedAssetAtRebuild is returned when synthesis is requested
	// on a zone containing asset types other than rawfile/localize.
	ErrUnsupportedAssetAtRebuild = errors.New("ff: zone has assets unsupported by synthesis")

	// ErrValidationFailure is returned when a scanned candidate (key, image
	// name, dimensions) failed its validator.
	ErrValidationFailure = errors.New("ff: validation failure")

	// ErrEntryNotFound is returned when an operation references an entry
	// that is not present in the zone index.
	ErrEntryNotFound = errors.New("ff: entry not found")

	// ErrNotRawFile / ErrNotCompressed guard operations that only make
	// sense for a specific entry shape.
	ErrNotRawFile    = errors.New("ff: entry is not a rawfile")
	ErrNotCompressed = errors.New("ff: entry is not a compressed rawfile")
)
