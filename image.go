// Copyright 2024 The codff Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ff

import "fmt"

// imageHeaderSize is the fixed portion of an image asset record this
// package inspects: name pointer, category/format bytes, dimensions and
// data size. Inspection-only: the mutator never edits image assets
// (spec.md §3.1, supplemented from original_source/).
const imageHeaderSize = 20

// Image category values the validator accepts as plausible.
const (
	imageCategoryLoadPic byte = 0
	imageCategory2D      byte = 1
	imageCategory3D      byte = 3
	imageCategoryCubemap byte = 7
)

// ImageAssetInfo is the decoded, read-only view of an image asset record.
type ImageAssetInfo struct {
	Name     string
	Width    uint16
	Height   uint16
	Depth    uint16
	DataSize uint32
	Category byte
	Streamed bool
	Format   byte
}

// ParseImageAssetInfo decodes the image record at offset. It is inspection
// only: there is no Encode, since ResizeSlot and Mutate never touch image
// assets (spec.md Non-goals carry over; this parser exists so a caller can
// report on them, not edit them).
func ParseImageAssetInfo(zone []byte, info VariantInfo, offset uint32) (ImageAssetInfo, error) {
	if uint64(offset)+imageHeaderSize > uint64(len(zone)) {
		return ImageAssetInfo{}, fmt.Errorf("%w: image header", ErrTruncated)
	}

	category := zone[offset+4]
	format := zone[offset+5]
	streamed := zone[offset+6] != 0

	width, err := readUint16(zone, offset+8, info.Endian)
	if err != nil {
		return ImageAssetInfo{}, err
	}
	height, err := readUint16(zone, offset+10, info.Endian)
	if err != nil {
		return ImageAssetInfo{}, err
	}
	depth, err := readUint16(zone, offset+12, info.Endian)
	if err != nil {
		return ImageAssetInfo{}, err
	}
	dataSize, err := readUint32(zone, offset+16, info.Endian)
	if err != nil {
		return ImageAssetInfo{}, err
	}

	name, _, err := cstring(zone, offset+imageHeaderSize)
	if err != nil {
		return ImageAssetInfo{}, fmt.Errorf("%w: image name", err)
	}
	if !isPlausibleImage(category, width, height) {
		return ImageAssetInfo{}, fmt.Errorf("%w: image %q", ErrValidationFailure, name)
	}

	return ImageAssetInfo{
		Name:     name,
		Width:    width,
		Height:   height,
		Depth:    depth,
		DataSize: dataSize,
		Category: category,
		Streamed: streamed,
		Format:   format,
	}, nil
}

// isPlausibleImage rejects dimension/category combinations that cannot be
// a real image asset, used by ParseImageAssetInfo to reject garbage.
func isPlausibleImage(category byte, width, height uint16) bool {
	switch category {
	case imageCategoryLoadPic, imageCategory2D, imageCategory3D, imageCategoryCubemap:
	default:
		return false
	}
	if width == 0 || height == 0 {
		return false
	}
	const maxDim = 1 << 14
	return width <= maxDim && height <= maxDim
}
