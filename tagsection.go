// Copyright 2024 The codff Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ff

import "fmt"

// locateTagSectionEnd finds the byte offset where the asset pool begins:
// the end of the tag section, a run of scriptStringCount NUL-terminated
// ASCII strings immediately following the header, or the header's end
// when scriptStringCount is 0 (spec.md §3, §4.5).
func locateTagSectionEnd(zone []byte, info VariantInfo, scriptStringCount uint32) (uint32, error) {
	offset := info.ZoneHeaderSize
	for i := uint32(0); i < scriptStringCount; i++ {
		_, next, err := cstring(zone, offset)
		if err != nil {
			return 0, fmt.Errorf("%w: tag section string %d", err, i)
		}
		offset = next
	}
	return offset, nil
}
