// Copyright 2024 The codff Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ff

import "fmt"

// TransferSpace splices newBytes into zone in place of the oldLen bytes
// starting at spanStart, shifting everything after the span and returning
// the resulting buffer. It is the one primitive every resizing mutation
// (ReplaceContent, Rename) reduces to (spec.md §4.7).
func TransferSpace(zone []byte, spanStart, oldLen uint32, newBytes []byte) ([]byte, error) {
	if uint64(spanStart)+uint64(oldLen) > uint64(len(zone)) {
		return nil, fmt.Errorf("%w: transfer span", ErrTruncated)
	}
	out := make([]byte, 0, len(zone)-int(oldLen)+len(newBytes))
	out = append(out, zone[:spanStart]...)
	out = append(out, newBytes...)
	out = append(out, zone[spanStart+oldLen:]...)
	return out, nil
}

// rebuild re-parses zone against info after a structural edit, recomputing
// the header size field so AssetCount/ScriptStringCount readers and later
// mutations see a consistent index.
func rebuild(zone []byte, info VariantInfo) ([]byte, *ZoneIndex, error) {
	header, err := ParseZoneHeader(zone, info)
	if err != nil {
		return nil, nil, err
	}
	header = header.WithSize(uint32(len(zone)))
	zone = append([]byte(nil), zone...)
	copy(zone[:info.ZoneHeaderSize], header.Bytes())

	idx, err := ParseZone(zone, info)
	if err != nil {
		return nil, nil, err
	}
	return zone, idx, nil
}

// ReplaceContent swaps a rawfile's content for newContent, re-encoding its
// payload record and growing or shrinking the zone buffer as needed.
func (s *Session) ReplaceContent(name string, newContent []byte, level CompressionLevel) error {
	idxEntry, ok := s.Idx.EntryByName(name)
	if !ok {
		return fmt.Errorf("%w: rawfile %q", ErrEntryNotFound, name)
	}
	rf := s.Idx.RawFiles[idxEntry]
	rf.Content = newContent

	encoded, err := rf.Encode(s.Info, level)
	if err != nil {
		return err
	}

	zone, err := TransferSpace(s.Zone, rf.Offset(), rf.Size(), encoded)
	if err != nil {
		return err
	}
	zone, idx, err := rebuild(zone, s.Info)
	if err != nil {
		return fmt.Errorf("%w: replace content invalidated zone structure: %v", ErrInvariantViolation, err)
	}

	s.Zone, s.Idx = zone, idx
	s.logger.Infow("msg", "replaced rawfile content", "name", name, "bytes", len(newContent))
	return nil
}

// ResizeSlot is ReplaceContent restricted to content that fits within the
// entry's existing on-disk span, for callers that want to avoid a full
// structural rewrite (spec.md §4.7: "retry via ResizeSlot or Synthesize").
// Shorter content is zero-padded to fill the slot, so the zone length and
// every other entry's offset stay unchanged. A compressed entry whose padded
// content does not re-encode to exactly the slot length is rejected with
// ErrContentTooLarge.
func (s *Session) ResizeSlot(name string, newContent []byte, level CompressionLevel) error {
	idxEntry, ok := s.Idx.EntryByName(name)
	if !ok {
		return fmt.Errorf("%w: rawfile %q", ErrEntryNotFound, name)
	}
	rf := s.Idx.RawFiles[idxEntry]
	rf.Content = newContent
	encoded, err := rf.Encode(s.Info, level)
	if err != nil {
		return err
	}
	if uint32(len(encoded)) > rf.Size() {
		return fmt.Errorf("%w: %d bytes needed, %d available", ErrContentTooLarge, len(encoded), rf.Size())
	}

	// Pad the content rather than the record, so the record's own length
	// field still covers the whole slot and the next entry stays in place.
	if gap := int(rf.Size()) - len(encoded); gap > 0 {
		rf.Content = append(append([]byte(nil), newContent...), make([]byte, gap)...)
		if encoded, err = rf.Encode(s.Info, level); err != nil {
			return err
		}
		if uint32(len(encoded)) != rf.Size() {
			return fmt.Errorf("%w: padded content encodes to %d bytes, slot holds %d", ErrContentTooLarge, len(encoded), rf.Size())
		}
	}
	zone, err := TransferSpace(s.Zone, rf.Offset(), rf.Size(), encoded)
	if err != nil {
		return err
	}
	idx, err := ParseZone(zone, s.Info)
	if err != nil {
		return fmt.Errorf("%w: resize left zone inconsistent: %v", ErrInvariantViolation, err)
	}
	s.Zone, s.Idx = zone, idx
	return nil
}

// Rename changes a rawfile's stored name in place, splicing its
// NUL-terminated name string (which may change length).
func (s *Session) Rename(oldName, newName string) error {
	idxEntry, ok := s.Idx.EntryByName(oldName)
	if !ok {
		return fmt.Errorf("%w: rawfile %q", ErrEntryNotFound, oldName)
	}
	rf := s.Idx.RawFiles[idxEntry]
	nameSpanStart := rf.Offset() + rawFileHeaderSize
	if s.Info.CompressedRawFile {
		nameSpanStart = rf.Offset() + mw2RawFileHeaderSize
	}
	oldNameLen := uint32(len(rf.Name)) + 1

	newNameBytes := append([]byte(newName), 0)
	zone, err := TransferSpace(s.Zone, nameSpanStart, oldNameLen, newNameBytes)
	if err != nil {
		return err
	}
	zone, idx, err := rebuild(zone, s.Info)
	if err != nil {
		return fmt.Errorf("%w: rename invalidated zone structure: %v", ErrInvariantViolation, err)
	}

	s.Zone, s.Idx = zone, idx
	s.logger.Infow("msg", "renamed rawfile", "old", oldName, "new", newName)
	return nil
}

// RenameLocalize changes a localize entry's key in place.
func (s *Session) RenameLocalize(oldKey, newKey string) error {
	idxEntry, ok := s.Idx.LocalizeByKey(oldKey)
	if !ok {
		return fmt.Errorf("%w: localize key %q", ErrEntryNotFound, oldKey)
	}
	if !isValidLocalizeKey([]byte(newKey)) {
		return fmt.Errorf("%w: localize key %q", ErrValidationFailure, newKey)
	}
	le := s.Idx.Localized[idxEntry]
	le.Key = newKey
	encoded := le.Encode()

	zone, err := TransferSpace(s.Zone, le.Offset(), le.Size(), encoded)
	if err != nil {
		return err
	}

	zone, idx, err := rebuild(zone, s.Info)
	if err != nil {
		return fmt.Errorf("%w: localize rename invalidated zone structure: %v", ErrInvariantViolation, err)
	}
	s.Zone, s.Idx = zone, idx
	return nil
}
