// Copyright 2024 The codff Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ff

import (
	"testing"

	"github.com/go-kratos/kratos/v2/log"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	info := testVariant(t)
	input := SynthesisInput{
		RawFiles: []RawFile{
			{Name: "scripts/main.gsc", Content: []byte("main() {}\n")},
		},
		Localized: []LocalizedEntry{
			{Key: "MPUI_TEAM_ALLIES", Value: "Allies"},
		},
	}
	zone, err := Synthesize(info, input, LevelOptimal)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	idx, err := ParseZone(zone, info)
	if err != nil {
		t.Fatalf("ParseZone: %v", err)
	}
	return &Session{
		logger: log.NewHelper(log.DefaultLogger),
		Info:   info,
		Zone:   zone,
		Idx:    idx,
	}
}

func TestReplaceContentGrowsZone(t *testing.T) {
	sess := newTestSession(t)
	longer := []byte("main() {\n\tprintln(\"much longer body now\");\n}\n")

	if err := sess.ReplaceContent("scripts/main.gsc", longer, LevelOptimal); err != nil {
		t.Fatalf("ReplaceContent: %v", err)
	}

	rfIdx, ok := sess.Idx.EntryByName("scripts/main.gsc")
	if !ok {
		t.Fatal("expected entry to survive replace")
	}
	if string(sess.Idx.RawFiles[rfIdx].Content) != string(longer) {
		t.Errorf("content after replace = %q, want %q", sess.Idx.RawFiles[rfIdx].Content, longer)
	}
}

func TestReplaceContentMissingEntry(t *testing.T) {
	sess := newTestSession(t)
	if err := sess.ReplaceContent("does/not/exist.gsc", []byte("x"), LevelOptimal); err == nil {
		t.Fatal("expected replace on a missing entry to fail")
	}
}

func TestRenameRawFile(t *testing.T) {
	sess := newTestSession(t)
	if err := sess.Rename("scripts/main.gsc", "scripts/renamed.gsc"); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if _, ok := sess.Idx.EntryByName("scripts/main.gsc"); ok {
		t.Error("old name should no longer resolve")
	}
	if _, ok := sess.Idx.EntryByName("scripts/renamed.gsc"); !ok {
		t.Error("new name should resolve")
	}
}

func TestResizeSlotRejectsOversizedContent(t *testing.T) {
	sess := newTestSession(t)
	huge := make([]byte, 1<<20)
	if err := sess.ResizeSlot("scripts/main.gsc", huge, LevelOptimal); err == nil {
		t.Fatal("expected oversized content to be rejected")
	}
}

func TestRenameLocalize(t *testing.T) {
	sess := newTestSession(t)
	if err := sess.RenameLocalize("MPUI_TEAM_ALLIES", "MPUI_TEAM_AXIS"); err != nil {
		t.Fatalf("RenameLocalize: %v", err)
	}
	if _, ok := sess.Idx.LocalizeByKey("MPUI_TEAM_AXIS"); !ok {
		t.Error("renamed key should resolve")
	}
}
