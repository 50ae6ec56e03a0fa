// Copyright 2024 The codff Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ff

import "testing"

func TestLookupKnownVariants(t *testing.T) {
	cases := []Variant{
		{GameCoD4, PlatformPS3, false},
		{GameCoD4, PlatformXbox360, true},
		{GameWaW, PlatformXbox360, false},
		{GameMW2, PlatformPC, false},
	}
	for _, v := range cases {
		info, ok := Lookup(v)
		if !ok {
			t.Fatalf("Lookup(%+v) not found", v)
		}
		if info.Game != v.Game || info.Platform != v.Platform || info.IsSigned != v.IsSigned {
			t.Fatalf("Lookup(%+v) returned mismatched info %+v", v, info)
		}
	}
}

func TestLookupUnknownVariant(t *testing.T) {
	if _, ok := Lookup(Variant{Game: GameMW2, Platform: PlatformWii}); ok {
		t.Fatal("expected unknown variant to miss")
	}
}

func TestGameByMemAlloc(t *testing.T) {
	cases := []struct {
		a, b uint32
		want Game
	}{
		{0x0F70, 0x0, GameCoD4},
		{0x10B0, 0x5F8F0, GameWaW},
		{0x03B4, 0x1000, GameMW2},
	}
	for _, c := range cases {
		game, ok := gameByMemAlloc(c.a, c.b)
		if !ok || game != c.want {
			t.Errorf("gameByMemAlloc(%#x, %#x) = %v, %v, want %v, true", c.a, c.b, game, ok, c.want)
		}
	}
	if _, ok := gameByMemAlloc(0xDEAD, 0xBEEF); ok {
		t.Error("expected unrecognized mem_alloc pair to miss")
	}
}

func TestGameAndPlatformString(t *testing.T) {
	if GameCoD4.String() != "CoD4" {
		t.Errorf("Game.String() = %q", GameCoD4.String())
	}
	if PlatformXbox360.String() != "Xbox360" {
		t.Errorf("Platform.String() = %q", PlatformXbox360.String())
	}
	if GameUnknown.String() != "Unknown" || PlatformUnknown.String() != "Unknown" {
		t.Error("zero values should stringify to Unknown")
	}
}
