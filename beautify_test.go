// Copyright 2024 The codff Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ff

import (
	"bytes"
	"testing"
)

func TestBeautifyCLikeIndentsBraces(t *testing.T) {
	src := []byte(`main(){println("hi");}`)
	got := FormatCode(src)

	want := "main(){\n\tprintln(\"hi\");\n}\n"
	if string(got) != want {
		t.Errorf("FormatCode(%q) = %q, want %q", src, got, want)
	}
}

func TestBeautifyKeyValueTabAlignsBySourceGapWidth(t *testing.T) {
	// A gap of 5+ spaces between key and value becomes two tabs; a
	// narrower gap becomes one (spec.md §4.9).
	src := []byte("REFERENCE      com_scriptbundle_list\n\n   WEAPONFILE    m16.gsc  \n")
	got := FormatCode(src)

	want := "REFERENCE\t\tcom_scriptbundle_list\nWEAPONFILE\tm16.gsc\n"
	if string(got) != want {
		t.Errorf("FormatCode(%q) = %q, want %q", src, got, want)
	}
}

func TestBeautifyKeyValueSplitsPairsPackedOnOneLine(t *testing.T) {
	src := []byte(`REFERENCE "a.gsc"WEAPONFILE "m16.gsc"` + "\n")
	got := FormatCode(src)

	want := "REFERENCE\t\"a.gsc\"\nWEAPONFILE\t\"m16.gsc\"\n"
	if string(got) != want {
		t.Errorf("FormatCode(%q) = %q, want %q", src, got, want)
	}
}

func TestBeautifyRoundTripsThroughMinifyCode(t *testing.T) {
	src := []byte("main ( ) {\n  println ( \"hi\" ) ;\n}\n")
	minified := MinifyCode(src)
	beautified := FormatCode(minified)
	if !bytes.Contains(beautified, []byte(`println ("hi");`)) && !bytes.Contains(beautified, []byte(`println("hi");`)) {
		t.Errorf("beautified output lost structure: %q", beautified)
	}
}
