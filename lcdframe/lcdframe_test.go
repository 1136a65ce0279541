// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcdframe

import (
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
)

func TestROMRune(t *testing.T) {
	tests := []struct {
		code byte
		want rune
	}{
		{0x00, utf8.RuneError},
		{0x0f, utf8.RuneError},
		{0x10, utf8.RuneError},
		{' ', ' '},
		{'A', 'A'},
		{'}', '}'},
		{0x5c, '¥'},
		{0x7e, '→'},
		{0x7f, '←'},
		{0x80, utf8.RuneError},
		{0xa1, '｡'},
		{0xb1, 'ｱ'},
		{0xdf, '°'},
		{0xf4, 'Ω'},
		{0xff, '█'},
	}
	for _, test := range tests {
		if got := ROMRune(test.code); got != test.want {
			t.Errorf("ROMRune(0x%02x) = %q, want %q", test.code, got, test.want)
		}
	}
}

func TestFrame(t *testing.T) {
	f := New(2, 4)
	if f.Rows() != 2 || f.Cols() != 4 || !f.DisplayOn || !f.Backlight {
		t.Fatalf("unexpected frame %+v", f)
	}
	f.Lines[0] = []byte{'H', 'i', 0x00, 0x09}
	f.Lines[1] = append(f.Lines[1], '!')
	if f.Cols() != 5 {
		t.Errorf("Cols() = %d, want 5", f.Cols())
	}
	want := []string{"Hi??", "    !"}
	if diff := cmp.Diff(want, f.Text('?')); diff != "" {
		t.Errorf("unexpected text (-want +got):\n%s", diff)
	}

	f.Glyphs[1] = [8]byte{0x10, 0x01}
	g := f.Glyph(0x09)
	if !Dot(g, 0, 0) || Dot(g, 1, 0) || !Dot(g, 4, 1) || Dot(g, 4, 2) {
		t.Errorf("unexpected dots in %v", g)
	}
}
