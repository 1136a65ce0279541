// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcdterm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/GermanBionicSystems/charlcd/lcdframe"
	"github.com/maruel/ansi256"
)

func TestDraw(t *testing.T) {
	var buf bytes.Buffer
	d := New(&Opts{W: &buf, Placeholder: '#'})
	f := lcdframe.New(2, 8)
	copy(f.Lines[0], "Hi \x01 \x5c")
	f.Glyphs[1] = [8]byte{0x1f, 0x11, 0x11, 0x11, 0x11, 0x11, 0x11, 0x1f}
	if err := d.Draw(f); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "Hi # ¥") {
		t.Errorf("panel text missing from %q", out)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// Bezel, 2 text lines, bezel, glyph label, 8 glyph rows.
	if len(lines) != 13 {
		t.Fatalf("got %d lines:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[4], "1") {
		t.Errorf("glyph label is %q", lines[4])
	}
	on := ansi256.Default.Block(DefaultOpts.On)
	off := ansi256.Default.Block(DefaultOpts.Off)
	if want := strings.Repeat(on, 5); !strings.HasPrefix(lines[5], want) {
		t.Errorf("top glyph row is %q, want %q", lines[5], want)
	}
	if want := on + strings.Repeat(off, 3) + on; !strings.HasPrefix(lines[6], want) {
		t.Errorf("second glyph row is %q, want %q", lines[6], want)
	}
}

func TestDrawDisplayOff(t *testing.T) {
	var buf bytes.Buffer
	d := New(&Opts{W: &buf})
	f := lcdframe.New(1, 4)
	copy(f.Lines[0], "\x00abc")
	f.DisplayOn = false
	if err := d.Draw(f); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if strings.Contains(out, "abc") {
		t.Errorf("blanked display shows text: %q", out)
	}
	if n := strings.Count(out, "\n"); n != 3 {
		t.Errorf("got %d lines, want 3 without glyphs", n)
	}
	if err := d.Halt(); err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(buf.String(), "\033[0m\n") {
		t.Error("Halt() didn't reset the colors")
	}
	if d.String() != "LCDTerm" {
		t.Errorf("String() = %q", d.String())
	}
}
