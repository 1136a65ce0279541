// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package lcdframe describes what a character LCD shows, independently of how
// it is rendered.
package lcdframe

import "unicode/utf8"

// Frame is a snapshot of a character display.
type Frame struct {
	// Lines holds the character codes of each visible line.
	Lines [][]byte
	// Glyphs are the 8 user defined characters, 5 dots wide with the leftmost
	// dot in bit 4, top row first.
	Glyphs [8][8]byte
	// DisplayOn is false when the controller blanks the display.
	DisplayOn bool
	// Backlight is the state of the backlight.
	Backlight bool
}

// New returns a blank frame, display and backlight on.
func New(rows, cols int) Frame {
	f := Frame{Lines: make([][]byte, rows), DisplayOn: true, Backlight: true}
	for ix := range f.Lines {
		f.Lines[ix] = make([]byte, cols)
		for col := range f.Lines[ix] {
			f.Lines[ix][col] = ' '
		}
	}
	return f
}

// Rows returns the number of lines.
func (f *Frame) Rows() int {
	return len(f.Lines)
}

// Cols returns the length of the longest line.
func (f *Frame) Cols() int {
	n := 0
	for _, l := range f.Lines {
		n = max(n, len(l))
	}
	return n
}

// IsGlyph reports whether code is a user defined character. Codes 8 to 15
// repeat 0 to 7.
func IsGlyph(code byte) bool {
	return code < 0x10
}

// Glyph returns the dots of user defined character code.
func (f *Frame) Glyph(code byte) [8]byte {
	return f.Glyphs[code&7]
}

// Dot reports whether the dot at column x (0 left) and row y (0 top) of a
// glyph is lit.
func Dot(glyph [8]byte, x, y int) bool {
	return glyph[y]&(0x10>>x) != 0
}

// ROMRune returns the Unicode character closest to code in the A00
// (Japanese) character ROM fitted to most modules. User defined characters
// and unassigned codes return utf8.RuneError.
func ROMRune(code byte) rune {
	switch {
	case IsGlyph(code):
		return utf8.RuneError
	case code == 0x5c:
		return '¥'
	case code == 0x7e:
		return '→'
	case code == 0x7f:
		return '←'
	case code >= 0x20 && code < 0x7e:
		return rune(code)
	case code == 0xdf:
		return '°'
	case code >= 0xa1 && code < 0xdf:
		// JIS X 0201 half width katakana.
		return 0xff61 + rune(code-0xa1)
	}
	if r, ok := romHigh[code]; ok {
		return r
	}
	return utf8.RuneError
}

var romHigh = map[byte]rune{
	0xa0: ' ',
	0xe0: 'α',
	0xe2: 'β',
	0xe3: 'ε',
	0xe4: 'µ',
	0xe5: 'σ',
	0xe6: 'ρ',
	0xe8: '√',
	0xeb: '×',
	0xec: '¢',
	0xee: 'ñ',
	0xef: 'ö',
	0xf2: 'θ',
	0xf3: '∞',
	0xf4: 'Ω',
	0xf5: 'ü',
	0xf6: 'Σ',
	0xf7: 'π',
	0xfd: '÷',
	0xff: '█',
}

// Text returns the lines as Unicode text. User defined and unassigned
// characters are replaced by placeholder.
func (f *Frame) Text(placeholder rune) []string {
	out := make([]string, len(f.Lines))
	for ix, l := range f.Lines {
		b := make([]rune, len(l))
		for col, code := range l {
			if r := ROMRune(code); r != utf8.RuneError {
				b[col] = r
			} else {
				b[col] = placeholder
			}
		}
		out[ix] = string(b)
	}
	return out
}
