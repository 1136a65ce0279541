// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcdimage

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/GermanBionicSystems/charlcd/lcdframe"
)

func sameColor(a, b color.Color) bool {
	r1, g1, b1, a1 := a.RGBA()
	r2, g2, b2, a2 := b.RGBA()
	return r1 == r2 && g1 == g2 && b1 == b2 && a1 == a2
}

// dotCenter returns the middle pixel of dot x, y of the cell at row, col.
func dotCenter(r *Renderer, row, col, x, y int) image.Point {
	d := r.opts.Dot
	return r.CellOrigin(row, col).Add(image.Pt(x*d+d/2, y*d+d/2))
}

func TestBounds(t *testing.T) {
	r := New(nil)
	want := image.Rect(0, 0, 2*12+16*18, 2*12+2*27)
	if got := r.Bounds(2, 16); got != want {
		t.Errorf("Bounds(2, 16) = %v, want %v", got, want)
	}
	r = New(&Opts{Dot: 2, Margin: 1})
	if got := r.Bounds(1, 1); got != image.Rect(0, 0, 14, 20) {
		t.Errorf("Bounds(1, 1) = %v", got)
	}
}

func TestRenderGlyph(t *testing.T) {
	r := New(nil)
	f := lcdframe.New(2, 4)
	f.Lines[1][2] = 0x03
	f.Glyphs[3] = [8]byte{0x10, 0x01}
	img := r.Render(f)
	if img.Bounds() != r.Bounds(2, 4) {
		t.Fatalf("image is %v", img.Bounds())
	}
	if p := dotCenter(r, 1, 2, 0, 0); !sameColor(img.At(p.X, p.Y), DefaultOpts.Ink) {
		t.Errorf("lit dot at %v is %v", p, img.At(p.X, p.Y))
	}
	if p := dotCenter(r, 1, 2, 4, 1); !sameColor(img.At(p.X, p.Y), DefaultOpts.Ink) {
		t.Errorf("lit dot at %v is %v", p, img.At(p.X, p.Y))
	}
	if p := dotCenter(r, 1, 2, 1, 0); !sameColor(img.At(p.X, p.Y), DefaultOpts.Panel) {
		t.Errorf("dark dot at %v is %v", p, img.At(p.X, p.Y))
	}
	if !sameColor(img.At(0, 0), DefaultOpts.Bezel) {
		t.Errorf("bezel is %v", img.At(0, 0))
	}
}

func TestRenderText(t *testing.T) {
	r := New(nil)
	f := lcdframe.New(1, 2)
	f.Lines[0][0] = 'W'
	img := r.Render(f)
	inked := func(col int) bool {
		o := r.CellOrigin(0, col)
		for y := o.Y; y < o.Y+27; y++ {
			for x := o.X; x < o.X+18; x++ {
				if !sameColor(img.At(x, y), DefaultOpts.Panel) {
					return true
				}
			}
		}
		return false
	}
	if !inked(0) {
		t.Error("'W' left no ink")
	}
	if inked(1) {
		t.Error("blank cell has ink")
	}

	f.DisplayOn = false
	f.Backlight = false
	img = r.Render(f)
	p := dotCenter(r, 0, 0, 2, 3)
	if !sameColor(img.At(p.X, p.Y), DefaultOpts.Unlit) {
		t.Errorf("blanked, unlit display shows %v", img.At(p.X, p.Y))
	}
}

func TestEncodePNG(t *testing.T) {
	face, err := GoMonoFace(18)
	if err != nil {
		t.Fatal(err)
	}
	r := New(&Opts{Face: face, Dot: 4})
	f := lcdframe.New(2, 8)
	copy(f.Lines[0], "25\xdfC")
	var buf bytes.Buffer
	if err := r.EncodePNG(&buf, f); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds() != r.Bounds(2, 8) {
		t.Errorf("decoded image is %v, want %v", img.Bounds(), r.Bounds(2, 8))
	}
}
