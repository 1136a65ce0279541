// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package lcdimage renders a character LCD frame to an image, for
// documentation screenshots and golden file tests.
//
// ROM characters are drawn with a font; user defined characters are drawn dot
// by dot from their CGRAM rows.
package lcdimage

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"unicode/utf8"

	"github.com/GermanBionicSystems/charlcd/lcdframe"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
)

// Opts represents the options available for rendering.
type Opts struct {
	// Face draws ROM characters. Defaults to basicfont.Face7x13.
	Face font.Face
	// Dot is the size of one dot in pixels. A cell is 6x9 dots including the
	// gap to the next cell. Defaults to 3.
	Dot int
	// Margin is the bezel width in pixels. Defaults to 4 dots.
	Margin int
	// Bezel, Panel and Ink are the frame, backlit background and character
	// colors. Unlit replaces Panel when the backlight is off.
	Bezel color.Color
	Panel color.Color
	Ink   color.Color
	Unlit color.Color
}

// DefaultOpts is used when New is passed nil, and fills in zero fields.
var DefaultOpts = Opts{
	Face:  basicfont.Face7x13,
	Dot:   3,
	Bezel: color.RGBA{0x20, 0x20, 0x20, 0xff},
	Panel: color.RGBA{0x90, 0xc0, 0x30, 0xff},
	Ink:   color.RGBA{0x10, 0x30, 0x10, 0xff},
	Unlit: color.RGBA{0x50, 0x60, 0x40, 0xff},
}

// Renderer draws frames.
type Renderer struct {
	opts Opts
}

// New returns a Renderer.
func New(opts *Opts) *Renderer {
	o := DefaultOpts
	if opts != nil {
		o = *opts
	}
	if o.Face == nil {
		o.Face = DefaultOpts.Face
	}
	if o.Dot <= 0 {
		o.Dot = DefaultOpts.Dot
	}
	if o.Margin <= 0 {
		o.Margin = 4 * o.Dot
	}
	if o.Bezel == nil {
		o.Bezel = DefaultOpts.Bezel
	}
	if o.Panel == nil {
		o.Panel = DefaultOpts.Panel
	}
	if o.Ink == nil {
		o.Ink = DefaultOpts.Ink
	}
	if o.Unlit == nil {
		o.Unlit = DefaultOpts.Unlit
	}
	return &Renderer{opts: o}
}

// GoMonoFace returns the Go Mono font at size points, a good match for the
// blocky ROM characters at larger dot sizes.
func GoMonoFace(size float64) (font.Face, error) {
	f, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("lcdimage: %w", err)
	}
	return truetype.NewFace(f, &truetype.Options{Size: size}), nil
}

// Bounds returns the image size for a rows x cols display.
func (r *Renderer) Bounds(rows, cols int) image.Rectangle {
	w, h := r.cellSize()
	return image.Rect(0, 0, 2*r.opts.Margin+cols*w, 2*r.opts.Margin+rows*h)
}

// CellOrigin returns the top left pixel of the character at row, col.
func (r *Renderer) CellOrigin(row, col int) image.Point {
	w, h := r.cellSize()
	return image.Pt(r.opts.Margin+col*w, r.opts.Margin+row*h)
}

// Render draws f.
func (r *Renderer) Render(f lcdframe.Frame) image.Image {
	return r.context(f).Image()
}

// EncodePNG draws f and writes it to w as a PNG.
func (r *Renderer) EncodePNG(w io.Writer, f lcdframe.Frame) error {
	if err := r.context(f).EncodePNG(w); err != nil {
		return fmt.Errorf("lcdimage: %w", err)
	}
	return nil
}

func (r *Renderer) cellSize() (int, int) {
	return 6 * r.opts.Dot, 9 * r.opts.Dot
}

func (r *Renderer) context(f lcdframe.Frame) *gg.Context {
	b := r.Bounds(f.Rows(), f.Cols())
	dc := gg.NewContext(b.Dx(), b.Dy())
	dc.SetColor(r.opts.Bezel)
	dc.Clear()

	panel := r.opts.Panel
	if !f.Backlight {
		panel = r.opts.Unlit
	}
	m := float64(r.opts.Margin)
	dc.SetColor(panel)
	dc.DrawRectangle(m, m, float64(b.Dx())-2*m, float64(b.Dy())-2*m)
	dc.Fill()
	if !f.DisplayOn {
		return dc
	}

	dc.SetFontFace(r.opts.Face)
	dc.SetColor(r.opts.Ink)
	for row, line := range f.Lines {
		for col, code := range line {
			o := r.CellOrigin(row, col)
			if lcdframe.IsGlyph(code) {
				r.glyph(dc, o, f.Glyph(code))
				continue
			}
			c := lcdframe.ROMRune(code)
			if c == utf8.RuneError || c == ' ' {
				continue
			}
			// Center in the 5x8 dot area, leaving the gap on the right and
			// the cursor row at the bottom.
			cx := float64(o.X) + float64(5*r.opts.Dot)/2
			cy := float64(o.Y) + float64(8*r.opts.Dot)/2
			dc.DrawStringAnchored(string(c), cx, cy, 0.5, 0.5)
		}
	}
	return dc
}

// glyph draws the lit dots of g with their top left corner at o.
func (r *Renderer) glyph(dc *gg.Context, o image.Point, g [8]byte) {
	d := r.opts.Dot
	for y := range 8 {
		for x := range 5 {
			if lcdframe.Dot(g, x, y) {
				dc.DrawRectangle(float64(o.X+x*d), float64(o.Y+y*d), float64(d), float64(d))
			}
		}
	}
	dc.Fill()
}
