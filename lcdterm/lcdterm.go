// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package lcdterm renders a character LCD frame to a terminal using ANSI
// color codes.
//
// The panel is drawn as text inside a colored bezel. User defined characters
// can't be shown as text, so they appear as a placeholder and are drawn dot
// by dot below the panel.
//
// Useful to preview a layout before the display comes in the mail.
package lcdterm

import (
	"bytes"
	"fmt"
	"image/color"
	"io"

	"github.com/GermanBionicSystems/charlcd/lcdframe"
	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
)

// Opts represents the options available for this renderer.
type Opts struct {
	// W is where frames go. Defaults to a colorable stdout.
	W io.Writer
	// Palette maps colors to the terminal's 256 colors. Defaults to
	// ansi256.Default.
	Palette *ansi256.Palette
	// Bezel, On and Off color the panel border and the glyph dots. The
	// defaults are a green backlit module.
	Bezel color.Color
	On    color.Color
	Off   color.Color
	// Placeholder stands in for user defined characters in the text.
	// Defaults to '▒'.
	Placeholder rune

	_ struct{}
}

// DefaultOpts is used when New is passed nil.
var DefaultOpts = Opts{
	Bezel:       color.NRGBA{0x20, 0x20, 0x20, 0xff},
	On:          color.NRGBA{0x10, 0x30, 0x10, 0xff},
	Off:         color.NRGBA{0x90, 0xc0, 0x30, 0xff},
	Placeholder: '▒',
}

// unlit replaces On and Off when the backlight is off.
var unlit = color.NRGBA{0x50, 0x60, 0x40, 0xff}

// Dev is a character LCD emulator that outputs to the console.
type Dev struct {
	w           io.Writer
	palette     ansi256.Palette
	bezel       color.Color
	on          color.Color
	off         color.Color
	placeholder rune

	buf bytes.Buffer
}

// New returns a Dev that draws frames at the console.
func New(opts *Opts) *Dev {
	if opts == nil {
		opts = &DefaultOpts
	}
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	d := &Dev{
		w:           opts.W,
		palette:     *p,
		bezel:       opts.Bezel,
		on:          opts.On,
		off:         opts.Off,
		placeholder: opts.Placeholder,
	}
	if d.w == nil {
		d.w = colorable.NewColorableStdout()
	}
	if d.bezel == nil {
		d.bezel = DefaultOpts.Bezel
	}
	if d.on == nil {
		d.on = DefaultOpts.On
	}
	if d.off == nil {
		d.off = DefaultOpts.Off
	}
	if d.placeholder == 0 {
		d.placeholder = DefaultOpts.Placeholder
	}
	return d
}

func (d *Dev) String() string {
	return "LCDTerm"
}

// Halt implements conn.Resource.
//
// It resets the terminal colors.
func (d *Dev) Halt() error {
	_, err := io.WriteString(d.w, "\033[0m\n")
	return err
}

// Draw writes f to the console: the panel, then every user defined
// character it uses.
func (d *Dev) Draw(f lcdframe.Frame) error {
	// This code is designed to minimize the amount of memory allocated per call.
	d.buf.Reset()
	cols := f.Cols()
	edge := d.palette.Block(d.bezel)
	d.bezelRow(cols + 2)
	text := f.Text(d.placeholder)
	for ix := range f.Lines {
		_, _ = d.buf.WriteString(edge)
		_, _ = d.buf.WriteString("\033[0m")
		line := []rune(text[ix])
		for col := range cols {
			switch {
			case !f.DisplayOn || col >= len(line):
				_ = d.buf.WriteByte(' ')
			default:
				_, _ = d.buf.WriteRune(line[col])
			}
		}
		_, _ = d.buf.WriteString(edge)
		_, _ = d.buf.WriteString("\033[0m\n")
	}
	d.bezelRow(cols + 2)
	if f.DisplayOn {
		d.glyphs(f)
	}
	_, err := d.buf.WriteTo(d.w)
	return err
}

func (d *Dev) bezelRow(n int) {
	edge := d.palette.Block(d.bezel)
	for range n {
		_, _ = d.buf.WriteString(edge)
	}
	_, _ = d.buf.WriteString("\033[0m\n")
}

// glyphs draws the user defined characters f uses side by side, 5x8 dots
// each, labeled with their code.
func (d *Dev) glyphs(f lcdframe.Frame) {
	var used []byte
	seen := [8]bool{}
	for _, l := range f.Lines {
		for _, code := range l {
			if lcdframe.IsGlyph(code) && !seen[code&7] {
				seen[code&7] = true
				used = append(used, code&7)
			}
		}
	}
	if len(used) == 0 {
		return
	}
	on, off := d.on, d.off
	if !f.Backlight {
		on, off = unlit, unlit
	}
	onBlock, offBlock := d.palette.Block(on), d.palette.Block(off)
	for _, code := range used {
		fmt.Fprintf(&d.buf, "%-6d", code)
	}
	_ = d.buf.WriteByte('\n')
	for y := range 8 {
		for _, code := range used {
			g := f.Glyph(code)
			for x := range 5 {
				if lcdframe.Dot(g, x, y) {
					_, _ = d.buf.WriteString(onBlock)
				} else {
					_, _ = d.buf.WriteString(offBlock)
				}
			}
			_, _ = d.buf.WriteString("\033[0m ")
		}
		_ = d.buf.WriteByte('\n')
	}
}
