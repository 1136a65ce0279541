// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package hd44780test simulates an HD44780 controller for tests.
//
// A Controller sees the bus one enable strobe at a time, exactly as the chip
// does, so it catches framing mistakes: a lost nibble leaves it out of step
// just like real hardware. NewI2CBus and NewParallel put it behind the same
// periph.io interfaces the hd44780 transports use.
package hd44780test

import (
	"fmt"
	"sync"

	"github.com/GermanBionicSystems/charlcd/hd44780"
	"github.com/GermanBionicSystems/charlcd/lcdframe"
)

const (
	ddramSize = 128
	cgramSize = 64
	blank     = ' '
)

// State is the controller's register state.
type State struct {
	// Function set flags. The controller powers up 8 bits wide.
	EightBit  bool
	TwoLines  bool
	LargeFont bool
	// Display control flags.
	DisplayOn bool
	CursorOn  bool
	BlinkOn   bool
	// Entry mode flags.
	Increment bool
	Shift     bool
	// Address is the address counter.
	Address byte
	// CGRAM is true when the address counter points into CGRAM.
	CGRAM bool
	// DisplayShift counts positions the display moved left.
	DisplayShift int
}

// Transfer is one complete byte exchanged with the controller.
type Transfer struct {
	RS    bool
	Read  bool
	Value byte
}

func (t Transfer) String() string {
	reg := "IR"
	if t.RS {
		reg = "DR"
	}
	dir := "W"
	if t.Read {
		dir = "R"
	}
	return fmt.Sprintf("%s%s(0x%02x)", reg, dir, t.Value)
}

// Controller is a simulated HD44780. It is safe for concurrent use.
type Controller struct {
	mu    sync.Mutex
	state State
	ddram [ddramSize]byte
	cgram [cgramSize]byte

	// 4 bit interface: the first nibble of a write or read is pending.
	pending  bool
	hiNibble byte
	readByte byte

	history []Transfer
}

// New returns a controller in its power on reset state: 8 bit interface,
// one line, display off, DDRAM blank, cursor moving right.
func New() *Controller {
	c := &Controller{state: State{EightBit: true, Increment: true}}
	for ix := range c.ddram {
		c.ddram[ix] = blank
	}
	return c
}

// Strobe is one enable pulse. bus holds D7..D0; on a 4 bit interface only
// D7..D4 are used. The returned value is what the controller drives on the
// bus when rw is true, in the same bit positions.
func (c *Controller) Strobe(rs, rw bool, bus byte) byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	if rw {
		return c.readLocked(rs)
	}
	if c.state.EightBit {
		c.writeLocked(rs, bus)
		return 0
	}
	if !c.pending {
		c.pending = true
		c.hiNibble = bus & 0xf0
		return 0
	}
	c.pending = false
	c.writeLocked(rs, c.hiNibble|bus>>4)
	return 0
}

// State returns a copy of the register state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// DDRAM returns a copy of the display data RAM.
func (c *Controller) DDRAM() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]byte(nil), c.ddram[:]...)
}

// CGRAM returns a copy of the character generator RAM.
func (c *Controller) CGRAM() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]byte(nil), c.cgram[:]...)
}

// Glyph returns the 8 rows of user character code (0-7).
func (c *Controller) Glyph(code byte) [8]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	var g [8]byte
	copy(g[:], c.cgram[int(code&7)*8:])
	return g
}

// Text returns what each line of layout shows, taking the display shift into
// account.
func (c *Controller) Text(layout hd44780.Layout) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var lines []string
	for _, l := range c.linesLocked(layout) {
		lines = append(lines, string(l))
	}
	return lines
}

// Frame returns a snapshot of the display for rendering. The controller
// doesn't see the backlight line, so Backlight is always true; use
// I2CBus.Backlight to fill it in.
func (c *Controller) Frame(layout hd44780.Layout) lcdframe.Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	f := lcdframe.Frame{
		Lines:     c.linesLocked(layout),
		DisplayOn: c.state.DisplayOn,
		Backlight: true,
	}
	for code := range f.Glyphs {
		copy(f.Glyphs[code][:], c.cgram[code*8:])
	}
	return f
}

func (c *Controller) linesLocked(layout hd44780.Layout) [][]byte {
	lines := make([][]byte, 0, layout.Lines())
	for _, offset := range layout.Offsets() {
		b := make([]byte, layout.Cols())
		for col := range b {
			b[col] = c.ddram[(int(offset)+col+c.state.DisplayShift)&(ddramSize-1)]
		}
		lines = append(lines, b)
	}
	return lines
}

// History returns every complete transfer since the controller was created.
func (c *Controller) History() []Transfer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Transfer(nil), c.history...)
}

// Instructions returns the instructions written so far.
func (c *Controller) Instructions() []hd44780.Instruction {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []hd44780.Instruction
	for _, t := range c.history {
		if !t.RS && !t.Read {
			out = append(out, hd44780.Instruction(t.Value))
		}
	}
	return out
}

func (c *Controller) readLocked(rs bool) byte {
	if !c.state.EightBit && c.pending {
		// Second half of a 4 bit read.
		c.pending = false
		return c.readByte << 4
	}
	var v byte
	if rs {
		v = c.memLocked()[c.state.Address]
		c.advanceLocked(c.state.Increment)
	} else {
		// Never busy.
		v = c.state.Address & 0x7f
	}
	c.history = append(c.history, Transfer{RS: rs, Read: true, Value: v})
	if c.state.EightBit {
		return v
	}
	c.pending = true
	c.readByte = v
	return v & 0xf0
}

func (c *Controller) writeLocked(rs bool, v byte) {
	c.history = append(c.history, Transfer{RS: rs, Value: v})
	if rs {
		c.memLocked()[c.state.Address] = v
		c.advanceLocked(c.state.Increment)
		if c.state.Shift && !c.state.CGRAM {
			c.shiftDisplayLocked(c.state.Increment)
		}
		return
	}
	c.executeLocked(hd44780.Instruction(v))
}

func (c *Controller) executeLocked(i hd44780.Instruction) {
	s := &c.state
	switch {
	case i&0x80 != 0:
		s.Address = byte(i) & 0x7f
		s.CGRAM = false
	case i&0x40 != 0:
		s.Address = byte(i) & 0x3f
		s.CGRAM = true
	case i&0x20 != 0:
		s.EightBit = i&0x10 != 0
		s.TwoLines = i&0x08 != 0
		s.LargeFont = i&0x04 != 0
		c.pending = false
	case i&0x10 != 0:
		right := i&0x04 != 0
		if i&0x08 != 0 {
			c.shiftDisplayLocked(!right)
		} else {
			c.advanceLocked(right)
		}
	case i&0x08 != 0:
		s.DisplayOn = i&0x04 != 0
		s.CursorOn = i&0x02 != 0
		s.BlinkOn = i&0x01 != 0
	case i&0x04 != 0:
		s.Increment = i&0x02 != 0
		s.Shift = i&0x01 != 0
	case i&0x02 != 0:
		s.Address = 0
		s.CGRAM = false
		s.DisplayShift = 0
	case i&0x01 != 0:
		for ix := range c.ddram {
			c.ddram[ix] = blank
		}
		s.Address = 0
		s.CGRAM = false
		s.DisplayShift = 0
		s.Increment = true
	}
}

func (c *Controller) memLocked() []byte {
	if c.state.CGRAM {
		return c.cgram[:]
	}
	return c.ddram[:]
}

// advanceLocked moves the address counter, wrapping within the RAM it points
// to.
func (c *Controller) advanceLocked(forward bool) {
	size := byte(ddramSize)
	if c.state.CGRAM {
		size = cgramSize
	}
	if forward {
		c.state.Address = (c.state.Address + 1) & (size - 1)
	} else {
		c.state.Address = (c.state.Address - 1) & (size - 1)
	}
}

func (c *Controller) shiftDisplayLocked(left bool) {
	if left {
		c.state.DisplayShift++
	} else {
		c.state.DisplayShift--
	}
}
