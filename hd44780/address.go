// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import (
	"fmt"
)

const (
	// MaxCGRAMAddress is the highest CGRAM address. CGRAM addresses are 6
	// bits wide.
	MaxCGRAMAddress = 0x3f
	// MaxDDRAMAddress is the highest DDRAM address. DDRAM addresses are 7
	// bits wide.
	MaxDDRAMAddress = 0x7f

	busyFlag byte = 0x80
)

// CGRAMAddress is a character generator RAM address. Use NewCGRAMAddress to
// build one from an untrusted value.
type CGRAMAddress uint8

// DDRAMAddress is a display data RAM address. Use NewDDRAMAddress to build
// one from an untrusted value.
type DDRAMAddress uint8

// NewCGRAMAddress returns v as a CGRAMAddress, or ErrInvalidAddress if v
// doesn't fit in 6 bits.
func NewCGRAMAddress(v int) (CGRAMAddress, error) {
	if v < 0 || v > MaxCGRAMAddress {
		return 0, fmt.Errorf("%w: CGRAM address %d out of range [0..%d]", ErrInvalidAddress, v, MaxCGRAMAddress)
	}
	return CGRAMAddress(v), nil
}

// NewDDRAMAddress returns v as a DDRAMAddress, or ErrInvalidAddress if v
// doesn't fit in 7 bits.
func NewDDRAMAddress(v int) (DDRAMAddress, error) {
	if v < 0 || v > MaxDDRAMAddress {
		return 0, fmt.Errorf("%w: DDRAM address %d out of range [0..%d]", ErrInvalidAddress, v, MaxDDRAMAddress)
	}
	return DDRAMAddress(v), nil
}

// ResolveCGRAM returns the set CGRAM address instruction for a.
func ResolveCGRAM(a CGRAMAddress) (Instruction, error) {
	if _, err := NewCGRAMAddress(int(a)); err != nil {
		return 0, err
	}
	return SetCGRAMAddress | Instruction(a), nil
}

// ResolveDDRAM returns the set DDRAM address instruction for a.
func ResolveDDRAM(a DDRAMAddress) (Instruction, error) {
	if _, err := NewDDRAMAddress(int(a)); err != nil {
		return 0, err
	}
	return SetDDRAMAddress | Instruction(a), nil
}

// Status is the value returned by the read busy flag & address instruction.
type Status struct {
	// Busy is true while the controller is executing an instruction.
	Busy bool
	// Address is the 7 bit address counter. It points into CGRAM or DDRAM,
	// whichever was addressed last.
	Address byte
}

// DecodeStatus splits the byte read from the instruction register.
func DecodeStatus(b byte) Status {
	return Status{Busy: b&busyFlag != 0, Address: b & MaxDDRAMAddress}
}

func (s Status) String() string {
	return fmt.Sprintf("Status{Busy: %t, Address: 0x%02x}", s.Busy, s.Address)
}

// Layout describes how display lines map onto DDRAM. It is immutable once
// built.
type Layout struct {
	cols    int
	offsets []DDRAMAddress
}

// NewLayout returns a Layout for a display cols characters wide. offsets
// holds the DDRAM address of the first character of each line, in line
// order.
func NewLayout(cols int, offsets ...int) (Layout, error) {
	if cols <= 0 || cols > MaxDDRAMAddress+1 {
		return Layout{}, fmt.Errorf("%w: invalid column count %d", ErrInvalidConfig, cols)
	}
	if len(offsets) == 0 {
		return Layout{}, fmt.Errorf("%w: a layout needs at least one line", ErrInvalidConfig)
	}
	l := Layout{cols: cols, offsets: make([]DDRAMAddress, len(offsets))}
	for ix, o := range offsets {
		a, err := NewDDRAMAddress(o)
		if err != nil {
			return Layout{}, fmt.Errorf("line %d: %w", ix, err)
		}
		l.offsets[ix] = a
	}
	return l, nil
}

// DefaultLayout returns the line offsets used by the common 1, 2 and 4 line
// modules. On four line modules, lines 3 and 4 continue lines 1 and 2 in
// DDRAM.
func DefaultLayout(rows, cols int) (Layout, error) {
	switch rows {
	case 1:
		return NewLayout(cols, 0)
	case 2:
		return NewLayout(cols, 0, 0x40)
	case 4:
		return NewLayout(cols, 0, 0x40, cols, 0x40+cols)
	}
	return Layout{}, fmt.Errorf("%w: no default layout for %d rows", ErrInvalidConfig, rows)
}

// Lines returns the number of display lines.
func (l Layout) Lines() int {
	return len(l.offsets)
}

// Cols returns the number of characters per line.
func (l Layout) Cols() int {
	return l.cols
}

// Offsets returns a copy of the line offsets.
func (l Layout) Offsets() []DDRAMAddress {
	return append([]DDRAMAddress(nil), l.offsets...)
}

// ResolveCursor returns the set DDRAM address instruction for column of line.
// Both are zero based. The column isn't checked against the display width;
// what lies past the end of a line is up to the controller.
func (l Layout) ResolveCursor(line, column int) (Instruction, error) {
	if line < 0 || line >= len(l.offsets) {
		return 0, fmt.Errorf("%w: line %d, display has %d", ErrInvalidLine, line, len(l.offsets))
	}
	if column < 0 {
		return 0, fmt.Errorf("%w: column %d", ErrInvalidAddress, column)
	}
	a, err := NewDDRAMAddress(int(l.offsets[line]) + column)
	if err != nil {
		return 0, err
	}
	return ResolveDDRAM(a)
}
