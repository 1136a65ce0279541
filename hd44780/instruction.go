// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import "fmt"

// Instruction is an HD44780 instruction register value. The bit patterns are
// sent verbatim to the controller.
type Instruction uint8

// Instruction classes. The class of an instruction is its highest set bit.
const (
	classClearDisplay Instruction = 0x01
	classReturnHome   Instruction = 0x02
	classEntryMode    Instruction = 0x04
	classDisplay      Instruction = 0x08
	classCursorShift  Instruction = 0x10
	classFunctionSet  Instruction = 0x20
	classSetCGRAMAddr Instruction = 0x40
	classSetDDRAMAddr Instruction = 0x80
	entryIncrement    Instruction = 0x02 // I/D
	entryShift        Instruction = 0x01 // S
	displayOnBit      Instruction = 0x04 // D
	displayCursorBit  Instruction = 0x02 // C
	displayBlinkBit   Instruction = 0x01 // B
	shiftDisplayBit   Instruction = 0x08 // S/C
	shiftRightBit     Instruction = 0x04 // R/L
	functionEightBit  Instruction = 0x10 // DL
	functionTwoLines  Instruction = 0x08 // N
	functionLargeFont Instruction = 0x04 // F
	cgramAddressMask  Instruction = 0x3f
	ddramAddressMask  Instruction = 0x7f
)

const (
	// ClearDisplay clears DDRAM and sets the address counter to 0.
	ClearDisplay Instruction = 0x01
	// ReturnHome sets the address counter to 0 and undoes any display shift.
	ReturnHome Instruction = 0x02

	EntryModeDecrement  Instruction = 0x04 // I/D=0 S=0
	EntryModeShiftRight Instruction = 0x05 // I/D=0 S=1
	EntryModeIncrement  Instruction = 0x06 // I/D=1 S=0
	EntryModeShiftLeft  Instruction = 0x07 // I/D=1 S=1

	DisplayOff           Instruction = 0x08 // D=0 C=0 B=0
	DisplayOn            Instruction = 0x0c // D=1 C=0 B=0
	DisplayOnBlink       Instruction = 0x0d // D=1 C=0 B=1
	DisplayOnCursor      Instruction = 0x0e // D=1 C=1 B=0
	DisplayOnCursorBlink Instruction = 0x0f // D=1 C=1 B=1

	CursorLeft  Instruction = 0x10 // S/C=0 R/L=0
	CursorRight Instruction = 0x14 // S/C=0 R/L=1
	ShiftLeft   Instruction = 0x18 // S/C=1 R/L=0
	ShiftRight  Instruction = 0x1c // S/C=1 R/L=1

	FunctionSet4Bit1Line5x8  Instruction = 0x20 // DL=0 N=0 F=0
	FunctionSet4Bit1Line5x10 Instruction = 0x24 // DL=0 N=0 F=1
	FunctionSet4Bit2Line5x8  Instruction = 0x28 // DL=0 N=1 F=0
	FunctionSet8Bit1Line5x8  Instruction = 0x30 // DL=1 N=0 F=0
	FunctionSet8Bit1Line5x10 Instruction = 0x34 // DL=1 N=0 F=1
	FunctionSet8Bit2Line5x8  Instruction = 0x38 // DL=1 N=1 F=0

	// SetCGRAMAddress is OR'ed with a 6 bit CGRAM address.
	SetCGRAMAddress Instruction = 0x40
	// SetDDRAMAddress is OR'ed with a 7 bit DDRAM address.
	SetDDRAMAddress Instruction = 0x80
)

// EntryMode returns the entry mode set instruction. increment moves the
// address counter up after each data access, shift moves the display
// instead of the cursor.
func EntryMode(increment, shift bool) Instruction {
	i := classEntryMode
	if increment {
		i |= entryIncrement
	}
	if shift {
		i |= entryShift
	}
	return i
}

// DisplayControl returns the display on/off control instruction.
func DisplayControl(on, cursor, blink bool) Instruction {
	i := classDisplay
	if on {
		i |= displayOnBit
	}
	if cursor {
		i |= displayCursorBit
	}
	if blink {
		i |= displayBlinkBit
	}
	return i
}

// CursorShift returns the cursor or display shift instruction.
func CursorShift(display, right bool) Instruction {
	i := classCursorShift
	if display {
		i |= shiftDisplayBit
	}
	if right {
		i |= shiftRightBit
	}
	return i
}

// FunctionSet returns the function set instruction for the given interface
// width, line count and font.
//
// The datasheet only permits the 5x10 font with one line. The bit is passed
// through anyway; the controller ignores it when N=1.
func FunctionSet(eightBit, twoLines, largeFont bool) Instruction {
	i := classFunctionSet
	if eightBit {
		i |= functionEightBit
	}
	if twoLines {
		i |= functionTwoLines
	}
	if largeFont {
		i |= functionLargeFont
	}
	return i
}

// Class returns the instruction class, which is the highest bit set. Zero
// is returned for the (invalid) zero instruction.
func (i Instruction) Class() Instruction {
	for c := classSetDDRAMAddr; c != 0; c >>= 1 {
		if i&c != 0 {
			return c
		}
	}
	return 0
}

// EightBit reports whether a function set instruction selects the 8 bit
// interface.
func (i Instruction) EightBit() bool {
	return i.Class() == classFunctionSet && i&functionEightBit != 0
}

// slow reports whether the controller needs the long execution time.
func (i Instruction) slow() bool {
	return i == ClearDisplay || i.Class() == classReturnHome
}

func (i Instruction) String() string {
	switch i.Class() {
	case classClearDisplay:
		return "ClearDisplay"
	case classReturnHome:
		return "ReturnHome"
	case classEntryMode:
		return fmt.Sprintf("EntryMode(I/D=%d,S=%d)", bit(i, entryIncrement), bit(i, entryShift))
	case classDisplay:
		return fmt.Sprintf("DisplayControl(D=%d,C=%d,B=%d)", bit(i, displayOnBit), bit(i, displayCursorBit), bit(i, displayBlinkBit))
	case classCursorShift:
		return fmt.Sprintf("CursorShift(S/C=%d,R/L=%d)", bit(i, shiftDisplayBit), bit(i, shiftRightBit))
	case classFunctionSet:
		return fmt.Sprintf("FunctionSet(DL=%d,N=%d,F=%d)", bit(i, functionEightBit), bit(i, functionTwoLines), bit(i, functionLargeFont))
	case classSetCGRAMAddr:
		return fmt.Sprintf("SetCGRAMAddress(0x%02x)", byte(i&cgramAddressMask))
	case classSetDDRAMAddr:
		return fmt.Sprintf("SetDDRAMAddress(0x%02x)", byte(i&ddramAddressMask))
	}
	return "Instruction(0x00)"
}

func bit(i, mask Instruction) int {
	if i&mask != 0 {
		return 1
	}
	return 0
}
