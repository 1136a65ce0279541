// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package hd44780 controls character LCDs built on the Hitachi HD44780 and
// compatible controllers (KS0066, SPLC780, ST7066).
//
// The controller is reached either directly over GPIO (Parallel, 4 or 8 data
// lines) or through a PCF8574 I²C backpack (I2C). Both transports carry the
// same instructions; the package never reads the busy flag on the I²C path
// and instead waits the datasheet execution times.
//
// Dev is not safe for concurrent use. Every operation moves the controller's
// address counter, so callers sharing a display must serialize access.
//
// # Datasheet
//
// https://www.sparkfun.com/datasheets/LCD/HD44780.pdf
package hd44780

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
)

var (
	// ErrInvalidAddress is returned for a CGRAM or DDRAM address that doesn't
	// fit its bit width.
	ErrInvalidAddress = errors.New("hd44780: invalid address")
	// ErrInvalidLine is returned for a line index outside the display layout.
	ErrInvalidLine = errors.New("hd44780: invalid line")
	// ErrInvalidConfig is returned for inconsistent construction parameters.
	ErrInvalidConfig = errors.New("hd44780: invalid configuration")
	// ErrTransport wraps every error returned by the underlying bus. After a
	// transport error the controller may have latched half a byte; re-run
	// Init before trusting the display again. A repeated Init always resyncs
	// the interface first.
	ErrTransport = errors.New("hd44780: transport failure")
	// ErrReadNotSupported is returned by ReadStatus when the transport can't
	// read from the controller.
	ErrReadNotSupported = fmt.Errorf("hd44780: status read %w", display.ErrNotImplemented)
)

// Execution times. The datasheet gives 1.52ms for clear and home and 37µs for
// everything else at 270kHz; these leave some margin for slow oscillators.
const (
	delaySlowCommand time.Duration = 2 * time.Millisecond
	delayCommand     time.Duration = 40 * time.Microsecond
	delayData        time.Duration = 45 * time.Microsecond
)

// Delays before each function set of the reset by instruction sequence.
var resetDelays = []time.Duration{50 * time.Millisecond, 5 * time.Millisecond, time.Millisecond}

// Config is the instruction triple sent by Init.
type Config struct {
	// Function is a function set instruction. Its interface width must match
	// the transport.
	Function Instruction
	// Control is a display on/off control instruction.
	Control Instruction
	// EntryMode is an entry mode set instruction.
	EntryMode Instruction
}

// DefaultConfig is a 4 bit, 2 line, 5x8 font display, on, with the cursor
// hidden and moving right.
var DefaultConfig = Config{
	Function:  FunctionSet4Bit2Line5x8,
	Control:   DisplayOn,
	EntryMode: EntryModeIncrement,
}

// Validate checks that each instruction belongs to its class.
func (c Config) Validate() error {
	if c.Function.Class() != classFunctionSet {
		return fmt.Errorf("%w: %s is not a function set", ErrInvalidConfig, c.Function)
	}
	if c.Control.Class() != classDisplay {
		return fmt.Errorf("%w: %s is not a display control", ErrInvalidConfig, c.Control)
	}
	if c.EntryMode.Class() != classEntryMode {
		return fmt.Errorf("%w: %s is not an entry mode", ErrInvalidConfig, c.EntryMode)
	}
	return nil
}

// Opts holds the settings used by New.
type Opts struct {
	// Layout is the display geometry. The zero value is a 16x2 display.
	Layout Layout
	// Config is sent during Init. The zero value is DefaultConfig adjusted to
	// the transport width and the layout line count.
	Config Config
	// ResetByInstruction runs the datasheet's reset sequence before Init:
	// three 8 bit function sets, 50ms, 5ms and 1ms apart. Use it when the
	// supply doesn't rise fast enough for the power on reset, or when the
	// program may restart without power cycling the display.
	ResetByInstruction bool
	// Sleep waits for the controller. Defaults to time.Sleep. Tests replace it.
	Sleep func(time.Duration)
	// Backlight, when set, is used by Dev.Backlight. Transports that drive the
	// backlight themselves (I2C) are used otherwise.
	Backlight display.DisplayBacklight
}

// Dev is an HD44780 display.
//
// Implements display.TextDisplay and display.DisplayBacklight.
type Dev struct {
	t      Transport
	layout Layout
	reset  bool
	sleep  func(time.Duration)
	bl     display.DisplayBacklight

	// initialized is set once Init sent anything; the interface width is
	// unknown from then on.
	initialized bool

	// Last entry mode and display control sent, so single flags can change.
	entry   Instruction
	control Instruction
}

// New returns a Dev on transport t, initialized and ready for use.
func New(t Transport, opts *Opts) (*Dev, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil transport", ErrInvalidConfig)
	}
	if opts == nil {
		opts = &Opts{}
	}
	layout := opts.Layout
	if layout.Lines() == 0 {
		layout, _ = DefaultLayout(2, 16)
	}
	cfg := opts.Config
	if cfg == (Config{}) {
		cfg = Config{
			Function:  FunctionSet(t.EightBit(), layout.Lines() > 1, false),
			Control:   DefaultConfig.Control,
			EntryMode: DefaultConfig.EntryMode,
		}
	}
	d := &Dev{
		t:      t,
		layout: layout,
		reset:  opts.ResetByInstruction,
		sleep:  opts.Sleep,
		bl:     opts.Backlight,
	}
	if d.sleep == nil {
		d.sleep = time.Sleep
	}
	if d.bl == nil {
		d.bl, _ = t.(display.DisplayBacklight)
	}
	if err := d.Init(cfg); err != nil {
		return nil, err
	}
	return d, nil
}

// Init runs the initialization sequence:
//
//  1. the reset by instruction sequence, when Opts.ResetByInstruction is set
//     or Init already ran; it brings the controller back to an 8 bit
//     interface whatever width or half transfer it was left in
//  2. cfg.Function as a single 8 bit transfer, since the controller powers up
//     with an 8 bit interface
//  3. cfg.Function again, now at the configured width
//  4. cfg.Control, then cfg.EntryMode
//
// The controller gives no feedback; a miswired display fails silently. Init
// is called by New and only needs to be called again after the display lost
// power or a transport error.
func (d *Dev) Init(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Function.EightBit() != d.t.EightBit() {
		return fmt.Errorf("%w: %s doesn't match transport %s", ErrInvalidConfig, cfg.Function, d.t)
	}
	resync := d.reset || d.initialized
	d.initialized = true
	if resync {
		for _, wait := range resetDelays {
			d.sleep(wait)
			if err := d.t.writeInit(FunctionSet8Bit1Line5x8); err != nil {
				return err
			}
		}
	}
	if err := d.t.writeInit(cfg.Function); err != nil {
		return err
	}
	d.sleep(delayCommand)
	for _, i := range []Instruction{cfg.Function, cfg.Control, cfg.EntryMode} {
		if err := d.WriteInstruction(i); err != nil {
			return err
		}
	}
	return nil
}

// WriteInstruction sends i and waits for the controller to execute it.
func (d *Dev) WriteInstruction(i Instruction) error {
	if err := d.t.WriteInstruction(i); err != nil {
		return err
	}
	switch i.Class() {
	case classEntryMode:
		d.entry = i
	case classDisplay:
		d.control = i
	case classClearDisplay:
		// Clear also sets I/D.
		d.entry |= entryIncrement
	}
	if i.slow() {
		d.sleep(delaySlowCommand)
	} else {
		d.sleep(delayCommand)
	}
	return nil
}

// Clear clears the display and moves the cursor to the first position.
func (d *Dev) Clear() error {
	return d.WriteInstruction(ClearDisplay)
}

// Home moves the cursor to the first position and undoes display shifts.
func (d *Dev) Home() error {
	return d.WriteInstruction(ReturnHome)
}

// SetCGRAMAddress points the address counter at CGRAM. Data writes then
// define glyph rows.
func (d *Dev) SetCGRAMAddress(a CGRAMAddress) error {
	i, err := ResolveCGRAM(a)
	if err != nil {
		return err
	}
	return d.WriteInstruction(i)
}

// SetDDRAMAddress points the address counter at DDRAM.
func (d *Dev) SetDDRAMAddress(a DDRAMAddress) error {
	i, err := ResolveDDRAM(a)
	if err != nil {
		return err
	}
	return d.WriteInstruction(i)
}

// SetCursorPosition moves the cursor to column of line, both zero based.
// The column isn't checked against the display width.
func (d *Dev) SetCursorPosition(line, column int) error {
	i, err := d.layout.ResolveCursor(line, column)
	if err != nil {
		return err
	}
	return d.WriteInstruction(i)
}

// ReadStatus reads the busy flag and address counter.
func (d *Dev) ReadStatus() (Status, error) {
	b, err := d.t.readStatus()
	if err != nil {
		return Status{}, err
	}
	return DecodeStatus(b), nil
}

// DefineGlyph stores a 5x8 glyph for character code (0-7). Each byte is a
// row, top first, with the leftmost dot in bit 4. Afterwards the address
// counter points at DDRAM address 0.
func (d *Dev) DefineGlyph(code byte, rows [8]byte) error {
	if code > 7 {
		return fmt.Errorf("%w: glyph code %d, only 0-7 are user defined", ErrInvalidAddress, code)
	}
	if err := d.SetCGRAMAddress(CGRAMAddress(code << 3)); err != nil {
		return err
	}
	for _, row := range rows {
		if err := d.writeData(row & 0x1f); err != nil {
			return err
		}
	}
	return d.SetDDRAMAddress(0)
}

// Write sends p to the data register, one character per byte, at the cursor.
// There is no line wrapping; what follows the end of a line depends on the
// controller's DDRAM layout.
func (d *Dev) Write(p []byte) (n int, err error) {
	for _, b := range p {
		if err = d.writeData(b); err != nil {
			return
		}
		n++
	}
	return
}

// WriteString writes text to the display. See Write.
func (d *Dev) WriteString(text string) (int, error) {
	return d.Write([]byte(text))
}

// AutoScroll makes the display shift with each character written instead of
// the cursor moving.
func (d *Dev) AutoScroll(enabled bool) error {
	increment := d.entry&entryIncrement != 0
	return d.WriteInstruction(EntryMode(increment, enabled))
}

// Cols returns the number of columns.
func (d *Dev) Cols() int {
	return d.layout.Cols()
}

// Rows returns the number of rows.
func (d *Dev) Rows() int {
	return d.layout.Lines()
}

// MinCol returns the first column index used by MoveTo.
func (d *Dev) MinCol() int {
	return 1
}

// MinRow returns the first row index used by MoveTo.
func (d *Dev) MinRow() int {
	return 1
}

// Cursor sets the cursor mode. Modes combine, e.g.
// Cursor(display.CursorUnderline, display.CursorBlink).
func (d *Dev) Cursor(modes ...display.CursorMode) error {
	on := d.control&displayOnBit != 0
	cursor := d.control&displayCursorBit != 0
	blink := d.control&displayBlinkBit != 0
	for _, mode := range modes {
		switch mode {
		case display.CursorOff:
			cursor = false
			blink = false
		case display.CursorUnderline:
			cursor = true
		case display.CursorBlock, display.CursorBlink:
			blink = true
		default:
			return fmt.Errorf("hd44780: unexpected cursor mode %d", mode)
		}
	}
	return d.WriteInstruction(DisplayControl(on, cursor, blink))
}

// Move moves the cursor one position forward or backward. Up and Down aren't
// supported.
func (d *Dev) Move(dir display.CursorDirection) error {
	switch dir {
	case display.Forward:
		return d.WriteInstruction(CursorRight)
	case display.Backward:
		return d.WriteInstruction(CursorLeft)
	}
	return fmt.Errorf("hd44780: move %d %w", dir, display.ErrNotImplemented)
}

// MoveTo moves the cursor to row, col. Both start at 1.
func (d *Dev) MoveTo(row, col int) error {
	if row < d.MinRow() || row > d.Rows() || col < d.MinCol() || col > d.Cols() {
		return fmt.Errorf("hd44780: MoveTo(%d,%d) value out of range", row, col)
	}
	return d.SetCursorPosition(row-d.MinRow(), col-d.MinCol())
}

// Display turns the display on or off, keeping the cursor settings.
func (d *Dev) Display(on bool) error {
	cursor := d.control&displayCursorBit != 0
	blink := d.control&displayBlinkBit != 0
	return d.WriteInstruction(DisplayControl(on, cursor, blink))
}

// Backlight turns the display and its backlight on or off. Without a
// backlight control only the display is switched.
func (d *Dev) Backlight(intensity display.Intensity) error {
	if err := d.Display(intensity > 0); err != nil {
		return err
	}
	if d.bl == nil {
		return nil
	}
	return d.bl.Backlight(intensity)
}

// Halt clears the display, turns it and the backlight off and halts the
// transport.
func (d *Dev) Halt() error {
	_ = d.Clear()
	_ = d.Backlight(0)
	return d.t.Halt()
}

// String returns info about the display.
func (d *Dev) String() string {
	return fmt.Sprintf("HD44780::%s - Rows: %d, Cols: %d", d.t, d.Rows(), d.Cols())
}

func (d *Dev) writeData(b byte) error {
	if err := d.t.WriteData(b); err != nil {
		return err
	}
	d.sleep(delayData)
	return nil
}

var _ display.TextDisplay = &Dev{}
var _ display.DisplayBacklight = &Dev{}
var _ conn.Resource = &Dev{}
