// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import (
	"fmt"

	"github.com/GermanBionicSystems/charlcd/pcf857x"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
)

// PinMap gives the expander port bit each LCD signal is wired to.
type PinMap struct {
	RS uint8
	RW uint8
	EN uint8
	BL uint8
	// Data holds the port bits of D4, D5, D6 and D7, in that order.
	Data [4]uint8
}

// DefaultPinMap is the wiring of the ubiquitous PCF8574 LCD backpack
// (LCM1602 and clones): P0=RS P1=R/W P2=E P3=backlight P4..P7=D4..D7.
var DefaultPinMap = PinMap{RS: 0, RW: 1, EN: 2, BL: 3, Data: [4]uint8{4, 5, 6, 7}}

// LowNibblePinMap puts the data nibble on P0..P3 and the control lines on
// P4=RS P5=R/W P6=E P7=backlight, as on boards that route D4..D7 to the low
// half of the port.
var LowNibblePinMap = PinMap{RS: 4, RW: 5, EN: 6, BL: 7, Data: [4]uint8{0, 1, 2, 3}}

// Signals is the state of the LCD lines carried by one expander write.
type Signals struct {
	RS bool
	RW bool
	EN bool
	BL bool
	// Nibble is the value on D7..D4, in the low 4 bits.
	Nibble byte
}

// Encode returns the port value that puts s on the LCD lines.
func (m PinMap) Encode(s Signals) byte {
	var b byte
	set := func(on bool, bitNum uint8) {
		if on {
			b |= 1 << bitNum
		}
	}
	set(s.RS, m.RS)
	set(s.RW, m.RW)
	set(s.EN, m.EN)
	set(s.BL, m.BL)
	for ix, bitNum := range m.Data {
		set(s.Nibble&(1<<ix) != 0, bitNum)
	}
	return b
}

// Decode is the inverse of Encode.
func (m PinMap) Decode(b byte) Signals {
	isSet := func(bitNum uint8) bool { return b&(1<<bitNum) != 0 }
	s := Signals{RS: isSet(m.RS), RW: isSet(m.RW), EN: isSet(m.EN), BL: isSet(m.BL)}
	for ix, bitNum := range m.Data {
		if isSet(bitNum) {
			s.Nibble |= 1 << ix
		}
	}
	return s
}

// Validate checks that every signal has its own bit on an 8 bit port.
func (m PinMap) Validate() error {
	var used byte
	for _, bitNum := range []uint8{m.RS, m.RW, m.EN, m.BL, m.Data[0], m.Data[1], m.Data[2], m.Data[3]} {
		if bitNum > 7 {
			return fmt.Errorf("%w: pin map bit %d out of range", ErrInvalidConfig, bitNum)
		}
		if used&(1<<bitNum) != 0 {
			return fmt.Errorf("%w: pin map bit %d used twice", ErrInvalidConfig, bitNum)
		}
		used |= 1 << bitNum
	}
	return nil
}

// I2COpts holds the settings of an I2C transport.
type I2COpts struct {
	// Pins is the backpack wiring. The zero value selects DefaultPinMap.
	Pins PinMap
	// Backlight is the initial state of the backlight line.
	Backlight bool
}

// DefaultI2COpts is used when NewI2C is passed nil options.
var DefaultI2COpts = I2COpts{Pins: DefaultPinMap, Backlight: true}

// I2C drives the controller through a PCF8574 I²C port expander. Each write
// to the port is one I²C transaction. The expander has no strobe logic, so
// every nibble takes two writes: one with E high and one with E low. A full
// instruction or data byte always costs four transactions.
//
// The bus to the controller is 4 bits wide.
type I2C struct {
	port      *pcf857x.Dev
	pins      PinMap
	backlight bool
}

// NewI2C returns an I2C transport for the expander at address on bus.
func NewI2C(bus i2c.Bus, address uint16, opts *I2COpts) (*I2C, error) {
	if opts == nil {
		opts = &DefaultI2COpts
	}
	pins := opts.Pins
	if pins == (PinMap{}) {
		pins = DefaultPinMap
	}
	if err := pins.Validate(); err != nil {
		return nil, err
	}
	port, err := pcf857x.New(bus, address, pcf857x.PCF8574)
	if err != nil {
		return nil, wrapTransport(err)
	}
	return &I2C{port: port, pins: pins, backlight: opts.Backlight}, nil
}

// EightBit implements Transport. The expander only has room for 4 data
// lines.
func (t *I2C) EightBit() bool {
	return false
}

// WriteInstruction implements Transport.
func (t *I2C) WriteInstruction(i Instruction) error {
	return t.send(false, byte(i))
}

// WriteData implements Transport.
func (t *I2C) WriteData(b byte) error {
	return t.send(true, b)
}

func (t *I2C) writeInit(i Instruction) error {
	return t.writeNibble(false, byte(i)>>4)
}

// readStatus isn't available. Reading through the expander needs the data
// lines released and sampled mid-pulse, and backpacks differ on whether R/W
// is even wired.
func (t *I2C) readStatus() (byte, error) {
	return 0, fmt.Errorf("%w: I²C backpack", ErrReadNotSupported)
}

// Backlight switches the backlight line. Any intensity above 0 is on.
func (t *I2C) Backlight(intensity display.Intensity) error {
	t.backlight = intensity > 0
	return t.writePort(Signals{BL: t.backlight})
}

// Halt implements conn.Resource. It turns the backlight off and releases the
// expander.
func (t *I2C) Halt() error {
	err := t.Backlight(0)
	if haltErr := t.port.Halt(); err == nil {
		err = haltErr
	}
	return err
}

func (t *I2C) String() string {
	return fmt.Sprintf("I2C{%s}", t.port)
}

// Frames returns the four port values that carry b. It is what WriteData
// (rs=true) and WriteInstruction (rs=false) put on the bus.
func (t *I2C) Frames(rs bool, b byte) [4]byte {
	hi := Signals{RS: rs, BL: t.backlight, Nibble: b >> 4}
	lo := Signals{RS: rs, BL: t.backlight, Nibble: b & 0x0f}
	var f [4]byte
	hi.EN = true
	f[0] = t.pins.Encode(hi)
	hi.EN = false
	f[1] = t.pins.Encode(hi)
	lo.EN = true
	f[2] = t.pins.Encode(lo)
	lo.EN = false
	f[3] = t.pins.Encode(lo)
	return f
}

func (t *I2C) send(rs bool, b byte) error {
	for _, frame := range t.Frames(rs, b) {
		if err := t.port.WritePort(gpio.GPIOValue(frame)); err != nil {
			return wrapTransport(err)
		}
	}
	return nil
}

func (t *I2C) writeNibble(rs bool, nibble byte) error {
	s := Signals{RS: rs, BL: t.backlight, Nibble: nibble & 0x0f, EN: true}
	if err := t.writePort(s); err != nil {
		return err
	}
	s.EN = false
	return t.writePort(s)
}

func (t *I2C) writePort(s Signals) error {
	return wrapTransport(t.port.WritePort(gpio.GPIOValue(t.pins.Encode(s))))
}

var _ display.DisplayBacklight = &I2C{}
