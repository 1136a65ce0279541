// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780test

import (
	"fmt"
	"sync"

	"github.com/GermanBionicSystems/charlcd/hd44780"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

// I2CBus is an i2c.Bus with a PCF8574 LCD backpack at one address. Every
// byte written to the expander updates the LCD lines; the controller is
// strobed on each falling edge of E.
type I2CBus struct {
	c    *Controller
	addr uint16
	pins hd44780.PinMap

	mu     sync.Mutex
	port   byte
	frames []byte
}

// NewI2CBus returns a bus with c wired to a PCF8574 at addr as described by
// pins.
func NewI2CBus(c *Controller, addr uint16, pins hd44780.PinMap) *I2CBus {
	return &I2CBus{c: c, addr: addr, pins: pins, port: 0xff}
}

// Tx implements i2c.Bus. A read returns the port pins; data lines show the
// controller's output while R/W and E are high.
func (b *I2CBus) Tx(addr uint16, w, r []byte) error {
	if addr != b.addr {
		return fmt.Errorf("hd44780test: no device at address 0x%02x", addr)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, v := range w {
		prev := b.pins.Decode(b.port)
		next := b.pins.Decode(v)
		b.port = v
		b.frames = append(b.frames, v)
		switch {
		case next.RW && next.EN && !prev.EN:
			out := b.c.Strobe(next.RS, true, 0)
			next.Nibble = out >> 4
			b.port = b.pins.Encode(next)
		case !next.RW && prev.EN && !next.EN:
			b.c.Strobe(prev.RS, false, prev.Nibble<<4)
		}
	}
	for ix := range r {
		r[ix] = b.port
	}
	return nil
}

// SetSpeed implements i2c.Bus.
func (b *I2CBus) SetSpeed(f physic.Frequency) error {
	return nil
}

// Halt implements conn.Resource.
func (b *I2CBus) Halt() error {
	return nil
}

func (b *I2CBus) String() string {
	return fmt.Sprintf("hd44780test.I2CBus(0x%02x)", b.addr)
}

// Frames returns every byte written to the expander.
func (b *I2CBus) Frames() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]byte(nil), b.frames...)
}

// Backlight reports the level of the backlight line.
func (b *I2CBus) Backlight() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pins.Decode(b.port).BL
}

var _ i2c.Bus = &I2CBus{}
