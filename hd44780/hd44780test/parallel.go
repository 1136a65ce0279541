// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780test

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/pin"
)

// Parallel is a controller wired directly to fake GPIO pins.
type Parallel struct {
	// Data is D4..D7 (width 4) or D0..D7 (width 8), lowest line first.
	Data gpio.Group
	RS   gpio.PinIO
	RW   gpio.PinIO
	// EN strobes the controller: writes on the falling edge, reads on the
	// rising edge while RW is high.
	EN gpio.PinIO
}

// NewParallel wires c to width (4 or 8) data lines.
func NewParallel(c *Controller, width int) (*Parallel, error) {
	if width != 4 && width != 8 {
		return nil, fmt.Errorf("hd44780test: unsupported bus width %d", width)
	}
	data := &pinGroup{pins: make([]*gpiotest.Pin, width)}
	for ix := range data.pins {
		data.pins[ix] = &gpiotest.Pin{N: fmt.Sprintf("D%d", ix+8-width), Num: ix}
	}
	rs := &gpiotest.Pin{N: "RS", Num: 8}
	rw := &gpiotest.Pin{N: "RW", Num: 9}
	en := &strobePin{Pin: &gpiotest.Pin{N: "E", Num: 10}, c: c, data: data, rs: rs, rw: rw}
	return &Parallel{Data: data, RS: rs, RW: rw, EN: en}, nil
}

// strobePin is the enable line.
type strobePin struct {
	*gpiotest.Pin
	c    *Controller
	data *pinGroup
	rs   *gpiotest.Pin
	rw   *gpiotest.Pin
}

// Out implements gpio.PinOut.
func (p *strobePin) Out(l gpio.Level) error {
	prev := p.Pin.Read()
	if err := p.Pin.Out(l); err != nil {
		return err
	}
	rs := bool(p.rs.Read())
	read := bool(p.rw.Read())
	switch {
	case read && l && !prev:
		p.data.drive(p.c.Strobe(rs, true, 0))
	case !read && prev && !l:
		p.c.Strobe(rs, false, p.data.bus())
	}
	return nil
}

// pinGroup is a gpio.Group of fake data lines.
type pinGroup struct {
	pins []*gpiotest.Pin
}

// bus returns the data lines as D7..D0.
func (g *pinGroup) bus() byte {
	var v byte
	for ix, p := range g.pins {
		if p.Read() {
			v |= 1 << ix
		}
	}
	if len(g.pins) == 4 {
		v <<= 4
	}
	return v
}

// drive puts the controller's output (D7..D0) on the data lines.
func (g *pinGroup) drive(v byte) {
	if len(g.pins) == 4 {
		v >>= 4
	}
	for ix, p := range g.pins {
		_ = p.Out(gpio.Level(v&(1<<ix) != 0))
	}
}

func (g *pinGroup) Pins() []pin.Pin {
	pins := make([]pin.Pin, len(g.pins))
	for ix, p := range g.pins {
		pins[ix] = p
	}
	return pins
}

func (g *pinGroup) ByOffset(offset int) pin.Pin {
	if offset < 0 || offset >= len(g.pins) {
		return nil
	}
	return g.pins[offset]
}

func (g *pinGroup) ByName(name string) pin.Pin {
	for _, p := range g.pins {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

func (g *pinGroup) ByNumber(number int) pin.Pin {
	for _, p := range g.pins {
		if p.Number() == number {
			return p
		}
	}
	return nil
}

func (g *pinGroup) Out(value, mask gpio.GPIOValue) error {
	if mask == 0 {
		mask = gpio.GPIOValue(1)<<len(g.pins) - 1
	}
	for ix, p := range g.pins {
		bit := gpio.GPIOValue(1) << ix
		if mask&bit != 0 {
			_ = p.Out(value&bit != 0)
		}
	}
	return nil
}

func (g *pinGroup) Read(mask gpio.GPIOValue) (gpio.GPIOValue, error) {
	if mask == 0 {
		mask = gpio.GPIOValue(1)<<len(g.pins) - 1
	}
	var v gpio.GPIOValue
	for ix, p := range g.pins {
		if p.Read() {
			v |= 1 << ix
		}
	}
	return v & mask, nil
}

func (g *pinGroup) WaitForEdge(timeout time.Duration) (int, gpio.Edge, error) {
	return 0, gpio.NoEdge, errors.New("hd44780test: edges not simulated")
}

func (g *pinGroup) Halt() error {
	return nil
}

func (g *pinGroup) String() string {
	return fmt.Sprintf("hd44780test.Data[%d]", len(g.pins))
}

var _ gpio.Group = &pinGroup{}
var _ gpio.PinIO = &strobePin{}
