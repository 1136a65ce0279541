// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import (
	"github.com/GermanBionicSystems/charlcd/nxp74hc595"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/spi"
)

// Output numbers of the 74HC595 on the SPI side of the Adafruit I²C/SPI
// backpack.
const (
	spiD4        = 6
	spiD5        = 5
	spiD6        = 4
	spiD7        = 3
	spiRS        = 1
	spiEnable    = 2
	spiBacklight = 7
)

// NewPCF857xBackpack returns a display behind a PCF8574 LCD backpack wired as
// DefaultPinMap, with the backlight on.
//
// # Product Information
//
// https://www.handsontec.com/dataspecs/I2C_2004_LCD.pdf
func NewPCF857xBackpack(bus i2c.Bus, address uint16, rows, cols int) (*Dev, error) {
	layout, err := DefaultLayout(rows, cols)
	if err != nil {
		return nil, err
	}
	t, err := NewI2C(bus, address, nil)
	if err != nil {
		return nil, err
	}
	return New(t, &Opts{Layout: layout})
}

// NewSPIBackpack returns a display behind the SPI side of the Adafruit
// I²C/SPI backpack, which uses a 74HC595 shift register.
//
// # Product Information
//
// https://www.adafruit.com/product/292
func NewSPIBackpack(conn spi.Conn, rows, cols int) (*Dev, error) {
	layout, err := DefaultLayout(rows, cols)
	if err != nil {
		return nil, err
	}
	chip, err := nxp74hc595.New(conn)
	if err != nil {
		return nil, wrapTransport(err)
	}
	gr, err := chip.Group(spiD4, spiD5, spiD6, spiD7)
	if err != nil {
		return nil, wrapTransport(err)
	}
	t, err := NewParallel(gr, chip.Pins[spiRS], chip.Pins[spiEnable], nil)
	if err != nil {
		return nil, err
	}
	return New(t, &Opts{Layout: layout, Backlight: NewBacklight(chip.Pins[spiBacklight])})
}

// NewGPIO returns a display wired directly to GPIO pins. dataPins holds D4-D7
// or D0-D7. bl may be nil when the backlight isn't switchable.
func NewGPIO(dataPins gpio.Group, rs, enable, bl gpio.PinOut, rows, cols int) (*Dev, error) {
	layout, err := DefaultLayout(rows, cols)
	if err != nil {
		return nil, err
	}
	t, err := NewParallel(dataPins, rs, enable, nil)
	if err != nil {
		return nil, err
	}
	opts := &Opts{Layout: layout}
	if bl != nil {
		opts.Backlight = NewBacklight(bl)
	}
	return New(t, opts)
}
