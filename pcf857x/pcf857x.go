// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package pcf857x drives the TI/NXP PCF8574 and PCF8575 I²C port expanders.
// The PCF8574 has one 8 bit port, the PCF8575 two. They sit on most I²C
// character LCD backpacks (LCD1602, LCD2004).
//
// The chip has no registers. A write sets the port, a read returns the pin
// levels. The pins are quasi-bidirectional: a pin written high is weakly
// pulled up and can be driven low from outside, which is how it is read.
//
// # Datasheet
//
// https://www.ti.com/lit/ds/symlink/pcf8574.pdf
//
// https://www.handsontec.com/dataspecs/I2C_2004_LCD.pdf describes the LCD
// backpack wiring.
package pcf857x

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/pin"
)

// Variant is the chip model.
type Variant string

const (
	PCF8574 Variant = "PCF8574"
	PCF8575 Variant = "PCF8575"

	// DefaultAddress is the address LCD backpacks ship with, A0-A2 pulled
	// high. With A0-A2 tied low the chip answers at 0x20, the PCF8574A at
	// 0x38-0x3f.
	DefaultAddress uint16 = 0x27
)

var ErrNotImplemented = errors.New("pcf857x: not implemented")

// Dev is a PCF857x device.
type Dev struct {
	// Pins are the port pins, 8 for the PCF8574 and 16 for the PCF8575.
	Pins []gpio.PinIO

	d       *i2c.Dev
	variant Variant
	width   int

	mu    sync.Mutex
	value gpio.GPIOValue
	// valid is false until the port value is known.
	valid bool
}

// New returns the expander at address on bus. No I/O is done until the first
// write.
func New(bus i2c.Bus, address uint16, variant Variant) (*Dev, error) {
	dev := &Dev{d: &i2c.Dev{Bus: bus, Addr: address}, variant: variant}
	switch variant {
	case PCF8574:
		dev.width = 8
	case PCF8575:
		dev.width = 16
	default:
		return nil, fmt.Errorf("pcf857x: unknown variant %q", variant)
	}
	dev.Pins = make([]gpio.PinIO, dev.width)
	for ix := range dev.width {
		dev.Pins[ix] = &Pin{dev: dev, number: ix, name: fmt.Sprintf("%s_P%d", dev, ix)}
	}
	return dev, nil
}

// WritePort sets every pin of the port in one I²C transaction. Unlike pin and
// group writes it always goes on the bus, even when the port already holds
// value. Drivers that need a strobe edge depend on that.
func (dev *Dev) WritePort(value gpio.GPIOValue) error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return dev.writeLocked(value & dev.portMask())
}

// ReadPort returns the level of every pin. Pins written low read low.
func (dev *Dev) ReadPort() (gpio.GPIOValue, error) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	r := make([]byte, dev.width/8)
	if err := dev.d.Tx(nil, r); err != nil {
		return 0, fmt.Errorf("pcf857x: %w", err)
	}
	var v gpio.GPIOValue
	for ix, b := range r {
		v |= gpio.GPIOValue(b) << (8 * ix)
	}
	return v, nil
}

// Group returns the given pins as a gpio.Group. Bit n of a group value is the
// n-th pin listed.
func (dev *Dev) Group(pinNumbers ...int) (gpio.Group, error) {
	gr := &Group{dev: dev, numbers: make([]int, len(pinNumbers))}
	for ix, number := range pinNumbers {
		if number < 0 || number >= dev.width {
			return nil, fmt.Errorf("pcf857x: pin %d out of range", number)
		}
		gr.numbers[ix] = number
	}
	return gr, nil
}

// Halt implements conn.Resource. The port keeps its last value.
func (dev *Dev) Halt() error {
	return nil
}

func (dev *Dev) String() string {
	return fmt.Sprintf("%s_%x", dev.variant, dev.d.Addr)
}

func (dev *Dev) portMask() gpio.GPIOValue {
	return gpio.GPIOValue(1)<<dev.width - 1
}

// update changes the pins in mask, skipping the write if nothing changes.
func (dev *Dev) update(value, mask gpio.GPIOValue) error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	mask &= dev.portMask()
	next := dev.value&^mask | value&mask
	if dev.valid && next == dev.value {
		return nil
	}
	return dev.writeLocked(next)
}

func (dev *Dev) writeLocked(value gpio.GPIOValue) error {
	w := make([]byte, dev.width/8)
	for ix := range w {
		w[ix] = byte(value >> (8 * ix))
	}
	if err := dev.d.Tx(w, nil); err != nil {
		return fmt.Errorf("pcf857x: %w", err)
	}
	dev.value = value
	dev.valid = true
	return nil
}

// read releases the pins in mask (writes them high) and returns their levels.
func (dev *Dev) read(mask gpio.GPIOValue) (gpio.GPIOValue, error) {
	if err := dev.update(mask, mask); err != nil {
		return 0, err
	}
	v, err := dev.ReadPort()
	return v & mask, err
}

// Group is a set of pins of one expander, written in a single transaction.
type Group struct {
	dev     *Dev
	numbers []int
}

// Pins implements gpio.Group.
func (gr *Group) Pins() []pin.Pin {
	pins := make([]pin.Pin, len(gr.numbers))
	for ix, number := range gr.numbers {
		pins[ix] = gr.dev.Pins[number]
	}
	return pins
}

// ByOffset implements gpio.Group.
func (gr *Group) ByOffset(offset int) pin.Pin {
	if offset < 0 || offset >= len(gr.numbers) {
		return nil
	}
	return gr.dev.Pins[gr.numbers[offset]]
}

// ByName implements gpio.Group.
func (gr *Group) ByName(name string) pin.Pin {
	for _, number := range gr.numbers {
		if p := gr.dev.Pins[number]; p.Name() == name {
			return p
		}
	}
	return nil
}

// ByNumber implements gpio.Group.
func (gr *Group) ByNumber(number int) pin.Pin {
	for _, n := range gr.numbers {
		if n == number {
			return gr.dev.Pins[n]
		}
	}
	return nil
}

// Out implements gpio.Group. A zero mask writes every pin of the group.
func (gr *Group) Out(value, mask gpio.GPIOValue) error {
	if mask == 0 {
		mask = gpio.GPIOValue(1)<<len(gr.numbers) - 1
	}
	devValue, devMask := gr.toDev(value, mask)
	return gr.dev.update(devValue, devMask)
}

// Read implements gpio.Group.
func (gr *Group) Read(mask gpio.GPIOValue) (gpio.GPIOValue, error) {
	if mask == 0 {
		mask = gpio.GPIOValue(1)<<len(gr.numbers) - 1
	}
	_, devMask := gr.toDev(0, mask)
	v, err := gr.dev.read(devMask)
	if err != nil {
		return 0, err
	}
	var result gpio.GPIOValue
	for ix, number := range gr.numbers {
		if v&(1<<number) != 0 {
			result |= 1 << ix
		}
	}
	return result & mask, nil
}

// WaitForEdge isn't supported. The chip's interrupt line doesn't say which
// pin changed.
func (gr *Group) WaitForEdge(timeout time.Duration) (int, gpio.Edge, error) {
	return 0, gpio.NoEdge, ErrNotImplemented
}

// Halt implements conn.Resource.
func (gr *Group) Halt() error {
	return nil
}

func (gr *Group) String() string {
	return fmt.Sprintf("%s%v", gr.dev, gr.numbers)
}

// toDev translates a group value and mask to port bits.
func (gr *Group) toDev(value, mask gpio.GPIOValue) (gpio.GPIOValue, gpio.GPIOValue) {
	var devValue, devMask gpio.GPIOValue
	for ix, number := range gr.numbers {
		bit := gpio.GPIOValue(1) << ix
		if mask&bit == 0 {
			continue
		}
		devMask |= 1 << number
		if value&bit != 0 {
			devValue |= 1 << number
		}
	}
	return devValue, devMask
}

var _ gpio.Group = &Group{}
