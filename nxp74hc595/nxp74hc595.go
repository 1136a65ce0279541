// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package nxp74hc595 drives a 74HC595 serial in, parallel out shift register
// on an SPI port. One SPI byte sets all 8 outputs; the register latches on the
// rising edge of chip select.
//
// It is the SPI side of the Adafruit I²C/SPI character LCD backpack.
//
// # Datasheet
//
// https://www.nexperia.com/product/74HC595D
//
// https://docs.arduino.cc/tutorials/communication/guide-to-shift-out/
package nxp74hc595

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/pin"
	"periph.io/x/conn/v3/spi"
)

const (
	devName = "74HC595"
	numPins = 8
	devMask gpio.GPIOValue = 0xff
)

var ErrNotImplemented = errors.New("nxp74hc595: not implemented")

// Dev is a 74HC595 on an SPI port.
type Dev struct {
	// Pins are the outputs QA (0) to QH (7).
	Pins []gpio.PinOut

	mu   sync.Mutex
	conn spi.Conn
	// value is the register content. Bit 8 is set until the first write.
	value gpio.GPIOValue
}

// New returns the register behind conn. No I/O is done until the first write.
func New(conn spi.Conn) (*Dev, error) {
	if conn == nil {
		return nil, errors.New("nxp74hc595: nil connection")
	}
	dev := &Dev{conn: conn, value: 1 << numPins, Pins: make([]gpio.PinOut, numPins)}
	for ix := range numPins {
		dev.Pins[ix] = &Pin{dev: dev, number: ix, name: fmt.Sprintf("%s_Q%c", devName, 'A'+ix)}
	}
	return dev, nil
}

// WritePort shifts value out, even if the register already holds it.
func (dev *Dev) WritePort(value byte) error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return dev.writeLocked(gpio.GPIOValue(value))
}

// Group returns the given outputs as a gpio.Group. Bit n of a group value is
// the n-th pin listed.
func (dev *Dev) Group(pinNumbers ...int) (gpio.Group, error) {
	gr := &Group{dev: dev, numbers: make([]int, len(pinNumbers))}
	for ix, number := range pinNumbers {
		if number < 0 || number >= numPins {
			return nil, fmt.Errorf("nxp74hc595: pin %d out of range", number)
		}
		gr.numbers[ix] = number
	}
	return gr, nil
}

// Halt implements conn.Resource. The outputs keep their last value.
func (dev *Dev) Halt() error {
	return nil
}

func (dev *Dev) String() string {
	return devName
}

// update changes the outputs in mask, skipping the write if nothing changes.
func (dev *Dev) update(value, mask gpio.GPIOValue) error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	next := (dev.value&devMask)&^mask | value&mask&devMask
	if next == dev.value {
		return nil
	}
	return dev.writeLocked(next)
}

func (dev *Dev) writeLocked(value gpio.GPIOValue) error {
	if err := dev.conn.Tx([]byte{byte(value)}, nil); err != nil {
		return fmt.Errorf("nxp74hc595: %w", err)
	}
	dev.value = value & devMask
	return nil
}

// Group is a set of outputs written in a single transfer.
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

// Out writes value to the group. Only pins identified by mask are modified; a
// zero mask means all of them.
func (gr *Group) Out(value, mask gpio.GPIOValue) error {
	if mask == 0 {
		mask = gpio.GPIOValue(1)<<len(gr.numbers) - 1
	}
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
	return gr.dev.update(devValue, devMask)
}

// Read isn't available; the register has no serial output connected.
func (gr *Group) Read(mask gpio.GPIOValue) (gpio.GPIOValue, error) {
	return 0, ErrNotImplemented
}

// WaitForEdge isn't available.
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

var _ gpio.Group = &Group{}
