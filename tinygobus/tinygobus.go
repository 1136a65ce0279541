// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package tinygobus exposes a TinyGo I²C bus as a periph.io i2c.Bus, so the
// hd44780 and pcf857x drivers run unchanged on microcontrollers.
//
// The TinyGo machine package configures the bus frequency up front; SetSpeed
// is not supported.
package tinygobus

import (
	"errors"
	"fmt"
	"sync"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"tinygo.org/x/drivers"
)

// ErrSetSpeed is returned by SetSpeed.
var ErrSetSpeed = errors.New("tinygobus: bus speed is set by machine.I2C.Configure")

// Bus wraps a drivers.I2C.
type Bus struct {
	mu   sync.Mutex
	bus  drivers.I2C
	name string
}

// New returns a Bus over b. name is returned by String.
func New(b drivers.I2C, name string) (*Bus, error) {
	if b == nil {
		return nil, errors.New("tinygobus: nil bus")
	}
	if name == "" {
		name = "TinyGoI2C"
	}
	return &Bus{bus: b, name: name}, nil
}

// Tx implements i2c.Bus.
func (b *Bus) Tx(addr uint16, w, r []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.bus.Tx(addr, w, r); err != nil {
		return fmt.Errorf("tinygobus: 0x%02x: %w", addr, err)
	}
	return nil
}

// SetSpeed implements i2c.Bus.
func (b *Bus) SetSpeed(f physic.Frequency) error {
	return ErrSetSpeed
}

// Halt implements conn.Resource.
func (b *Bus) Halt() error {
	return nil
}

func (b *Bus) String() string {
	return b.name
}

var _ i2c.Bus = &Bus{}
