// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pcf857x

import (
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// Pin is one port pin.
type Pin struct {
	dev    *Dev
	number int
	name   string
}

// Name implements pin.Pin.
func (p *Pin) Name() string {
	return p.name
}

// Number implements pin.Pin. It is the bit position in the port.
func (p *Pin) Number() int {
	return p.number
}

// Function implements pin.Pin.
func (p *Pin) Function() string {
	return "In/Out"
}

// Halt implements conn.Resource.
func (p *Pin) Halt() error {
	return nil
}

func (p *Pin) String() string {
	return p.name
}

// Out implements gpio.PinOut.
func (p *Pin) Out(l gpio.Level) error {
	mask := gpio.GPIOValue(1) << p.number
	var v gpio.GPIOValue
	if l {
		v = mask
	}
	return p.dev.update(v, mask)
}

// PWM isn't supported.
func (p *Pin) PWM(duty gpio.Duty, f physic.Frequency) error {
	return ErrNotImplemented
}

// In releases the pin so it can be read. The chip has no configurable pulls
// or edge detection; only gpio.PullUp/Float and gpio.NoEdge are accepted.
func (p *Pin) In(pull gpio.Pull, edge gpio.Edge) error {
	if pull == gpio.PullDown || edge != gpio.NoEdge {
		return ErrNotImplemented
	}
	return p.Out(gpio.High)
}

// Read implements gpio.PinIn. A bus error reads as gpio.Low.
func (p *Pin) Read() gpio.Level {
	mask := gpio.GPIOValue(1) << p.number
	v, err := p.dev.read(mask)
	return err == nil && v&mask != 0
}

// WaitForEdge isn't supported and returns false immediately.
func (p *Pin) WaitForEdge(timeout time.Duration) bool {
	return false
}

// Pull implements gpio.PinIn. Released pins are held high by a weak current
// source.
func (p *Pin) Pull() gpio.Pull {
	return gpio.PullUp
}

// DefaultPull implements gpio.PinIn.
func (p *Pin) DefaultPull() gpio.Pull {
	return gpio.PullUp
}

var _ gpio.PinIO = &Pin{}
