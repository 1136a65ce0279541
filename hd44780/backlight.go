// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import (
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
)

// GPIOMonoBacklight switches a backlight on and off with one GPIO pin.
type GPIOMonoBacklight struct {
	pin       gpio.PinOut
	activeLow bool
}

// NewBacklight returns a backlight driven high to turn on.
func NewBacklight(pin gpio.PinOut) *GPIOMonoBacklight {
	return &GPIOMonoBacklight{pin: pin}
}

// NewBacklightActiveLow returns a backlight driven low to turn on, as on
// boards that switch the LED with a PNP transistor.
func NewBacklightActiveLow(pin gpio.PinOut) *GPIOMonoBacklight {
	return &GPIOMonoBacklight{pin: pin, activeLow: true}
}

// Backlight implements display.DisplayBacklight. Any intensity above 0 is on.
func (bl *GPIOMonoBacklight) Backlight(intensity display.Intensity) error {
	on := intensity > 0
	return bl.pin.Out(gpio.Level(on != bl.activeLow))
}

var _ display.DisplayBacklight = &GPIOMonoBacklight{}
