// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import (
	"testing"

	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

func TestGPIOMonoBacklight(t *testing.T) {
	tests := []struct {
		name      string
		new       func(gpio.PinOut) *GPIOMonoBacklight
		intensity display.Intensity
		want      gpio.Level
	}{
		{"active high on", NewBacklight, 0xff, gpio.High},
		{"active high dim", NewBacklight, 1, gpio.High},
		{"active high off", NewBacklight, 0, gpio.Low},
		{"active low on", NewBacklightActiveLow, 0xff, gpio.Low},
		{"active low dim", NewBacklightActiveLow, 1, gpio.Low},
		{"active low off", NewBacklightActiveLow, 0, gpio.High},
	}
	for _, test := range tests {
		p := &gpiotest.Pin{N: "BL"}
		if err := test.new(p).Backlight(test.intensity); err != nil {
			t.Fatalf("%s: %v", test.name, err)
		}
		if got := p.Read(); got != test.want {
			t.Errorf("%s: pin is %s, want %s", test.name, got, test.want)
		}
	}
}
