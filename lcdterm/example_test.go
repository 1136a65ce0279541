// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcdterm_test

import (
	"log"

	"github.com/GermanBionicSystems/charlcd/hd44780"
	"github.com/GermanBionicSystems/charlcd/hd44780/hd44780test"
	"github.com/GermanBionicSystems/charlcd/lcdterm"
)

// This example shows a simulated 16x2 display in the terminal.
func Example() {
	ctrl := hd44780test.New()
	p, err := hd44780test.NewParallel(ctrl, 4)
	if err != nil {
		log.Fatal(err)
	}
	lcd, err := hd44780.NewGPIO(p.Data, p.RS, p.EN, nil, 2, 16)
	if err != nil {
		log.Fatal(err)
	}
	_, _ = lcd.WriteString("Hello, \x00")
	_ = lcd.DefineGlyph(0, [8]byte{0, 0x0a, 0x0a, 0, 0x11, 0x0e})

	layout, _ := hd44780.DefaultLayout(2, 16)
	term := lcdterm.New(nil)
	if err := term.Draw(ctrl.Frame(layout)); err != nil {
		log.Fatal(err)
	}
	_ = term.Halt()
}
