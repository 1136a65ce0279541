// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcdimage_test

import (
	"log"
	"os"

	"github.com/GermanBionicSystems/charlcd/hd44780"
	"github.com/GermanBionicSystems/charlcd/hd44780/hd44780test"
	"github.com/GermanBionicSystems/charlcd/lcdimage"
)

// This example renders what a simulated 20x4 display shows to a PNG file.
func Example() {
	ctrl := hd44780test.New()
	bus := hd44780test.NewI2CBus(ctrl, 0x27, hd44780.DefaultPinMap)
	lcd, err := hd44780.NewPCF857xBackpack(bus, 0x27, 4, 20)
	if err != nil {
		log.Fatal(err)
	}
	degree := [8]byte{0x0c, 0x12, 0x12, 0x0c}
	if err := lcd.DefineGlyph(1, degree); err != nil {
		log.Fatal(err)
	}
	_ = lcd.SetCursorPosition(1, 3)
	_, _ = lcd.WriteString("Outside 21\x01C")

	layout, _ := hd44780.DefaultLayout(4, 20)
	f := ctrl.Frame(layout)
	f.Backlight = bus.Backlight()

	face, err := lcdimage.GoMonoFace(16)
	if err != nil {
		log.Fatal(err)
	}
	out, err := os.Create("lcd.png")
	if err != nil {
		log.Fatal(err)
	}
	defer out.Close()
	if err := lcdimage.New(&lcdimage.Opts{Face: face, Dot: 4}).EncodePNG(out, f); err != nil {
		log.Fatal(err)
	}
}
