// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780_test

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/GermanBionicSystems/charlcd/hd44780"
	"github.com/GermanBionicSystems/charlcd/pcf857x"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/display/displaytest"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
	"periph.io/x/host/v3/gpioioctl"
)

// This example drives a display wired directly to GPIO lines. The
// periph.io/x/host/gpioioctl package supplies the gpio.Group; any device
// implementing gpio.Group and gpio.PinOut can be used instead.
func Example() {
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	chip := gpioioctl.Chips[0]
	// D4-D7. For the 8 bit interface, list D0-D7.
	data, err := chip.LineSet(gpioioctl.LineOutput, gpio.NoEdge, gpio.PullNoChange,
		"GPIO27", "GPIO22", "GPIO23", "GPIO24")
	if err != nil {
		log.Fatal(err)
	}
	rs := gpioreg.ByName("GPIO17")
	enable := gpioreg.ByName("GPIO18")
	bl := gpioreg.ByName("GPIO25")
	lcd, err := hd44780.NewGPIO(data, rs, enable, bl, 2, 16)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(lcd)
	_ = lcd.SetCursorPosition(0, 0)
	_, _ = lcd.WriteString("Line 1")
	_ = lcd.SetCursorPosition(1, 2)
	_, _ = lcd.WriteString("Line 2")
	time.Sleep(5 * time.Second)

	for _, e := range displaytest.TestTextDisplay(lcd, true) {
		if !errors.Is(e, display.ErrNotImplemented) {
			log.Println(e)
		}
	}
}

// This example builds the I2C transport by hand to use a backpack wired
// differently from DefaultPinMap, and uploads a custom glyph.
func ExampleNewI2C() {
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	bus, err := i2creg.Open("")
	if err != nil {
		log.Fatalf("failed to open I²C: %v", err)
	}
	defer bus.Close()

	opts := hd44780.I2COpts{
		Pins:      hd44780.LowNibblePinMap,
		Backlight: true,
	}
	t, err := hd44780.NewI2C(bus, 0x20, &opts)
	if err != nil {
		log.Fatal(err)
	}
	layout, err := hd44780.DefaultLayout(4, 20)
	if err != nil {
		log.Fatal(err)
	}
	lcd, err := hd44780.New(t, &hd44780.Opts{Layout: layout, ResetByInstruction: true})
	if err != nil {
		log.Fatal(err)
	}
	bell := [8]byte{0x04, 0x0e, 0x0e, 0x0e, 0x1f, 0x00, 0x04, 0x00}
	if err := lcd.DefineGlyph(0, bell); err != nil {
		log.Fatal(err)
	}
	_ = lcd.SetCursorPosition(3, 0)
	_, _ = lcd.WriteString("\x00 ring")
}

func ExampleNewPCF857xBackpack() {
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	bus, err := i2creg.Open("")
	if err != nil {
		log.Fatalf("failed to open I²C: %v", err)
	}
	defer bus.Close()
	dev, err := hd44780.NewPCF857xBackpack(bus, pcf857x.DefaultAddress, 4, 20)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(dev)
	for range 5 {
		_ = dev.Backlight(0)
		time.Sleep(500 * time.Millisecond)
		_ = dev.Backlight(255)
		time.Sleep(500 * time.Millisecond)
	}
	_ = dev.Clear()
	_, _ = dev.WriteString("Hello")
}

func ExampleNewSPIBackpack() {
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	pc, err := spireg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer pc.Close()
	conn, err := pc.Connect(physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		log.Fatal(err)
	}
	dev, err := hd44780.NewSPIBackpack(conn, 2, 16)
	if err != nil {
		log.Fatal(err)
	}
	_ = dev.Clear()
	_, _ = dev.WriteString("Hello")
}
