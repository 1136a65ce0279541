// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package charlcd is a container for the HD44780 character LCD driver and the
// port expanders, simulators and renderers that go with it.
//
// The driver itself lives in the hd44780 package. pcf857x and nxp74hc595 are
// the I²C and SPI port expanders found on LCD backpacks. lcdframe holds a
// snapshot of the panel, which lcdterm and lcdimage render; hd44780/hd44780test
// produces one from its simulated controller. tinygobus runs the I²C drivers
// over a TinyGo bus.
package charlcd
