// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import (
	"fmt"

	"periph.io/x/conn/v3"
)

// Transport carries instruction and data bytes to the controller. The only
// implementations are *Parallel and *I2C; a Dev is bound to one of them for
// its lifetime.
type Transport interface {
	// WriteInstruction sends i to the instruction register (RS=0).
	WriteInstruction(i Instruction) error
	// WriteData sends b to the data register (RS=1).
	WriteData(b byte) error
	// EightBit reports whether the bus to the controller is 8 bits wide.
	EightBit() bool

	// writeInit sends i as a single 8 bit wide transfer. On a 4 bit bus only
	// the high nibble goes out, which is all the controller latches right
	// after power on.
	writeInit(i Instruction) error
	// readStatus reads the instruction register (RS=0, R/W=1).
	readStatus() (byte, error)

	conn.Resource
}

// wrapTransport marks err as coming from the bus.
func wrapTransport(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrTransport, err)
}

var _ Transport = &Parallel{}
var _ Transport = &I2C{}
