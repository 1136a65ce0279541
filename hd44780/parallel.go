// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
)

const (
	modeCommand gpio.Level = gpio.Low
	modeData    gpio.Level = gpio.High
	modeWrite   gpio.Level = gpio.Low
	modeRead    gpio.Level = gpio.High

	mask4Bit gpio.GPIOValue = 0x0f
	mask8Bit gpio.GPIOValue = 0xff

	// The datasheet asks for an enable pulse of at least 450ns.
	enablePulse = 2 * time.Microsecond
)

// ParallelOpts holds the optional settings of a Parallel transport.
type ParallelOpts struct {
	// RW is the read/write pin. Leave nil when R/W is tied to ground; the
	// status read is then unavailable.
	RW gpio.PinOut
	// Sleep is used for the enable pulse width. Defaults to time.Sleep.
	Sleep func(time.Duration)
}

// Parallel drives the controller through GPIO lines: a gpio.Group for the
// data lines and discrete pins for register select and enable.
//
// The first 4 or 8 pins of the data group must be connected to D4-D7 or
// D0-D7 respectively. If the group has 8 or more pins, the 8 bit interface is
// used.
type Parallel struct {
	dataPins  gpio.Group
	rsPin     gpio.PinOut
	enablePin gpio.PinOut
	rwPin     gpio.PinOut
	eightBit  bool
	sleep     func(time.Duration)
}

// NewParallel returns a parallel transport. It sets RS, R/W and E low.
func NewParallel(dataPins gpio.Group, rs, enable gpio.PinOut, opts *ParallelOpts) (*Parallel, error) {
	if dataPins == nil || rs == nil || enable == nil {
		return nil, fmt.Errorf("%w: parallel transport needs data, RS and E pins", ErrInvalidConfig)
	}
	n := len(dataPins.Pins())
	if n < 4 {
		return nil, fmt.Errorf("%w: need at least 4 data pins, got %d", ErrInvalidConfig, n)
	}
	if opts == nil {
		opts = &ParallelOpts{}
	}
	p := &Parallel{
		dataPins:  dataPins,
		rsPin:     rs,
		enablePin: enable,
		rwPin:     opts.RW,
		eightBit:  n >= 8,
		sleep:     opts.Sleep,
	}
	if p.sleep == nil {
		p.sleep = time.Sleep
	}
	if err := p.enablePin.Out(gpio.Low); err != nil {
		return nil, wrapTransport(err)
	}
	if err := p.rsPin.Out(modeCommand); err != nil {
		return nil, wrapTransport(err)
	}
	if p.rwPin != nil {
		if err := p.rwPin.Out(modeWrite); err != nil {
			return nil, wrapTransport(err)
		}
	}
	return p, nil
}

// EightBit implements Transport.
func (p *Parallel) EightBit() bool {
	return p.eightBit
}

// WriteInstruction implements Transport.
func (p *Parallel) WriteInstruction(i Instruction) error {
	return p.send(modeCommand, byte(i))
}

// WriteData implements Transport.
func (p *Parallel) WriteData(b byte) error {
	return p.send(modeData, b)
}

func (p *Parallel) writeInit(i Instruction) error {
	if err := p.rsPin.Out(modeCommand); err != nil {
		return wrapTransport(err)
	}
	if p.eightBit {
		return p.write8Bits(byte(i))
	}
	return p.write4Bits(byte(i) >> 4)
}

// readStatus reads the busy flag and address counter. In 4 bit mode the
// controller returns the high nibble on the first enable pulse and the low
// nibble on the second.
func (p *Parallel) readStatus() (byte, error) {
	if p.rwPin == nil {
		return 0, fmt.Errorf("%w: R/W pin not connected", ErrReadNotSupported)
	}
	if err := p.rsPin.Out(modeCommand); err != nil {
		return 0, wrapTransport(err)
	}
	if err := p.rwPin.Out(modeRead); err != nil {
		return 0, wrapTransport(err)
	}
	var result byte
	var err error
	if p.eightBit {
		var v gpio.GPIOValue
		v, err = p.readBits(mask8Bit)
		result = byte(v)
	} else {
		var hi, lo gpio.GPIOValue
		hi, err = p.readBits(mask4Bit)
		if err == nil {
			lo, err = p.readBits(mask4Bit)
		}
		result = byte(hi)<<4 | byte(lo)&0x0f
	}
	// Always hand the bus back to the host, even after a failed read.
	if rwErr := p.rwPin.Out(modeWrite); err == nil {
		err = rwErr
	}
	return result, wrapTransport(err)
}

// Halt implements conn.Resource. It halts the data pin group.
func (p *Parallel) Halt() error {
	return p.dataPins.Halt()
}

func (p *Parallel) String() string {
	width := 4
	if p.eightBit {
		width = 8
	}
	return fmt.Sprintf("Parallel{%s, %d bit}", p.dataPins, width)
}

func (p *Parallel) send(rs gpio.Level, b byte) error {
	if err := p.rsPin.Out(rs); err != nil {
		return wrapTransport(err)
	}
	if p.eightBit {
		return p.write8Bits(b)
	}
	if err := p.write4Bits(b >> 4); err != nil {
		return err
	}
	return p.write4Bits(b & 0x0f)
}

func (p *Parallel) write4Bits(value byte) error {
	return p.writeBits(gpio.GPIOValue(value), mask4Bit)
}

func (p *Parallel) write8Bits(value byte) error {
	return p.writeBits(gpio.GPIOValue(value), mask8Bit)
}

// writeBits puts value on the data lines and latches it with an enable
// pulse. The controller samples the bus on the falling edge of E.
func (p *Parallel) writeBits(value, mask gpio.GPIOValue) error {
	if err := p.dataPins.Out(value&mask, mask); err != nil {
		return wrapTransport(err)
	}
	return p.pulseEnable()
}

func (p *Parallel) pulseEnable() error {
	if err := p.enablePin.Out(gpio.High); err != nil {
		return wrapTransport(err)
	}
	p.sleep(enablePulse)
	return wrapTransport(p.enablePin.Out(gpio.Low))
}

// readBits samples the data lines while E is high.
func (p *Parallel) readBits(mask gpio.GPIOValue) (gpio.GPIOValue, error) {
	if err := p.enablePin.Out(gpio.High); err != nil {
		return 0, err
	}
	p.sleep(enablePulse)
	v, err := p.dataPins.Read(mask)
	if lowErr := p.enablePin.Out(gpio.Low); err == nil {
		err = lowErr
	}
	return v & mask, err
}
