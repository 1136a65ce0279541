// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tinygobus

import (
	"errors"
	"testing"

	"github.com/GermanBionicSystems/charlcd/pcf857x"
	"github.com/google/go-cmp/cmp"
	"periph.io/x/conn/v3/physic"
)

// fakeI2C records writes and answers reads with in.
type fakeI2C struct {
	addrs  []uint16
	writes [][]byte
	in     byte
	err    error
}

func (f *fakeI2C) Tx(addr uint16, w, r []byte) error {
	if f.err != nil {
		return f.err
	}
	f.addrs = append(f.addrs, addr)
	if len(w) > 0 {
		f.writes = append(f.writes, append([]byte(nil), w...))
	}
	for ix := range r {
		r[ix] = f.in
	}
	return nil
}

func TestNew(t *testing.T) {
	if _, err := New(nil, ""); err == nil {
		t.Error("expected error for nil bus")
	}
	b, err := New(&fakeI2C{}, "")
	if err != nil {
		t.Fatal(err)
	}
	if s := b.String(); s != "TinyGoI2C" {
		t.Errorf("String() = %q", s)
	}
	if err := b.SetSpeed(400 * physic.KiloHertz); !errors.Is(err, ErrSetSpeed) {
		t.Errorf("SetSpeed() = %v", err)
	}
	if err := b.Halt(); err != nil {
		t.Error(err)
	}
}

func TestTx(t *testing.T) {
	f := &fakeI2C{in: 0x5a}
	b, _ := New(f, "i2c0")
	r := make([]byte, 2)
	if err := b.Tx(0x27, []byte{0x01}, r); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]byte{0x5a, 0x5a}, r); diff != "" {
		t.Errorf("read (-want +got):\n%s", diff)
	}
	f.err = errors.New("nack")
	if err := b.Tx(0x27, []byte{0x01}, nil); !errors.Is(err, f.err) {
		t.Errorf("Tx() = %v, want wrapped %v", err, f.err)
	}
}

func TestWithExpander(t *testing.T) {
	f := &fakeI2C{in: 0xff}
	b, _ := New(f, "i2c0")
	dev, err := pcf857x.New(b, pcf857x.DefaultAddress, pcf857x.PCF8574)
	if err != nil {
		t.Fatal(err)
	}
	if err := dev.WritePort(0xa5); err != nil {
		t.Fatal(err)
	}
	if f.addrs[len(f.addrs)-1] != pcf857x.DefaultAddress {
		t.Errorf("addressed 0x%02x", f.addrs[len(f.addrs)-1])
	}
	if diff := cmp.Diff([]byte{0xa5}, f.writes[len(f.writes)-1]); diff != "" {
		t.Errorf("port write (-want +got):\n%s", diff)
	}
}
