// Package mock emulates an HT16K33's display RAM behind the i2c.Bus
// interface, so driver logic can run on machines with no I2C bus
// attached. It registers as the "mock" driver.
package mock

import (
	"errors"

	"backpack/ht16k33"
	"backpack/i2c"
)

// ErrMock stands in for whatever richer error a real transport would
// report; the mock has no bus faults of its own, so every failure it
// can produce is a malformed request from the caller.
var (
	ErrMock       = errors.New("i2c mock error")
	ErrEmptyWrite = errors.New("mock: zero-length write")
)

// Mock holds the emulated chip state: the entire display RAM, zeroed
// at construction and mutated only by write transactions. A Mock is
// exactly one device; it answers at whatever address it is given.
type Mock struct {
	// Display RAM, one byte per RAM row. Exposed for test seeding and
	// inspection.
	Data [ht16k33.RowsSize]byte
}

func New() *Mock {
	return &Mock{}
}

func (m *Mock) Close() error { return nil }

// Tx routes operations the way the chip's transaction patterns define
// them: a write immediately followed by a read is an address-setup
// write plus a data read and consumes both operations; a write with no
// read behind it commits data on its own.
//
// A read with no preceding write has no defined chip behavior. That is
// a bug in the caller, so it panics rather than handing back stale or
// zeroed data.
func (m *Mock) Tx(addr uint16, ops []i2c.Op) error {
	_ = addr // single device, addressing is moot

	for i := 0; i < len(ops); i++ {
		if ops[i].IsRead {
			panic("mock: bare read with no address-setup write is not a defined chip transaction")
		}

		if i+1 < len(ops) && ops[i+1].IsRead {
			if err := m.writeRead(ops[i].Buf, ops[i+1].Buf); err != nil {
				return err
			}
			i++
			continue
		}

		if err := m.write(ops[i].Buf); err != nil {
			return err
		}
	}

	return nil
}

// write commits an address-pointer byte plus payload to display RAM.
//
// "Command-only" writes are length 1 and carry no addressable data; in
// the chip protocol a lone byte is always a feature command (display
// setup, dimming, ...), never a data byte, so they succeed without
// touching RAM.
func (m *Mock) write(p []byte) error {
	if len(p) == 0 {
		return ErrEmptyWrite
	}
	if len(p) == 1 {
		return nil
	}

	offset, err := ramOffset(p[0])
	if err != nil {
		return err
	}
	ramWrite(&m.Data, offset, p[1:])
	return nil
}

// writeRead fills buf from display RAM starting at the row selected by
// the address-setup command in p. RAM is not mutated.
func (m *Mock) writeRead(p []byte, buf []byte) error {
	if len(p) == 0 {
		return ErrEmptyWrite
	}

	offset, err := ramOffset(p[0])
	if err != nil {
		return err
	}
	ramRead(&m.Data, offset, buf)
	return nil
}
