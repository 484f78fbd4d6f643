// Package spibit implements a bit-banged SPI master over any bit-bashing
// backend. The backend exposes a clock line, the two data lines and one
// slave-select line per attached slave. All four clock modes and both bit
// orders are supported.
//
// The master satisfies tinygo.org/x/drivers.SPI (Tx and Transfer), matching
// the machine.SPI buffer-length conventions.
package spibit

import (
	"bitbash-go/bitbash"
	"bitbash-go/errcode"
	"bitbash-go/logx"

	"tinygo.org/x/drivers"
)

// Line assignments within the backend.
const (
	SCLK bitbash.LineID = 0
	MOSI bitbash.LineID = 1
	MISO bitbash.LineID = 2
)

// SS returns the slave-select line for slave n. Selects are active low.
func SS(n uint) bitbash.LineID { return 3 + bitbash.LineID(n) }

// Mode is the SPI clock mode: bit 1 is CPOL (idle clock level), bit 0 is
// CPHA (sample on trailing rather than leading edge).
type Mode uint8

const (
	Mode0 Mode = iota
	Mode1
	Mode2
	Mode3
)

func (m Mode) cpol() bool { return m&2 != 0 }
func (m Mode) cpha() bool { return m&1 != 0 }

type Config struct {
	Mode     Mode
	LSBFirst bool
}

type Master struct {
	bb  bitbash.Basher
	cfg Config
	log logx.Logger
}

var _ drivers.SPI = (*Master)(nil)

// New returns a master over bb with the clock parked at its idle level and
// all slaves deselected as far as this master is concerned (select lines
// are only touched by Select/Deselect). Pass nil to discard diagnostics.
func New(bb bitbash.Basher, cfg Config, log logx.Logger) *Master {
	if log == nil {
		log = logx.Nop
	}
	m := &Master{bb: bb, cfg: cfg, log: log}
	bitbash.WriteBit(bb, SCLK, bitbash.LevelOf(cfg.Mode.cpol()))
	return m
}

// Select asserts the slave-select line for slave n.
func (m *Master) Select(n uint) { bitbash.WriteBit(m.bb, SS(n), bitbash.Low) }

// Deselect releases the slave-select line for slave n.
func (m *Master) Deselect(n uint) { bitbash.WriteBit(m.bb, SS(n), bitbash.High) }

// Transfer shifts one byte out on MOSI while shifting one in from MISO.
// The error is always nil; the signature matches drivers.SPI.
func (m *Master) Transfer(b byte) (byte, error) {
	var in byte
	if m.cfg.LSBFirst {
		for mask := byte(1); mask != 0; mask <<= 1 {
			if m.transferBit(b&mask != 0) {
				in |= mask
			}
		}
	} else {
		for mask := byte(0x80); mask != 0; mask >>= 1 {
			if m.transferBit(b&mask != 0) {
				in |= mask
			}
		}
	}
	return in, nil
}

// Tx follows the machine.SPI conventions: equal-length w and r run a full
// duplex exchange; an empty r discards input; an empty w shifts zeros out.
// Any other length mix is an error.
func (m *Master) Tx(w, r []byte) error {
	switch {
	case len(w) == len(r):
		for i, b := range w {
			r[i], _ = m.Transfer(b)
		}
	case len(r) == 0:
		for _, b := range w {
			m.Transfer(b)
		}
	case len(w) == 0:
		for i := range r {
			r[i], _ = m.Transfer(0)
		}
	default:
		m.log.Logf(logx.LevelWarn, "spi tx length mismatch w=%d r=%d", len(w), len(r))
		return errcode.InvalidParams
	}
	return nil
}

// transferBit runs one clock cycle. CPHA0: data is valid before the leading
// edge and sampled then; CPHA1: data changes on the leading edge and is
// sampled before the trailing edge.
func (m *Master) transferBit(out bool) bool {
	idle := bitbash.LevelOf(m.cfg.Mode.cpol())
	active := bitbash.LevelOf(!m.cfg.Mode.cpol())
	if m.cfg.Mode.cpha() {
		bitbash.WriteBit(m.bb, SCLK, active)
		bitbash.WriteBit(m.bb, MOSI, bitbash.LevelOf(out))
		in := bitbash.ReadBit(m.bb, MISO).IsHigh()
		bitbash.WriteBit(m.bb, SCLK, idle)
		return in
	}
	bitbash.WriteBit(m.bb, MOSI, bitbash.LevelOf(out))
	in := bitbash.ReadBit(m.bb, MISO).IsHigh()
	bitbash.WriteBit(m.bb, SCLK, active)
	bitbash.WriteBit(m.bb, SCLK, idle)
	return in
}
