// Package memgpio implements a bit-bashing backend over a memory-mapped
// style register pair: a 32-bit output latch and a 32-bit input sample
// register, one line per bit. It is the reference backend for the sentinel
// level encoding: the latch update is a plain AND against the level word,
// no branching.
package memgpio

import (
	"time"

	"bitbash-go/bitbash"
)

// Bank holds up to 32 lines. The zero line is bit 0 of the registers.
type Bank struct {
	settle time.Duration
	out    uint32
	in     *uint32
}

var _ bitbash.Basher = (*Bank)(nil)

// New returns a loop-backed Bank: reads sample the output latch, so every
// line behaves as if wired straight back to itself.
func New(settle time.Duration) *Bank {
	b := &Bank{settle: settle}
	b.in = &b.out
	return b
}

// NewWithInput returns a Bank whose reads sample *in instead of the latch,
// for modelling hardware where inputs are a distinct register (or for tests
// that drive the input word directly).
func NewWithInput(settle time.Duration, in *uint32) *Bank {
	return &Bank{settle: settle, in: in}
}

func (b *Bank) Write(line bitbash.LineID, level bitbash.Level) {
	mask := uint32(1) << line
	b.out = b.out&^mask | uint32(level)&mask
}

// Read returns the raw masked register bit: zero for logic 0, the line's
// register mask for logic 1. Deliberately not normalised to the High
// sentinel; callers only get the zero / non-zero contract.
func (b *Bank) Read(line bitbash.LineID) bitbash.Level {
	return bitbash.Level(*b.in & (uint32(1) << line))
}

func (b *Bank) SettleDelay() time.Duration { return b.settle }

// Latch returns the current output latch word.
func (b *Bank) Latch() uint32 { return b.out }
