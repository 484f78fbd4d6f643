// Package bitbash provides the bit-level digital I/O primitives used to
// implement software-driven ("bit-banged") serial buses on hardware that
// has no dedicated bus controller.
//
// A backend (memory-mapped GPIO, chipset registers, a test fake) supplies a
// Basher: set/clear a named line, sample a named line, and the settle delay
// the slowest attached device needs between bus transitions. Protocol code
// never calls the backend directly; it goes through WriteBit and ReadBit,
// which fold the settle delay into every operation so timing stays correct
// regardless of how fast the backend itself is.
package bitbash

import "time"

// Level is a logic level encoded as a full-width sentinel word: all bits
// clear for logic 0, all bits set for logic 1. A register-backed backend can
// derive its pin mask by ANDing a Level against the mask, without branching.
type Level uint32

const (
	Low  Level = 0
	High Level = ^Level(0)
)

// LevelOf maps a bool onto the canonical sentinel encoding.
func LevelOf(high bool) Level {
	if high {
		return High
	}
	return Low
}

// IsHigh classifies a sampled level. Only the zero / non-zero distinction is
// meaningful: backends are not required to normalise reads to the High
// sentinel.
func (l Level) IsHigh() bool { return l != 0 }

// LineID names one line of a Basher. It is an opaque key scoped to a single
// backend instance; its meaning (pin index, register bit, anything) is
// entirely backend-defined.
type LineID uint

// Basher is the backend capability descriptor. It is configured once by
// backend setup code and, as observed through WriteBit/ReadBit, immutable
// for the life of the instance.
//
// A Basher instance is exclusively owned by one bus transaction at a time;
// there is no locking or reentrancy guard at this layer, and serialising
// transactions is the caller's responsibility.
type Basher interface {
	// Write drives line to level. Level is one of the two canonical
	// sentinels. Write must be idempotent: repeating the same level
	// produces no observable transition beyond the first.
	Write(line LineID, level Level)

	// Read samples line. Zero means logic 0, any non-zero value logic 1;
	// no other normalisation is promised. Sampling has no side effects.
	Read(line LineID) Level

	// SettleDelay reports the pause required between consecutive bus
	// transitions. Fixed per instance.
	SettleDelay() time.Duration
}

// WriteBit drives line to level and then blocks for the backend's settle
// delay, so the caller's next operation on any line of this Basher happens
// no sooner than one settle interval later. It is the only sanctioned way
// for protocol code to change a line.
func WriteBit(b Basher, line LineID, level Level) {
	b.Write(line, level)
	time.Sleep(b.SettleDelay())
}

// ReadBit blocks for the settle delay and then samples line, returning the
// backend's value unchanged. The delay comes first so a driven or pulled
// line has stabilised by the time it is sampled, and it is applied on every
// call, read-after-read included; the policy never depends on call history.
//
// There is no failure mode here: a floating or disconnected line simply
// yields whatever the backend samples. Interpreting bad values is the
// protocol layer's job.
func ReadBit(b Basher, line LineID) Level {
	time.Sleep(b.SettleDelay())
	return b.Read(line)
}
