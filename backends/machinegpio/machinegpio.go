//go:build rp2040 || rp2350

// Package machinegpio adapts machine.Pin lines to the bit-bashing backend
// contract for RP2040/RP2350 targets.
package machinegpio

import (
	"time"

	"machine"

	"bitbash-go/bitbash"
)

// Role selects how a line's pin is configured and driven.
type Role uint8

const (
	// Out is a push-pull output.
	Out Role = iota
	// OutOpenDrain emulates an open-drain output: writing Low drives the
	// pin low, writing High reconfigures it as an input with pull-up so an
	// external device can hold the line down. Use for I2C SCL/SDA.
	OutOpenDrain
	In
	InPullUp
	InPullDown
)

// PinSpec describes one line of the backend.
type PinSpec struct {
	Pin     machine.Pin
	Role    Role
	Initial bool // Out lines only
}

type Backend struct {
	settle time.Duration
	lines  map[bitbash.LineID]PinSpec
}

var _ bitbash.Basher = (*Backend)(nil)

// New configures every pin per its spec and returns the backend. The settle
// delay should match the slowest device attached to these lines.
func New(settle time.Duration, lines map[bitbash.LineID]PinSpec) *Backend {
	b := &Backend{settle: settle, lines: make(map[bitbash.LineID]PinSpec, len(lines))}
	for id, spec := range lines {
		switch spec.Role {
		case In:
			spec.Pin.Configure(machine.PinConfig{Mode: machine.PinInput})
		case InPullUp, OutOpenDrain:
			spec.Pin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
		case InPullDown:
			spec.Pin.Configure(machine.PinConfig{Mode: machine.PinInputPulldown})
		default:
			spec.Pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
			spec.Pin.Set(spec.Initial)
		}
		b.lines[id] = spec
	}
	return b
}

// Write drives the line's pin. Unknown lines are ignored: line validity is
// the backend owner's responsibility, and there is no error path at this
// layer.
func (b *Backend) Write(line bitbash.LineID, level bitbash.Level) {
	spec, ok := b.lines[line]
	if !ok {
		return
	}
	if spec.Role == OutOpenDrain {
		if level.IsHigh() {
			spec.Pin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
		} else {
			spec.Pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
			spec.Pin.Set(false)
		}
		return
	}
	spec.Pin.Set(level.IsHigh())
}

func (b *Backend) Read(line bitbash.LineID) bitbash.Level {
	if spec, ok := b.lines[line]; ok {
		return bitbash.LevelOf(spec.Pin.Get())
	}
	return bitbash.Low
}

func (b *Backend) SettleDelay() time.Duration { return b.settle }
