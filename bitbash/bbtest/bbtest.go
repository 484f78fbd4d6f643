// Package bbtest provides instrumented bit-bashing backends for tests:
// a loop-backed recorder that timestamps every backend callback and a
// single-line backend that ignores line addressing. Both are exported so
// dependants of this module can test their protocol layers the same way
// this repo tests its own.
package bbtest

import (
	"time"

	"bitbash-go/bitbash"
)

type OpKind uint8

const (
	OpWrite OpKind = iota
	OpRead
)

// Op is one backend callback as seen by the recorder.
type Op struct {
	Kind  OpKind
	Line  bitbash.LineID
	Level bitbash.Level
	At    time.Time
}

// Recorder is a loop-backed Basher: reads return whatever was last written
// to the same line (lines start low). Every callback is appended to Ops;
// Transitions counts only writes that actually changed a line's level, so
// idempotent writes are visible as calls without transitions.
type Recorder struct {
	Settle      time.Duration
	Ops         []Op
	Transitions int
	lines       map[bitbash.LineID]bitbash.Level
}

var _ bitbash.Basher = (*Recorder)(nil)

func NewRecorder(settle time.Duration) *Recorder {
	return &Recorder{Settle: settle, lines: map[bitbash.LineID]bitbash.Level{}}
}

func (r *Recorder) Write(line bitbash.LineID, level bitbash.Level) {
	if r.lines == nil {
		r.lines = map[bitbash.LineID]bitbash.Level{}
	}
	if r.lines[line].IsHigh() != level.IsHigh() {
		r.Transitions++
	}
	r.lines[line] = level
	r.Ops = append(r.Ops, Op{Kind: OpWrite, Line: line, Level: level, At: time.Now()})
}

func (r *Recorder) Read(line bitbash.LineID) bitbash.Level {
	v := r.lines[line]
	r.Ops = append(r.Ops, Op{Kind: OpRead, Line: line, Level: v, At: time.Now()})
	return v
}

func (r *Recorder) SettleDelay() time.Duration { return r.Settle }

// Writes counts write callbacks received so far.
func (r *Recorder) Writes() int { return r.count(OpWrite) }

// Reads counts read callbacks received so far.
func (r *Recorder) Reads() int { return r.count(OpRead) }

func (r *Recorder) count(k OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == k {
			n++
		}
	}
	return n
}

// SingleLine models a backend with exactly one physical line: the line
// argument is ignored. Calls counts write callbacks, which lets tests check
// that the timed wrapper neither duplicates nor suppresses them.
type SingleLine struct {
	Settle time.Duration
	Calls  int
	level  bitbash.Level
}

var _ bitbash.Basher = (*SingleLine)(nil)

func (s *SingleLine) Write(_ bitbash.LineID, level bitbash.Level) {
	s.Calls++
	s.level = level
}

func (s *SingleLine) Read(bitbash.LineID) bitbash.Level { return s.level }

func (s *SingleLine) SettleDelay() time.Duration { return s.Settle }
