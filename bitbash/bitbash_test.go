package bitbash_test

import (
	"fmt"
	"testing"
	"time"

	"bitbash-go/bitbash"
	"bitbash-go/bitbash/bbtest"
	"bitbash-go/logx"
	"bitbash-go/x/timex"
)

func TestLevelSentinels(t *testing.T) {
	if bitbash.Low != 0 {
		t.Fatal("Low must be the all-clear word")
	}
	if bitbash.High != ^bitbash.Level(0) {
		t.Fatal("High must be the all-set word")
	}
	if bitbash.LevelOf(true) != bitbash.High || bitbash.LevelOf(false) != bitbash.Low {
		t.Fatal("LevelOf mapping incorrect")
	}
	// Any non-zero read classifies as high; backends need not normalise.
	if !bitbash.Level(0x4).IsHigh() || bitbash.Level(0).IsHigh() {
		t.Fatal("IsHigh must be the zero / non-zero classification")
	}
}

func TestLoopbackClassification(t *testing.T) {
	r := bbtest.NewRecorder(0)
	for _, lvl := range []bitbash.Level{bitbash.High, bitbash.Low, bitbash.High} {
		bitbash.WriteBit(r, 3, lvl)
		if got := bitbash.ReadBit(r, 3); got.IsHigh() != lvl.IsHigh() {
			t.Fatalf("wrote %v, read back %v", lvl, got)
		}
	}
}

func TestWriteBitHonoursSettle(t *testing.T) {
	const settle = 2 * time.Millisecond
	r := bbtest.NewRecorder(settle)

	start := time.Now()
	bitbash.WriteBit(r, 0, bitbash.High)
	if el := time.Since(start); el < settle {
		t.Fatalf("WriteBit returned after %v, settle is %v", el, settle)
	}

	// Consecutive operations on any line are spaced by at least one settle
	// interval, as seen by the backend.
	bitbash.WriteBit(r, 1, bitbash.Low)
	if gap := r.Ops[1].At.Sub(r.Ops[0].At); gap < settle {
		t.Fatalf("backend callbacks %v apart, want >= %v", gap, settle)
	}
}

func TestReadBitDelayUniform(t *testing.T) {
	const settle = 2 * time.Millisecond
	r := bbtest.NewRecorder(settle)

	// The delay precedes the sample on every call, including read-after-read:
	// no op may follow its predecessor closer than one settle interval.
	bitbash.WriteBit(r, 0, bitbash.High)
	bitbash.ReadBit(r, 0)
	bitbash.ReadBit(r, 0)
	bitbash.ReadBit(r, 0)
	for i := 1; i < len(r.Ops); i++ {
		if gap := r.Ops[i].At.Sub(r.Ops[i-1].At); gap < settle {
			t.Fatalf("op %d only %v after op %d, want >= %v", i, gap, i-1, settle)
		}
	}

	start := time.Now()
	bitbash.ReadBit(r, 0)
	if el := time.Since(start); el < settle {
		t.Fatalf("ReadBit sampled after %v, settle is %v", el, settle)
	}
}

func TestWriteBitIdempotent(t *testing.T) {
	r := bbtest.NewRecorder(0)
	bitbash.WriteBit(r, 2, bitbash.High)
	bitbash.WriteBit(r, 2, bitbash.High)
	if r.Writes() != 2 {
		t.Fatalf("backend received %d write callbacks, want 2", r.Writes())
	}
	if r.Transitions != 1 {
		t.Fatalf("second same-level write caused a transition (%d total)", r.Transitions)
	}
}

func TestSettleScenario(t *testing.T) {
	r := bbtest.NewRecorder(timex.Micros(5))
	bitbash.WriteBit(r, 0, bitbash.High)
	if !bitbash.ReadBit(r, 0).IsHigh() {
		t.Fatal("read zero after writing all-ones")
	}
	bitbash.WriteBit(r, 0, bitbash.Low)
	if bitbash.ReadBit(r, 0).IsHigh() {
		t.Fatal("read non-zero after writing all-zeros")
	}
}

func TestSingleLineCallbackPerWrite(t *testing.T) {
	s := &bbtest.SingleLine{}
	const n = 5
	for i := 0; i < n; i++ {
		bitbash.WriteBit(s, bitbash.LineID(i), bitbash.LevelOf(i%2 == 0))
		bitbash.ReadBit(s, 17) // reads must not affect the write count
	}
	if s.Calls != n {
		t.Fatalf("backend received %d write callbacks, want %d", s.Calls, n)
	}
}

type memLog struct {
	lines []string
}

func (l *memLog) Logf(_ logx.Level, format string, args ...any) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func TestWithTracePassthrough(t *testing.T) {
	r := bbtest.NewRecorder(0)
	log := &memLog{}
	bb := bitbash.WithTrace(r, log)

	if bb.SettleDelay() != r.SettleDelay() {
		t.Fatal("trace wrapper must not alter the settle delay")
	}
	bitbash.WriteBit(bb, 1, bitbash.High)
	if got := bitbash.ReadBit(bb, 1); !got.IsHigh() {
		t.Fatalf("traced read returned %v", got)
	}
	if r.Writes() != 1 || r.Reads() != 1 {
		t.Fatalf("trace wrapper changed the callback stream: %d writes, %d reads", r.Writes(), r.Reads())
	}
	if len(log.lines) != 2 {
		t.Fatalf("expected 2 trace lines, got %d", len(log.lines))
	}
}

func TestWithTraceNilLogger(t *testing.T) {
	r := bbtest.NewRecorder(0)
	bb := bitbash.WithTrace(r, nil)
	bitbash.WriteBit(bb, 0, bitbash.High) // must not panic
}
