// Package logx is the leveled-logging capability injected into components
// that want diagnostics. Components hold a Logger value; nothing in this
// module logs through global state.
package logx

import "fmt"

// Level ranks diagnostic output; lower values are more urgent.
type Level uint8

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
)

func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarn:
		return "warn"
	case LevelInfo:
		return "info"
	case LevelDebug:
		return "debug"
	default:
		return "?"
	}
}

// Logger is the capability components accept. Implementations must tolerate
// being called from a single goroutine at a time per owning component.
type Logger interface {
	Logf(lvl Level, format string, args ...any)
}

// Nop discards everything. The default wherever a Logger is optional.
var Nop Logger = nop{}

type nop struct{}

func (nop) Logf(Level, string, ...any) {}

// Print writes messages at or above Max urgency to stdout. Host-side only;
// MCU builds that want output should supply their own println-backed Logger.
type Print struct {
	Max Level
}

func (p Print) Logf(lvl Level, format string, args ...any) {
	if lvl > p.Max {
		return
	}
	fmt.Printf("["+lvl.String()+"] "+format+"\n", args...)
}
