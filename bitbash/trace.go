package bitbash

import (
	"time"

	"bitbash-go/logx"
)

// WithTrace wraps b so every transition and sample is reported through log
// at debug level. The wrapper forwards calls unchanged and adds no timing of
// its own; the timed primitives see the same settle delay as the wrapped
// backend.
func WithTrace(b Basher, log logx.Logger) Basher {
	if log == nil {
		log = logx.Nop
	}
	return &traced{b: b, log: log}
}

type traced struct {
	b   Basher
	log logx.Logger
}

func (t *traced) Write(line LineID, level Level) {
	t.b.Write(line, level)
	t.log.Logf(logx.LevelDebug, "bb write line=%d level=%d", line, levelBit(level))
}

func (t *traced) Read(line LineID) Level {
	v := t.b.Read(line)
	t.log.Logf(logx.LevelDebug, "bb read line=%d level=%d", line, levelBit(v))
	return v
}

func (t *traced) SettleDelay() time.Duration { return t.b.SettleDelay() }

func levelBit(l Level) int {
	if l.IsHigh() {
		return 1
	}
	return 0
}
