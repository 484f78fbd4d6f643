package timex

import "time"

// NowMicros returns Unix microseconds as int64. Settle delays live in the
// microsecond range, so millisecond timestamps are too coarse here.
func NowMicros() int64 { return time.Now().UnixMicro() }

// Micros converts a microsecond count to a time.Duration.
func Micros(n uint32) time.Duration { return time.Duration(n) * time.Microsecond }
