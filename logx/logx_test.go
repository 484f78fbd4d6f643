package logx

import "testing"

func TestLevelString(t *testing.T) {
	if LevelError.String() != "error" ||
		LevelWarn.String() != "warn" ||
		LevelInfo.String() != "info" ||
		LevelDebug.String() != "debug" {
		t.Fatal("Level string mapping incorrect")
	}
}

func TestNopIsSafe(t *testing.T) {
	Nop.Logf(LevelDebug, "ignored %d", 1)
}
