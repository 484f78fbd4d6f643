// Command bb-selftest: host-side loopback checks for the bit-bashing core.
// Runs the timed primitives against the register-bank backend, then an SPI
// echo exchange, and reports PASS/FAIL per check.
package main

import (
	"os"
	"time"

	"bitbash-go/backends/memgpio"
	"bitbash-go/bitbash"
	"bitbash-go/logx"
	"bitbash-go/spibit"
	"bitbash-go/x/timex"
)

// echoBank wires MISO back to MOSI on top of a register bank.
type echoBank struct {
	*memgpio.Bank
}

func (e echoBank) Read(line bitbash.LineID) bitbash.Level {
	if line == spibit.MISO {
		return e.Bank.Read(spibit.MOSI)
	}
	return e.Bank.Read(line)
}

func main() {
	log := logx.Print{Max: logx.LevelInfo}
	failed := 0
	check := func(name string, ok bool) {
		if ok {
			log.Logf(logx.LevelInfo, "PASS %s", name)
		} else {
			log.Logf(logx.LevelError, "FAIL %s", name)
			failed++
		}
	}

	settle := timex.Micros(5)
	bank := memgpio.New(settle)

	bitbash.WriteBit(bank, 0, bitbash.High)
	check("loopback high", bitbash.ReadBit(bank, 0).IsHigh())
	bitbash.WriteBit(bank, 0, bitbash.Low)
	check("loopback low", !bitbash.ReadBit(bank, 0).IsHigh())

	start := time.Now()
	bitbash.WriteBit(bank, 1, bitbash.High)
	check("settle lower bound", time.Since(start) >= settle)

	spi := spibit.New(echoBank{memgpio.New(settle)}, spibit.Config{}, log)
	out, _ := spi.Transfer(0xA5)
	check("spi echo", out == 0xA5)

	if failed > 0 {
		log.Logf(logx.LevelError, "%d check(s) failed", failed)
		os.Exit(1)
	}
	log.Logf(logx.LevelInfo, "all checks passed")
}
