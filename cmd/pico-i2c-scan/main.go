//go:build rp2040

// Command pico-i2c-scan: bit-banged I2C bus scan on RP2040/Pico.
//
// Build/flash (TinyGo):
//   tinygo flash -target pico ./cmd/pico-i2c-scan
//
// Wiring assumptions (edit below as needed):
// - SDA=GP4, SCL=GP5, both open-drain with pull-ups (internal pull-ups are
//   enabled; weak, so external 4.7k resistors are recommended).
// - Console on UART0 at 115200, Pico default pins TX=GP0, RX=GP1.
package main

import (
	"time"

	"machine"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"

	"bitbash-go/backends/machinegpio"
	"bitbash-go/bitbash"
	"bitbash-go/i2cbit"
	"bitbash-go/x/conv"
	"bitbash-go/x/timex"
)

func main() {
	time.Sleep(2 * time.Second)

	console := uartx.UART0
	_ = console.Configure(uartx.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GPIO0,
		RX:       machine.GPIO1,
	})
	say := func(s string) { _, _ = console.Write([]byte(s + "\r\n")) }

	// 5 µs settle gives roughly a 25 kHz bus, slow enough for anything.
	be := machinegpio.New(timex.Micros(5), map[bitbash.LineID]machinegpio.PinSpec{
		i2cbit.SCL: {Pin: machine.GPIO5, Role: machinegpio.OutOpenDrain},
		i2cbit.SDA: {Pin: machine.GPIO4, Role: machinegpio.OutOpenDrain},
	})
	m := i2cbit.New(be, nil)

	say("== bitbash i2c scan ==")
	var buf [20]byte
	found := 0
	for addr := uint16(0x08); addr <= 0x77; addr++ {
		if err := m.Tx(addr, nil, nil); err == nil {
			say("device at 0x" + string(conv.ByteHex(buf[:], byte(addr))))
			found++
		}
	}
	say("scan done, " + string(conv.Utoa(buf[:], uint64(found))) + " device(s)")

	for {
		time.Sleep(time.Hour)
	}
}
