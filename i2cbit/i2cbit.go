// Package i2cbit implements a bit-banged I2C master over any bit-bashing
// backend. The backend exposes two lines, SCL and SDA, with open-drain
// semantics: writing High releases the line (pulled up externally or by the
// backend), writing Low actively drives it down. Reading SDA while released
// observes whatever a slave is driving.
//
// The master satisfies tinygo.org/x/drivers.I2C, so existing TinyGo device
// drivers can run over a bit-banged bus unchanged.
//
// Clock stretching is not supported: SCL is assumed to follow the master.
package i2cbit

import (
	"bitbash-go/bitbash"
	"bitbash-go/errcode"
	"bitbash-go/logx"

	"tinygo.org/x/drivers"
)

// Line assignments within the backend.
const (
	SCL bitbash.LineID = 0
	SDA bitbash.LineID = 1
)

type Master struct {
	bb  bitbash.Basher
	log logx.Logger
}

var _ drivers.I2C = (*Master)(nil)

// New returns a master over bb. Pass nil to discard diagnostics.
// The bus is left idle (both lines released).
func New(bb bitbash.Basher, log logx.Logger) *Master {
	if log == nil {
		log = logx.Nop
	}
	m := &Master{bb: bb, log: log}
	m.setSDA(true)
	m.setSCL(true)
	return m
}

// Tx implements drivers.I2C: a write phase for w (with addr+W), then a read
// phase for r (repeated start, addr+R), then stop. An empty w with empty r
// degenerates to an address probe, which is what bus scans rely on.
func (m *Master) Tx(addr uint16, w, r []byte) error {
	m.log.Logf(logx.LevelDebug, "i2c tx addr=%#02x w=%d r=%d", addr, len(w), len(r))
	if len(w) > 0 || len(r) == 0 {
		m.start()
		if err := m.sendByte(addrByte(addr, false)); err != nil {
			m.stop()
			return err
		}
		for _, b := range w {
			if err := m.sendByte(b); err != nil {
				m.stop()
				return err
			}
		}
	}
	if len(r) > 0 {
		m.start() // repeated start when a write phase preceded
		if err := m.sendByte(addrByte(addr, true)); err != nil {
			m.stop()
			return err
		}
		for i := range r {
			r[i] = m.recvByte(i < len(r)-1)
		}
	}
	m.stop()
	return nil
}

func addrByte(addr uint16, read bool) byte {
	b := byte(addr) << 1
	if read {
		b |= 1
	}
	return b
}

func (m *Master) setSCL(v bool) { bitbash.WriteBit(m.bb, SCL, bitbash.LevelOf(v)) }
func (m *Master) setSDA(v bool) { bitbash.WriteBit(m.bb, SDA, bitbash.LevelOf(v)) }
func (m *Master) getSDA() bool  { return bitbash.ReadBit(m.bb, SDA).IsHigh() }

// start issues a (repeated) start condition: SDA falls while SCL is high.
// Leaves SCL low, ready for the first data bit.
func (m *Master) start() {
	m.setSDA(true)
	m.setSCL(true)
	m.setSDA(false)
	m.setSCL(false)
}

// stop issues a stop condition: SDA rises while SCL is high.
func (m *Master) stop() {
	m.setSDA(false)
	m.setSCL(true)
	m.setSDA(true)
}

// sendBit clocks one bit out: SDA valid while SCL pulses high.
func (m *Master) sendBit(bit bool) {
	m.setSDA(bit)
	m.setSCL(true)
	m.setSCL(false)
}

// recvBit releases SDA and samples it during a high clock pulse.
func (m *Master) recvBit() bool {
	m.setSDA(true)
	m.setSCL(true)
	v := m.getSDA()
	m.setSCL(false)
	return v
}

// sendByte shifts b out MSB first and checks the ack slot.
func (m *Master) sendByte(b byte) error {
	for mask := byte(0x80); mask != 0; mask >>= 1 {
		m.sendBit(b&mask != 0)
	}
	if m.recvBit() {
		m.log.Logf(logx.LevelWarn, "i2c no ack for %#02x", b)
		return errcode.NoAck
	}
	return nil
}

// recvByte shifts one byte in MSB first, then acks (SDA low) if more bytes
// are wanted, or nacks (SDA released) to end the read.
func (m *Master) recvByte(ack bool) byte {
	var b byte
	for i := 0; i < 8; i++ {
		b <<= 1
		if m.recvBit() {
			b |= 1
		}
	}
	m.sendBit(!ack)
	return b
}
