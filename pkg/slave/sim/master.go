package sim

import (
	"errors"

	"github.com/wirelab/twislave/pkg/slave"
)

// NACKReceived signals that the slave did not ACK a byte.
var NACKReceived = errors.New("NACK received")

// Master is a software bus master wired directly to a responder
// through a Port. Byte-level primitives mirror a master-side serial
// driver: Start, Stop, WriteByte, ReadByte.
type Master struct {
	port *Port
	resp *slave.Responder
}

// NewMaster creates a Master driving resp over port.
func NewMaster(port *Port, resp *slave.Responder) *Master {
	return &Master{port: port, resp: resp}
}

// Start issues a start condition. A repeated start is permitted
// mid-transaction. The hardware stop latch clears here.
func (m *Master) Start() error {
	m.port.clearStop()
	return m.resp.OnStart()
}

// Stop issues a stop condition. The slave observes it cooperatively
// through its drain path, so no event fires here.
func (m *Master) Stop() {
	m.port.latchStop()
}

// WriteByte shifts one byte to the slave and samples its acknowledge
// bit. Returns true if the slave ACKed.
func (m *Master) WriteByte(b byte) bool {
	m.port.Load(b)
	m.resp.OnByteBoundary() // pre-ack: slave decides ACK/NAK
	ack := m.port.Direction() == slave.DirOutput && m.port.Shift() == 0
	m.resp.OnByteBoundary() // post-ack
	return ack
}

// ReadByte shifts one byte out of the slave and drives the acknowledge
// bit back: ACK to continue, NAK (last=true) to end the read.
func (m *Master) ReadByte(last bool) byte {
	// The slave queued this byte at the previous post-ack boundary.
	b := m.port.Shift()
	m.resp.OnByteBoundary() // pre-ack: slave turns the line around
	var ack byte
	if last {
		ack = 0x80
	}
	m.port.Load(ack)
	m.resp.OnByteBoundary() // post-ack: slave queues the next byte or ends
	return b
}

// WriteRegs performs a whole write transaction: start, address,
// register pointer, data bytes, stop. Stop is issued even when the
// slave rejects a byte, matching a well-behaved master.
func (m *Master) WriteRegs(addr slave.Addr7, reg byte, data ...byte) error {
	if err := m.Start(); err != nil {
		return err
	}
	defer m.Stop()
	if !m.WriteByte(addr.Addr() << 1) {
		return NACKReceived
	}
	if !m.WriteByte(reg) {
		return NACKReceived
	}
	for _, b := range data {
		if !m.WriteByte(b) {
			return NACKReceived
		}
	}
	return nil
}

// ReadRegs performs a whole read transaction from the slave's current
// register pointer, filling buf. The final byte is NAKed to end the
// transfer.
func (m *Master) ReadRegs(addr slave.Addr7, buf []byte) error {
	if err := m.Start(); err != nil {
		return err
	}
	defer m.Stop()
	if !m.WriteByte(addr.Addr()<<1 | 1) {
		return NACKReceived
	}
	for i := range buf {
		buf[i] = m.ReadByte(i == len(buf)-1)
	}
	return nil
}

// ReadRegsAt seeks the register pointer with an empty write
// transaction, then reads. This is the usual combined access pattern.
func (m *Master) ReadRegsAt(addr slave.Addr7, reg byte, buf []byte) error {
	if err := m.Start(); err != nil {
		return err
	}
	if !m.WriteByte(addr.Addr() << 1) {
		m.Stop()
		return NACKReceived
	}
	if !m.WriteByte(reg) {
		m.Stop()
		return NACKReceived
	}
	// Repeated start switches to read without releasing the bus.
	return m.ReadRegs(addr, buf)
}
