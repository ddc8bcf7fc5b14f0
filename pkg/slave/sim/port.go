// Package sim provides an in-memory two-wire bus: a byte-wise Port
// implementation and a software Master to drive it. It backs the core
// tests, the interactive shell and daemon development without real
// serial hardware.
package sim

import (
	"sync"

	"github.com/wirelab/twislave/pkg/slave"
)

// Port implements slave.Port without hardware. Instead of shifting
// bits it exchanges whole bytes: the master deposits or collects the
// shift register contents around each boundary event.
type Port struct {
	mu     sync.Mutex
	shift  byte
	dir    slave.LineDirection
	window slave.Window
	clock  bool
	stop   bool
}

// NewPort creates an idle Port with the clock line released.
func NewPort() *Port {
	return &Port{}
}

// Shift implements slave.Port.
func (p *Port) Shift() byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.shift
}

// Load implements slave.Port.
func (p *Port) Load(b byte) {
	p.mu.Lock()
	p.shift = b
	p.mu.Unlock()
}

// SetDirection implements slave.Port.
func (p *Port) SetDirection(dir slave.LineDirection) {
	p.mu.Lock()
	p.dir = dir
	p.mu.Unlock()
}

// Release implements slave.Port.
func (p *Port) Release(w slave.Window) {
	p.mu.Lock()
	p.window = w
	p.mu.Unlock()
}

// ClockHigh implements slave.Port.
func (p *Port) ClockHigh() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.clock
}

// StopPending implements slave.Port.
func (p *Port) StopPending() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stop
}

// HoldClock stretches or releases the simulated clock line. Used to
// exercise the start synchronization timeout.
func (p *Port) HoldClock(high bool) {
	p.mu.Lock()
	p.clock = high
	p.mu.Unlock()
}

// Direction returns the data line direction last set by the slave.
func (p *Port) Direction() slave.LineDirection {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dir
}

// Window returns the shift window last armed by the slave.
func (p *Port) Window() slave.Window {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.window
}

// latchStop records a stop condition; the hardware flag stays set
// until the next start condition.
func (p *Port) latchStop() {
	p.mu.Lock()
	p.stop = true
	p.mu.Unlock()
}

// clearStop drops the stop latch, as real hardware does when the
// start handler rewrites the status register.
func (p *Port) clearStop() {
	p.mu.Lock()
	p.stop = false
	p.mu.Unlock()
}
