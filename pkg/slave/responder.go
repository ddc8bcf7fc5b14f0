package slave

import (
	"errors"
	"sync"
	"time"
)

// ErrClockStuck indicates the master held the clock line beyond the
// start synchronization budget.
var ErrClockStuck = errors.New("clock line stuck high")

// DefaultStartTimeout bounds the clock synchronization wait in
// OnStart. Generous against the half-period of a 100kHz bus.
const DefaultStartTimeout = 10 * time.Millisecond

// Config carries the one-time responder setup. Validation happens at
// construction; the event path assumes a valid configuration.
type Config struct {
	// Addr is the 7-bit slave address.
	Addr Addr7
	// Regs is the register bank exposed on the bus.
	Regs *RegisterFile
	// StartTimeout bounds the clock wait in OnStart. Zero selects
	// DefaultStartTimeout.
	StartTimeout time.Duration
}

// Responder binds a Machine to a Port and adds the entry points shared
// between the event context and the polling context.
//
// OnStart and OnByteBoundary are invoked by the platform's hardware
// layer on the corresponding events. CheckAndDrain and
// TransactionOngoing are polled from the main context. One mutex
// serializes both contexts; it stands in for suppressing hardware
// event delivery during the drain's read-and-clear.
type Responder struct {
	port Port

	mu sync.Mutex
	m  Machine

	startTimeout time.Duration
}

// NewResponder creates a Responder over the given port.
func NewResponder(port Port, conf Config) *Responder {
	if conf.Regs == nil {
		panic("slave: register file required")
	}
	timeout := conf.StartTimeout
	if timeout == 0 {
		timeout = DefaultStartTimeout
	}
	return &Responder{
		port:         port,
		m:            *NewMachine(conf.Addr, conf.Regs),
		startTimeout: timeout,
	}
}

// OnStart handles a start condition. It resets the machine and then
// waits for the master to release the clock line before rearming the
// shift counter; the hardware samples wrongly otherwise. The wait is
// the only blocking operation in the core and is bounded by the
// configured budget: on expiry the transaction aborts to idle and
// ErrClockStuck is returned.
func (r *Responder) OnStart() error {
	r.mu.Lock()
	r.m.Start()
	r.mu.Unlock()

	deadline := time.Now().Add(r.startTimeout)
	for r.port.ClockHigh() {
		if time.Now().After(deadline) {
			r.mu.Lock()
			r.m.state = StateIdle
			r.mu.Unlock()
			return ErrClockStuck
		}
	}
	r.port.SetDirection(DirInput)
	r.port.Release(WindowByte)
	return nil
}

// OnByteBoundary handles a byte-boundary event: step the machine with
// the shifted value and apply the outcome to the port. Direction is
// set before the window is released.
func (r *Responder) OnByteBoundary() {
	shift := r.port.Shift()
	r.mu.Lock()
	resp := r.m.Boundary(shift)
	r.mu.Unlock()
	if resp.HasLoad {
		r.port.Load(resp.Load)
	}
	r.port.SetDirection(resp.Dir)
	r.port.Release(resp.Next)
}

// CheckAndDrain detects a completed write transaction. If the machine
// is mid-write with undrained register updates and the port has a stop
// condition latched, the transaction ends and the number of register
// writes since the previous drain is returned and cleared. Otherwise 0
// is returned with no state change. The sample-and-clear runs under
// the responder lock so a concurrent byte event can neither be lost
// nor counted twice.
func (r *Responder) CheckAndDrain() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.m.state != StateMasterWrite || r.m.dirty == 0 {
		return 0
	}
	if !r.port.StopPending() {
		return 0
	}
	r.m.state = StateIdle
	n := r.m.dirty
	r.m.dirty = 0
	return n
}

// TransactionOngoing reports whether the slave address has been
// matched without a stop received yet. External code must not touch
// the register file while true.
func (r *Responder) TransactionOngoing() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.m.state != StateIdle && r.m.state != StateAddrMatch
}

// Registers returns the register bank for external access. Only valid
// to use while TransactionOngoing reports false.
func (r *Responder) Registers() *RegisterFile {
	return r.m.regs
}

// State returns the current protocol state.
func (r *Responder) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.m.state
}
