package slave

// Machine is the protocol state machine. It consumes the two hardware
// notifications and decides acknowledge values, line direction and
// register accesses. Machine itself is not synchronized; Responder
// serializes access across the event and polling contexts.
//
// Valid state transitions:
//      __To__________
//      0  1  2  3  4
// F 0|    a  b     h
// r 1|          d  ci
// o 2|       f     e
// m 3|          g  c
//   4| j
//
// j: start condition, any state -> AddrMatch
// h: address mismatch, NAK -> Idle
// a: address match write, ACK, reset pointer -> RegAddr
// b: address match read, ACK -> MasterRead
// i: register pointer out of range, NAK -> Idle
// d: register pointer accepted, ACK -> MasterWrite
// g: data byte received, masked write, ACK -> MasterWrite
// f: master ACK, present next register byte -> MasterRead
// e: master NAK, reset pointer -> Idle
// c: stop condition observed by the drain path -> Idle
type Machine struct {
	addr Addr7
	regs *RegisterFile

	state   State
	offset  int
	postAck bool
	dirty   int
}

// NewMachine creates a Machine answering on addr with the given
// register bank.
func NewMachine(addr Addr7, regs *RegisterFile) *Machine {
	return &Machine{addr: addr, regs: regs, state: StateIdle}
}

// Start handles a start condition: reset to address matching,
// unconditionally abandoning any transaction in flight.
func (m *Machine) Start() {
	m.state = StateAddrMatch
	m.postAck = false
}

// Boundary handles a byte-boundary event. shift is the current shift
// register contents: the received byte in the pre-acknowledge half,
// the sampled acknowledge bit in the post-acknowledge half. The two
// halves alternate; Start resets to the pre half.
func (m *Machine) Boundary(shift byte) Response {
	var r Response
	if !m.postAck {
		r = m.preAck(shift)
		m.postAck = true
	} else {
		r = m.postAckPhase(shift)
		m.postAck = false
	}
	if m.offset >= m.regs.Len() {
		m.offset = 0
	}
	return r
}

// State returns the current protocol state.
func (m *Machine) State() State {
	return m.state
}

// Offset returns the current register pointer.
func (m *Machine) Offset() int {
	return m.offset
}

func (m *Machine) preAck(shift byte) Response {
	r := Response{Dir: DirOutput, Load: ackBits, HasLoad: true, Next: WindowAck}
	switch m.state {
	case StateAddrMatch:
		// A zero address is the general call; answer it too.
		if hi := shift >> 1; hi != 0 && hi != m.addr.Addr() {
			m.state = StateIdle
			r.Load = nakBits
		} else if shift&1 != 0 {
			m.state = StateMasterRead
		} else {
			m.offset = 0
			m.state = StateRegAddr
		}
	case StateRegAddr:
		if int(shift) >= m.regs.Len() {
			m.state = StateIdle
			r.Load = nakBits
		} else {
			m.offset = int(shift)
			m.state = StateMasterWrite
		}
	case StateMasterWrite:
		m.regs.applyWrite(m.offset, shift)
		m.dirty++
		m.offset++
	case StateMasterRead:
		// The byte finished shifting out; turn the line around and
		// sample the master's acknowledge bit.
		r.Dir = DirInput
		r.Load = 0
	default:
		m.state = StateIdle
		r.Load = nakBits
	}
	return r
}

func (m *Machine) postAckPhase(shift byte) Response {
	r := Response{Dir: DirInput, Next: WindowByte}
	if m.state == StateMasterRead {
		if shift != 0 {
			// Master NAK: the read is complete.
			m.offset = 0
			m.state = StateIdle
		} else {
			r.Dir = DirOutput
			r.Load, r.HasLoad = m.regs.At(m.offset), true
			m.offset++
		}
	}
	return r
}
