package slave

// Addr7 is a 7-bit slave address.
type Addr7 byte

// Addr gets the address value with the high bit cleared.
func (a Addr7) Addr() byte {
	return byte(a) & 0x7f
}

// State identifies where the protocol machine is within a transaction.
type State int

// Protocol states. Every start condition resets to StateAddrMatch;
// address mismatch, an out-of-range register pointer and stop
// conditions all resolve to StateIdle.
const (
	StateAddrMatch State = iota
	StateRegAddr
	StateMasterRead
	StateMasterWrite
	StateIdle
)

var stateNames = map[State]string{
	StateAddrMatch:   "addr-match",
	StateRegAddr:     "reg-addr",
	StateMasterRead:  "master-read",
	StateMasterWrite: "master-write",
	StateIdle:        "idle",
}

// String implements Stringer.
func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// LineDirection tells the port how the data line is driven during the
// next shift window.
type LineDirection int

// Data line directions. Input is the default; the line is driven only
// while presenting an acknowledge bit or a register byte.
const (
	DirInput LineDirection = iota
	DirOutput
)

// Window is the width of the next shift window.
type Window int

const (
	// WindowAck shifts the single acknowledge bit.
	WindowAck Window = iota
	// WindowByte shifts a full data byte.
	WindowByte
)

// Bit patterns loaded into the shift register for the acknowledge
// cycle. Only the first shifted bit matters on the wire.
const (
	ackBits byte = 0x00
	nakBits byte = 0x80
)

// Response is the outcome of one byte-boundary event. The port must
// apply Dir (and Load, if set) before releasing the clock line so the
// master samples correctly.
type Response struct {
	// Dir is the data line direction for the next window.
	Dir LineDirection
	// Load is the value to present in the shift register.
	Load byte
	// HasLoad reports whether Load is meaningful.
	HasLoad bool
	// Next is the width of the next shift window.
	Next Window
}

// Ack reports whether the response drives an acknowledge.
func (r Response) Ack() bool {
	return r.HasLoad && r.Dir == DirOutput && r.Next == WindowAck && r.Load == ackBits
}

// Nak reports whether the response drives a not-acknowledge.
func (r Response) Nak() bool {
	return r.HasLoad && r.Dir == DirOutput && r.Next == WindowAck && r.Load == nakBits
}
