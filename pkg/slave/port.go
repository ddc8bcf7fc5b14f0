package slave

// Port is the hardware capability the responder drives. It is
// implemented once per target platform; the core never references
// platform registers directly.
type Port interface {
	// Shift returns the current shift register contents.
	Shift() byte
	// Load presents a value in the shift register for the next window.
	Load(byte)
	// SetDirection drives or releases the data line. Must be applied
	// before Release so the master samples correctly.
	SetDirection(LineDirection)
	// Release arms the shift counter for the next window and releases
	// the clock line.
	Release(Window)
	// ClockHigh samples the clock line.
	ClockHigh() bool
	// StopPending reports whether the hardware latched a stop
	// condition. The latch clears with the next start condition.
	StopPending() bool
}
