// Package slave implements the slave side of a two-wire (I2C-style)
// bus, exposing a fixed bank of byte registers to an external master.
package slave

// The hardware shifts bits on the wire and raises two notifications:
// a start condition and a byte boundary. The byte boundary fires twice
// per exchanged byte, before and after the acknowledge bit, because
// the data line direction and the next value to present differ across
// the acknowledge cycle.
//
// Machine is the pure state machine consuming those notifications.
// Responder binds a Machine to a Port, the per-platform hardware
// capability, and adds the main-context entry points (stop detection,
// transaction query) that must coordinate with the event handlers.
//
// Producer: bus master (external)
// Consumer: application firmware polling the register bank
