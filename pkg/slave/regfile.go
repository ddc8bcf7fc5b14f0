package slave

// RegisterFile is a fixed bank of byte registers, each paired with a
// write mask marking the bits an external bus writer may modify.
// The geometry is constant after construction. The protocol machine
// is the only writer during a transaction; other code must check
// Responder.TransactionOngoing before touching it.
type RegisterFile struct {
	regs   []byte
	masks  []byte // nil means global applies to all registers
	global byte
}

// MaxRegisters is the largest addressable bank: the register pointer
// is a single byte on the wire.
const MaxRegisters = 256

// NewRegisterFile creates a bank of n registers with per-register
// write masks. masks must have length n; a nil masks makes every
// register fully writable. Geometry validation happens here once,
// not per event.
func NewRegisterFile(n int, masks []byte) *RegisterFile {
	if n < 1 || n > MaxRegisters {
		panic("slave: register count out of range")
	}
	if masks != nil && len(masks) != n {
		panic("slave: write mask length mismatch")
	}
	return &RegisterFile{
		regs:   make([]byte, n),
		masks:  masks,
		global: 0xff,
	}
}

// NewRegisterFileGlobalMask creates a bank of n registers sharing a
// single write mask.
func NewRegisterFileGlobalMask(n int, mask byte) *RegisterFile {
	f := NewRegisterFile(n, nil)
	f.global = mask
	return f
}

// Len returns the number of registers.
func (f *RegisterFile) Len() int {
	return len(f.regs)
}

// At reads the register at off.
func (f *RegisterFile) At(off int) byte {
	return f.regs[off]
}

// Set writes the register at off, ignoring the write mask. The mask
// constrains the external bus writer only; firmware writes are free.
func (f *RegisterFile) Set(off int, v byte) {
	f.regs[off] = v
}

// Mask returns the write mask for the register at off.
func (f *RegisterFile) Mask(off int) byte {
	if f.masks == nil {
		return f.global
	}
	return f.masks[off]
}

// Snapshot copies the current register values.
func (f *RegisterFile) Snapshot() []byte {
	s := make([]byte, len(f.regs))
	copy(s, f.regs)
	return s
}

// applyWrite merges an incoming bus byte under the write mask,
// preserving the prior value of masked-off bits.
func (f *RegisterFile) applyWrite(off int, in byte) {
	mask := f.Mask(off)
	f.regs[off] = (f.regs[off] &^ mask) | (in & mask)
}
