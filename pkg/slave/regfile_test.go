package slave

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegisterFileMaskedWrite(t *testing.T) {
	f := NewRegisterFile(3, []byte{0xff, 0xf0, 0x00})
	f.Set(0, 0x12)
	f.Set(1, 0x34)
	f.Set(2, 0x56)

	f.applyWrite(0, 0xab)
	f.applyWrite(1, 0xab)
	f.applyWrite(2, 0xab)

	require.Equal(t, byte(0xab), f.At(0))
	require.Equal(t, byte(0xa4), f.At(1))
	require.Equal(t, byte(0x56), f.At(2))
}

func TestRegisterFileGlobalMask(t *testing.T) {
	f := NewRegisterFileGlobalMask(2, 0x0f)
	f.Set(0, 0xa0)
	f.applyWrite(0, 0xff)
	require.Equal(t, byte(0xaf), f.At(0))
	require.Equal(t, byte(0x0f), f.Mask(1))
}

func TestRegisterFileDefaultsWritable(t *testing.T) {
	f := NewRegisterFile(1, nil)
	f.applyWrite(0, 0x99)
	require.Equal(t, byte(0x99), f.At(0))
}

func TestRegisterFileSnapshot(t *testing.T) {
	f := NewRegisterFile(2, nil)
	f.Set(0, 0x01)
	s := f.Snapshot()
	f.Set(0, 0x02)
	require.Equal(t, []byte{0x01, 0x00}, s)
}

func TestRegisterFileGeometry(t *testing.T) {
	require.Panics(t, func() { NewRegisterFile(0, nil) })
	require.Panics(t, func() { NewRegisterFile(MaxRegisters+1, nil) })
	require.Panics(t, func() { NewRegisterFile(2, []byte{0xff}) })
}
