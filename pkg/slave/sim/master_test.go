package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wirelab/twislave/pkg/slave"
)

func newBus(t *testing.T, n int, masks []byte) (*Master, *slave.Responder, *Port) {
	port := NewPort()
	resp := slave.NewResponder(port, slave.Config{
		Addr: 0x40,
		Regs: slave.NewRegisterFile(n, masks),
	})
	return NewMaster(port, resp), resp, port
}

func TestWriteTransaction(t *testing.T) {
	m, resp, _ := newBus(t, 2, []byte{0xff, 0xff})

	require.NoError(t, m.WriteRegs(0x40, 0x01, 0x99))
	require.Equal(t, 1, resp.CheckAndDrain())
	require.Equal(t, byte(0x99), resp.Registers().At(1))
}

func TestWriteRejectedPointer(t *testing.T) {
	m, resp, _ := newBus(t, 2, nil)

	err := m.WriteRegs(0x40, 0x05, 0x99)
	require.Equal(t, NACKReceived, err)
	require.Equal(t, slave.StateIdle, resp.State())
	require.Equal(t, 0, resp.CheckAndDrain())
}

func TestWriteWrongAddress(t *testing.T) {
	m, resp, _ := newBus(t, 2, nil)

	err := m.WriteRegs(0x13, 0x00, 0x01)
	require.Equal(t, NACKReceived, err)
	require.Equal(t, 0, resp.CheckAndDrain())
	require.Equal(t, byte(0x00), resp.Registers().At(0))
}

func TestReadTransaction(t *testing.T) {
	m, resp, _ := newBus(t, 2, nil)
	resp.Registers().Set(0, 0xde)
	resp.Registers().Set(1, 0xad)

	buf := make([]byte, 2)
	require.NoError(t, m.ReadRegs(0x40, buf))
	require.Equal(t, []byte{0xde, 0xad}, buf)
	require.Equal(t, slave.StateIdle, resp.State())
}

func TestReadAtPointer(t *testing.T) {
	m, resp, _ := newBus(t, 4, nil)
	for i := 0; i < 4; i++ {
		resp.Registers().Set(i, byte(0x30+i))
	}

	buf := make([]byte, 3)
	require.NoError(t, m.ReadRegsAt(0x40, 0x02, buf))
	// Pointer wraps past the end of the bank.
	require.Equal(t, []byte{0x32, 0x33, 0x30}, buf)
}

func TestWriteThenReadRoundTrip(t *testing.T) {
	m, resp, _ := newBus(t, 4, []byte{0xff, 0x0f, 0xff, 0xff})
	resp.Registers().Set(1, 0xa0)

	require.NoError(t, m.WriteRegs(0x40, 0x01, 0xff))
	require.Equal(t, 1, resp.CheckAndDrain())

	buf := make([]byte, 1)
	require.NoError(t, m.ReadRegsAt(0x40, 0x01, buf))
	require.Equal(t, byte(0xaf), buf[0])
}

func TestOffsetWrapsDuringWrite(t *testing.T) {
	m, resp, _ := newBus(t, 2, nil)

	// Start at the last register; the second byte lands at offset 0.
	require.NoError(t, m.WriteRegs(0x40, 0x01, 0x11, 0x22, 0x33))
	require.Equal(t, 3, resp.CheckAndDrain())
	require.Equal(t, byte(0x33), resp.Registers().At(1))
	require.Equal(t, byte(0x22), resp.Registers().At(0))
}

func TestStartTimeoutAbortsToIdle(t *testing.T) {
	port := NewPort()
	resp := slave.NewResponder(port, slave.Config{
		Addr:         0x40,
		Regs:         slave.NewRegisterFile(2, nil),
		StartTimeout: time.Millisecond,
	})
	m := NewMaster(port, resp)

	port.HoldClock(true)
	require.Equal(t, slave.ErrClockStuck, m.Start())
	require.Equal(t, slave.StateIdle, resp.State())

	port.HoldClock(false)
	require.NoError(t, m.WriteRegs(0x40, 0x00, 0x42))
	require.Equal(t, 1, resp.CheckAndDrain())
}
