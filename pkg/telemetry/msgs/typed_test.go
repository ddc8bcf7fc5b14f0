package msgs

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wirelab/twislave/pkg/fw"
)

func TestTypedRoundTrip(t *testing.T) {
	typed, err := TypedFrom(&RegisterWrite{Offset: 3, Values: []byte{0xde, 0xad}})
	require.NoError(t, err)
	require.Equal(t, RegisterWriteTypeID, typed.TypeId)
	require.True(t, typed.IsCommand())

	pkt, err := typed.Encode()
	require.NoError(t, err)
	decoded, err := DecodeTyped(pkt)
	require.NoError(t, err)
	msg, err := decoded.Decode()
	require.NoError(t, err)
	write, ok := msg.(*RegisterWrite)
	require.True(t, ok)
	require.Equal(t, uint32(3), write.Offset)
	require.Equal(t, []byte{0xde, 0xad}, write.Values)
}

func TestTypedKinds(t *testing.T) {
	typed, err := TypedFrom(&RegisterUpdate{Changed: 1})
	require.NoError(t, err)
	require.True(t, typed.IsEvent())
	require.False(t, typed.IsCommand())

	typed, err = TypedFrom(&RegisterData{Offset: 1})
	require.NoError(t, err)
	require.True(t, typed.IsCommand())
}

func TestTypedUnknownType(t *testing.T) {
	typed := &Typed{TypeId: 0x00ff0001}
	_, err := typed.Decode()
	require.Error(t, err)
	unknown, ok := err.(*ErrUnknownType)
	require.True(t, ok)
	require.Equal(t, uint32(0x00ff0001), unknown.TypeID)
}

type plainMsg struct{}

func (m *plainMsg) NewMessage() fw.Message { return &plainMsg{} }

func TestTypedFromNotSerializable(t *testing.T) {
	_, err := TypedFrom(&plainMsg{})
	require.Equal(t, ErrNotSerializable, err)
}
