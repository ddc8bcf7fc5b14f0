package stream

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadWriter(t *testing.T) {
	var buf bytes.Buffer
	rw := New(&buf)
	require.NoError(t, rw.WritePacket([]byte("hello")))
	require.NoError(t, rw.WritePacket(nil))
	require.NoError(t, rw.WritePacket([]byte{0x01}))

	pkt, err := rw.ReadPacket()
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), pkt)
	pkt, err = rw.ReadPacket()
	require.NoError(t, err)
	require.Empty(t, pkt)
	pkt, err = rw.ReadPacket()
	require.NoError(t, err)
	require.Equal(t, []byte{0x01}, pkt)

	_, err = rw.ReadPacket()
	require.Equal(t, io.EOF, err)
}

func TestReadPacketTruncated(t *testing.T) {
	buf := bytes.NewBuffer([]byte{0x05, 0x00, 0x00, 0x00, 'h', 'i'})
	_, err := New(buf).ReadPacket()
	require.Equal(t, io.ErrUnexpectedEOF, err)
}
