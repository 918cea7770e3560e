package stream

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadWriterFraming(t *testing.T) {
	var buf bytes.Buffer
	rw := New(&buf)
	require.NoError(t, rw.WritePacket([]byte("abc")))
	require.NoError(t, rw.WritePacket(nil))
	require.Equal(t, []byte{3, 0, 0, 0, 'a', 'b', 'c', 0, 0, 0, 0}, buf.Bytes())

	pkt, err := rw.ReadPacket()
	require.NoError(t, err)
	require.Equal(t, []byte("abc"), pkt)
	pkt, err = rw.ReadPacket()
	require.NoError(t, err)
	require.Empty(t, pkt)
}

func TestReadWriterPacketSize(t *testing.T) {
	var buf bytes.Buffer
	rw := New(&buf)
	rw.MaxPacketSize = 2
	require.IsType(t, &PacketSizeError{}, rw.WritePacket([]byte("abc")))

	buf.Write([]byte{0xff, 0xff, 0, 0})
	_, err := rw.ReadPacket()
	require.Equal(t, &PacketSizeError{Size: 0xffff, Max: 2}, err)
}
