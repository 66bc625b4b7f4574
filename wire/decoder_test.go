package wire_test

import (
	"testing"

	"github.com/mxbin/mxcodec/wire"
	"github.com/stretchr/testify/require"
)

func TestDecoderRoundTrip(t *testing.T) {
	buf := []byte{
		0xAB,
		0x34, 0x12,
		0x04, 0x03, 0x02, 0x01,
		0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01,
	}
	d := wire.NewDecoder(buf, wire.LittleEndian)

	u8, err := d.Uint8()
	require.NoError(t, err)
	require.Equal(t, uint8(0xAB), u8)

	u16, err := d.Uint16()
	require.NoError(t, err)
	require.Equal(t, uint16(0x1234), u16)

	u32, err := d.Uint32()
	require.NoError(t, err)
	require.Equal(t, uint32(0x01020304), u32)

	u64, err := d.Uint64()
	require.NoError(t, err)
	require.Equal(t, uint64(0x0102030405060708), u64)

	require.Equal(t, 0, d.Remaining())
}

func TestDecoderShortBuffer(t *testing.T) {
	d := wire.NewDecoder([]byte{1, 2}, wire.BigEndian)
	_, err := d.Uint32()
	require.Error(t, err)
}
