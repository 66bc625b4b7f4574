package wire_test

import (
	"testing"

	"github.com/mxbin/mxcodec/wire"
	"github.com/stretchr/testify/require"
)

func TestEncoderLittleEndian(t *testing.T) {
	e := wire.NewEncoder(wire.LittleEndian)
	require.NoError(t, e.Write([]byte{1, 2, 3}))
	require.NoError(t, e.Uint8(0xAB))
	require.NoError(t, e.Uint16(0x1234))
	require.NoError(t, e.Uint32(0x01020304))
	require.NoError(t, e.Uint64(0x0102030405060708))

	want := []byte{
		1, 2, 3,
		0xAB,
		0x34, 0x12,
		0x04, 0x03, 0x02, 0x01,
		0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01,
	}
	require.Equal(t, want, e.Out.Bytes())
}

func TestEncoderBigEndian(t *testing.T) {
	e := wire.NewEncoder(wire.BigEndian)
	require.NoError(t, e.Uint16(0x1234))
	require.NoError(t, e.Uint32(0x01020304))

	want := []byte{0x12, 0x34, 0x01, 0x02, 0x03, 0x04}
	require.Equal(t, want, e.Out.Bytes())
}

func TestBufferGrowthDoubles(t *testing.T) {
	b := wire.NewBuffer(4)
	require.NoError(t, b.AppendBytes(make([]byte, 4)))
	before := cap(b.Bytes())
	require.NoError(t, b.AppendBytes([]byte{1}))
	require.GreaterOrEqual(t, cap(b.Bytes()), before*2-1)
}

func TestBufferLimit(t *testing.T) {
	big := wire.NewBuffer(0)
	err := big.Grow(wire.MaxBufLen + 1)
	require.ErrorIs(t, err, wire.ErrBufLimit)
}
