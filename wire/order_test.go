package wire_test

import (
	"testing"

	"github.com/mxbin/mxcodec/wire"
	"github.com/stretchr/testify/require"
)

func TestOrderFor(t *testing.T) {
	tests := []struct {
		selector string
		want     wire.ByteOrder
		ok       bool
	}{
		{"native", wire.NativeEndian, true},
		{"", wire.NativeEndian, true},
		{"little", wire.LittleEndian, true},
		{"big", wire.BigEndian, true},
		{"middle", nil, false},
	}
	for _, tc := range tests {
		got, ok := wire.OrderFor(tc.selector)
		require.Equal(t, tc.ok, ok, tc.selector)
		if tc.ok {
			require.Equal(t, tc.want, got, tc.selector)
		}
	}
}

func TestNativeMatchesOneOfBigLittle(t *testing.T) {
	require.True(t, wire.NativeEndian == wire.BigEndian || wire.NativeEndian == wire.LittleEndian)
}
