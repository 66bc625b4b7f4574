package wire

import (
	"encoding/binary"

	"golang.org/x/sys/cpu"
)

// ByteOrder is the byte order used to encode and decode multi-byte
// numeric elements. It is satisfied by [BigEndian], [LittleEndian],
// and [NativeEndian].
type ByteOrder interface {
	binary.ByteOrder
	binary.AppendByteOrder
	// IsBig reports whether this order writes the most significant
	// byte first. It is used to choose which of the two signature
	// bytes is the version byte when building a new buffer.
	IsBig() bool
}

type wrapStd struct {
	binary.ByteOrder
	binary.AppendByteOrder
	big bool
}

func (w wrapStd) IsBig() bool { return w.big }

var (
	// BigEndian encodes multi-byte values most-significant-byte first.
	BigEndian ByteOrder = wrapStd{binary.BigEndian, binary.BigEndian, true}
	// LittleEndian encodes multi-byte values least-significant-byte first.
	LittleEndian ByteOrder = wrapStd{binary.LittleEndian, binary.LittleEndian, false}
	// NativeEndian is [BigEndian] or [LittleEndian], whichever matches
	// the host's native byte order.
	NativeEndian ByteOrder = resolveNative()
)

func resolveNative() ByteOrder {
	if cpu.IsBigEndian {
		return BigEndian
	}
	return LittleEndian
}

// OrderFor resolves the selector strings "native", "little", and
// "big" to the corresponding [ByteOrder]. Any other selector returns
// ok == false.
func OrderFor(selector string) (order ByteOrder, ok bool) {
	switch selector {
	case "", "native":
		return NativeEndian, true
	case "little":
		return LittleEndian, true
	case "big":
		return BigEndian, true
	default:
		return nil, false
	}
}
