package mxcodec

import "github.com/mxbin/mxcodec/wire"

// FormatVersion is the sole format version this codec understands
// (spec.md §4.1). The invariant FormatVersion > DefaultUserSig lets
// the decoder tell the two signature bytes apart regardless of byte
// order.
const FormatVersion byte = 240

// DefaultUserSig is the signature byte used when the caller doesn't
// supply one.
const DefaultUserSig byte = 42

func writeSignature(e *wire.Encoder, userSig byte) error {
	if e.Order.IsBig() {
		return e.Write([]byte{FormatVersion, userSig})
	}
	return e.Write([]byte{userSig, FormatVersion})
}

// readSignature inspects the first two bytes of buf, validates them
// against userSig, and returns the byte order the rest of the buffer
// was encoded with.
func readSignature(b0, b1, userSig byte) (wire.ByteOrder, error) {
	switch {
	case b0 == userSig && b1 == FormatVersion:
		return wire.LittleEndian, nil
	case b0 == FormatVersion && b1 == userSig:
		return wire.BigEndian, nil
	default:
		return nil, codecErr(ErrInvalidSig, "signature bytes %#x %#x do not match user signature %#x / version %#x", b0, b1, userSig, FormatVersion)
	}
}
