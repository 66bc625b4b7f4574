package wire

import "math"

// MaxBufLen is the largest permissible encoded buffer length, three
// bytes shy of [math.MaxInt32] so that length-prefixed fields
// elsewhere in the format never overflow a signed 32-bit count.
const MaxBufLen = math.MaxInt32 - 3

// Buffer is a growable output buffer with the doubling growth policy
// required of an mxcodec encoder: capacity at least doubles on each
// grow, never exceeding [MaxBufLen].
type Buffer struct {
	b []byte
}

// NewBuffer returns an empty [Buffer] with the given initial capacity.
func NewBuffer(capHint int) *Buffer {
	return &Buffer{b: make([]byte, 0, capHint)}
}

// Len returns the number of bytes written so far.
func (b *Buffer) Len() int { return len(b.b) }

// Bytes returns the accumulated buffer contents. The returned slice
// aliases the Buffer's storage and must not be retained across
// further writes.
func (b *Buffer) Bytes() []byte { return b.b }

// Grow ensures the buffer has room for at least n more bytes,
// doubling capacity (or growing to exactly fit, whichever is larger)
// as needed.
func (b *Buffer) Grow(n int) error {
	need := len(b.b) + n
	if need > MaxBufLen {
		return errBufLimit
	}
	if cap(b.b) >= need {
		return nil
	}
	newCap := cap(b.b) * 2
	if newCap < need {
		newCap = need
	}
	if newCap > MaxBufLen {
		newCap = MaxBufLen
	}
	grown := make([]byte, len(b.b), newCap)
	copy(grown, b.b)
	b.b = grown
	return nil
}

// Append writes bs verbatim to the buffer, growing it as needed.
func (b *Buffer) Append(bs ...byte) error {
	if err := b.Grow(len(bs)); err != nil {
		return err
	}
	b.b = append(b.b, bs...)
	return nil
}

// AppendBytes writes bs verbatim to the buffer, growing it as needed.
func (b *Buffer) AppendBytes(bs []byte) error {
	if err := b.Grow(len(bs)); err != nil {
		return err
	}
	b.b = append(b.b, bs...)
	return nil
}

type bufLimitError struct{}

func (bufLimitError) Error() string { return "encoded length would exceed the maximum buffer size" }

var errBufLimit = bufLimitError{}

// ErrBufLimit is returned by [Buffer.Grow] when growing would exceed
// [MaxBufLen].
var ErrBufLimit error = errBufLimit
