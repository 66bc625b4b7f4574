package wire

import "fmt"

// A Decoder reads mxcodec wire-format bytes from an in-memory buffer.
//
// Unlike [Encoder], Decoder reads from a fixed byte slice rather than
// an [io.Reader]: spec.md scopes the format to contiguous in-memory
// buffers, with no streaming mode.
type Decoder struct {
	// Order is the byte order used to decode multi-byte values.
	Order ByteOrder
	// In is the buffer being decoded.
	In []byte
	// Pos is the current read cursor, an offset into In.
	Pos int
}

// NewDecoder returns a Decoder positioned at the start of buf.
func NewDecoder(buf []byte, order ByteOrder) *Decoder {
	return &Decoder{Order: order, In: buf}
}

// Remaining returns the number of unread bytes.
func (d *Decoder) Remaining() int { return len(d.In) - d.Pos }

// Read returns the next n bytes and advances the cursor. It returns an
// error if fewer than n bytes remain.
func (d *Decoder) Read(n int) ([]byte, error) {
	if n < 0 || d.Remaining() < n {
		return nil, fmt.Errorf("short buffer: need %d bytes, have %d", n, d.Remaining())
	}
	bs := d.In[d.Pos : d.Pos+n]
	d.Pos += n
	return bs, nil
}

// Uint8 reads one byte.
func (d *Decoder) Uint8() (uint8, error) {
	bs, err := d.Read(1)
	if err != nil {
		return 0, err
	}
	return bs[0], nil
}

// Uint16 reads a uint16 in the decoder's byte order.
func (d *Decoder) Uint16() (uint16, error) {
	bs, err := d.Read(2)
	if err != nil {
		return 0, err
	}
	return d.Order.Uint16(bs), nil
}

// Uint32 reads a uint32 in the decoder's byte order.
func (d *Decoder) Uint32() (uint32, error) {
	bs, err := d.Read(4)
	if err != nil {
		return 0, err
	}
	return d.Order.Uint32(bs), nil
}

// Uint64 reads a uint64 in the decoder's byte order.
func (d *Decoder) Uint64() (uint64, error) {
	bs, err := d.Read(8)
	if err != nil {
		return 0, err
	}
	return d.Order.Uint64(bs), nil
}
