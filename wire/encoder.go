package wire

// An Encoder writes mxcodec wire-format bytes to a growable [Buffer].
//
// Encoder is a low-level tool: it knows how to write bytes of a given
// width in a given byte order, but nothing about tags, classes, or
// shapes. It is the caller's responsibility to write a well-formed
// mxcodec value.
type Encoder struct {
	// Order is the byte order used to encode multi-byte values.
	Order ByteOrder
	// Out is the buffer receiving encoded output.
	Out *Buffer
}

// NewEncoder returns an Encoder that appends to a fresh [Buffer] using
// the given byte order.
func NewEncoder(order ByteOrder) *Encoder {
	return &Encoder{Order: order, Out: NewBuffer(64)}
}

// Write writes bs as-is to the output.
func (e *Encoder) Write(bs []byte) error {
	return e.Out.AppendBytes(bs)
}

// Uint8 writes a single byte.
func (e *Encoder) Uint8(u8 uint8) error {
	return e.Out.Append(u8)
}

// Uint16 writes u16 in the encoder's byte order.
func (e *Encoder) Uint16(u16 uint16) error {
	var buf [2]byte
	e.Order.PutUint16(buf[:], u16)
	return e.Out.AppendBytes(buf[:])
}

// Uint32 writes u32 in the encoder's byte order.
func (e *Encoder) Uint32(u32 uint32) error {
	var buf [4]byte
	e.Order.PutUint32(buf[:], u32)
	return e.Out.AppendBytes(buf[:])
}

// Uint64 writes u64 in the encoder's byte order.
func (e *Encoder) Uint64(u64 uint64) error {
	var buf [8]byte
	e.Order.PutUint64(buf[:], u64)
	return e.Out.AppendBytes(buf[:])
}
