package mxcodec

import (
	"errors"
	"math"

	"github.com/mxbin/mxcodec/wire"
)

// EncodeOptions configures [Encode]. The zero value selects the
// default user signature (42) and native byte order.
type EncodeOptions struct {
	// UserSig is the application-chosen signature byte, in [1, 239].
	// Zero selects [DefaultUserSig], so a signature byte of 0 cannot be
	// chosen; 240 and above are rejected with [ErrInvalidSig].
	UserSig byte
	// ByteOrder selects the byte order for multi-byte elements:
	// "native" (default), "little", or "big".
	ByteOrder string
}

func (o EncodeOptions) userSig() byte {
	if o.UserSig == 0 {
		return DefaultUserSig
	}
	return o.UserSig
}

// Encode serializes v to the mxcodec wire format (spec.md §4.1-§4.2).
//
// On any error, Encode returns a nil buffer and a [CodecError] whose
// ID is one of the identifiers in spec.md §4.5; encoding errors are
// sticky in the sense that the first error encountered aborts the
// whole encode.
func Encode(v Value, opts EncodeOptions) ([]byte, error) {
	if opts.UserSig >= 240 {
		return nil, codecErr(ErrInvalidSig, "user signature %d is not in [0, 239]", opts.UserSig)
	}
	order, ok := wire.OrderFor(opts.ByteOrder)
	if !ok {
		return nil, codecErr(ErrInvalidByteOrder, "unknown byte order selector %q", opts.ByteOrder)
	}

	e := wire.NewEncoder(order)
	if err := writeSignature(e, opts.userSig()); err != nil {
		return nil, wrapBufLimit(err)
	}
	if err := encodeValue(e, v); err != nil {
		return nil, wrapBufLimit(err)
	}
	if err := writePadding(e); err != nil {
		return nil, wrapBufLimit(err)
	}
	return e.Out.Bytes(), nil
}

// wrapBufLimit translates the wire layer's buffer-capacity sentinel
// into the wire-visible [ErrBufLimit] identifier; every other error
// from the wire layer is already a [CodecError] and passes through
// unchanged.
func wrapBufLimit(err error) error {
	if errors.Is(err, wire.ErrBufLimit) {
		return codecErr(ErrBufLimit, "%v", err)
	}
	return err
}

// writePadding appends 1-4 bytes, each equal to ~P, so the total
// buffer length becomes a multiple of 4 (spec.md §4.1).
func writePadding(e *wire.Encoder) error {
	p := 4 - e.Out.Len()%4
	pad := byte(^p & 0xFF)
	for i := 0; i < p; i++ {
		if err := e.Uint8(pad); err != nil {
			return err
		}
	}
	return nil
}

// encodeValue recursively dispatches on v.Class and writes its tag,
// shape prefix, and payload.
func encodeValue(e *wire.Encoder, v Value) error {
	if !supportedClasses.Has(v.Class) {
		return codecErr(ErrUnsupportedClass, "class code %d is not in the supported universe", v.Class)
	}
	if err := checkShapeLimits(v.Shape); err != nil {
		return err
	}

	fmtSel, err := chooseShapeFormat(v.Shape)
	if err != nil {
		return err
	}
	if err := e.Uint8(makeTag(v.Class, fmtSel)); err != nil {
		return err
	}
	if err := writeShapePrefix(e, v.Shape, fmtSel); err != nil {
		return err
	}

	switch v.Class {
	case ClassComplex:
		return encodeComplexPayload(e, v)
	case ClassCell:
		return encodeCellPayload(e, v)
	case ClassStruct:
		return encodeStructPayload(e, v)
	case ClassSparse:
		return encodeSparsePayload(e, v)
	default:
		return encodeFlatPayload(e, v)
	}
}

func checkShapeLimits(s Shape) error {
	if len(s) > 255 {
		return codecErr(ErrNdimsLimit, "shape has %d dimensions, limit is 255", len(s))
	}
	for _, d := range s {
		if d > math.MaxInt32 {
			return codecErr(ErrNumelLimit, "dimension %d exceeds INT32_MAX", d)
		}
	}
	if s.NumEl() > math.MaxInt32 {
		return codecErr(ErrNumelLimit, "element count exceeds INT32_MAX")
	}
	if s.impliedNumEl() > math.MaxInt32 {
		return codecErr(ErrNumelLimit, "implied element count exceeds INT32_MAX")
	}
	return nil
}

func writeShapePrefix(e *wire.Encoder, s Shape, fmtSel sizeFormat) error {
	switch fmtSel {
	case fmtScalar, fmtEmpty:
		return nil
	case fmtColumn:
		return e.Uint8(uint8(s[0]))
	case fmtRow:
		return e.Uint8(uint8(s[1]))
	case fmtMatrix:
		if err := e.Uint8(uint8(s[0])); err != nil {
			return err
		}
		return e.Uint8(uint8(s[1]))
	case fmtGeneral8, fmtGeneral16, fmtGeneral32:
		if len(s) > 255 {
			return codecErr(ErrNdimsLimit, "shape has %d dimensions, limit is 255", len(s))
		}
		if err := e.Uint8(uint8(len(s))); err != nil {
			return err
		}
		for _, d := range s {
			var err error
			switch fmtSel {
			case fmtGeneral8:
				err = e.Uint8(uint8(d))
			case fmtGeneral16:
				err = e.Uint16(uint16(d))
			default:
				err = e.Uint32(uint32(d))
			}
			if err != nil {
				return err
			}
		}
		return nil
	default:
		return codecErr(ErrInvalidTag, "unknown size format %d", fmtSel)
	}
}

// encodeFlatPayload writes the raw element bytes of a numeric,
// boolean, or char value, in the encoder's chosen byte order.
func encodeFlatPayload(e *wire.Encoder, v Value) error {
	switch v.Class {
	case ClassFloat64:
		for _, f := range v.Data.([]float64) {
			if err := e.Uint64(math.Float64bits(f)); err != nil {
				return err
			}
		}
	case ClassFloat32:
		for _, f := range v.Data.([]float32) {
			if err := e.Uint32(math.Float32bits(f)); err != nil {
				return err
			}
		}
	case ClassInt8:
		for _, x := range v.Data.([]int8) {
			if err := e.Uint8(uint8(x)); err != nil {
				return err
			}
		}
	case ClassUint8:
		for _, x := range v.Data.([]uint8) {
			if err := e.Uint8(x); err != nil {
				return err
			}
		}
	case ClassInt16:
		for _, x := range v.Data.([]int16) {
			if err := e.Uint16(uint16(x)); err != nil {
				return err
			}
		}
	case ClassUint16:
		for _, x := range v.Data.([]uint16) {
			if err := e.Uint16(x); err != nil {
				return err
			}
		}
	case ClassInt32:
		for _, x := range v.Data.([]int32) {
			if err := e.Uint32(uint32(x)); err != nil {
				return err
			}
		}
	case ClassUint32:
		for _, x := range v.Data.([]uint32) {
			if err := e.Uint32(x); err != nil {
				return err
			}
		}
	case ClassInt64:
		for _, x := range v.Data.([]int64) {
			if err := e.Uint64(uint64(x)); err != nil {
				return err
			}
		}
	case ClassUint64:
		for _, x := range v.Data.([]uint64) {
			if err := e.Uint64(x); err != nil {
				return err
			}
		}
	case ClassBool:
		for _, x := range v.Data.([]bool) {
			b := byte(0)
			if x {
				b = 1
			}
			if err := e.Uint8(b); err != nil {
				return err
			}
		}
	case ClassChar8:
		return e.Write([]byte(v.Data.(Char8)))
	case ClassChar16:
		for _, c := range v.Data.(Char16) {
			if err := e.Uint16(c); err != nil {
				return err
			}
		}
	default:
		return codecErr(ErrUnsupportedClass, "class %s has no flat payload", v.Class)
	}
	return nil
}

func encodeComplexPayload(e *wire.Encoder, v Value) error {
	c, ok := v.Data.(ComplexData)
	if !ok {
		return codecErr(ErrUnsupportedClass, "complex value missing ComplexData payload")
	}
	if !c.Real.Class.IsNumericReal() {
		return codecErr(ErrUnsupportedClass, "complex real part has non-numeric class %s", c.Real.Class)
	}
	// Inner tag: real element class, fmt=0 (ignored by the reader).
	if err := e.Uint8(makeTag(c.Real.Class, fmtScalar)); err != nil {
		return err
	}
	if err := encodeFlatPayload(e, c.Real); err != nil {
		return err
	}
	return encodeFlatPayload(e, c.Imag)
}

func encodeCellPayload(e *wire.Encoder, v Value) error {
	children, ok := v.Data.([]Value)
	if !ok {
		return codecErr(ErrUnsupportedClass, "cell value missing []Value payload")
	}
	if len(children) != v.Shape.NumEl() {
		return codecErr(ErrSizeMismatch, "cell has %d children, shape implies %d", len(children), v.Shape.NumEl())
	}
	for _, child := range children {
		if err := encodeValue(e, child); err != nil {
			return err
		}
	}
	return nil
}

func encodeStructPayload(e *wire.Encoder, v Value) error {
	sd, ok := v.Data.(StructData)
	if !ok {
		return codecErr(ErrUnsupportedClass, "struct value missing StructData payload")
	}
	names := make([]Value, len(sd.Fields))
	for i, name := range sd.Fields {
		if len(name) > 63 {
			return codecErr(ErrInvalidStruct, "field name %q exceeds 63 bytes", name)
		}
		names[i] = Char8String(name)
	}
	if err := encodeValue(e, Cell(names...)); err != nil {
		return err
	}

	n := v.Shape.NumEl()
	for i, field := range sd.Fields {
		vals := sd.Values[i]
		if len(vals) != n {
			return codecErr(ErrSizeMismatch, "struct field %q has %d values, shape implies %d", field, len(vals), n)
		}
		for _, child := range vals {
			if err := encodeValue(e, child); err != nil {
				return err
			}
		}
	}
	return nil
}

func encodeSparsePayload(e *wire.Encoder, v Value) error {
	sd, ok := v.Data.(SparseData)
	if !ok {
		return codecErr(ErrUnsupportedClass, "sparse value missing SparseData payload")
	}
	idxVal := encodeSparseIndex(sd.Idx)
	if err := encodeValue(e, idxVal); err != nil {
		return err
	}
	return encodeValue(e, sd.Nzv)
}
