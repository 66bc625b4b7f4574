package mxcodec

import (
	"math"

	"github.com/mxbin/mxcodec/wire"
)

// Default template-mode bounds (spec.md §4.3, §5).
const (
	DefaultNumericBound = 4096
	DefaultCharBound    = 128
)

// DecodeOptions configures [Decode] and [DecodeInto].
type DecodeOptions struct {
	// UserSig is the expected application signature byte. Zero
	// selects [DefaultUserSig].
	UserSig byte
	// NumericBound caps the element count of numeric/boolean values
	// in template mode. Zero selects [DefaultNumericBound].
	NumericBound int
	// CharBound caps the element count of char/cell/struct values in
	// template mode. Zero selects [DefaultCharBound].
	CharBound int
}

func (o DecodeOptions) userSig() byte {
	if o.UserSig == 0 {
		return DefaultUserSig
	}
	return o.UserSig
}

func (o DecodeOptions) numericBound() int {
	if o.NumericBound == 0 {
		return DefaultNumericBound
	}
	return o.NumericBound
}

func (o DecodeOptions) charBound() int {
	if o.CharBound == 0 {
		return DefaultCharBound
	}
	return o.CharBound
}

// decodeState carries the cursor and options shared by every
// recursive step of one Decode/DecodeInto call.
type decodeState struct {
	d        *wire.Decoder
	template bool
	opts     DecodeOptions
}

// Decode parses buf in dynamic mode: class and shape are recovered
// entirely from the buffer, with no caller-supplied template.
func Decode(buf []byte, opts DecodeOptions) (Value, error) {
	st, err := preflight(buf, opts)
	if err != nil {
		return Value{}, err
	}
	v, err := st.decodeValue(nil)
	if err != nil {
		return Value{}, err
	}
	if st.d.Remaining() != 0 {
		return Value{}, codecErr(ErrCorruptBuf, "%d trailing bytes after top-level value", st.d.Remaining())
	}
	return v, nil
}

// DecodeInto parses buf in template mode: class, shape category, and
// (for cells/structs) nested templates are fixed by template, while
// buf supplies the data. template is carried by exclusive mutable
// reference (spec.md §9's "Two execution modes"): on success, *template
// is overwritten in place with the overlaid result, and struct fields
// present in template but absent from buf are carried through with
// their original values untouched (spec.md §8 "Template tolerance").
func DecodeInto(buf []byte, template *Value, opts DecodeOptions) error {
	if template == nil {
		return codecErr(ErrEmptyValue, "template must not be nil")
	}
	st, err := preflight(buf, opts)
	if err != nil {
		return err
	}
	st.template = true
	v, err := st.decodeValue(template)
	if err != nil {
		return err
	}
	if st.d.Remaining() != 0 {
		return codecErr(ErrCorruptBuf, "%d trailing bytes after top-level value", st.d.Remaining())
	}
	*template = v
	return nil
}

// preflight validates buffer framing (length, padding, signature) and
// returns a decodeState positioned just past the signature.
func preflight(buf []byte, opts DecodeOptions) (*decodeState, error) {
	if len(buf) == 0 {
		return nil, codecErr(ErrInvalidBuf, "empty buffer")
	}
	if len(buf)%4 != 0 {
		return nil, codecErr(ErrInvalidBuf, "buffer length %d is not a multiple of 4", len(buf))
	}

	final := buf[len(buf)-1]
	p := int(^final & 0xFF)
	if p < 1 || p > 4 {
		return nil, codecErr(ErrInvalidPad, "pad length %d out of range [1,4]", p)
	}
	if len(buf) < p {
		return nil, codecErr(ErrInvalidPad, "pad length %d exceeds buffer length %d", p, len(buf))
	}
	for _, b := range buf[len(buf)-p:] {
		if b != final {
			return nil, codecErr(ErrInvalidPad, "inconsistent padding bytes")
		}
	}

	if len(buf) < 2+p {
		return nil, codecErr(ErrInvalidBuf, "buffer too short to hold a signature and padding")
	}
	order, err := readSignature(buf[0], buf[1], opts.userSig())
	if err != nil {
		return nil, err
	}

	payload := buf[2 : len(buf)-p]
	d := wire.NewDecoder(payload, order)
	return &decodeState{d: d, opts: opts}, nil
}

// decodeValue reads one tagged value from the cursor. If tmpl is
// non-nil, the value is checked/overlaid against it (template mode);
// otherwise it is freely reconstructed (dynamic mode).
func (st *decodeState) decodeValue(tmpl *Value) (Value, error) {
	tagByte, err := st.d.Uint8()
	if err != nil {
		return Value{}, codecErr(ErrInvalidBuf, "reading tag: %v", err)
	}
	class, fmtSel := splitTag(tagByte)
	if !supportedClasses.Has(class) {
		return Value{}, codecErr(ErrInvalidTag, "class code %d out of range [1,17]", class)
	}

	shape, err := st.readShape(fmtSel)
	if err != nil {
		return Value{}, err
	}

	if tmpl != nil {
		if err := checkTemplateClass(class, *tmpl); err != nil {
			return Value{}, err
		}
		bound := st.opts.numericBound()
		if class.IsChar() || class == ClassCell || class == ClassStruct {
			bound = st.opts.charBound()
		}
		if shape.NumEl() > bound {
			return Value{}, codecErr(ErrNumelLimit, "element count %d exceeds template bound %d", shape.NumEl(), bound)
		}
		shape, err = reshapeForTemplate(shape, *tmpl)
		if err != nil {
			return Value{}, err
		}
	}

	switch class {
	case ClassComplex:
		return st.decodeComplex(shape, tmpl)
	case ClassCell:
		return st.decodeCell(shape, tmpl)
	case ClassStruct:
		return st.decodeStruct(shape, tmpl)
	case ClassSparse:
		return st.decodeSparse(shape, tmpl)
	default:
		return st.decodeFlat(class, shape)
	}
}

// readShape reconstructs a Shape from the size-format prefix
// following a tag byte (spec.md §4.1's table).
func (st *decodeState) readShape(fmtSel sizeFormat) (Shape, error) {
	switch fmtSel {
	case fmtScalar:
		return ScalarShape(), nil
	case fmtEmpty:
		return EmptyShape(), nil
	case fmtColumn:
		m, err := st.d.Uint8()
		if err != nil {
			return nil, codecErr(ErrInvalidBuf, "reading column length: %v", err)
		}
		return ColShape(int(m)), nil
	case fmtRow:
		n, err := st.d.Uint8()
		if err != nil {
			return nil, codecErr(ErrInvalidBuf, "reading row length: %v", err)
		}
		return RowShape(int(n)), nil
	case fmtMatrix:
		m, err := st.d.Uint8()
		if err != nil {
			return nil, codecErr(ErrInvalidBuf, "reading matrix rows: %v", err)
		}
		n, err := st.d.Uint8()
		if err != nil {
			return nil, codecErr(ErrInvalidBuf, "reading matrix cols: %v", err)
		}
		return MatrixShape(int(m), int(n)), nil
	case fmtGeneral8, fmtGeneral16, fmtGeneral32:
		ndims, err := st.d.Uint8()
		if err != nil {
			return nil, codecErr(ErrInvalidBuf, "reading ndims: %v", err)
		}
		if ndims < 2 {
			return nil, codecErr(ErrInvalidTag, "general shape has %d dimensions, must be >= 2", ndims)
		}
		if st.template && ndims > 2 {
			return nil, codecErr(ErrNdimsLimit, "template mode only supports 2-D shapes")
		}
		dims := make(Shape, ndims)
		for i := range dims {
			var d int
			switch fmtSel {
			case fmtGeneral8:
				b, err := st.d.Uint8()
				if err != nil {
					return nil, codecErr(ErrInvalidBuf, "reading dimension %d: %v", i, err)
				}
				d = int(b)
			case fmtGeneral16:
				b, err := st.d.Uint16()
				if err != nil {
					return nil, codecErr(ErrInvalidBuf, "reading dimension %d: %v", i, err)
				}
				d = int(b)
			default:
				b, err := st.d.Uint32()
				if err != nil {
					return nil, codecErr(ErrInvalidBuf, "reading dimension %d: %v", i, err)
				}
				if b > math.MaxInt32 {
					return nil, codecErr(ErrNumelLimit, "dimension %d exceeds INT32_MAX", b)
				}
				d = int(b)
			}
			dims[i] = d
		}
		if dims.NumEl() > math.MaxInt32 {
			return nil, codecErr(ErrNumelLimit, "element count exceeds INT32_MAX")
		}
		return dims, nil
	default:
		return nil, codecErr(ErrInvalidTag, "unknown size format %d", fmtSel)
	}
}

func (st *decodeState) decodeFlat(class Class, shape Shape) (Value, error) {
	n := shape.NumEl()
	switch class {
	case ClassFloat64:
		data := make([]float64, n)
		for i := range data {
			b, err := st.d.Uint64()
			if err != nil {
				return Value{}, codecErr(ErrInvalidBuf, "reading float64[%d]: %v", i, err)
			}
			data[i] = math.Float64frombits(b)
		}
		return Value{Class: class, Shape: shape, Data: data}, nil
	case ClassFloat32:
		data := make([]float32, n)
		for i := range data {
			b, err := st.d.Uint32()
			if err != nil {
				return Value{}, codecErr(ErrInvalidBuf, "reading float32[%d]: %v", i, err)
			}
			data[i] = math.Float32frombits(b)
		}
		return Value{Class: class, Shape: shape, Data: data}, nil
	case ClassInt8:
		data := make([]int8, n)
		for i := range data {
			b, err := st.d.Uint8()
			if err != nil {
				return Value{}, codecErr(ErrInvalidBuf, "reading int8[%d]: %v", i, err)
			}
			data[i] = int8(b)
		}
		return Value{Class: class, Shape: shape, Data: data}, nil
	case ClassUint8:
		data, err := st.d.Read(n)
		if err != nil {
			return Value{}, codecErr(ErrInvalidBuf, "reading uint8 payload: %v", err)
		}
		cp := append([]byte(nil), data...)
		return Value{Class: class, Shape: shape, Data: cp}, nil
	case ClassInt16:
		data := make([]int16, n)
		for i := range data {
			b, err := st.d.Uint16()
			if err != nil {
				return Value{}, codecErr(ErrInvalidBuf, "reading int16[%d]: %v", i, err)
			}
			data[i] = int16(b)
		}
		return Value{Class: class, Shape: shape, Data: data}, nil
	case ClassUint16:
		data := make([]uint16, n)
		for i := range data {
			b, err := st.d.Uint16()
			if err != nil {
				return Value{}, codecErr(ErrInvalidBuf, "reading uint16[%d]: %v", i, err)
			}
			data[i] = b
		}
		return Value{Class: class, Shape: shape, Data: data}, nil
	case ClassInt32:
		data := make([]int32, n)
		for i := range data {
			b, err := st.d.Uint32()
			if err != nil {
				return Value{}, codecErr(ErrInvalidBuf, "reading int32[%d]: %v", i, err)
			}
			data[i] = int32(b)
		}
		return Value{Class: class, Shape: shape, Data: data}, nil
	case ClassUint32:
		data := make([]uint32, n)
		for i := range data {
			b, err := st.d.Uint32()
			if err != nil {
				return Value{}, codecErr(ErrInvalidBuf, "reading uint32[%d]: %v", i, err)
			}
			data[i] = b
		}
		return Value{Class: class, Shape: shape, Data: data}, nil
	case ClassInt64:
		data := make([]int64, n)
		for i := range data {
			b, err := st.d.Uint64()
			if err != nil {
				return Value{}, codecErr(ErrInvalidBuf, "reading int64[%d]: %v", i, err)
			}
			data[i] = int64(b)
		}
		return Value{Class: class, Shape: shape, Data: data}, nil
	case ClassUint64:
		data := make([]uint64, n)
		for i := range data {
			b, err := st.d.Uint64()
			if err != nil {
				return Value{}, codecErr(ErrInvalidBuf, "reading uint64[%d]: %v", i, err)
			}
			data[i] = b
		}
		return Value{Class: class, Shape: shape, Data: data}, nil
	case ClassBool:
		data := make([]bool, n)
		for i := range data {
			b, err := st.d.Uint8()
			if err != nil {
				return Value{}, codecErr(ErrInvalidBuf, "reading bool[%d]: %v", i, err)
			}
			data[i] = b != 0
		}
		return Value{Class: class, Shape: shape, Data: data}, nil
	case ClassChar8:
		data, err := st.d.Read(n)
		if err != nil {
			return Value{}, codecErr(ErrInvalidBuf, "reading char8 payload: %v", err)
		}
		return Value{Class: class, Shape: shape, Data: Char8(append([]byte(nil), data...))}, nil
	case ClassChar16:
		if st.template {
			return Value{}, codecErr(ErrUnicodeChar, "char16 is not supported in template mode by this build")
		}
		data := make(Char16, n)
		for i := range data {
			b, err := st.d.Uint16()
			if err != nil {
				return Value{}, codecErr(ErrInvalidBuf, "reading char16[%d]: %v", i, err)
			}
			data[i] = b
		}
		return Value{Class: class, Shape: shape, Data: data}, nil
	default:
		return Value{}, codecErr(ErrUnsupportedClass, "class %s has no flat decoding", class)
	}
}

func (st *decodeState) decodeComplex(shape Shape, tmpl *Value) (Value, error) {
	innerTag, err := st.d.Uint8()
	if err != nil {
		return Value{}, codecErr(ErrInvalidBuf, "reading complex inner tag: %v", err)
	}
	realClass, _ := splitTag(innerTag)
	if !realClass.IsNumericReal() {
		return Value{}, codecErr(ErrCorruptBuf, "complex inner class %s is not numeric real", realClass)
	}
	real, err := st.decodeFlat(realClass, shape)
	if err != nil {
		return Value{}, err
	}
	imag, err := st.decodeFlat(realClass, shape)
	if err != nil {
		return Value{}, err
	}
	return Value{Class: ClassComplex, Shape: shape, Data: ComplexData{Real: real, Imag: imag}}, nil
}

func (st *decodeState) decodeCell(shape Shape, tmpl *Value) (Value, error) {
	n := shape.NumEl()

	var childTmpl *Value
	if tmpl != nil {
		children, ok := tmpl.Data.([]Value)
		if !ok || len(children) == 0 {
			return Value{}, codecErr(ErrEmptyValue, "template cell must be non-empty")
		}
		childTmpl = &children[0]
	}

	out := make([]Value, n)
	for i := range out {
		v, err := st.decodeValue(childTmpl)
		if err != nil {
			return Value{}, err
		}
		out[i] = v
	}
	return Value{Class: ClassCell, Shape: shape, Data: out}, nil
}

func (st *decodeState) decodeStruct(shape Shape, tmpl *Value) (Value, error) {
	var tsd StructData
	var tmplFields map[string]*Value
	if tmpl != nil {
		sd, ok := tmpl.Data.(StructData)
		if !ok || len(sd.Fields) == 0 {
			return Value{}, codecErr(ErrEmptyValue, "template struct must be non-empty")
		}
		tsd = sd
		tmplFields = make(map[string]*Value, len(sd.Fields))
		for i, name := range sd.Fields {
			if len(sd.Values[i]) == 0 {
				tmplFields[name] = nil
			} else {
				tmplFields[name] = &sd.Values[i][0]
			}
		}
	}

	namesVal, err := st.decodeValue(nil)
	if err != nil {
		return Value{}, err
	}
	if namesVal.Class != ClassCell {
		return Value{}, codecErr(ErrInvalidStruct, "struct field-name list has class %s, want cell", namesVal.Class)
	}
	nameValues := namesVal.Data.([]Value)
	names := make([]string, len(nameValues))
	for i, nv := range nameValues {
		if nv.Class != ClassChar8 {
			return Value{}, codecErr(ErrInvalidStruct, "struct field name %d has class %s, want char8", i, nv.Class)
		}
		names[i] = string(nv.Data.(Char8))
	}

	n := shape.NumEl()
	decoded := make(map[string][]Value, len(names))
	matched := 0
	for _, name := range names {
		var fieldTmpl *Value
		if tmpl != nil {
			t, present := tmplFields[name]
			if !present {
				// Extra buffer field with no template counterpart: skip
				// its bytes, don't carry it into the result.
				if err := st.skipN(n); err != nil {
					return Value{}, err
				}
				continue
			}
			fieldTmpl = t
			matched++
		}
		vals := make([]Value, n)
		for j := 0; j < n; j++ {
			v, err := st.decodeValue(fieldTmpl)
			if err != nil {
				return Value{}, err
			}
			vals[j] = v
		}
		decoded[name] = vals
	}

	if tmpl == nil {
		sd := StructData{Fields: names, Values: make([][]Value, len(names))}
		for i, name := range names {
			sd.Values[i] = decoded[name]
		}
		return Value{Class: ClassStruct, Shape: shape, Data: sd}, nil
	}

	if matched == 0 {
		return Value{}, codecErr(ErrInvalidStruct, "no buffer field names matched the template")
	}

	// Extra template fields with no buffer counterpart are untouched:
	// they keep their original template values rather than being
	// dropped or re-decoded.
	out := StructData{Fields: append([]string(nil), tsd.Fields...), Values: make([][]Value, len(tsd.Fields))}
	for i, name := range tsd.Fields {
		if vals, ok := decoded[name]; ok {
			out.Values[i] = vals
		} else {
			out.Values[i] = tsd.Values[i]
		}
	}
	return Value{Class: ClassStruct, Shape: shape, Data: out}, nil
}

func (st *decodeState) decodeSparse(shape Shape, tmpl *Value) (Value, error) {
	if st.template {
		return Value{}, codecErr(ErrClassMismatch, "sparse values are not accepted in template mode")
	}
	idxVal, err := st.decodeValue(nil)
	if err != nil {
		return Value{}, err
	}
	idx, err := decodeSparseIndex(idxVal)
	if err != nil {
		return Value{}, err
	}
	nzv, err := st.decodeValue(nil)
	if err != nil {
		return Value{}, err
	}
	return Value{Class: ClassSparse, Shape: shape, Data: SparseData{Idx: idx, Nzv: nzv}}, nil
}

// skipN advances the cursor past n encoded values without
// interpreting them, via the skip walker (spec.md §4.4).
func (st *decodeState) skipN(n int) error {
	for i := 0; i < n; i++ {
		if err := skipValue(st.d); err != nil {
			return err
		}
	}
	return nil
}
