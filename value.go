package mxcodec

// A Value is a self-describing, possibly-nested value drawn from the
// mxcodec type universe (spec.md §3): numeric arrays of ten widths,
// booleans, char8/char16 strings, cells, structs, sparse vectors, and
// complex numbers.
//
// Class selects which field of Data is meaningful:
//
//	ClassFloat64            []float64
//	ClassFloat32            []float32
//	ClassInt8 ... ClassUint64   []int8 ... []uint64
//	ClassBool                []bool
//	ClassChar8                Char8
//	ClassChar16               Char16
//	ClassCell                []Value
//	ClassStruct               StructData
//	ClassSparse                SparseData
//	ClassComplex               ComplexData
//
// A Value is ephemeral: constructed by the caller (to encode) or by
// [Decode]/[DecodeInto] (the decoded result). [Encode] never mutates
// its input.
type Value struct {
	Class Class
	Shape Shape
	Data  any
}

// Char8 is the payload of a [ClassChar8] value: one byte (0-255) per
// character.
type Char8 []byte

// Char16 is the payload of a [ClassChar16] value: one uint16
// (0-65535) per character.
type Char16 []uint16

// StructData is the payload of a [ClassStruct] value.
//
// Fields holds the struct's field names, each a char8 string of
// length at most 63 bytes (spec.md §3). Values holds, for each field
// in Fields, the N child values of that field, where N is the struct's
// own element count (s.Shape.NumEl()). len(Values) == len(Fields) and
// len(Values[i]) == N for every i.
type StructData struct {
	Fields []string
	Values [][]Value
}

// SparseData is the payload of a [ClassSparse] value.
//
// Idx holds the 1-based linear positions (in the codec's fixed
// column-major element order) of the non-zero entries, in ascending
// order. Nzv holds the corresponding non-zero values, one per entry
// of Idx, as a float64, bool, or complex vector value.
type SparseData struct {
	Idx []int
	Nzv Value
}

// ComplexData is the payload of a [ClassComplex] value.
//
// Real and Imag are numeric-real values of the same class and shape,
// equal to the outer complex value's shape.
type ComplexData struct {
	Real Value
	Imag Value
}

// Scalar returns a scalar (1x1) value of class c wrapping data, which
// must be the single-element slice/struct appropriate to c.
func Scalar(c Class, data any) Value {
	return Value{Class: c, Shape: ScalarShape(), Data: data}
}

// Float64Scalar returns a scalar float64 value.
func Float64Scalar(f float64) Value {
	return Scalar(ClassFloat64, []float64{f})
}

// Float64Vector returns a column-vector float64 value with the given
// elements.
func Float64Vector(v []float64) Value {
	return Value{Class: ClassFloat64, Shape: ColShape(len(v)), Data: v}
}

// Float64Matrix returns an MxN float64 value in column-major order.
func Float64Matrix(m, n int, v []float64) Value {
	return Value{Class: ClassFloat64, Shape: MatrixShape(m, n), Data: v}
}

// BoolScalar returns a scalar boolean value.
func BoolScalar(b bool) Value {
	return Scalar(ClassBool, []bool{b})
}

// Char8String returns a 1xN char8 row value from a Go string, which
// must contain only bytes 0-255 (i.e. it is treated as a raw byte
// string, not decoded as UTF-8).
func Char8String(s string) Value {
	return Value{Class: ClassChar8, Shape: RowShape(len(s)), Data: Char8(s)}
}

// Cell returns a cell value holding the given children, shaped as a
// 1xN row.
func Cell(children ...Value) Value {
	return Value{Class: ClassCell, Shape: RowShape(len(children)), Data: children}
}

// EmptyValue returns the normalized-empty (0x0) value of class c.
func EmptyValue(c Class) Value {
	return Value{Class: c, Shape: EmptyShape(), Data: emptyData(c)}
}

func emptyData(c Class) any {
	switch c {
	case ClassFloat64:
		return []float64{}
	case ClassFloat32:
		return []float32{}
	case ClassInt8:
		return []int8{}
	case ClassUint8:
		return []uint8{}
	case ClassInt16:
		return []int16{}
	case ClassUint16:
		return []uint16{}
	case ClassInt32:
		return []int32{}
	case ClassUint32:
		return []uint32{}
	case ClassInt64:
		return []int64{}
	case ClassUint64:
		return []uint64{}
	case ClassBool:
		return []bool{}
	case ClassChar8:
		return Char8{}
	case ClassChar16:
		return Char16{}
	case ClassCell:
		return []Value{}
	default:
		return nil
	}
}
