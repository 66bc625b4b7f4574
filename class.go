package mxcodec

import "github.com/creachadair/mds/mapset"

// Class identifies the element type of a [Value]. Class codes are
// stable wire values (spec.md §3).
type Class uint8

const (
	ClassFloat64 Class = 1
	ClassFloat32 Class = 2
	ClassInt8    Class = 3
	ClassUint8   Class = 4
	ClassInt16   Class = 5
	ClassUint16  Class = 6
	ClassInt32   Class = 7
	ClassUint32  Class = 8
	ClassInt64   Class = 9
	ClassUint64  Class = 10
	ClassBool    Class = 11
	ClassChar8   Class = 12
	ClassChar16  Class = 13
	ClassCell    Class = 14
	ClassStruct  Class = 15
	ClassSparse  Class = 16
	ClassComplex Class = 17
)

// supportedClasses is the fixed set of valid wire class codes. It is
// used both by the encoder to reject values of an unrecognized class
// (unsupportedClass) and by the decoder to validate a parsed tag's
// class field (invalidTag).
var supportedClasses = mapset.New(
	ClassFloat64, ClassFloat32,
	ClassInt8, ClassUint8, ClassInt16, ClassUint16,
	ClassInt32, ClassUint32, ClassInt64, ClassUint64,
	ClassBool, ClassChar8, ClassChar16,
	ClassCell, ClassStruct, ClassSparse, ClassComplex,
)

// numericRealClasses is the set of classes with a fixed-width,
// directly-encodable real numeric representation (i.e. everything
// except boolean and the recursive and character classes).
var numericRealClasses = mapset.New(
	ClassFloat64, ClassFloat32,
	ClassInt8, ClassUint8, ClassInt16, ClassUint16,
	ClassInt32, ClassUint32, ClassInt64, ClassUint64,
)

var classNames = map[Class]string{
	ClassFloat64: "float64",
	ClassFloat32: "float32",
	ClassInt8:    "int8",
	ClassUint8:   "uint8",
	ClassInt16:   "int16",
	ClassUint16:  "uint16",
	ClassInt32:   "int32",
	ClassUint32:  "uint32",
	ClassInt64:   "int64",
	ClassUint64:  "uint64",
	ClassBool:    "bool",
	ClassChar8:   "char8",
	ClassChar16:  "char16",
	ClassCell:    "cell",
	ClassStruct:  "struct",
	ClassSparse:  "sparse",
	ClassComplex: "complex",
}

// String returns the class's wire name, e.g. "float64" or "struct".
func (c Class) String() string {
	if n, ok := classNames[c]; ok {
		return n
	}
	return "unknown"
}

// bytesPerElement maps a class to its fixed per-element wire size.
// Recursive classes (cell, struct, sparse, complex) have no fixed
// element size and are absent from the table.
var bytesPerElement = map[Class]int{
	ClassFloat64: 8,
	ClassFloat32: 4,
	ClassInt8:    1,
	ClassUint8:   1,
	ClassInt16:   2,
	ClassUint16:  2,
	ClassInt32:   4,
	ClassUint32:  4,
	ClassInt64:   8,
	ClassUint64:  8,
	ClassBool:    1,
	ClassChar8:   1,
	ClassChar16:  2,
}

// BytesPerElement returns the fixed-width size, in bytes, of one
// element of class c, and reports whether c has one. Recursive
// classes (cell, struct, sparse, complex) report ok == false.
func (c Class) BytesPerElement() (n int, ok bool) {
	n, ok = bytesPerElement[c]
	return n, ok
}

// IsNumericReal reports whether c is one of the ten real numeric
// element classes.
func (c Class) IsNumericReal() bool {
	return numericRealClasses.Has(c)
}

// IsChar reports whether c is char8 or char16.
func (c Class) IsChar() bool {
	return c == ClassChar8 || c == ClassChar16
}

// IsRecursive reports whether values of class c carry nested child
// values rather than a flat element array.
func (c Class) IsRecursive() bool {
	switch c {
	case ClassCell, ClassStruct, ClassSparse, ClassComplex:
		return true
	default:
		return false
	}
}
