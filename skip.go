package mxcodec

import (
	"github.com/creachadair/mds/mapset"
	"github.com/mxbin/mxcodec/wire"
)

// unsignedIndexClasses is the expected-class-set a sparse index
// vector's tag must belong to, consulted by skipValue the way
// spec.md §9 describes the skip walker: "a dedicated routine ...
// parameterized by an expected-class-set".
var unsignedIndexClasses = mapset.New(ClassUint8, ClassUint16, ClassUint32)

// numericOrBoolClasses is the expected-class-set a sparse non-zero
// value vector's tag must belong to.
var numericOrBoolClasses = mapset.New(
	ClassFloat64, ClassFloat32,
	ClassInt8, ClassUint8, ClassInt16, ClassUint16,
	ClassInt32, ClassUint32, ClassInt64, ClassUint64,
	ClassBool, ClassComplex,
)

// skipValue advances d's cursor past one encoded value without
// interpreting its payload, for struct fields present in the buffer
// but absent from a decode template (spec.md §4.4). It validates only
// structural consistency: that each tag's class is one this walker
// expects at that position.
func skipValue(d *wire.Decoder) error {
	_, err := skipOne(d, supportedClasses)
	return err
}

// skipOne skips a single tagged value, requiring its class to be a
// member of expected. It returns the element count of a skipped cell
// (used by the struct case below to recover the field count from the
// field-name cell), which is meaningless for other classes.
func skipOne(d *wire.Decoder, expected mapset.Set[Class]) (int, error) {
	tagByte, err := d.Uint8()
	if err != nil {
		return 0, codecErr(ErrCorruptBuf, "skip: reading tag: %v", err)
	}
	class, fmtSel := splitTag(tagByte)
	if !expected.Has(class) {
		return 0, codecErr(ErrCorruptBuf, "skip: class %s not in expected set", class)
	}

	n, err := skipShape(d, fmtSel)
	if err != nil {
		return 0, err
	}

	switch class {
	case ClassCell:
		for i := 0; i < n; i++ {
			if _, err := skipOne(d, supportedClasses); err != nil {
				return 0, err
			}
		}
		return n, nil
	case ClassStruct:
		fieldCount, err := skipOne(d, mapset.New(ClassCell))
		if err != nil {
			return 0, err
		}
		for i := 0; i < fieldCount*n; i++ {
			if _, err := skipOne(d, supportedClasses); err != nil {
				return 0, err
			}
		}
		return n, nil
	case ClassSparse:
		if _, err := skipOne(d, unsignedIndexClasses); err != nil {
			return 0, err
		}
		if _, err := skipOne(d, numericOrBoolClasses); err != nil {
			return 0, err
		}
		return n, nil
	case ClassComplex:
		innerTag, err := d.Uint8()
		if err != nil {
			return 0, codecErr(ErrCorruptBuf, "skip: reading complex inner tag: %v", err)
		}
		realClass, _ := splitTag(innerTag)
		if !realClass.IsNumericReal() {
			return 0, codecErr(ErrCorruptBuf, "skip: complex inner class %s is not numeric real", realClass)
		}
		width, _ := realClass.BytesPerElement()
		if _, err := d.Read(2 * n * width); err != nil {
			return 0, codecErr(ErrCorruptBuf, "skip: complex payload: %v", err)
		}
		return n, nil
	default:
		width, ok := class.BytesPerElement()
		if !ok {
			return 0, codecErr(ErrCorruptBuf, "skip: class %s has no fixed width", class)
		}
		if _, err := d.Read(n * width); err != nil {
			return 0, codecErr(ErrCorruptBuf, "skip: payload: %v", err)
		}
		return n, nil
	}
}

// skipShape mirrors decodeState.readShape but only needs the
// resulting element count, and always allows general (>2-D) shapes,
// even though the skip walker only runs from template-mode struct
// decoding: skipped fields are never checked against a template.
func skipShape(d *wire.Decoder, fmtSel sizeFormat) (int, error) {
	switch fmtSel {
	case fmtScalar:
		return 1, nil
	case fmtEmpty:
		return 0, nil
	case fmtColumn:
		m, err := d.Uint8()
		return int(m), err
	case fmtRow:
		n, err := d.Uint8()
		return int(n), err
	case fmtMatrix:
		m, err := d.Uint8()
		if err != nil {
			return 0, err
		}
		n, err := d.Uint8()
		if err != nil {
			return 0, err
		}
		return int(m) * int(n), nil
	case fmtGeneral8, fmtGeneral16, fmtGeneral32:
		ndims, err := d.Uint8()
		if err != nil {
			return 0, err
		}
		if ndims < 2 {
			return 0, codecErr(ErrInvalidTag, "general shape has %d dimensions, must be >= 2", ndims)
		}
		total := 1
		for i := 0; i < int(ndims); i++ {
			var dim int
			switch fmtSel {
			case fmtGeneral8:
				b, err := d.Uint8()
				if err != nil {
					return 0, err
				}
				dim = int(b)
			case fmtGeneral16:
				b, err := d.Uint16()
				if err != nil {
					return 0, err
				}
				dim = int(b)
			default:
				b, err := d.Uint32()
				if err != nil {
					return 0, err
				}
				dim = int(b)
			}
			total *= dim
		}
		return total, nil
	default:
		return 0, codecErr(ErrInvalidTag, "unknown size format %d", fmtSel)
	}
}
