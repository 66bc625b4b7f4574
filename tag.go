package mxcodec

import "math"

// sizeFormat is the high-3-bit field of a tag byte, selecting how the
// value's shape is encoded (spec.md §4.1).
type sizeFormat uint8

const (
	fmtScalar    sizeFormat = 0
	fmtColumn    sizeFormat = 1
	fmtRow       sizeFormat = 2
	fmtMatrix    sizeFormat = 3
	fmtEmpty     sizeFormat = 4
	fmtGeneral8  sizeFormat = 5
	fmtGeneral16 sizeFormat = 6
	fmtGeneral32 sizeFormat = 7
)

const classBits = 5 // low 5 bits of the tag byte hold the class code

func makeTag(class Class, fmtSel sizeFormat) byte {
	return byte(class)&0x1F | byte(fmtSel)<<classBits
}

func splitTag(tag byte) (class Class, fmtSel sizeFormat) {
	return Class(tag & 0x1F), sizeFormat(tag >> classBits)
}

// chooseShapeFormat picks the size format and, for the general forms,
// the dimension width mxcodec's encoder uses for shape s.
func chooseShapeFormat(s Shape) (sizeFormat, error) {
	if s.IsScalar() {
		return fmtScalar, nil
	}
	if s.IsNormalizedEmpty() {
		return fmtEmpty, nil
	}
	if len(s) > 255 {
		return 0, codecErr(ErrNdimsLimit, "shape has %d dimensions, limit is 255", len(s))
	}
	if s.IsMatrix2D() && s.Max() < 256 {
		switch {
		case s[1] == 1:
			return fmtColumn, nil
		case s[0] == 1:
			return fmtRow, nil
		default:
			return fmtMatrix, nil
		}
	}
	switch max := s.Max(); {
	case max < 1<<8:
		return fmtGeneral8, nil
	case max < 1<<16:
		return fmtGeneral16, nil
	case max <= math.MaxInt32:
		return fmtGeneral32, nil
	default:
		return 0, codecErr(ErrNumelLimit, "dimension %d exceeds INT32_MAX", max)
	}
}
