package mxcodec

// narrowestUnsignedClass returns the narrowest of uint8/uint16/uint32
// whose range covers max, per spec.md §3's sparse index width rule.
func narrowestUnsignedClass(max int) Class {
	switch {
	case max <= 0xFF:
		return ClassUint8
	case max <= 0xFFFF:
		return ClassUint16
	default:
		return ClassUint32
	}
}

// encodeSparseIndex builds the numeric index vector value for a
// sparse's Idx slice, choosing the narrowest width that covers the
// largest index, as an empty uint8 vector when idx is empty.
func encodeSparseIndex(idx []int) Value {
	if len(idx) == 0 {
		return EmptyValue(ClassUint8)
	}
	max := 0
	for _, i := range idx {
		if i > max {
			max = i
		}
	}
	class := narrowestUnsignedClass(max)
	shape := ColShape(len(idx))
	switch class {
	case ClassUint8:
		data := make([]uint8, len(idx))
		for i, v := range idx {
			data[i] = uint8(v)
		}
		return Value{Class: class, Shape: shape, Data: data}
	case ClassUint16:
		data := make([]uint16, len(idx))
		for i, v := range idx {
			data[i] = uint16(v)
		}
		return Value{Class: class, Shape: shape, Data: data}
	default:
		data := make([]uint32, len(idx))
		for i, v := range idx {
			data[i] = uint32(v)
		}
		return Value{Class: class, Shape: shape, Data: data}
	}
}

// decodeSparseIndex reads back the 1-based linear positions encoded
// by encodeSparseIndex.
func decodeSparseIndex(v Value) ([]int, error) {
	switch v.Class {
	case ClassUint8:
		data := v.Data.([]uint8)
		idx := make([]int, len(data))
		for i, b := range data {
			idx[i] = int(b)
		}
		return idx, nil
	case ClassUint16:
		data := v.Data.([]uint16)
		idx := make([]int, len(data))
		for i, b := range data {
			idx[i] = int(b)
		}
		return idx, nil
	case ClassUint32:
		data := v.Data.([]uint32)
		idx := make([]int, len(data))
		for i, b := range data {
			idx[i] = int(b)
		}
		return idx, nil
	default:
		return nil, codecErr(ErrCorruptBuf, "sparse index vector has non-unsigned class %s", v.Class)
	}
}

// SparseFloat64 builds a sparse Value from a dense float64 array,
// computing its nonzero coordinates and values the way the encoder's
// sparse payload does (spec.md §4.2: "Compute idx = find-nonzero(value)").
func SparseFloat64(shape Shape, dense []float64) Value {
	idx, nzv := findNonZeroFloat64(dense)
	return Value{Class: ClassSparse, Shape: shape, Data: SparseData{Idx: idx, Nzv: Float64Vector(nzv)}}
}

// SparseBool builds a sparse Value from a dense boolean array, keeping
// only the true entries as its nonzero values.
func SparseBool(shape Shape, dense []bool) Value {
	idx, nzv := findNonZeroBool(dense)
	return Value{Class: ClassSparse, Shape: shape, Data: SparseData{Idx: idx, Nzv: Value{Class: ClassBool, Shape: ColShape(len(nzv)), Data: nzv}}}
}

// findNonZeroFloat64 returns the 1-based linear positions of non-zero
// entries in v (column-major, matching the encoder's fixed element
// order) and their values.
func findNonZeroFloat64(v []float64) (idx []int, nzv []float64) {
	for i, x := range v {
		if x != 0 {
			idx = append(idx, i+1)
			nzv = append(nzv, x)
		}
	}
	return idx, nzv
}

// findNonZeroBool returns the 1-based linear positions of true
// entries in v.
func findNonZeroBool(v []bool) (idx []int, nzv []bool) {
	for i, x := range v {
		if x {
			idx = append(idx, i+1)
			nzv = append(nzv, x)
		}
	}
	return idx, nzv
}
