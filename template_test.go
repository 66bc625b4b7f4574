package mxcodec_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mxbin/mxcodec"
)

func TestDecodeIntoStructFieldSubset(t *testing.T) {
	buf, err := mxcodec.Encode(mxcodec.Value{
		Class: mxcodec.ClassStruct,
		Shape: mxcodec.ScalarShape(),
		Data: mxcodec.StructData{
			Fields: []string{"a", "b", "c"},
			Values: [][]mxcodec.Value{
				{mxcodec.Float64Scalar(1)},
				{mxcodec.Float64Scalar(2)},
				{mxcodec.Float64Scalar(3)},
			},
		},
	}, mxcodec.EncodeOptions{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	tmpl := mxcodec.Value{
		Class: mxcodec.ClassStruct,
		Shape: mxcodec.ScalarShape(),
		Data: mxcodec.StructData{
			Fields: []string{"b"},
			Values: [][]mxcodec.Value{{mxcodec.Float64Scalar(0)}},
		},
	}
	if err := mxcodec.DecodeInto(buf, &tmpl, mxcodec.DecodeOptions{}); err != nil {
		t.Fatalf("DecodeInto: %v", err)
	}
	sd := tmpl.Data.(mxcodec.StructData)
	if diff := cmp.Diff([]string{"b"}, sd.Fields); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}
	if v := sd.Values[0][0].Data.([]float64)[0]; v != 2 {
		t.Errorf("field b = %v, want 2", v)
	}
}

// TestDecodeIntoStructFieldSuperset covers the reverse case: the
// template names a field the buffer doesn't have. That field must
// survive in the result with its original template value, untouched,
// rather than being dropped.
func TestDecodeIntoStructFieldSuperset(t *testing.T) {
	buf, err := mxcodec.Encode(mxcodec.Value{
		Class: mxcodec.ClassStruct,
		Shape: mxcodec.ScalarShape(),
		Data: mxcodec.StructData{
			Fields: []string{"a"},
			Values: [][]mxcodec.Value{{mxcodec.Float64Scalar(1)}},
		},
	}, mxcodec.EncodeOptions{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	tmpl := mxcodec.Value{
		Class: mxcodec.ClassStruct,
		Shape: mxcodec.ScalarShape(),
		Data: mxcodec.StructData{
			Fields: []string{"a", "extra"},
			Values: [][]mxcodec.Value{
				{mxcodec.Float64Scalar(0)},
				{mxcodec.Float64Scalar(99)},
			},
		},
	}
	if err := mxcodec.DecodeInto(buf, &tmpl, mxcodec.DecodeOptions{}); err != nil {
		t.Fatalf("DecodeInto: %v", err)
	}
	sd := tmpl.Data.(mxcodec.StructData)
	if diff := cmp.Diff([]string{"a", "extra"}, sd.Fields); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}
	if v := sd.Values[0][0].Data.([]float64)[0]; v != 1 {
		t.Errorf("field a = %v, want 1 (decoded from buffer)", v)
	}
	if v := sd.Values[1][0].Data.([]float64)[0]; v != 99 {
		t.Errorf("field extra = %v, want 99 (untouched template value)", v)
	}
}

func TestDecodeIntoStructNoMatchFails(t *testing.T) {
	buf, err := mxcodec.Encode(mxcodec.Value{
		Class: mxcodec.ClassStruct,
		Shape: mxcodec.ScalarShape(),
		Data: mxcodec.StructData{
			Fields: []string{"a"},
			Values: [][]mxcodec.Value{{mxcodec.Float64Scalar(1)}},
		},
	}, mxcodec.EncodeOptions{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	tmpl := mxcodec.Value{
		Class: mxcodec.ClassStruct,
		Shape: mxcodec.ScalarShape(),
		Data: mxcodec.StructData{
			Fields: []string{"z"},
			Values: [][]mxcodec.Value{{mxcodec.Float64Scalar(0)}},
		},
	}
	err = mxcodec.DecodeInto(buf, &tmpl, mxcodec.DecodeOptions{})
	if !errors.Is(err, mxcodec.ErrInvalidStruct) {
		t.Fatalf("err = %v, want ErrInvalidStruct", err)
	}
}

func TestDecodeIntoClassMismatch(t *testing.T) {
	buf, err := mxcodec.Encode(mxcodec.Float64Scalar(1.0), mxcodec.EncodeOptions{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	tmpl := mxcodec.BoolScalar(false)
	err = mxcodec.DecodeInto(buf, &tmpl, mxcodec.DecodeOptions{})
	if !errors.Is(err, mxcodec.ErrClassMismatch) {
		t.Fatalf("err = %v, want ErrClassMismatch", err)
	}
}

func TestDecodeIntoCharInterchangeable(t *testing.T) {
	buf, err := mxcodec.Encode(mxcodec.Char8String("hi"), mxcodec.EncodeOptions{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	tmpl := mxcodec.Value{Class: mxcodec.ClassChar16, Shape: mxcodec.RowShape(2), Data: mxcodec.Char16{}}
	if err := mxcodec.DecodeInto(buf, &tmpl, mxcodec.DecodeOptions{}); err != nil {
		t.Fatalf("DecodeInto with char8 buffer vs char16 template should succeed: %v", err)
	}
}

func TestDecodeIntoSparseRejected(t *testing.T) {
	buf, err := mxcodec.Encode(mxcodec.Value{
		Class: mxcodec.ClassSparse,
		Shape: mxcodec.MatrixShape(3, 3),
		Data: mxcodec.SparseData{
			Idx: []int{1},
			Nzv: mxcodec.Float64Vector([]float64{1}),
		},
	}, mxcodec.EncodeOptions{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	tmpl := mxcodec.Value{Class: mxcodec.ClassSparse, Shape: mxcodec.MatrixShape(3, 3)}
	err = mxcodec.DecodeInto(buf, &tmpl, mxcodec.DecodeOptions{})
	if !errors.Is(err, mxcodec.ErrClassMismatch) {
		t.Fatalf("err = %v, want ErrClassMismatch", err)
	}
}

func TestDecodeIntoNumelBound(t *testing.T) {
	big := make([]float64, mxcodec.DefaultNumericBound+1)
	buf, err := mxcodec.Encode(mxcodec.Float64Vector(big), mxcodec.EncodeOptions{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	tmpl := mxcodec.Float64Vector([]float64{0})
	err = mxcodec.DecodeInto(buf, &tmpl, mxcodec.DecodeOptions{})
	if !errors.Is(err, mxcodec.ErrNumelLimit) {
		t.Fatalf("err = %v, want ErrNumelLimit", err)
	}
}

func TestDecodeIntoScalarSizeMismatch(t *testing.T) {
	buf, err := mxcodec.Encode(mxcodec.Float64Vector([]float64{1, 2}), mxcodec.EncodeOptions{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	tmpl := mxcodec.Float64Scalar(0)
	err = mxcodec.DecodeInto(buf, &tmpl, mxcodec.DecodeOptions{})
	if !errors.Is(err, mxcodec.ErrSizeMismatch) {
		t.Fatalf("err = %v, want ErrSizeMismatch", err)
	}
}

func TestDecodeIntoNilTemplate(t *testing.T) {
	buf, err := mxcodec.Encode(mxcodec.Float64Scalar(1.0), mxcodec.EncodeOptions{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	err = mxcodec.DecodeInto(buf, nil, mxcodec.DecodeOptions{})
	if !errors.Is(err, mxcodec.ErrEmptyValue) {
		t.Fatalf("err = %v, want ErrEmptyValue", err)
	}
}

func TestDecodeIntoGeneralShapeRejected(t *testing.T) {
	buf, err := mxcodec.Encode(mxcodec.Value{
		Class: mxcodec.ClassFloat64,
		Shape: mxcodec.Shape{2, 2, 2},
		Data:  make([]float64, 8),
	}, mxcodec.EncodeOptions{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	tmpl := mxcodec.Float64Vector([]float64{0})
	err = mxcodec.DecodeInto(buf, &tmpl, mxcodec.DecodeOptions{})
	if !errors.Is(err, mxcodec.ErrNdimsLimit) {
		t.Fatalf("err = %v, want ErrNdimsLimit", err)
	}
}
