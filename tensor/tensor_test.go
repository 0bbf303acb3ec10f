// Copyright 2025 The ODL Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"testing"

	"github.com/scottkang123/online-deep-learning/internal/backend/cpu"
	"github.com/scottkang123/online-deep-learning/tensor"
)

var _ tensor.Backend = (*cpu.CPUBackend)(nil)

func checkShape(t *testing.T, got, want tensor.Shape) {
	t.Helper()
	if !got.Equal(want) {
		t.Fatalf("shape = %v, want %v", got, want)
	}
}

func TestCreationFunctions(t *testing.T) {
	backend := cpu.New()

	t.Run("Zeros", func(t *testing.T) {
		z := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
		checkShape(t, z.Shape(), tensor.Shape{2, 3})
		for i, v := range z.Data() {
			if v != 0 {
				t.Fatalf("element %d = %v, want 0", i, v)
			}
		}
	})

	t.Run("Ones", func(t *testing.T) {
		o := tensor.Ones[float32](tensor.Shape{4}, backend)
		for i, v := range o.Data() {
			if v != 1 {
				t.Fatalf("element %d = %v, want 1", i, v)
			}
		}
	})

	t.Run("Full", func(t *testing.T) {
		f := tensor.Full[float32](tensor.Shape{2, 2}, 3.14, backend)
		for i, v := range f.Data() {
			if v != 3.14 {
				t.Fatalf("element %d = %v, want 3.14", i, v)
			}
		}
	})

	t.Run("Arange", func(t *testing.T) {
		a := tensor.Arange[int64](0, 6, backend)
		checkShape(t, a.Shape(), tensor.Shape{6})
		for i, v := range a.Data() {
			if v != int64(i) {
				t.Fatalf("element %d = %v, want %d", i, v, i)
			}
		}
	})

	t.Run("Rand", func(t *testing.T) {
		r := tensor.Rand[float32](tensor.Shape{20}, backend)
		for i, v := range r.Data() {
			if v < 0 || v >= 1 {
				t.Fatalf("element %d = %v, want value in [0, 1)", i, v)
			}
		}
	})

	t.Run("Randn", func(t *testing.T) {
		r := tensor.Randn[float32](tensor.Shape{3, 5}, backend)
		checkShape(t, r.Shape(), tensor.Shape{3, 5})
		if len(r.Data()) != 15 {
			t.Fatalf("Data() length = %d, want 15", len(r.Data()))
		}
	})

	t.Run("FromSlice", func(t *testing.T) {
		x, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, backend)
		if err != nil {
			t.Fatalf("FromSlice: %v", err)
		}
		if got := x.At(1, 2); got != 6 {
			t.Errorf("At(1, 2) = %v, want 6", got)
		}
	})

	t.Run("FromSliceLengthMismatch", func(t *testing.T) {
		if _, err := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{2, 3}, backend); err == nil {
			t.Fatal("want error for 3 elements into shape [2 3]")
		}
	})
}

func TestRawTensorThroughFacade(t *testing.T) {
	raw, err := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float32, tensor.CPU)
	if err != nil {
		t.Fatalf("NewRaw: %v", err)
	}

	checkShape(t, raw.Shape(), tensor.Shape{2, 3})
	if raw.DType() != tensor.Float32 {
		t.Errorf("DType() = %v, want Float32", raw.DType())
	}
	if raw.Device() != tensor.CPU {
		t.Errorf("Device() = %v, want CPU", raw.Device())
	}
	if got, want := raw.NumElements(), 6; got != want {
		t.Errorf("NumElements() = %d, want %d", got, want)
	}
	if got, want := raw.ByteSize(), 24; got != want {
		t.Errorf("ByteSize() = %d, want %d", got, want)
	}
	if got := len(raw.Data()); got != raw.ByteSize() {
		t.Errorf("len(Data()) = %d, want %d", got, raw.ByteSize())
	}
	if got := len(raw.AsFloat32()); got != 6 {
		t.Errorf("len(AsFloat32()) = %d, want 6", got)
	}
}

func TestRawTensorBufferSharing(t *testing.T) {
	raw, err := tensor.NewRaw(tensor.Shape{4}, tensor.Float32, tensor.CPU)
	if err != nil {
		t.Fatalf("NewRaw: %v", err)
	}

	if !raw.IsUnique() {
		t.Fatal("fresh tensor should own its buffer")
	}
	clone := raw.Clone()
	if raw.IsUnique() {
		t.Error("buffer still reported unique after Clone")
	}
	clone.Release()
	if !raw.IsUnique() {
		t.Error("buffer not reclaimed after the clone released it")
	}
}

func TestOpsComposeThroughFacade(t *testing.T) {
	backend := cpu.New()

	x, err := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	y := tensor.Ones[float32](tensor.Shape{2, 2}, backend)

	sum := x.Add(y)
	for i, want := range []float32{2, 3, 4, 5} {
		if got := sum.Data()[i]; got != want {
			t.Errorf("Add element %d = %v, want %v", i, got, want)
		}
	}

	// Each row of x multiplied into a column of ones sums the row.
	prod := x.MatMul(y)
	checkShape(t, prod.Shape(), tensor.Shape{2, 2})
	for i, want := range []float32{3, 3, 7, 7} {
		if got := prod.Data()[i]; got != want {
			t.Errorf("MatMul element %d = %v, want %v", i, got, want)
		}
	}
}

func TestDataTypeNames(t *testing.T) {
	names := map[tensor.DataType]string{
		tensor.Float32: "float32",
		tensor.Float64: "float64",
		tensor.Int32:   "int32",
		tensor.Int64:   "int64",
		tensor.Uint8:   "uint8",
		tensor.Bool:    "bool",
	}
	for dtype, want := range names {
		if got := dtype.String(); got != want {
			t.Errorf("DataType.String() = %q, want %q", got, want)
		}
	}
	if got := tensor.CPU.String(); got != "CPU" {
		t.Errorf("Device.String() = %q, want %q", got, "CPU")
	}
}
