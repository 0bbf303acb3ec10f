package tensor

import (
	"math"
	"testing"
)

func TestZeros(t *testing.T) {
	backend := NewMockBackend()

	t.Run("Float32", func(t *testing.T) {
		tr := Zeros[float32](Shape{3, 4}, backend)
		assertEqualShape(t, Shape{3, 4}, tr.Shape(), "Zeros shape")
		for i, v := range tr.Data() {
			if v != 0 {
				t.Fatalf("element %d = %v, want 0", i, v)
			}
		}
	})

	t.Run("Int64", func(t *testing.T) {
		tr := Zeros[int64](Shape{5}, backend)
		for i, v := range tr.Data() {
			if v != 0 {
				t.Fatalf("element %d = %v, want 0", i, v)
			}
		}
	})
}

func TestOnes(t *testing.T) {
	backend := NewMockBackend()

	t.Run("Float32", func(t *testing.T) {
		tr := Ones[float32](Shape{2, 3}, backend)
		for i, v := range tr.Data() {
			if v != 1 {
				t.Fatalf("element %d = %v, want 1", i, v)
			}
		}
	})

	t.Run("Uint8", func(t *testing.T) {
		tr := Ones[uint8](Shape{4}, backend)
		for i, v := range tr.Data() {
			if v != 1 {
				t.Fatalf("element %d = %v, want 1", i, v)
			}
		}
	})

	t.Run("Bool", func(t *testing.T) {
		tr := Ones[bool](Shape{2, 2}, backend)
		for i, v := range tr.Data() {
			if !v {
				t.Fatalf("element %d = false, want true", i)
			}
		}
	})
}

func TestFull(t *testing.T) {
	backend := NewMockBackend()

	t.Run("Float32", func(t *testing.T) {
		tr := Full(Shape{2, 2}, float32(3.5), backend)
		for i, v := range tr.Data() {
			if v != 3.5 {
				t.Fatalf("element %d = %v, want 3.5", i, v)
			}
		}
	})

	t.Run("Int64", func(t *testing.T) {
		tr := Full(Shape{3}, int64(-7), backend)
		for i, v := range tr.Data() {
			if v != -7 {
				t.Fatalf("element %d = %v, want -7", i, v)
			}
		}
	})
}

func TestRandn(t *testing.T) {
	backend := NewMockBackend()

	// 3*64*64 samples keep the moment estimates tight enough that the
	// bounds below are far outside sampling noise.
	tr := Randn[float32](Shape{64, 192}, backend)
	assertEqualShape(t, Shape{64, 192}, tr.Shape(), "Randn shape")

	data := tr.Data()
	var sum float64
	for _, v := range data {
		sum += float64(v)
	}
	mean := sum / float64(len(data))
	if math.Abs(mean) > 0.1 {
		t.Errorf("sample mean = %v, want |mean| <= 0.1", mean)
	}

	var sumSq float64
	for _, v := range data {
		d := float64(v) - mean
		sumSq += d * d
	}
	std := math.Sqrt(sumSq / float64(len(data)))
	if math.Abs(std-1) > 0.1 {
		t.Errorf("sample std = %v, want within 0.1 of 1", std)
	}
}

func TestRandnFloat64(t *testing.T) {
	backend := NewMockBackend()

	tr := Randn[float64](Shape{50, 40}, backend)
	nonZero := 0
	for _, v := range tr.Data() {
		if v != 0 {
			nonZero++
		}
	}
	if nonZero < tr.NumElements()/2 {
		t.Errorf("only %d of %d samples non-zero", nonZero, tr.NumElements())
	}
}

func TestRandnIntPanics(t *testing.T) {
	backend := NewMockBackend()
	mustPanic(t, "Randn[int32]", func() { Randn[int32](Shape{2}, backend) })
}

func TestRand(t *testing.T) {
	backend := NewMockBackend()

	tr := Rand[float32](Shape{100, 50}, backend)
	data := tr.Data()
	for i, v := range data {
		if v < 0 || v >= 1 {
			t.Fatalf("element %d = %v, want [0, 1)", i, v)
		}
	}

	allSame := true
	for _, v := range data[1:] {
		if v != data[0] {
			allSame = false
			break
		}
	}
	if allSame {
		t.Error("all samples identical")
	}
}

func TestRandFloat64(t *testing.T) {
	backend := NewMockBackend()

	tr := Rand[float64](Shape{200}, backend)
	for i, v := range tr.Data() {
		if v < 0 || v >= 1 {
			t.Fatalf("element %d = %v, want [0, 1)", i, v)
		}
	}
}

func TestRandIntPanics(t *testing.T) {
	backend := NewMockBackend()
	mustPanic(t, "Rand[int64]", func() { Rand[int64](Shape{2}, backend) })
}

func TestArange(t *testing.T) {
	backend := NewMockBackend()

	t.Run("Int32", func(t *testing.T) {
		tr := Arange[int32](0, 10, backend)
		assertEqualShape(t, Shape{10}, tr.Shape(), "Arange shape")
		for i, v := range tr.Data() {
			if v != int32(i) {
				t.Fatalf("element %d = %d, want %d", i, v, i)
			}
		}
	})

	t.Run("Int64Offset", func(t *testing.T) {
		tr := Arange[int64](5, 10, backend)
		want := []int64{5, 6, 7, 8, 9}
		for i, v := range tr.Data() {
			if v != want[i] {
				t.Fatalf("element %d = %d, want %d", i, v, want[i])
			}
		}
	})

	t.Run("Float32", func(t *testing.T) {
		tr := Arange[float32](2, 7, backend)
		want := []float32{2, 3, 4, 5, 6}
		for i, v := range tr.Data() {
			if v != want[i] {
				t.Fatalf("element %d = %v, want %v", i, v, want[i])
			}
		}
	})
}

func TestArangePanics(t *testing.T) {
	backend := NewMockBackend()

	mustPanic(t, "empty range", func() { Arange[int32](3, 3, backend) })
	mustPanic(t, "reversed range", func() { Arange[int32](5, 2, backend) })
	mustPanic(t, "bool dtype", func() { Arange[bool](false, true, backend) })
}
