package tensor

import (
	"math/rand"
)

// numeric covers the element types that support arithmetic fills.
type numeric interface {
	~float32 | ~float64 | ~int32 | ~int64 | ~uint8
}

// Zeros creates a tensor filled with zeros.
//
// Example:
//
//	backend := cpu.New()
//	t := tensor.Zeros[float32](Shape{3, 4}, backend)
func Zeros[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	var dummy T
	dtype := inferDataType(dummy)

	raw, err := NewRaw(shape, dtype, b.Device())
	if err != nil {
		panic(err) // shape validation should prevent this
	}

	// Allocation is already zero-initialized.
	return New[T, B](raw, b)
}

// Ones creates a tensor filled with ones. For bool tensors every
// element is true.
func Ones[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return Full(shape, oneValue[T](), b)
}

func oneValue[T DType]() T {
	var v T
	switch p := any(&v).(type) {
	case *float32:
		*p = 1
	case *float64:
		*p = 1
	case *int32:
		*p = 1
	case *int64:
		*p = 1
	case *uint8:
		*p = 1
	case *bool:
		*p = true
	}
	return v
}

// Full creates a tensor with every element set to value.
func Full[T DType, B Backend](shape Shape, value T, b B) *Tensor[T, B] {
	t := Zeros[T, B](shape, b)
	data := t.Data()
	for i := range data {
		data[i] = value
	}
	return t
}

// Randn creates a tensor with values drawn from a standard normal
// distribution (mean 0, std 1). Float tensors only.
func Randn[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	t := Zeros[T, B](shape, b)
	switch data := any(t.Data()).(type) {
	case []float32:
		for i := range data {
			data[i] = float32(rand.NormFloat64())
		}
	case []float64:
		for i := range data {
			data[i] = rand.NormFloat64()
		}
	default:
		panic("randn: float tensors only")
	}
	return t
}

// Rand creates a tensor with values uniformly distributed in [0, 1).
// Float tensors only.
func Rand[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	t := Zeros[T, B](shape, b)
	switch data := any(t.Data()).(type) {
	case []float32:
		for i := range data {
			data[i] = rand.Float32()
		}
	case []float64:
		for i := range data {
			data[i] = rand.Float64()
		}
	default:
		panic("rand: float tensors only")
	}
	return t
}

// Arange creates a 1D tensor with values from start to end (exclusive),
// stepping by one. Fractional spans truncate toward zero.
//
// Example:
//
//	t := tensor.Arange[int32](0, 10, backend) // [0, 1, ..., 9]
func Arange[T DType, B Backend](start, end T, b B) *Tensor[T, B] {
	var n int
	switch s := any(start).(type) {
	case float32:
		n = spanLen(s, any(end).(float32))
	case float64:
		n = spanLen(s, any(end).(float64))
	case int32:
		n = spanLen(s, any(end).(int32))
	case int64:
		n = spanLen(s, any(end).(int64))
	case uint8:
		n = spanLen(s, any(end).(uint8))
	default:
		panic("arange: unsupported dtype")
	}
	if n <= 0 {
		panic("arange: end must be greater than start")
	}

	t := Zeros[T, B](Shape{n}, b)
	switch data := any(t.Data()).(type) {
	case []float32:
		fillRamp(data, any(start).(float32))
	case []float64:
		fillRamp(data, any(start).(float64))
	case []int32:
		fillRamp(data, any(start).(int32))
	case []int64:
		fillRamp(data, any(start).(int64))
	case []uint8:
		fillRamp(data, any(start).(uint8))
	}
	return t
}

func spanLen[T numeric](start, end T) int {
	return int(end - start)
}

func fillRamp[T numeric](data []T, start T) {
	for i := range data {
		data[i] = start + T(i)
	}
}
