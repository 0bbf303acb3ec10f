package cpu

import (
	"fmt"

	"github.com/scottkang123/online-deep-learning/internal/tensor"
)

// Element-wise operations against a scalar. The scalar's dynamic type must
// match the tensor's dtype; mixing types is a programmer error and panics.

func addScalarInto[T number](dst, src []T, s T) {
	for i := range dst {
		dst[i] = src[i] + s
	}
}

func subScalarInto[T number](dst, src []T, s T) {
	for i := range dst {
		dst[i] = src[i] - s
	}
}

func mulScalarInto[T number](dst, src []T, s T) {
	for i := range dst {
		dst[i] = src[i] * s
	}
}

func divScalarInto[T number](dst, src []T, s T) {
	for i := range dst {
		dst[i] = src[i] / s
	}
}

// scalarOf asserts the scalar's dynamic type against the kernel element type.
func scalarOf[T number](op string, v any) T {
	s, ok := v.(T)
	if !ok {
		panic(fmt.Sprintf("%s: scalar type %T does not match tensor dtype", op, v))
	}
	return s
}

// AddScalar adds a scalar value to each element.
func (cpu *CPUBackend) AddScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	result := cpu.newResult("addScalar", x.Shape(), x.DType())
	switch x.DType() {
	case tensor.Float32:
		addScalarInto(result.AsFloat32(), x.AsFloat32(), scalarOf[float32]("addScalar", scalar))
	case tensor.Float64:
		addScalarInto(result.AsFloat64(), x.AsFloat64(), scalarOf[float64]("addScalar", scalar))
	case tensor.Int32:
		addScalarInto(result.AsInt32(), x.AsInt32(), scalarOf[int32]("addScalar", scalar))
	case tensor.Int64:
		addScalarInto(result.AsInt64(), x.AsInt64(), scalarOf[int64]("addScalar", scalar))
	default:
		panic(fmt.Sprintf("addScalar: unsupported dtype %s", x.DType()))
	}
	return result
}

// SubScalar subtracts a scalar value from each element.
func (cpu *CPUBackend) SubScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	result := cpu.newResult("subScalar", x.Shape(), x.DType())
	switch x.DType() {
	case tensor.Float32:
		subScalarInto(result.AsFloat32(), x.AsFloat32(), scalarOf[float32]("subScalar", scalar))
	case tensor.Float64:
		subScalarInto(result.AsFloat64(), x.AsFloat64(), scalarOf[float64]("subScalar", scalar))
	case tensor.Int32:
		subScalarInto(result.AsInt32(), x.AsInt32(), scalarOf[int32]("subScalar", scalar))
	case tensor.Int64:
		subScalarInto(result.AsInt64(), x.AsInt64(), scalarOf[int64]("subScalar", scalar))
	default:
		panic(fmt.Sprintf("subScalar: unsupported dtype %s", x.DType()))
	}
	return result
}

// MulScalar multiplies each element by a scalar value.
func (cpu *CPUBackend) MulScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	result := cpu.newResult("mulScalar", x.Shape(), x.DType())
	switch x.DType() {
	case tensor.Float32:
		mulScalarInto(result.AsFloat32(), x.AsFloat32(), scalarOf[float32]("mulScalar", scalar))
	case tensor.Float64:
		mulScalarInto(result.AsFloat64(), x.AsFloat64(), scalarOf[float64]("mulScalar", scalar))
	case tensor.Int32:
		mulScalarInto(result.AsInt32(), x.AsInt32(), scalarOf[int32]("mulScalar", scalar))
	case tensor.Int64:
		mulScalarInto(result.AsInt64(), x.AsInt64(), scalarOf[int64]("mulScalar", scalar))
	default:
		panic(fmt.Sprintf("mulScalar: unsupported dtype %s", x.DType()))
	}
	return result
}

// DivScalar divides each element by a scalar value.
func (cpu *CPUBackend) DivScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	result := cpu.newResult("divScalar", x.Shape(), x.DType())
	switch x.DType() {
	case tensor.Float32:
		divScalarInto(result.AsFloat32(), x.AsFloat32(), scalarOf[float32]("divScalar", scalar))
	case tensor.Float64:
		divScalarInto(result.AsFloat64(), x.AsFloat64(), scalarOf[float64]("divScalar", scalar))
	case tensor.Int32:
		divScalarInto(result.AsInt32(), x.AsInt32(), scalarOf[int32]("divScalar", scalar))
	case tensor.Int64:
		divScalarInto(result.AsInt64(), x.AsInt64(), scalarOf[int64]("divScalar", scalar))
	default:
		panic(fmt.Sprintf("divScalar: unsupported dtype %s", x.DType()))
	}
	return result
}
