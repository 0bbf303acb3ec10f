// Copyright 2025 The ODL Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor is the public tensor API: generic tensors over a compute
// backend, plus the shapes, dtypes, and creation helpers the nn and
// classifier packages build on.
//
// The implementation lives in internal/tensor; this package re-exports
// the stable surface. Programs construct a backend, build tensors with
// the creation functions, and chain methods:
//
//	backend := cpu.New()
//	x := tensor.Randn[float32](tensor.Shape{8, 128}, backend)
//	w := tensor.Randn[float32](tensor.Shape{128, 6}, backend)
//	logits := x.MatMul(w)  // Shape: [8, 6]
package tensor

import (
	"github.com/scottkang123/online-deep-learning/internal/tensor"
)

// DType constrains the element types a Tensor can hold: float32, float64,
// int32, int64, uint8, bool.
type DType = tensor.DType

// DataType is the runtime tag of a tensor's element type.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	Int32   DataType = tensor.Int32
	Int64   DataType = tensor.Int64
	Uint8   DataType = tensor.Uint8
	Bool    DataType = tensor.Bool
)

// Device identifies where tensor data lives.
type Device = tensor.Device

// CPU is the only device the classifier stack ships with.
const CPU Device = tensor.CPU

// Shape holds tensor dimensions, outermost first. Shape{2, 3, 4} is a 3D
// tensor with 24 elements.
type Shape = tensor.Shape

// Tensor is a generic tensor with element type T computed by backend B.
// Operations return fresh tensors; the backend shares and reuses buffers
// where it can prove that is safe.
//
// Example:
//
//	x := tensor.Randn[float32](tensor.Shape{8, 128}, backend)
//	w := tensor.Randn[float32](tensor.Shape{128, 6}, backend)
//	logits := x.MatMul(w)  // Shape: [8, 6]
type Tensor[T DType, B Backend] = tensor.Tensor[T, B]

// Zeros creates a tensor filled with zeros.
func Zeros[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return tensor.Zeros[T, B](shape, b)
}

// Ones creates a tensor filled with ones.
func Ones[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return tensor.Ones[T, B](shape, b)
}

// Full creates a tensor filled with value.
//
// Example:
//
//	bias := tensor.Full[float32](tensor.Shape{6}, 0.1, backend)
func Full[T DType, B Backend](shape Shape, value T, b B) *Tensor[T, B] {
	return tensor.Full[T, B](shape, value, b)
}

// Randn creates a tensor of draws from the standard normal N(0, 1).
// Useful for synthetic inputs when exercising a model without a dataset:
//
//	batch := tensor.Randn[float32](tensor.Shape{8, 3, 64, 64}, backend)
func Randn[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return tensor.Randn[T, B](shape, b)
}

// Rand creates a tensor of draws from the uniform U(0, 1).
func Rand[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return tensor.Rand[T, B](shape, b)
}

// Arange creates a 1D tensor counting from start to end (exclusive).
//
// Example:
//
//	labels := tensor.Arange[int64](0, 6, backend)  // [0, 1, 2, 3, 4, 5]
func Arange[T DType, B Backend](start, end T, b B) *Tensor[T, B] {
	return tensor.Arange[T, B](start, end, b)
}

// FromSlice copies data into a tensor of the given shape. The product of
// the dimensions must equal len(data).
//
// Example:
//
//	logits, err := tensor.FromSlice([]float32{0.9, 0.1, 1.2}, tensor.Shape{1, 3}, backend)
func FromSlice[T DType, B Backend](data []T, shape Shape, b B) (*Tensor[T, B], error) {
	return tensor.FromSlice[T, B](data, shape, b)
}

// New wraps an existing RawTensor in the typed API. Serialization and
// backend code build RawTensors directly; most callers want the creation
// functions above.
func New[T DType, B Backend](raw *RawTensor, b B) *Tensor[T, B] {
	return tensor.New[T, B](raw, b)
}

// NewRaw allocates an untyped tensor. See RawTensor for when to drop down
// to this level.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}

// BroadcastShapes applies the NumPy broadcasting rules to two shapes,
// reporting the result shape and whether either operand must be stretched
// to reach it.
//
// Example:
//
//	out, stretched, err := tensor.BroadcastShapes(tensor.Shape{3, 1}, tensor.Shape{3, 4})
//	// out = [3, 4], stretched = true
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	return tensor.BroadcastShapes(a, b)
}
