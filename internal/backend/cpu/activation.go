package cpu

import (
	"fmt"
	"math"

	"github.com/scottkang123/online-deep-learning/internal/tensor"
)

// floats covers the element types of the activation kernels.
type floats interface {
	~float32 | ~float64
}

func reluInto[T floats](dst, src []T) {
	for i := range src {
		if src[i] > 0 {
			dst[i] = src[i]
		}
	}
}

func tanhInto[T floats](dst, src []T) {
	for i := range src {
		dst[i] = T(math.Tanh(float64(src[i])))
	}
}

// ReLU applies max(0, x) element-wise.
func (cpu *CPUBackend) ReLU(x *tensor.RawTensor) *tensor.RawTensor {
	result := cpu.newResult("relu", x.Shape(), x.DType())
	switch x.DType() {
	case tensor.Float32:
		reluInto(result.AsFloat32(), x.AsFloat32())
	case tensor.Float64:
		reluInto(result.AsFloat64(), x.AsFloat64())
	default:
		panic(fmt.Sprintf("relu: unsupported dtype %s (float tensors only)", x.DType()))
	}
	return result
}

// Tanh applies the hyperbolic tangent element-wise.
func (cpu *CPUBackend) Tanh(x *tensor.RawTensor) *tensor.RawTensor {
	result := cpu.newResult("tanh", x.Shape(), x.DType())
	switch x.DType() {
	case tensor.Float32:
		tanhInto(result.AsFloat32(), x.AsFloat32())
	case tensor.Float64:
		tanhInto(result.AsFloat64(), x.AsFloat64())
	default:
		panic(fmt.Sprintf("tanh: unsupported dtype %s (float tensors only)", x.DType()))
	}
	return result
}

// Softmax computes softmax along the specified dimension. Negative dims
// count from the end, matching the PyTorch convention.
func (cpu *CPUBackend) Softmax(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	shape := x.Shape()
	ndim := len(shape)

	if dim < 0 {
		dim = ndim + dim
	}
	if dim < 0 || dim >= ndim {
		panic(fmt.Sprintf("softmax: dimension %d out of range for tensor of rank %d", dim, ndim))
	}

	result := cpu.newResult("softmax", shape, x.DType())
	switch x.DType() {
	case tensor.Float32:
		softmaxInto(result.AsFloat32(), x.AsFloat32(), shape, dim)
	case tensor.Float64:
		softmaxInto(result.AsFloat64(), x.AsFloat64(), shape, dim)
	default:
		panic(fmt.Sprintf("softmax: unsupported dtype %s (float tensors only)", x.DType()))
	}
	return result
}

// softmaxInto computes softmax along dim with max subtraction for numerical
// stability. The shape is split into [outer, dimSize, inner] so that
// base+i*inner walks one softmax row.
func softmaxInto[T floats](dst, src []T, shape tensor.Shape, dim int) {
	dimSize := shape[dim]
	outer, inner := 1, 1
	for i := 0; i < dim; i++ {
		outer *= shape[i]
	}
	for i := dim + 1; i < len(shape); i++ {
		inner *= shape[i]
	}

	for o := 0; o < outer; o++ {
		for in := 0; in < inner; in++ {
			base := o*dimSize*inner + in

			maxVal := src[base]
			for i := 1; i < dimSize; i++ {
				if v := src[base+i*inner]; v > maxVal {
					maxVal = v
				}
			}

			var sum T
			for i := 0; i < dimSize; i++ {
				e := T(math.Exp(float64(src[base+i*inner] - maxVal)))
				dst[base+i*inner] = e
				sum += e
			}

			for i := 0; i < dimSize; i++ {
				dst[base+i*inner] /= sum
			}
		}
	}
}
