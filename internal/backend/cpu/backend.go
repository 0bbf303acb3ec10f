// Package cpu implements the CPU backend with parallelized kernels.
package cpu

import (
	"fmt"

	"github.com/scottkang123/online-deep-learning/internal/parallel"
	"github.com/scottkang123/online-deep-learning/internal/tensor"
)

// CPUBackend implements tensor operations on CPU. Large kernels fan out
// across cores using the parallel package.
type CPUBackend struct {
	device   tensor.Device
	parallel parallel.Config
}

// New creates a new CPU backend.
func New() *CPUBackend {
	return &CPUBackend{
		device:   tensor.CPU,
		parallel: parallel.DefaultConfig(),
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string { return "CPU" }

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device { return cpu.device }

// newResult allocates the zeroed output buffer for an operation.
func (cpu *CPUBackend) newResult(op string, shape tensor.Shape, dtype tensor.DataType) *tensor.RawTensor {
	result, err := tensor.NewRaw(shape, dtype, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", op, err))
	}
	return result
}

// binary runs one element-wise binary operation with NumPy-style
// broadcasting.
//
// When no stretching is needed both operands share a flat layout, so the
// contiguous kernel applies; if a additionally has the output shape and
// holds the only reference to its buffer, the kernel writes straight into a
// instead of allocating.
func (cpu *CPUBackend) binary(op string, a, b *tensor.RawTensor,
	contiguous func(dst, a, b *tensor.RawTensor),
	broadcast func(dst, a, b *tensor.RawTensor, outShape tensor.Shape),
) *tensor.RawTensor {
	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", op, err))
	}

	if !needsBroadcast {
		if a.Shape().Equal(outShape) && a.IsUnique() {
			contiguous(a, a, b)
			return a
		}
		result := cpu.newResult(op, outShape, a.DType())
		contiguous(result, a, b)
		return result
	}

	result := cpu.newResult(op, outShape, a.DType())
	broadcast(result, a, b, outShape)
	return result
}

// Add performs element-wise addition with broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("add", a, b, addTensors, addTensorsBroadcast)
}

// Sub performs element-wise subtraction with broadcasting.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("sub", a, b, subTensors, subTensorsBroadcast)
}

// Mul performs element-wise multiplication with broadcasting.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("mul", a, b, mulTensors, mulTensorsBroadcast)
}

// Div performs element-wise division with broadcasting.
func (cpu *CPUBackend) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("div", a, b, divTensors, divTensorsBroadcast)
}

// Reshape returns a tensor with the same data but different shape.
func (cpu *CPUBackend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	if err := newShape.Validate(); err != nil {
		panic(fmt.Sprintf("reshape: invalid shape: %v", err))
	}
	if t.NumElements() != newShape.NumElements() {
		panic(fmt.Sprintf("reshape: incompatible shapes: %v -> %v (different number of elements)",
			t.Shape(), newShape))
	}

	// TODO: make this a zero-copy view over the shared buffer
	result := cpu.newResult("reshape", newShape, t.DType())
	copy(result.Data(), t.Data())
	return result
}

// Transpose permutes the tensor's dimensions. Without explicit axes the
// dimension order is reversed.
func (cpu *CPUBackend) Transpose(t *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	shape := t.Shape()
	ndim := len(shape)

	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}
	if len(axes) != ndim {
		panic(fmt.Sprintf("transpose: axes length %d != ndim %d", len(axes), ndim))
	}
	seen := make([]bool, ndim)
	for _, ax := range axes {
		if ax < 0 || ax >= ndim {
			panic(fmt.Sprintf("transpose: axis %d out of range for %dD tensor", ax, ndim))
		}
		if seen[ax] {
			panic(fmt.Sprintf("transpose: axis %d repeated", ax))
		}
		seen[ax] = true
	}

	newShape := make(tensor.Shape, ndim)
	for i, ax := range axes {
		newShape[i] = shape[ax]
	}

	result := cpu.newResult("transpose", newShape, t.DType())
	transposeTensors(result, t, axes)
	return result
}
