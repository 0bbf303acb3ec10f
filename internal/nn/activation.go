package nn

import (
	"github.com/scottkang123/online-deep-learning/internal/tensor"
)

// ReLUBackend is implemented by backends that provide a fused ReLU.
type ReLUBackend interface {
	ReLU(*tensor.RawTensor) *tensor.RawTensor
}

// TanhBackend is implemented by backends that provide a fused Tanh.
type TanhBackend interface {
	Tanh(*tensor.RawTensor) *tensor.RawTensor
}

// ReLU zeroes negative elements: f(x) = max(0, x).
type ReLU[B tensor.Backend] struct{ stateless[B] }

// NewReLU creates a ReLU activation module.
func NewReLU[B tensor.Backend]() *ReLU[B] {
	return &ReLU[B]{}
}

// Forward applies ReLU element-wise.
func (ReLU[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	b, ok := any(input.Backend()).(ReLUBackend)
	if !ok {
		panic("ReLU: backend must implement ReLU operation")
	}
	return tensor.New[float32](b.ReLU(input.Raw()), input.Backend())
}

// Tanh squashes elements into (-1, 1).
type Tanh[B tensor.Backend] struct{ stateless[B] }

// NewTanh creates a Tanh activation module.
func NewTanh[B tensor.Backend]() *Tanh[B] {
	return &Tanh[B]{}
}

// Forward applies tanh element-wise.
func (Tanh[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	b, ok := any(input.Backend()).(TanhBackend)
	if !ok {
		panic("Tanh: backend must implement Tanh operation")
	}
	return tensor.New[float32](b.Tanh(input.Raw()), input.Backend())
}
