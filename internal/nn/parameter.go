package nn

import (
	"github.com/scottkang123/online-deep-learning/internal/tensor"
)

// Parameter represents a named tensor owned by a module, typically the
// weights and biases of a layer.
//
// Parameters are what StateDict and LoadStateDict operate on: the name
// identifies the tensor inside a module's state dictionary, and the tensor
// holds the actual values.
//
// Example:
//
//	w := tensor.Randn[float32](tensor.Shape{128, 64}, backend)
//	param := nn.NewParameter("weight", w)
type Parameter[B tensor.Backend] struct {
	name   string
	tensor *tensor.Tensor[float32, B]
}

// NewParameter wraps the tensor as a parameter named name, typically
// "weight" or "bias".
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return &Parameter[B]{name: name, tensor: t}
}

// Name returns the parameter's name.
func (p *Parameter[B]) Name() string { return p.name }

// Tensor returns the underlying tensor holding the parameter values.
func (p *Parameter[B]) Tensor() *tensor.Tensor[float32, B] { return p.tensor }
