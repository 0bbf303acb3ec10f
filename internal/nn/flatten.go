package nn

import (
	"fmt"

	"github.com/scottkang123/online-deep-learning/internal/tensor"
)

// Flatten collapses all dimensions after the batch dimension into one,
// turning [batch, d1, d2, ...] into [batch, d1*d2*...]. It is typically
// the first module of a classifier over image tensors.
//
// Example:
//
//	flatten := nn.NewFlatten[Backend]()
//	output := flatten.Forward(images) // [32, 3, 64, 64] -> [32, 12288]
type Flatten[B tensor.Backend] struct{ stateless[B] }

// NewFlatten creates a Flatten module.
func NewFlatten[B tensor.Backend]() *Flatten[B] {
	return &Flatten[B]{}
}

// Forward reshapes the input to [batch, features].
func (Flatten[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	shape := input.Shape()
	if len(shape) < 2 {
		panic(fmt.Sprintf("Flatten.Forward: expected input with at least 2 dimensions, got shape %v", shape))
	}
	return input.Reshape(shape[0], shape.NumElements()/shape[0])
}
