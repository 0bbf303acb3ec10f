package nn

import (
	"math"

	"github.com/scottkang123/online-deep-learning/internal/tensor"
)

// GELU is the Gaussian Error Linear Unit, computed with the tanh
// approximation
//
//	0.5 * x * (1 + tanh(sqrt(2/pi) * (x + 0.044715 * x^3)))
//
// A smooth alternative to ReLU; the default activation in most
// transformer stacks.
type GELU[B tensor.Backend] struct{ stateless[B] }

// NewGELU creates a GELU activation module.
func NewGELU[B tensor.Backend]() *GELU[B] {
	return &GELU[B]{}
}

// Forward applies GELU element-wise.
func (GELU[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return GELUFunc(input)
}

const geluCoeff float32 = 0.044715

var geluScale = float32(math.Sqrt(2 / math.Pi))

// GELUFunc applies the GELU tanh approximation to every element of x.
func GELUFunc[B tensor.Backend](x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	b, ok := any(x.Backend()).(TanhBackend)
	if !ok {
		panic("GELUFunc: backend must implement Tanh operation")
	}

	cube := x.Mul(x).Mul(x)
	inner := x.Add(cube.MulScalar(geluCoeff)).MulScalar(geluScale)
	gate := tensor.New[float32](b.Tanh(inner.Raw()), x.Backend()).AddScalar(1)
	return x.MulScalar(0.5).Mul(gate)
}
