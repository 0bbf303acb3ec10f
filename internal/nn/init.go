package nn

import (
	"math"
	"math/rand"

	"github.com/scottkang123/online-deep-learning/internal/tensor"
)

// Xavier draws weights from the Glorot uniform distribution U(-b, b) with
// b = sqrt(6 / (fan_in + fan_out)), which keeps the variance of activations
// roughly constant across layers.
func Xavier[B tensor.Backend](fanIn, fanOut int, shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	bound := float32(math.Sqrt(6.0 / float64(fanIn+fanOut)))

	t, err := tensor.NewRaw(shape, tensor.Float32, backend.Device())
	if err != nil {
		panic(err)
	}

	data := t.AsFloat32()
	for i := range data {
		data[i] = (rand.Float32()*2 - 1) * bound //nolint:gosec // G404: weight init does not need crypto randomness
	}

	return tensor.New[float32](t, backend)
}

// Zeros creates a float32 tensor filled with zeros, the default bias
// initialization.
func Zeros[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return tensor.Zeros[float32](shape, backend)
}

// Ones creates a float32 tensor filled with ones.
func Ones[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return tensor.Ones[float32](shape, backend)
}

// Randn creates a float32 tensor with samples drawn from N(0, 1).
func Randn[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return tensor.Randn[float32](shape, backend)
}
