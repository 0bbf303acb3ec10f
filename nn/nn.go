// Copyright 2025 The ODL Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/scottkang123/online-deep-learning/internal/nn"
	"github.com/scottkang123/online-deep-learning/internal/tensor"
)

// NewParameter wraps a named tensor as a trainable parameter.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return nn.NewParameter(name, t)
}

// Linear is a fully connected layer.
type Linear[B tensor.Backend] = nn.Linear[B]

// NewLinear creates a linear layer with Xavier-initialized weights and
// zero biases.
//
// Example:
//
//	backend := cpu.New()
//	layer := nn.NewLinear(3*64*64, 128, backend)
func NewLinear[B tensor.Backend](inFeatures, outFeatures int, backend B) *Linear[B] {
	return nn.NewLinear(inFeatures, outFeatures, backend)
}

// Flatten collapses all trailing dimensions into one, turning
// [batch, d1, d2, ...] into [batch, d1*d2*...].
type Flatten[B tensor.Backend] = nn.Flatten[B]

// NewFlatten creates a flatten layer.
//
// Example:
//
//	flatten := nn.NewFlatten[*cpu.Backend]()
//	out := flatten.Forward(images)  // [32, 3, 64, 64] -> [32, 12288]
func NewFlatten[B tensor.Backend]() *Flatten[B] {
	return nn.NewFlatten[B]()
}

// Activations

// ReLU zeroes negative elements.
type ReLU[B tensor.Backend] = nn.ReLU[B]

// NewReLU creates a ReLU activation.
func NewReLU[B tensor.Backend]() *ReLU[B] {
	return nn.NewReLU[B]()
}

// Tanh squashes elements into (-1, 1).
type Tanh[B tensor.Backend] = nn.Tanh[B]

// NewTanh creates a Tanh activation.
func NewTanh[B tensor.Backend]() *Tanh[B] {
	return nn.NewTanh[B]()
}

// GELU is the Gaussian Error Linear Unit, computed with the tanh
// approximation.
type GELU[B tensor.Backend] = nn.GELU[B]

// NewGELU creates a GELU activation.
func NewGELU[B tensor.Backend]() *GELU[B] {
	return nn.NewGELU[B]()
}

// CrossEntropyLoss computes the mean cross-entropy between logits and
// integer class targets.
type CrossEntropyLoss[B tensor.Backend] = nn.CrossEntropyLoss[B]

// NewCrossEntropyLoss creates a cross-entropy criterion.
//
// Example:
//
//	criterion := nn.NewCrossEntropyLoss(backend)
//	loss := criterion.Forward(logits, labels)  // scalar tensor
func NewCrossEntropyLoss[B tensor.Backend](backend B) *CrossEntropyLoss[B] {
	return nn.NewCrossEntropyLoss(backend)
}

// Sequential chains modules, feeding each one's output to the next.
type Sequential[B tensor.Backend] = nn.Sequential[B]

// NewSequential creates a sequential model from the given modules.
//
// Example:
//
//	model := nn.NewSequential[*cpu.Backend](
//	    nn.NewFlatten[*cpu.Backend](),
//	    nn.NewLinear(3*64*64, 128, backend),
//	    nn.NewReLU[*cpu.Backend](),
//	    nn.NewLinear(128, 6, backend),
//	)
func NewSequential[B tensor.Backend](modules ...Module[B]) *Sequential[B] {
	return nn.NewSequential(modules...)
}

// Initializers

// Xavier draws weights from a uniform distribution scaled by fan-in and
// fan-out, keeping activation variance stable across layers.
func Xavier[B tensor.Backend](fanIn, fanOut int, shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.Xavier(fanIn, fanOut, shape, backend)
}

// Zeros returns a zero-filled float32 tensor, the usual bias init.
func Zeros[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.Zeros(shape, backend)
}

// Ones returns a one-filled float32 tensor.
func Ones[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.Ones(shape, backend)
}

// Randn returns a float32 tensor drawn from the standard normal
// distribution.
func Randn[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.Randn(shape, backend)
}

// GELUFunc applies GELU element-wise using the tanh approximation.
func GELUFunc[B tensor.Backend](x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return nn.GELUFunc(x)
}
