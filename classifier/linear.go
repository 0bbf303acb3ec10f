// Copyright 2025 The ODL Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package classifier

import (
	"github.com/scottkang123/online-deep-learning/nn"
	"github.com/scottkang123/online-deep-learning/tensor"
)

// LinearClassifier maps flattened images straight to logits with a single
// affine transform. It is the smallest variant and the baseline the other
// models are measured against.
//
// State-dict keys: "linear.weight", "linear.bias".
type LinearClassifier struct {
	flatten   *nn.Flatten[Backend]
	linear    *nn.Linear[Backend]
	modelType string
}

// NewLinearClassifier creates a linear classifier. A zero-value cfg
// reproduces the stock 64x64, six-class architecture.
func NewLinearClassifier(backend Backend, cfg Config) *LinearClassifier {
	cfg = cfg.withDefaults(0, 0)

	return &LinearClassifier{
		flatten:   nn.NewFlatten[Backend](),
		linear:    nn.NewLinear(cfg.inFeatures(), cfg.NumClasses, backend),
		modelType: "linear",
	}
}

// Forward maps an image batch (b, 3, h, w) to logits (b, num_classes).
func (m *LinearClassifier) Forward(input *tensor.Tensor[float32, Backend]) *tensor.Tensor[float32, Backend] {
	return m.linear.Forward(m.flatten.Forward(input))
}

// Parameters returns the weight and bias of the affine transform.
func (m *LinearClassifier) Parameters() []*nn.Parameter[Backend] {
	return m.linear.Parameters()
}

// StateDict returns the model parameters keyed by layer name.
func (m *LinearClassifier) StateDict() map[string]*tensor.RawTensor {
	stateDict := make(map[string]*tensor.RawTensor)
	for name, raw := range m.linear.StateDict() {
		stateDict["linear."+name] = raw
	}
	return stateDict
}

// LoadStateDict restores the model parameters from a state dictionary.
func (m *LinearClassifier) LoadStateDict(stateDict map[string]*tensor.RawTensor) error {
	if err := checkKeys(m.StateDict(), stateDict); err != nil {
		return err
	}
	return m.linear.LoadStateDict(subDict(stateDict, "linear."))
}

// ModelType returns the registry name "linear".
func (m *LinearClassifier) ModelType() string {
	return m.modelType
}
