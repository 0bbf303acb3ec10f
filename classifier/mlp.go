// Copyright 2025 The ODL Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package classifier

import (
	"github.com/scottkang123/online-deep-learning/nn"
	"github.com/scottkang123/online-deep-learning/tensor"
)

// MLPClassifier is a multilayer perceptron with one hidden layer:
// Flatten -> Linear -> ReLU -> Linear.
//
// State-dict keys follow the hidden Sequential's indices, with activations
// occupying index slots: "mlp.0.weight", "mlp.0.bias", "mlp.2.weight",
// "mlp.2.bias".
type MLPClassifier struct {
	flatten   *nn.Flatten[Backend]
	mlp       *nn.Sequential[Backend]
	modelType string
}

// NewMLPClassifier creates a shallow MLP classifier. A zero-value cfg uses a
// hidden width of 128.
func NewMLPClassifier(backend Backend, cfg Config) *MLPClassifier {
	cfg = cfg.withDefaults(defaultMLPHidden, 0)

	mlp := nn.NewSequential[Backend](
		nn.NewLinear(cfg.inFeatures(), cfg.HiddenDim, backend),
		nn.NewReLU[Backend](),
		nn.NewLinear(cfg.HiddenDim, cfg.NumClasses, backend),
	)

	return &MLPClassifier{
		flatten:   nn.NewFlatten[Backend](),
		mlp:       mlp,
		modelType: "mlp",
	}
}

// Forward maps an image batch (b, 3, h, w) to logits (b, num_classes).
func (m *MLPClassifier) Forward(input *tensor.Tensor[float32, Backend]) *tensor.Tensor[float32, Backend] {
	return m.mlp.Forward(m.flatten.Forward(input))
}

// Parameters returns the parameters of both affine layers.
func (m *MLPClassifier) Parameters() []*nn.Parameter[Backend] {
	return m.mlp.Parameters()
}

// StateDict returns the model parameters keyed by layer name.
func (m *MLPClassifier) StateDict() map[string]*tensor.RawTensor {
	stateDict := make(map[string]*tensor.RawTensor)
	for name, raw := range m.mlp.StateDict() {
		stateDict["mlp."+name] = raw
	}
	return stateDict
}

// LoadStateDict restores the model parameters from a state dictionary.
func (m *MLPClassifier) LoadStateDict(stateDict map[string]*tensor.RawTensor) error {
	if err := checkKeys(m.StateDict(), stateDict); err != nil {
		return err
	}
	return m.mlp.LoadStateDict(subDict(stateDict, "mlp."))
}

// ModelType returns the registry name "mlp".
func (m *MLPClassifier) ModelType() string {
	return m.modelType
}
