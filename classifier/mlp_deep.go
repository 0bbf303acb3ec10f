// Copyright 2025 The ODL Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package classifier

import (
	"github.com/scottkang123/online-deep-learning/nn"
	"github.com/scottkang123/online-deep-learning/tensor"
)

// MLPClassifierDeep is a deep multilayer perceptron:
// Flatten -> Linear -> GELU -> (num_layers-2) x [Linear -> ReLU] -> Linear.
//
// The first activation is GELU while the rest are ReLU; the asymmetry is
// part of the architecture. With the default 16 layers the hidden width of
// 170 keeps the model just under the 10 MB budget.
//
// State-dict keys use the hidden Sequential's indices: "mlp.0.weight",
// "mlp.0.bias", "mlp.2.weight", ..., "mlp.30.weight", "mlp.30.bias".
type MLPClassifierDeep struct {
	flatten   *nn.Flatten[Backend]
	mlp       *nn.Sequential[Backend]
	modelType string
}

// NewMLPClassifierDeep creates a deep MLP classifier. A zero-value cfg uses
// a hidden width of 170 and 16 affine layers.
func NewMLPClassifierDeep(backend Backend, cfg Config) *MLPClassifierDeep {
	cfg = cfg.withDefaults(defaultDeepHidden, defaultDeepLayers)

	layers := []nn.Module[Backend]{
		nn.NewLinear(cfg.inFeatures(), cfg.HiddenDim, backend),
		nn.NewGELU[Backend](),
	}
	for i := 0; i < cfg.NumLayers-2; i++ {
		layers = append(layers,
			nn.NewLinear(cfg.HiddenDim, cfg.HiddenDim, backend),
			nn.NewReLU[Backend](),
		)
	}
	layers = append(layers, nn.NewLinear(cfg.HiddenDim, cfg.NumClasses, backend))

	return &MLPClassifierDeep{
		flatten:   nn.NewFlatten[Backend](),
		mlp:       nn.NewSequential(layers...),
		modelType: "mlp_deep",
	}
}

// Forward maps an image batch (b, 3, h, w) to logits (b, num_classes).
func (m *MLPClassifierDeep) Forward(input *tensor.Tensor[float32, Backend]) *tensor.Tensor[float32, Backend] {
	return m.mlp.Forward(m.flatten.Forward(input))
}

// Parameters returns the parameters of all affine layers.
func (m *MLPClassifierDeep) Parameters() []*nn.Parameter[Backend] {
	return m.mlp.Parameters()
}

// StateDict returns the model parameters keyed by layer name.
func (m *MLPClassifierDeep) StateDict() map[string]*tensor.RawTensor {
	stateDict := make(map[string]*tensor.RawTensor)
	for name, raw := range m.mlp.StateDict() {
		stateDict["mlp."+name] = raw
	}
	return stateDict
}

// LoadStateDict restores the model parameters from a state dictionary.
func (m *MLPClassifierDeep) LoadStateDict(stateDict map[string]*tensor.RawTensor) error {
	if err := checkKeys(m.StateDict(), stateDict); err != nil {
		return err
	}
	return m.mlp.LoadStateDict(subDict(stateDict, "mlp."))
}

// ModelType returns the registry name "mlp_deep".
func (m *MLPClassifierDeep) ModelType() string {
	return m.modelType
}
