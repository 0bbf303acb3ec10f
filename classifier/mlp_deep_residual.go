// Copyright 2025 The ODL Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package classifier

import (
	"fmt"

	"github.com/scottkang123/online-deep-learning/nn"
	"github.com/scottkang123/online-deep-learning/tensor"
)

// MLPClassifierDeepResidual is a deep MLP with residual connections.
//
// The input layer projects flattened images to the hidden width, then each
// residual block computes
//
//	out = ReLU(block(out) + out)
//
// where block is Linear -> ReLU -> Linear, all at the hidden width so the
// addition is well defined. The output layer maps to raw logits. With the
// default 7 layers (five residual blocks) and hidden width 180 the model
// stays just under the 10 MB budget.
//
// State-dict keys: "input_layer.weight/bias",
// "hidden_layers.<i>.0.weight/bias", "hidden_layers.<i>.2.weight/bias",
// "output_layer.weight/bias".
type MLPClassifierDeepResidual struct {
	flatten      *nn.Flatten[Backend]
	inputLayer   *nn.Linear[Backend]
	hiddenLayers []*nn.Sequential[Backend]
	outputLayer  *nn.Linear[Backend]
	activation   *nn.ReLU[Backend]
	modelType    string
}

// NewMLPClassifierDeepResidual creates a deep residual MLP classifier. A
// zero-value cfg uses a hidden width of 180 and 7 affine layers.
func NewMLPClassifierDeepResidual(backend Backend, cfg Config) *MLPClassifierDeepResidual {
	cfg = cfg.withDefaults(defaultResidualHidden, defaultResidualLayers)

	hiddenLayers := make([]*nn.Sequential[Backend], 0, cfg.NumLayers-2)
	for i := 0; i < cfg.NumLayers-2; i++ {
		hiddenLayers = append(hiddenLayers, nn.NewSequential[Backend](
			nn.NewLinear(cfg.HiddenDim, cfg.HiddenDim, backend),
			nn.NewReLU[Backend](),
			nn.NewLinear(cfg.HiddenDim, cfg.HiddenDim, backend),
		))
	}

	return &MLPClassifierDeepResidual{
		flatten:      nn.NewFlatten[Backend](),
		inputLayer:   nn.NewLinear(cfg.inFeatures(), cfg.HiddenDim, backend),
		hiddenLayers: hiddenLayers,
		outputLayer:  nn.NewLinear(cfg.HiddenDim, cfg.NumClasses, backend),
		activation:   nn.NewReLU[Backend](),
		modelType:    "mlp_deep_residual",
	}
}

// Forward maps an image batch (b, 3, h, w) to logits (b, num_classes).
func (m *MLPClassifierDeepResidual) Forward(input *tensor.Tensor[float32, Backend]) *tensor.Tensor[float32, Backend] {
	out := m.activation.Forward(m.inputLayer.Forward(m.flatten.Forward(input)))

	for _, layer := range m.hiddenLayers {
		residual := out
		out = layer.Forward(out)
		out = m.activation.Forward(out.Add(residual))
	}

	return m.outputLayer.Forward(out)
}

// Parameters returns the parameters of the input layer, every residual
// block, and the output layer, in that order.
func (m *MLPClassifierDeepResidual) Parameters() []*nn.Parameter[Backend] {
	params := m.inputLayer.Parameters()
	for _, layer := range m.hiddenLayers {
		params = append(params, layer.Parameters()...)
	}
	return append(params, m.outputLayer.Parameters()...)
}

// StateDict returns the model parameters keyed by layer name.
func (m *MLPClassifierDeepResidual) StateDict() map[string]*tensor.RawTensor {
	stateDict := make(map[string]*tensor.RawTensor)
	for name, raw := range m.inputLayer.StateDict() {
		stateDict["input_layer."+name] = raw
	}
	for i, layer := range m.hiddenLayers {
		prefix := fmt.Sprintf("hidden_layers.%d.", i)
		for name, raw := range layer.StateDict() {
			stateDict[prefix+name] = raw
		}
	}
	for name, raw := range m.outputLayer.StateDict() {
		stateDict["output_layer."+name] = raw
	}
	return stateDict
}

// LoadStateDict restores the model parameters from a state dictionary.
func (m *MLPClassifierDeepResidual) LoadStateDict(stateDict map[string]*tensor.RawTensor) error {
	if err := checkKeys(m.StateDict(), stateDict); err != nil {
		return err
	}

	if err := m.inputLayer.LoadStateDict(subDict(stateDict, "input_layer.")); err != nil {
		return fmt.Errorf("input_layer: %w", err)
	}
	for i, layer := range m.hiddenLayers {
		prefix := fmt.Sprintf("hidden_layers.%d.", i)
		if err := layer.LoadStateDict(subDict(stateDict, prefix)); err != nil {
			return fmt.Errorf("hidden_layers.%d: %w", i, err)
		}
	}
	if err := m.outputLayer.LoadStateDict(subDict(stateDict, "output_layer.")); err != nil {
		return fmt.Errorf("output_layer: %w", err)
	}
	return nil
}

// ModelType returns the registry name "mlp_deep_residual".
func (m *MLPClassifierDeepResidual) ModelType() string {
	return m.modelType
}
