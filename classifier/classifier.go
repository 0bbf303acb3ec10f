// Copyright 2025 The ODL Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package classifier

import (
	"fmt"
	"strings"

	"github.com/scottkang123/online-deep-learning/backend/cpu"
	"github.com/scottkang123/online-deep-learning/nn"
	"github.com/scottkang123/online-deep-learning/tensor"
)

// Backend is the compute backend the classifiers run on.
type Backend = *cpu.Backend

// Model is the interface all classifier variants implement.
//
// It extends nn.Module with ModelType, which reports the registry name the
// model was constructed under. SaveModel and LoadModel use that tag to pick
// the checkpoint path and to stamp the checkpoint header.
type Model interface {
	nn.Module[Backend]

	// ModelType returns the model's registry name (e.g. "linear", "mlp").
	ModelType() string
}

// Input dimensions shared by every variant. Images are (batch, channels,
// height, width); defaults reproduce the 64x64 RGB, six-class setup.
const (
	numChannels       = 3
	defaultHeight     = 64
	defaultWidth      = 64
	defaultNumClasses = 6
)

// Per-variant hyperparameter defaults.
const (
	defaultMLPHidden      = 128
	defaultDeepHidden     = 170
	defaultDeepLayers     = 16
	defaultResidualHidden = 180
	defaultResidualLayers = 7
)

// Config selects the model dimensions. The zero value takes the variant
// defaults, so Config{} always reproduces the stock architectures.
type Config struct {
	// Height and Width of the input images. Default 64x64.
	Height int
	Width  int

	// NumClasses is the size of the output logit vector. Default 6.
	NumClasses int

	// HiddenDim is the width of the hidden layers. The default depends on
	// the variant (128 for mlp, 170 for mlp_deep, 180 for
	// mlp_deep_residual). Ignored by the linear model.
	HiddenDim int

	// NumLayers is the total number of affine layers in the deep variants
	// (16 for mlp_deep; 7 for mlp_deep_residual, which turns the five
	// middle layers into residual blocks). Ignored by linear and mlp.
	NumLayers int
}

// withDefaults fills zero fields with the shared input defaults and the
// variant's hidden/depth constants. Variants that have no hidden width or
// depth pass zero for those.
func (c Config) withDefaults(hiddenDim, numLayers int) Config {
	if c.Height == 0 {
		c.Height = defaultHeight
	}
	if c.Width == 0 {
		c.Width = defaultWidth
	}
	if c.NumClasses == 0 {
		c.NumClasses = defaultNumClasses
	}
	if c.HiddenDim == 0 {
		c.HiddenDim = hiddenDim
	}
	if c.NumLayers == 0 {
		c.NumLayers = numLayers
	}
	return c
}

// inFeatures is the flattened input width for this configuration.
func (c Config) inFeatures() int {
	return numChannels * c.Height * c.Width
}

// subDict extracts the entries under prefix, stripping it from the keys.
func subDict(stateDict map[string]*tensor.RawTensor, prefix string) map[string]*tensor.RawTensor {
	sub := make(map[string]*tensor.RawTensor)
	for key, raw := range stateDict {
		if strings.HasPrefix(key, prefix) {
			sub[strings.TrimPrefix(key, prefix)] = raw
		}
	}
	return sub
}

// checkKeys verifies that got contains exactly the keys of expected, so a
// checkpoint for a differently shaped model is rejected up front instead of
// being applied partially.
func checkKeys(expected, got map[string]*tensor.RawTensor) error {
	for key := range expected {
		if _, ok := got[key]; !ok {
			return fmt.Errorf("missing parameter %q in state dict", key)
		}
	}
	for key := range got {
		if _, ok := expected[key]; !ok {
			return fmt.Errorf("unexpected parameter %q in state dict", key)
		}
	}
	return nil
}
