// Copyright 2025 The ODL Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package classifier_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scottkang123/online-deep-learning/backend/cpu"
	"github.com/scottkang123/online-deep-learning/classifier"
	"github.com/scottkang123/online-deep-learning/tensor"
)

// zero overwrites a parameter tensor with zeros in place.
func zero(raw *tensor.RawTensor) {
	data := raw.AsFloat32()
	for i := range data {
		data[i] = 0
	}
}

// TestResidualShortcut pins down the residual semantics with hand-built
// weights: out = ReLU(block(out) + out), not ReLU(block(out)).
//
// The input layer is rigged to produce a constant activation vector, the
// block collapses to its closing bias, and the output layer is the
// identity, so the logits expose exactly what the block arithmetic did.
func TestResidualShortcut(t *testing.T) {
	backend := cpu.New()

	// One residual block at width 4 over 2x2 images.
	cfg := classifier.Config{Height: 2, Width: 2, NumClasses: 4, HiddenDim: 4, NumLayers: 3}
	model := classifier.NewMLPClassifierDeepResidual(backend, cfg)

	stateDict := model.StateDict()
	require.Len(t, stateDict, 8)

	// input_layer: zero weights, bias (1, 2, 3, 4). On a zero image the
	// ReLU'd activation is exactly the bias.
	zero(stateDict["input_layer.weight"])
	copy(stateDict["input_layer.bias"].AsFloat32(), []float32{1, 2, 3, 4})

	// Block body: first affine and its ReLU collapse to zero, so the body
	// output is the closing affine's bias.
	zero(stateDict["hidden_layers.0.0.weight"])
	zero(stateDict["hidden_layers.0.0.bias"])
	zero(stateDict["hidden_layers.0.2.weight"])
	copy(stateDict["hidden_layers.0.2.bias"].AsFloat32(), []float32{-0.5, 1, -5, 0})

	// output_layer: identity.
	zero(stateDict["output_layer.weight"])
	outWeight := stateDict["output_layer.weight"].AsFloat32()
	for i := 0; i < 4; i++ {
		outWeight[i*4+i] = 1
	}
	zero(stateDict["output_layer.bias"])

	images := tensor.Zeros[float32](tensor.Shape{1, 3, 2, 2}, backend)
	logits := model.Forward(images)
	require.True(t, logits.Shape().Equal(tensor.Shape{1, 4}), "logits shape = %v", logits.Shape())

	// body = (-0.5, 1, -5, 0), shortcut = (1, 2, 3, 4):
	// ReLU(body + shortcut) = (0.5, 3, 0, 4).
	// Without the shortcut the result would be ReLU(body) = (0, 1, 0, 0).
	want := []float32{0.5, 3, 0, 4}
	got := logits.Data()
	for i := range want {
		assert.InDelta(t, float64(want[i]), float64(got[i]), 1e-6, "logit %d", i)
	}
}

// TestResidualBlockCount checks that NumLayers controls the number of
// residual blocks: total affine layers = blocks*2 + input + output.
func TestResidualBlockCount(t *testing.T) {
	backend := cpu.New()

	for _, tt := range []struct {
		numLayers  int
		wantBlocks int
	}{
		{3, 1},
		{7, 5},
	} {
		cfg := classifier.Config{HiddenDim: 8, NumLayers: tt.numLayers}
		model := classifier.NewMLPClassifierDeepResidual(backend, cfg)

		// Parameters: (input + output + 2 per block) affine layers, each
		// contributing a weight and a bias.
		wantParams := (2 + 2*tt.wantBlocks) * 2
		assert.Len(t, model.Parameters(), wantParams, "NumLayers=%d", tt.numLayers)
	}
}
