// Copyright 2025 The ODL Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package classifier_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scottkang123/online-deep-learning/backend/cpu"
	"github.com/scottkang123/online-deep-learning/classifier"
	"github.com/scottkang123/online-deep-learning/tensor"
)

// registryNames is the full set of model names, in a fixed order for
// deterministic subtests.
var registryNames = []string{"linear", "mlp", "mlp_deep", "mlp_deep_residual"}

func TestModelFactory(t *testing.T) {
	assert.Len(t, classifier.ModelFactory, len(registryNames))
	for _, name := range registryNames {
		assert.Contains(t, classifier.ModelFactory, name)
	}
}

func TestModelTypeTag(t *testing.T) {
	backend := cpu.New()

	for _, name := range registryNames {
		t.Run(name, func(t *testing.T) {
			model := classifier.ModelFactory[name](backend, classifier.Config{})
			assert.Equal(t, name, model.ModelType())
		})
	}
}

// TestForwardShapes checks the core contract: an image batch (b, 3, 64, 64)
// maps to finite logits (b, 6) for every variant.
func TestForwardShapes(t *testing.T) {
	backend := cpu.New()

	for _, name := range registryNames {
		for _, batch := range []int{1, 4} {
			t.Run(fmt.Sprintf("%s/batch%d", name, batch), func(t *testing.T) {
				model := classifier.ModelFactory[name](backend, classifier.Config{})

				images := tensor.Randn[float32](tensor.Shape{batch, 3, 64, 64}, backend)
				logits := model.Forward(images)

				require.True(t, logits.Shape().Equal(tensor.Shape{batch, 6}),
					"logits shape = %v", logits.Shape())

				for i, v := range logits.Data() {
					f := float64(v)
					require.False(t, math.IsNaN(f) || math.IsInf(f, 0),
						"logit %d is not finite: %v", i, v)
				}
			})
		}
	}
}

func TestParameterCounts(t *testing.T) {
	backend := cpu.New()

	tests := []struct {
		name       string
		wantParams int
	}{
		// 12288*6 + 6
		{"linear", 73_734},
		// 12288*128 + 128 + 128*6 + 6
		{"mlp", 1_573_766},
		// 12288*170 + 170 + 14*(170*170 + 170) + 170*6 + 6
		{"mlp_deep", 2_497_136},
		// 12288*180 + 180 + 5*2*(180*180 + 180) + 180*6 + 6
		{"mlp_deep_residual", 2_538_906},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := classifier.ModelFactory[tt.name](backend, classifier.Config{})

			total := 0
			for _, p := range model.Parameters() {
				total += p.Tensor().NumElements()
			}
			assert.Equal(t, tt.wantParams, total)
		})
	}
}

func TestDefaultSizesUnderBudget(t *testing.T) {
	backend := cpu.New()

	wantMB := map[string]float64{
		"linear":            0.28,
		"mlp":               6.00,
		"mlp_deep":          9.53,
		"mlp_deep_residual": 9.68,
	}

	for _, name := range registryNames {
		t.Run(name, func(t *testing.T) {
			model := classifier.ModelFactory[name](backend, classifier.Config{})
			sizeMB := classifier.CalculateModelSizeMB(model)

			assert.InDelta(t, wantMB[name], sizeMB, 0.01)
			assert.Less(t, sizeMB, classifier.MaxModelSizeMB)
		})
	}
}

func TestStateDictKeys(t *testing.T) {
	backend := cpu.New()

	deepKeys := func() []string {
		var keys []string
		for i := 0; i <= 30; i += 2 {
			keys = append(keys, fmt.Sprintf("mlp.%d.weight", i), fmt.Sprintf("mlp.%d.bias", i))
		}
		return keys
	}()

	residualKeys := func() []string {
		keys := []string{"input_layer.weight", "input_layer.bias", "output_layer.weight", "output_layer.bias"}
		for i := 0; i < 5; i++ {
			keys = append(keys,
				fmt.Sprintf("hidden_layers.%d.0.weight", i), fmt.Sprintf("hidden_layers.%d.0.bias", i),
				fmt.Sprintf("hidden_layers.%d.2.weight", i), fmt.Sprintf("hidden_layers.%d.2.bias", i),
			)
		}
		return keys
	}()

	tests := []struct {
		name string
		keys []string
	}{
		{"linear", []string{"linear.weight", "linear.bias"}},
		{"mlp", []string{"mlp.0.weight", "mlp.0.bias", "mlp.2.weight", "mlp.2.bias"}},
		{"mlp_deep", deepKeys},
		{"mlp_deep_residual", residualKeys},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := classifier.ModelFactory[tt.name](backend, classifier.Config{})
			stateDict := model.StateDict()

			require.Len(t, stateDict, len(tt.keys))
			for _, key := range tt.keys {
				assert.Contains(t, stateDict, key)
			}
		})
	}
}

// TestConfigOverrides checks that non-zero Config fields replace the
// variant defaults.
func TestConfigOverrides(t *testing.T) {
	backend := cpu.New()

	cfg := classifier.Config{Height: 16, Width: 16, NumClasses: 4, HiddenDim: 32}
	model := classifier.NewMLPClassifier(backend, cfg)

	images := tensor.Randn[float32](tensor.Shape{2, 3, 16, 16}, backend)
	logits := model.Forward(images)
	require.True(t, logits.Shape().Equal(tensor.Shape{2, 4}), "logits shape = %v", logits.Shape())

	// 3*16*16*32 + 32 + 32*4 + 4
	total := 0
	for _, p := range model.Parameters() {
		total += p.Tensor().NumElements()
	}
	assert.Equal(t, 24_740, total)
}
