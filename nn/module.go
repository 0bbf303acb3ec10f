// Copyright 2025 The ODL Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/scottkang123/online-deep-learning/internal/nn"
	"github.com/scottkang123/online-deep-learning/internal/serialization"
	"github.com/scottkang123/online-deep-learning/tensor"
)

// Module is the interface all network components implement.
//
// A Module computes Forward, exposes its trainable Parameters, and
// round-trips them through StateDict and LoadStateDict. Stateless layers
// like ReLU return nil from Parameters and StateDict. Modules compose:
//
//	model := nn.NewSequential[*cpu.Backend](
//	    nn.NewLinear(12288, 128, backend),
//	    nn.NewReLU[*cpu.Backend](),
//	    nn.NewLinear(128, 6, backend),
//	)
type Module[B tensor.Backend] = nn.Module[B]

// Parameter is a named trainable tensor owned by a module.
type Parameter[B tensor.Backend] = nn.Parameter[B]

// Save writes a module's state dict to a checkpoint file. The modelType
// string is recorded in the header; metadata may be nil.
//
// Example:
//
//	model := nn.NewLinear(12288, 6, backend)
//	err := nn.Save(model, "model.th", "linear", nil)
func Save[B tensor.Backend](module Module[B], path, modelType string, metadata map[string]string) error {
	return nn.Save(module, path, modelType, metadata)
}

// Load reads a checkpoint into a module built with the same architecture
// it was saved from, and returns the checkpoint header.
//
// Example:
//
//	model := nn.NewLinear(12288, 6, backend)
//	header, err := nn.Load("model.th", backend, model)
func Load[B tensor.Backend](path string, backend B, module Module[B]) (serialization.Header, error) {
	return nn.Load(path, backend, module)
}
