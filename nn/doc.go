// Copyright 2025 The ODL Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides neural network layers and building blocks.
//
// Models are composed from Modules. A Module owns its parameters and
// knows how to serialize them; Sequential chains modules into a
// feed-forward pipeline. Every module is generic over the tensor
// backend, so one model definition runs on any Backend implementation.
//
// # Building a Model
//
//	import (
//	    "github.com/scottkang123/online-deep-learning/backend/cpu"
//	    "github.com/scottkang123/online-deep-learning/nn"
//	)
//
//	backend := cpu.New()
//	model := nn.NewSequential[*cpu.Backend](
//	    nn.NewFlatten[*cpu.Backend](),
//	    nn.NewLinear(3*64*64, 128, backend),
//	    nn.NewReLU[*cpu.Backend](),
//	    nn.NewLinear(128, 6, backend),
//	)
//	logits := model.Forward(images) // [batch, 6]
//
// Constructors that take a backend argument infer the type parameter;
// stateless modules such as NewReLU and NewFlatten need it spelled
// out.
//
// # Layers
//
// Linear is a fully connected layer with Xavier-initialized weights:
//
//	layer := nn.NewLinear(inFeatures, outFeatures, backend)
//
// Flatten collapses every dimension after the first, turning image
// batches into row vectors:
//
//	flatten := nn.NewFlatten[B]()
//	out := flatten.Forward(images) // [32, 3, 64, 64] -> [32, 12288]
//
// ReLU, Tanh and GELU are the available activations.
//
// # Losses
//
// CrossEntropyLoss fuses log-softmax with negative log-likelihood and
// stays numerically stable for large logits:
//
//	criterion := nn.NewCrossEntropyLoss(backend)
//	loss := criterion.Forward(logits, labels) // scalar
//
// # Parameters and State
//
// Parameters walks the model in registration order:
//
//	for _, p := range model.Parameters() {
//	    fmt.Println(p.Name(), p.Tensor().Shape())
//	}
//
// StateDict flattens the same walk into name to tensor pairs, and
// LoadStateDict restores them, failing on any missing or misshapen
// entry.
//
// # Saving and Loading
//
// Save writes the model's state dict in safetensors layout with the
// model type recorded in the header metadata; Load reads a checkpoint
// back into an existing model:
//
//	err := nn.Save(model, "mlp.th", "mlp", nil)
//	header, err := nn.Load("mlp.th", backend, model)
package nn
