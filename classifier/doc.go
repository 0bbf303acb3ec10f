// Copyright 2025 The ODL Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package classifier provides feed-forward image classifiers with a model
// registry, a size budget, and checkpoint persistence.
//
// # Model Variants
//
// Four model variants share one input contract, image batches of shape
// (batch, 3, height, width), and one output contract, logits of shape
// (batch, num_classes):
//   - "linear": a single affine transform over the flattened image
//   - "mlp": one hidden layer with ReLU
//   - "mlp_deep": 16 affine layers with a GELU after the first
//   - "mlp_deep_residual": residual blocks with ReLU shortcuts
//
// # Usage
//
//	import (
//	    "github.com/scottkang123/online-deep-learning/backend/cpu"
//	    "github.com/scottkang123/online-deep-learning/classifier"
//	    "github.com/scottkang123/online-deep-learning/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    // Construct a fresh model by registry name.
//	    model, err := classifier.LoadModel(backend, "mlp", false, classifier.Config{})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    // Classify a batch.
//	    images := tensor.Randn[float32](tensor.Shape{32, 3, 64, 64}, backend)
//	    logits := model.Forward(images)  // (32, 6)
//
//	    // Score against labels.
//	    criterion := classifier.NewClassificationLoss(backend)
//	    loss := criterion.Forward(logits, labels)
//	}
//
// # Persistence
//
// SaveModel writes <ModelDir>/<name>.th; LoadModel with withWeights=true
// restores it. Checkpoints record the registry name, and loading verifies
// it, so a file saved as "mlp" never silently loads as "mlp_deep". Models
// whose estimated size exceeds 10 MB are rejected at load time.
//
// # Errors
//
// The package reports failures through sentinel errors (ErrUnknownModel,
// ErrCheckpointNotFound, ErrCheckpointMismatch, ErrModelTooLarge,
// ErrUnsupportedModel) wrapped with context; test with errors.Is. Shape
// errors inside a forward pass panic, matching the engine's convention for
// programmer errors.
package classifier
