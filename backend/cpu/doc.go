// Copyright 2025 The ODL Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for tensor operations.
//
// The backend implements every operation the tensor package requires
// without CGO: elementwise arithmetic with NumPy-style broadcasting,
// matrix multiplication, reshape and transpose, softmax, and the fused
// activations used by the nn package. Float32 is the primary dtype;
// float64 and the integer dtypes are covered where the operation makes
// sense for them.
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
//	    model, err := classifier.LoadModel(backend, "mlp_deep", true, classifier.Config{})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    images := tensor.Randn[float32](tensor.Shape{8, 3, 64, 64}, backend)
//	    logits := model.Forward(images)  // Shape: [8, 6]
//	}
//
// # Parallelism
//
// Matrix multiplication distributes output rows across a worker pool.
// The pool size defaults to the logical core count reported by the CPU
// and small matrices stay on the calling goroutine, so single-image
// inference does not pay goroutine overhead.
//
// # Thread Safety
//
// The backend holds no mutable state between operations, so a single
// Backend value can serve concurrent inferences.
package cpu
