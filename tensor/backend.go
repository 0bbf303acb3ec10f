// Copyright 2025 The ODL Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/scottkang123/online-deep-learning/internal/tensor"

// Backend is the compute interface tensors run on: element-wise
// arithmetic with broadcasting, the scalar variants, MatMul, Reshape,
// Transpose, Softmax, and device metadata. The backend/cpu package holds
// the only shipping implementation.
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	y := tensor.Ones[float32](tensor.Shape{2, 3}, backend)
//	z := x.Add(y)  // runs backend.Add
type Backend = tensor.Backend
