// Copyright 2025 The ODL Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/scottkang123/online-deep-learning/internal/backend/cpu"
	"github.com/scottkang123/online-deep-learning/tensor"
)

// Backend represents the CPU backend implementation.
//
// All operations are pure Go. Matrix multiplication splits its work
// across a worker pool sized from the machine's CPU topology.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new CPU backend.
//
// Example:
//
//	backend := cpu.New()
//	model := classifier.ModelFactory["mlp"](backend, classifier.Config{})
//	logits := model.Forward(images)
func New() *Backend {
	return internalcpu.New()
}
