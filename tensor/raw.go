// Copyright 2025 The ODL Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/scottkang123/online-deep-learning/internal/tensor"
)

// RawTensor is the untyped tensor representation underneath Tensor[T, B].
//
// It carries the shape, data type, and device alongside a flat byte
// buffer, with typed views (AsFloat32, AsInt32, ...) and copy-on-write
// cloning on top. State dicts and checkpoint files move parameters
// around as RawTensors, so it appears in any code that saves or loads
// models:
//
//	stateDict := model.StateDict()           // map[string]*tensor.RawTensor
//	weight := stateDict["linear.weight"]
//	values := weight.AsFloat32()
//
// Everything else should stay on the typed Tensor[T, B] API.
type RawTensor = tensor.RawTensor
