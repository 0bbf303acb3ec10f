// Copyright 2025 The ODL Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package classifier

import "errors"

// Common errors. SaveModel and LoadModel wrap these with the model name and
// checkpoint details, so callers match them with errors.Is.
var (
	ErrUnknownModel       = errors.New("unknown model name")
	ErrUnsupportedModel   = errors.New("unsupported model type")
	ErrCheckpointNotFound = errors.New("checkpoint not found")
	ErrCheckpointMismatch = errors.New("checkpoint mismatch")
	ErrModelTooLarge      = errors.New("model size budget exceeded")
)
