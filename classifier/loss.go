// Copyright 2025 The ODL Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package classifier

import (
	"github.com/scottkang123/online-deep-learning/nn"
	"github.com/scottkang123/online-deep-learning/tensor"
)

// ClassificationLoss scores logits against integer class labels using mean
// cross-entropy.
//
// Example:
//
//	criterion := classifier.NewClassificationLoss(backend)
//	loss := criterion.Forward(logits, labels)  // scalar, shape [1]
type ClassificationLoss struct {
	loss *nn.CrossEntropyLoss[Backend]
}

// NewClassificationLoss creates a classification loss on the given backend.
func NewClassificationLoss(backend Backend) *ClassificationLoss {
	return &ClassificationLoss{loss: nn.NewCrossEntropyLoss(backend)}
}

// Forward computes the mean cross-entropy over the batch.
//
// Parameters:
//   - logits: float32 tensor of shape (batch, num_classes)
//   - labels: int32 tensor of shape (batch,), values in [0, num_classes)
//
// Returns a scalar loss tensor with shape [1]. Panics on shape mismatch or
// out-of-range labels.
func (l *ClassificationLoss) Forward(
	logits *tensor.Tensor[float32, Backend],
	labels *tensor.Tensor[int32, Backend],
) *tensor.Tensor[float32, Backend] {
	return l.loss.Forward(logits, labels)
}
