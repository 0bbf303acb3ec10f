// Copyright 2025 The ODL Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package classifier

// MaxModelSizeMB is the upper bound LoadModel enforces on the estimated
// model size.
const MaxModelSizeMB = 10.0

// CalculateModelSizeMB estimates a model's size in megabytes, assuming
// 4 bytes per parameter (float32 storage).
func CalculateModelSizeMB(model Model) float64 {
	totalParams := 0
	for _, p := range model.Parameters() {
		totalParams += p.Tensor().NumElements()
	}
	return float64(totalParams) * 4 / (1024 * 1024)
}
