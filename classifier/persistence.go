// Copyright 2025 The ODL Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package classifier

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/scottkang123/online-deep-learning/nn"
)

// ModelDir is the directory checkpoints are written to and read from.
// Defaults to the working directory.
var ModelDir = "."

// CheckpointPath returns the checkpoint path for a registry name:
// <ModelDir>/<name>.th.
func CheckpointPath(name string) string {
	return filepath.Join(ModelDir, name+".th")
}

// SaveModel writes the model's state dictionary to CheckpointPath(tag),
// where tag is the model's registry name. The tag is stamped into the
// checkpoint header so LoadModel can verify it.
func SaveModel(model Model) error {
	tag := model.ModelType()
	if _, ok := ModelFactory[tag]; !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedModel, tag)
	}
	return nn.Save[Backend](model, CheckpointPath(tag), tag, nil)
}

// LoadModel constructs the named model and optionally restores its weights
// from CheckpointPath(name).
//
// A zero-value cfg selects the variant defaults, which must match the
// configuration the checkpoint was saved with. The constructed model is
// checked against MaxModelSizeMB before being returned; on any error no
// model is returned.
func LoadModel(backend Backend, name string, withWeights bool, cfg Config) (Model, error) {
	construct, ok := ModelFactory[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModel, name)
	}

	model := construct(backend, cfg)

	if withWeights {
		path := CheckpointPath(name)
		base := filepath.Base(path)

		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrCheckpointNotFound, base)
		}

		header, err := nn.Load(path, backend, model)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to load %s, make sure the default model arguments are set correctly: %w",
				ErrCheckpointMismatch, base, err)
		}
		if header.ModelType != name {
			return nil, fmt.Errorf("%w: %s was saved for model type %q",
				ErrCheckpointMismatch, base, header.ModelType)
		}
	}

	sizeMB := CalculateModelSizeMB(model)
	if sizeMB > MaxModelSizeMB {
		return nil, fmt.Errorf("%w: %s is too large: %.2f MB", ErrModelTooLarge, name, sizeMB)
	}
	fmt.Printf("Model size: %.2f MB\n", sizeMB)

	return model, nil
}
