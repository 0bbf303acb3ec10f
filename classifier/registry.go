// Copyright 2025 The ODL Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package classifier

// Constructor builds a model variant from a backend and configuration.
type Constructor func(backend Backend, cfg Config) Model

// ModelFactory maps registry names to model constructors. It is populated
// once here and read-only afterwards; LoadModel and SaveModel resolve
// names against it.
var ModelFactory = map[string]Constructor{
	"linear": func(backend Backend, cfg Config) Model {
		return NewLinearClassifier(backend, cfg)
	},
	"mlp": func(backend Backend, cfg Config) Model {
		return NewMLPClassifier(backend, cfg)
	},
	"mlp_deep": func(backend Backend, cfg Config) Model {
		return NewMLPClassifierDeep(backend, cfg)
	},
	"mlp_deep_residual": func(backend Backend, cfg Config) Model {
		return NewMLPClassifierDeepResidual(backend, cfg)
	},
}
