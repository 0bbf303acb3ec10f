package nn

import (
	"fmt"
	"strings"

	"github.com/scottkang123/online-deep-learning/internal/tensor"
)

// Sequential chains modules so that each module consumes the previous
// module's output.
//
// Example:
//
//	model := nn.NewSequential[Backend](
//	    nn.NewLinear(12288, 128, backend),
//	    nn.NewReLU[Backend](),
//	    nn.NewLinear(128, 6, backend),
//	)
//
//	output := model.Forward(input)
type Sequential[B tensor.Backend] struct {
	modules []Module[B]
}

// NewSequential builds a Sequential from modules in execution order.
func NewSequential[B tensor.Backend](modules ...Module[B]) *Sequential[B] {
	return &Sequential[B]{modules: modules}
}

// Forward feeds input through every module in order and returns the last
// module's output.
func (s *Sequential[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	out := input
	for _, m := range s.modules {
		out = m.Forward(out)
	}
	return out
}

// Parameters collects the parameters of every module, in module order.
func (s *Sequential[B]) Parameters() []*Parameter[B] {
	var params []*Parameter[B]
	for _, m := range s.modules {
		params = append(params, m.Parameters()...)
	}
	return params
}

// Add appends a module to the end of the chain.
func (s *Sequential[B]) Add(m Module[B]) {
	s.modules = append(s.modules, m)
}

// Len returns the number of modules in the chain.
func (s *Sequential[B]) Len() int { return len(s.modules) }

// Module returns the module at index. Panics if index is out of range.
func (s *Sequential[B]) Module(index int) Module[B] {
	if index < 0 || index >= len(s.modules) {
		panic(fmt.Sprintf("Sequential.Module: index %d out of range [0, %d)", index, len(s.modules)))
	}
	return s.modules[index]
}

// StateDict flattens every submodule's state dict under its position in the
// chain, e.g. "0.weight", "0.bias", "2.weight". Modules without parameters
// still occupy an index, so the numbering matches construction order exactly.
func (s *Sequential[B]) StateDict() map[string]*tensor.RawTensor {
	out := make(map[string]*tensor.RawTensor)
	for i, m := range s.modules {
		for name, raw := range m.StateDict() {
			out[fmt.Sprintf("%d.%s", i, name)] = raw
		}
	}
	return out
}

// LoadStateDict routes each "index.name" entry to the module at that index.
// A module that finds none of its keys in stateDict keeps its current
// parameters.
func (s *Sequential[B]) LoadStateDict(stateDict map[string]*tensor.RawTensor) error {
	for i, m := range s.modules {
		prefix := fmt.Sprintf("%d.", i)

		sub := make(map[string]*tensor.RawTensor)
		for key, raw := range stateDict {
			if strings.HasPrefix(key, prefix) {
				sub[strings.TrimPrefix(key, prefix)] = raw
			}
		}
		if len(sub) == 0 {
			continue
		}

		if err := m.LoadStateDict(sub); err != nil {
			return fmt.Errorf("failed to load module %d: %w", i, err)
		}
	}
	return nil
}
