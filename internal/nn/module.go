// Package nn implements the neural network modules the classifiers are
// assembled from: Linear, the ReLU/Tanh/GELU activations, Flatten,
// Sequential, and CrossEntropyLoss, plus checkpoint save and load for
// any Module.
//
// The Module interface follows the PyTorch nn.Module split between
// Forward and the state dict, adapted to Go generics over the backend.
package nn

import (
	"github.com/scottkang123/online-deep-learning/internal/serialization"
	"github.com/scottkang123/online-deep-learning/internal/tensor"
)

// Module is the interface all network components implement.
type Module[B tensor.Backend] interface {
	// Forward computes the module's output for the given input.
	Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]

	// Parameters returns the trainable parameters, including those of
	// nested modules. Stateless modules return nil.
	Parameters() []*Parameter[B]

	// StateDict maps parameter names to their raw tensors for
	// serialization.
	StateDict() map[string]*tensor.RawTensor

	// LoadStateDict copies named tensors back into the parameters.
	// It fails if an entry is missing or its shape or dtype disagrees.
	LoadStateDict(stateDict map[string]*tensor.RawTensor) error
}

// stateless supplies the Module plumbing shared by layers without
// parameters. Embed it and implement only Forward.
type stateless[B tensor.Backend] struct{}

func (stateless[B]) Parameters() []*Parameter[B]                      { return nil }
func (stateless[B]) StateDict() map[string]*tensor.RawTensor          { return nil }
func (stateless[B]) LoadStateDict(map[string]*tensor.RawTensor) error { return nil }

// Save writes a module's state dict to a checkpoint file. The modelType
// string is stored in the header so loading code can verify it is
// rebuilding the right architecture. Metadata may be nil.
//
// Example:
//
//	model := nn.NewLinear(12288, 6, backend)
//	err := nn.Save(model, "linear.th", "linear", nil)
func Save[B tensor.Backend](module Module[B], path, modelType string, metadata map[string]string) error {
	writer, err := serialization.NewWriter(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = writer.Close()
	}()

	return writer.WriteStateDict(module.StateDict(), modelType, metadata)
}

// Load reads a checkpoint into a module constructed with the same
// architecture it was saved from, and returns the checkpoint header.
//
// Example:
//
//	model := nn.NewLinear(12288, 6, backend)
//	header, err := nn.Load("linear.th", backend, model)
func Load[B tensor.Backend](path string, backend B, module Module[B]) (serialization.Header, error) {
	reader, err := serialization.NewReader(path)
	if err != nil {
		return serialization.Header{}, err
	}
	defer func() {
		_ = reader.Close()
	}()

	stateDict, err := reader.ReadStateDict(backend)
	if err != nil {
		return serialization.Header{}, err
	}

	if err := module.LoadStateDict(stateDict); err != nil {
		return serialization.Header{}, err
	}

	return reader.Header(), nil
}
