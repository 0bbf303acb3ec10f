package nn

import (
	"fmt"

	"github.com/scottkang123/online-deep-learning/internal/tensor"
)

// Linear is a fully connected layer computing y = x W^T + b.
//
// The weight matrix is stored as [outFeatures, inFeatures] and transposed
// during Forward, so state dicts line up with the usual checkpoint layout.
// Weights start Xavier-initialized, biases at zero.
//
// Example:
//
//	layer := nn.NewLinear(12288, 128, backend)
//	input := tensor.Randn[float32](tensor.Shape{32, 12288}, backend)
//	output := layer.Forward(input) // shape: [32, 128]
type Linear[B tensor.Backend] struct {
	inFeatures  int
	outFeatures int
	weight      *Parameter[B] // [outFeatures, inFeatures]
	bias        *Parameter[B] // [outFeatures]
}

// NewLinear creates a Linear layer mapping inFeatures to outFeatures.
func NewLinear[B tensor.Backend](inFeatures, outFeatures int, backend B) *Linear[B] {
	weightShape := tensor.Shape{outFeatures, inFeatures}
	return &Linear[B]{
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
		weight:      NewParameter("weight", Xavier(inFeatures, outFeatures, weightShape, backend)),
		bias:        NewParameter("bias", Zeros(tensor.Shape{outFeatures}, backend)),
	}
}

// Forward applies the affine transformation to a [batch, inFeatures] input
// and returns a [batch, outFeatures] output.
func (l *Linear[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	shape := input.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("Linear.Forward: expected 2D input [batch, features], got shape %v", shape))
	}
	if shape[1] != l.inFeatures {
		panic(fmt.Sprintf("Linear.Forward: expected input with %d features, got %d", l.inFeatures, shape[1]))
	}

	out := input.MatMul(l.weight.Tensor().Transpose())
	// Bias broadcasts over the batch dimension as [1, outFeatures].
	return out.Add(l.bias.Tensor().Reshape(1, l.outFeatures))
}

// Parameters returns the layer's parameters as [weight, bias].
func (l *Linear[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{l.weight, l.bias}
}

// Weight returns the weight parameter.
func (l *Linear[B]) Weight() *Parameter[B] { return l.weight }

// Bias returns the bias parameter.
func (l *Linear[B]) Bias() *Parameter[B] { return l.bias }

// InFeatures returns the number of input features.
func (l *Linear[B]) InFeatures() int { return l.inFeatures }

// OutFeatures returns the number of output features.
func (l *Linear[B]) OutFeatures() int { return l.outFeatures }

// StateDict returns a map of parameter names to raw tensors.
func (l *Linear[B]) StateDict() map[string]*tensor.RawTensor {
	return map[string]*tensor.RawTensor{
		"weight": l.weight.Tensor().Raw(),
		"bias":   l.bias.Tensor().Raw(),
	}
}

// LoadStateDict copies "weight" and "bias" entries into the layer's
// parameters. Shapes and dtypes must match exactly.
func (l *Linear[B]) LoadStateDict(stateDict map[string]*tensor.RawTensor) error {
	if err := loadInto(l.weight, stateDict, tensor.Shape{l.outFeatures, l.inFeatures}); err != nil {
		return err
	}
	return loadInto(l.bias, stateDict, tensor.Shape{l.outFeatures})
}

// loadInto copies the state dict entry matching p's name into p's tensor,
// checking shape and dtype first.
func loadInto[B tensor.Backend](p *Parameter[B], stateDict map[string]*tensor.RawTensor, want tensor.Shape) error {
	name := p.Name()
	raw, ok := stateDict[name]
	if !ok {
		return fmt.Errorf("missing %s in state dict", name)
	}
	if !raw.Shape().Equal(want) {
		return fmt.Errorf("%s shape mismatch: expected %v, got %v", name, want, raw.Shape())
	}
	if raw.DType() != tensor.Float32 {
		return fmt.Errorf("%s dtype mismatch: expected float32, got %v", name, raw.DType())
	}
	copy(p.Tensor().Data(), raw.AsFloat32())
	return nil
}
