package nn_test

import (
	"math"
	"testing"

	"github.com/scottkang123/online-deep-learning/internal/backend/cpu"
	"github.com/scottkang123/online-deep-learning/internal/nn"
	"github.com/scottkang123/online-deep-learning/internal/tensor"
)

func closeTo(a, b, eps float32) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < eps
}

func expectPanic(t *testing.T, name string, f func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	f()
}

func TestParameter(t *testing.T) {
	backend := cpu.New()

	data, err := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{3}, backend)
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}
	param := nn.NewParameter("weight", data)

	if param.Name() != "weight" {
		t.Errorf("Name() = %s, want weight", param.Name())
	}
	if param.Tensor() != data {
		t.Error("Tensor() should return the wrapped tensor")
	}
}

func TestLinearShapes(t *testing.T) {
	backend := cpu.New()
	layer := nn.NewLinear(10, 5, backend)

	if layer.InFeatures() != 10 || layer.OutFeatures() != 5 {
		t.Errorf("Features = (%d, %d), want (10, 5)", layer.InFeatures(), layer.OutFeatures())
	}

	// Weight is [out_features, in_features], bias is [out_features].
	if got := layer.Weight().Tensor().Shape(); !got.Equal(tensor.Shape{5, 10}) {
		t.Errorf("Weight shape = %v, want [5 10]", got)
	}
	if got := layer.Bias().Tensor().Shape(); !got.Equal(tensor.Shape{5}) {
		t.Errorf("Bias shape = %v, want [5]", got)
	}

	for i, v := range layer.Bias().Tensor().Raw().AsFloat32() {
		if v != 0 {
			t.Errorf("Bias[%d] = %f, want 0", i, v)
			break
		}
	}

	if got := len(layer.Parameters()); got != 2 {
		t.Errorf("Parameters() length = %d, want 2", got)
	}
}

func TestLinearForward(t *testing.T) {
	backend := cpu.New()
	layer := nn.NewLinear(2, 2, backend)

	// W = [[1, -1], [2, 0.5]], b = [0.25, -1].
	copy(layer.Weight().Tensor().Raw().AsFloat32(), []float32{1, -1, 2, 0.5})
	copy(layer.Bias().Tensor().Raw().AsFloat32(), []float32{0.25, -1})

	input, err := tensor.FromSlice([]float32{2, 3}, tensor.Shape{1, 2}, backend)
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}
	output := layer.Forward(input)

	// y = x @ W.T + b = [2*1+3*(-1), 2*2+3*0.5] + b = [-0.75, 4.5]
	want := []float32{-0.75, 4.5}
	got := output.Raw().AsFloat32()
	for i := range want {
		if !closeTo(got[i], want[i], 1e-5) {
			t.Errorf("Output[%d] = %f, want %f", i, got[i], want[i])
		}
	}
	if !output.Shape().Equal(tensor.Shape{1, 2}) {
		t.Errorf("Output shape = %v, want [1 2]", output.Shape())
	}
}

func TestLinearForwardBatch(t *testing.T) {
	backend := cpu.New()
	layer := nn.NewLinear(3, 2, backend)

	input := tensor.Randn[float32](tensor.Shape{4, 3}, backend)
	output := layer.Forward(input)

	if !output.Shape().Equal(tensor.Shape{4, 2}) {
		t.Errorf("Output shape = %v, want [4 2]", output.Shape())
	}
}

func TestLinearForwardPanics(t *testing.T) {
	backend := cpu.New()
	layer := nn.NewLinear(2, 2, backend)

	oneD := tensor.Randn[float32](tensor.Shape{2}, backend)
	expectPanic(t, "1D input", func() { layer.Forward(oneD) })

	wrongFeatures := tensor.Randn[float32](tensor.Shape{1, 3}, backend)
	expectPanic(t, "feature count mismatch", func() { layer.Forward(wrongFeatures) })
}

func TestReLUForward(t *testing.T) {
	backend := cpu.New()
	relu := nn.NewReLU[*cpu.CPUBackend]()

	input, err := tensor.FromSlice([]float32{-2, -1, 0, 1, 2}, tensor.Shape{5}, backend)
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}
	got := relu.Forward(input).Raw().AsFloat32()

	want := []float32{0, 0, 0, 1, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ReLU output[%d] = %f, want %f", i, got[i], want[i])
		}
	}

	if len(relu.Parameters()) != 0 {
		t.Error("ReLU should have no parameters")
	}
}

func TestTanhForward(t *testing.T) {
	backend := cpu.New()
	tanh := nn.NewTanh[*cpu.CPUBackend]()

	input, err := tensor.FromSlice([]float32{0, 1, -1}, tensor.Shape{3}, backend)
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}
	got := tanh.Forward(input).Raw().AsFloat32()

	want := []float32{0, float32(math.Tanh(1)), float32(math.Tanh(-1))}
	for i := range want {
		if !closeTo(got[i], want[i], 1e-5) {
			t.Errorf("Tanh output[%d] = %f, want %f", i, got[i], want[i])
		}
	}

	if len(tanh.Parameters()) != 0 {
		t.Error("Tanh should have no parameters")
	}
}

func TestFlattenForward(t *testing.T) {
	backend := cpu.New()
	flatten := nn.NewFlatten[*cpu.CPUBackend]()

	// A batch of 2 images, 3 channels of 4x4 pixels, flattens to [2, 48].
	input := tensor.Randn[float32](tensor.Shape{2, 3, 4, 4}, backend)
	output := flatten.Forward(input)

	if !output.Shape().Equal(tensor.Shape{2, 48}) {
		t.Errorf("Flatten output shape = %v, want [2 48]", output.Shape())
	}

	// Flattening reinterprets the layout; element order must not change.
	in := input.Raw().AsFloat32()
	out := output.Raw().AsFloat32()
	for i := range in {
		if in[i] != out[i] {
			t.Errorf("Flatten output[%d] = %f, want %f", i, out[i], in[i])
			break
		}
	}

	if len(flatten.Parameters()) != 0 {
		t.Error("Flatten should have no parameters")
	}
}

func TestFlatten2DPassthrough(t *testing.T) {
	backend := cpu.New()
	flatten := nn.NewFlatten[*cpu.CPUBackend]()

	input := tensor.Randn[float32](tensor.Shape{4, 10}, backend)
	output := flatten.Forward(input)

	if !output.Shape().Equal(tensor.Shape{4, 10}) {
		t.Errorf("Flatten output shape = %v, want [4 10]", output.Shape())
	}
}

func TestSequential(t *testing.T) {
	backend := cpu.New()

	linear := nn.NewLinear(3, 2, backend)
	relu := nn.NewReLU[*cpu.CPUBackend]()
	model := nn.NewSequential[*cpu.CPUBackend](linear, relu)

	if model.Len() != 2 {
		t.Errorf("Len() = %d, want 2", model.Len())
	}
	if model.Module(0) != linear || model.Module(1) != relu {
		t.Error("Module(i) should return the modules in construction order")
	}
	expectPanic(t, "index past end", func() { model.Module(2) })
	expectPanic(t, "negative index", func() { model.Module(-1) })

	input := tensor.Randn[float32](tensor.Shape{4, 3}, backend)
	output := model.Forward(input)
	if !output.Shape().Equal(tensor.Shape{4, 2}) {
		t.Errorf("Output shape = %v, want [4 2]", output.Shape())
	}

	// ReLU clamps at zero, so every output must be non-negative.
	for i, v := range output.Raw().AsFloat32() {
		if v < 0 {
			t.Errorf("Output[%d] = %f, want >= 0 after ReLU", i, v)
			break
		}
	}

	if got := len(model.Parameters()); got != 2 {
		t.Errorf("Parameters() length = %d, want 2", got)
	}
}

func TestSequentialAdd(t *testing.T) {
	backend := cpu.New()
	model := nn.NewSequential[*cpu.CPUBackend]()

	if model.Len() != 0 {
		t.Errorf("Empty Len() = %d, want 0", model.Len())
	}

	model.Add(nn.NewLinear(10, 5, backend))
	model.Add(nn.NewReLU[*cpu.CPUBackend]())
	model.Add(nn.NewLinear(5, 2, backend))

	if model.Len() != 3 {
		t.Errorf("Len() = %d, want 3", model.Len())
	}
}

func TestSequentialStateDictKeys(t *testing.T) {
	backend := cpu.New()

	// The ReLU at index 1 has no parameters but still occupies the index,
	// so the second Linear's keys start with "2.".
	model := nn.NewSequential[*cpu.CPUBackend](
		nn.NewLinear(4, 3, backend),
		nn.NewReLU[*cpu.CPUBackend](),
		nn.NewLinear(3, 2, backend),
	)

	stateDict := model.StateDict()
	for _, key := range []string{"0.weight", "0.bias", "2.weight", "2.bias"} {
		if _, ok := stateDict[key]; !ok {
			t.Errorf("StateDict missing key %s (have %d entries)", key, len(stateDict))
		}
	}
	if len(stateDict) != 4 {
		t.Errorf("StateDict has %d entries, want 4", len(stateDict))
	}
}

func TestSequentialLoadStateDict(t *testing.T) {
	backend := cpu.New()

	newModel := func() *nn.Sequential[*cpu.CPUBackend] {
		return nn.NewSequential[*cpu.CPUBackend](
			nn.NewLinear(4, 3, backend),
			nn.NewTanh[*cpu.CPUBackend](),
			nn.NewLinear(3, 2, backend),
		)
	}

	src := newModel()
	dst := newModel()

	if err := dst.LoadStateDict(src.StateDict()); err != nil {
		t.Fatalf("LoadStateDict failed: %v", err)
	}

	// Same weights now, so the same input maps to the same output.
	input := tensor.Randn[float32](tensor.Shape{2, 4}, backend)
	srcOut := src.Forward(input).Raw().AsFloat32()
	dstOut := dst.Forward(input).Raw().AsFloat32()
	for i := range srcOut {
		if srcOut[i] != dstOut[i] {
			t.Errorf("Output[%d] = %f after load, want %f", i, dstOut[i], srcOut[i])
			break
		}
	}
}

func TestSequentialLoadStateDictShapeMismatch(t *testing.T) {
	backend := cpu.New()

	src := nn.NewSequential[*cpu.CPUBackend](nn.NewLinear(4, 3, backend))
	dst := nn.NewSequential[*cpu.CPUBackend](nn.NewLinear(4, 5, backend))

	if err := dst.LoadStateDict(src.StateDict()); err == nil {
		t.Error("Expected error loading mismatched layer shapes")
	}
}

func TestXavierInitialization(t *testing.T) {
	backend := cpu.New()

	w := nn.Xavier(100, 50, tensor.Shape{50, 100}, backend)
	bound := math.Sqrt(6.0 / 150.0)

	data := w.Raw().AsFloat32()
	minV, maxV := data[0], data[0]
	for i, v := range data {
		if math.Abs(float64(v)) > bound {
			t.Errorf("Xavier value[%d] = %f exceeds bound %f", i, v, bound)
			break
		}
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}

	// 5000 uniform samples span both signs unless the generator is broken.
	if minV >= 0 || maxV <= 0 {
		t.Errorf("Xavier samples span [%f, %f], want both signs", minV, maxV)
	}
}
