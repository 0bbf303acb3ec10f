package nn

import (
	"math"
	"testing"

	"github.com/scottkang123/online-deep-learning/internal/backend/cpu"
	"github.com/scottkang123/online-deep-learning/internal/tensor"
)

func forwardActivation(t *testing.T, m Module[*cpu.CPUBackend], in []float32) []float32 {
	t.Helper()
	x, err := tensor.FromSlice(in, tensor.Shape{len(in)}, cpu.New())
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	return m.Forward(x).Data()
}

func TestActivationValues(t *testing.T) {
	in := []float32{-2, -1, 0, 1, 2}

	tests := []struct {
		name   string
		module Module[*cpu.CPUBackend]
		want   []float32
		tol    float64
	}{
		{"ReLU", NewReLU[*cpu.CPUBackend](), []float32{0, 0, 0, 1, 2}, 0},
		{"Tanh", NewTanh[*cpu.CPUBackend](), []float32{-0.9640, -0.7616, 0, 0.7616, 0.9640}, 1e-4},
		{"GELU", NewGELU[*cpu.CPUBackend](), []float32{-0.0454, -0.1588, 0, 0.8412, 1.9546}, 1e-3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := forwardActivation(t, tt.module, in)
			for i, want := range tt.want {
				if math.Abs(float64(got[i]-want)) > tt.tol {
					t.Errorf("%s(%v) = %v, want %v", tt.name, in[i], got[i], want)
				}
			}
		})
	}
}

func TestActivationsPreserveShape(t *testing.T) {
	backend := cpu.New()
	x := tensor.Randn[float32](tensor.Shape{3, 4}, backend)

	modules := []struct {
		name string
		m    Module[*cpu.CPUBackend]
	}{
		{"ReLU", NewReLU[*cpu.CPUBackend]()},
		{"Tanh", NewTanh[*cpu.CPUBackend]()},
		{"GELU", NewGELU[*cpu.CPUBackend]()},
	}
	for _, tt := range modules {
		if got := tt.m.Forward(x).Shape(); !got.Equal(x.Shape()) {
			t.Errorf("%s changed shape %v to %v", tt.name, x.Shape(), got)
		}
	}
}

func TestGELUSaturation(t *testing.T) {
	// The tanh gate saturates: large positive inputs pass through almost
	// unchanged, large negative inputs are crushed to zero.
	got := forwardActivation(t, NewGELU[*cpu.CPUBackend](), []float32{5, -5})

	if math.Abs(float64(got[0]-5)) > 0.01 {
		t.Errorf("GELU(5) = %v, want about 5", got[0])
	}
	if math.Abs(float64(got[1])) > 0.01 {
		t.Errorf("GELU(-5) = %v, want about 0", got[1])
	}
}

func TestGELUFunc(t *testing.T) {
	x, err := tensor.FromSlice([]float32{1}, tensor.Shape{1}, cpu.New())
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}

	got := GELUFunc(x).Data()[0]
	if math.Abs(float64(got)-0.8412) > 1e-3 {
		t.Errorf("GELUFunc(1) = %v, want about 0.8412", got)
	}
}
