package nn_test

import (
	"math"
	"testing"

	"github.com/scottkang123/online-deep-learning/internal/backend/cpu"
	"github.com/scottkang123/online-deep-learning/internal/nn"
	"github.com/scottkang123/online-deep-learning/internal/tensor"
)

func lossFor(t *testing.T, logits []float32, shape tensor.Shape, targets []int32) float32 {
	t.Helper()
	backend := cpu.New()

	logitsT, err := tensor.FromSlice(logits, shape, backend)
	if err != nil {
		t.Fatalf("FromSlice(logits) failed: %v", err)
	}
	targetsT, err := tensor.FromSlice(targets, tensor.Shape{len(targets)}, backend)
	if err != nil {
		t.Fatalf("FromSlice(targets) failed: %v", err)
	}

	criterion := nn.NewCrossEntropyLoss(backend)
	return criterion.Forward(logitsT, targetsT).Raw().AsFloat32()[0]
}

func TestCrossEntropyLossKnownValue(t *testing.T) {
	// For logits [2, 1] and target 0 the loss reduces to log(1 + e^-1).
	got := lossFor(t, []float32{2, 1}, tensor.Shape{1, 2}, []int32{0})
	want := float32(math.Log(1 + math.Exp(-1)))

	if !closeTo(got, want, 1e-5) {
		t.Errorf("Loss = %f, want %f", got, want)
	}
}

func TestCrossEntropyLossBatchMean(t *testing.T) {
	// Sample 0: logits [2, 1], target 0, loss log(1 + e^-1).
	// Sample 1: logits [1, 2], target 0, loss 1 + log(1 + e^-1).
	// The batch loss is the mean of the two.
	got := lossFor(t, []float32{2, 1, 1, 2}, tensor.Shape{2, 2}, []int32{0, 0})
	perSample := math.Log(1 + math.Exp(-1))
	want := float32((perSample + 1 + perSample) / 2)

	if !closeTo(got, want, 1e-5) {
		t.Errorf("Mean loss = %f, want %f", got, want)
	}
}

func TestCrossEntropyLossUniformLogits(t *testing.T) {
	// All-zero logits over 6 classes give a uniform softmax, so the loss is
	// -log(1/6) = log(6) regardless of the targets.
	got := lossFor(t, make([]float32, 12), tensor.Shape{2, 6}, []int32{0, 5})
	want := float32(math.Log(6))

	if !closeTo(got, want, 1e-5) {
		t.Errorf("Uniform loss = %f, want %f", got, want)
	}
}

func TestCrossEntropyLossExtremeLogits(t *testing.T) {
	// Without max-shifting, exp(1000) overflows float32. With it, the loss
	// for [1000, 999, 998] and target 0 is exactly log(1 + e^-1 + e^-2).
	got := lossFor(t, []float32{1000, 999, 998}, tensor.Shape{1, 3}, []int32{0})
	want := float32(math.Log(1 + math.Exp(-1) + math.Exp(-2)))

	if math.IsInf(float64(got), 0) || math.IsNaN(float64(got)) {
		t.Fatalf("Loss is not finite: %f", got)
	}
	if !closeTo(got, want, 1e-4) {
		t.Errorf("Loss = %f, want %f", got, want)
	}
}

func TestCrossEntropyLossVeryNegativeLogits(t *testing.T) {
	// exp(-1000) underflows to zero; max-shifting keeps the result exact.
	got := lossFor(t, []float32{-1000, -999}, tensor.Shape{1, 2}, []int32{1})
	want := float32(math.Log(1 + math.Exp(-1)))

	if !closeTo(got, want, 1e-4) {
		t.Errorf("Loss = %f, want %f", got, want)
	}
}

func TestCrossEntropyLossPanics(t *testing.T) {
	backend := cpu.New()
	criterion := nn.NewCrossEntropyLoss(backend)

	logits2D, _ := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{1, 3}, backend)
	logits1D, _ := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{3}, backend)
	oneTarget, _ := tensor.FromSlice([]int32{0}, tensor.Shape{1}, backend)
	twoTargets, _ := tensor.FromSlice([]int32{0, 1}, tensor.Shape{2}, backend)
	pastEnd, _ := tensor.FromSlice([]int32{5}, tensor.Shape{1}, backend)
	negative, _ := tensor.FromSlice([]int32{-1}, tensor.Shape{1}, backend)

	expectPanic(t, "1D logits", func() { criterion.Forward(logits1D, oneTarget) })
	expectPanic(t, "target count mismatch", func() { criterion.Forward(logits2D, twoTargets) })
	expectPanic(t, "target past num_classes", func() { criterion.Forward(logits2D, pastEnd) })
	expectPanic(t, "negative target", func() { criterion.Forward(logits2D, negative) })
}
