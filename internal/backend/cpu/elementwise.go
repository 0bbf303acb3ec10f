package cpu

import (
	"github.com/scottkang123/online-deep-learning/internal/tensor"
)

// number covers the element types the arithmetic kernels support.
type number interface {
	~float32 | ~float64 | ~int32 | ~int64
}

// The typed kernels are generic over the element type and monomorphic over
// the operator, so every instantiation compiles down to a tight loop over
// slices. dst may alias a, which turns the contiguous kernels into in-place
// updates.

func addInto[T number](dst, a, b []T) {
	for i := range dst {
		dst[i] = a[i] + b[i]
	}
}

func subInto[T number](dst, a, b []T) {
	for i := range dst {
		dst[i] = a[i] - b[i]
	}
}

func mulInto[T number](dst, a, b []T) {
	for i := range dst {
		dst[i] = a[i] * b[i]
	}
}

func divInto[T number](dst, a, b []T) {
	for i := range dst {
		dst[i] = a[i] / b[i]
	}
}

// The broadcast kernels walk the output in flat order and map every output
// index back to a source index through broadcast strides.

func addBroadcastInto[T number](dst, a, b []T, aShape, bShape, outShape tensor.Shape) {
	outStrides := outShape.ComputeStrides()
	aStrides := broadcastStrides(aShape, outShape)
	bStrides := broadcastStrides(bShape, outShape)
	for i := range dst {
		dst[i] = a[sourceIndex(i, outStrides, aStrides)] + b[sourceIndex(i, outStrides, bStrides)]
	}
}

func subBroadcastInto[T number](dst, a, b []T, aShape, bShape, outShape tensor.Shape) {
	outStrides := outShape.ComputeStrides()
	aStrides := broadcastStrides(aShape, outShape)
	bStrides := broadcastStrides(bShape, outShape)
	for i := range dst {
		dst[i] = a[sourceIndex(i, outStrides, aStrides)] - b[sourceIndex(i, outStrides, bStrides)]
	}
}

func mulBroadcastInto[T number](dst, a, b []T, aShape, bShape, outShape tensor.Shape) {
	outStrides := outShape.ComputeStrides()
	aStrides := broadcastStrides(aShape, outShape)
	bStrides := broadcastStrides(bShape, outShape)
	for i := range dst {
		dst[i] = a[sourceIndex(i, outStrides, aStrides)] * b[sourceIndex(i, outStrides, bStrides)]
	}
}

func divBroadcastInto[T number](dst, a, b []T, aShape, bShape, outShape tensor.Shape) {
	outStrides := outShape.ComputeStrides()
	aStrides := broadcastStrides(aShape, outShape)
	bStrides := broadcastStrides(bShape, outShape)
	for i := range dst {
		dst[i] = a[sourceIndex(i, outStrides, aStrides)] / b[sourceIndex(i, outStrides, bStrides)]
	}
}

// broadcastStrides returns outShape-rank strides for reading inShape as if
// it were stretched to outShape. Missing leading dimensions and dimensions
// of size 1 get stride 0 so their coordinate is ignored.
func broadcastStrides(inShape, outShape tensor.Shape) []int {
	outDim := len(outShape)
	offset := outDim - len(inShape)
	origStrides := inShape.ComputeStrides()

	strides := make([]int, outDim)
	for i := 0; i < outDim; i++ {
		inIdx := i - offset
		if inIdx < 0 || inShape[inIdx] == 1 {
			strides[i] = 0
			continue
		}
		strides[i] = origStrides[inIdx]
	}
	return strides
}

// sourceIndex maps a flat output index to the flat source index under the
// given broadcast strides.
func sourceIndex(outIdx int, outStrides, srcStrides []int) int {
	srcIdx := 0
	for i := range outStrides {
		coord := outIdx / outStrides[i]
		outIdx %= outStrides[i]
		srcIdx += coord * srcStrides[i]
	}
	return srcIdx
}

// transposeInto permutes src by axes. The coordinate buffer is reused across
// elements to keep the inner loop allocation-free.
func transposeInto[T number](dst, src []T, shape tensor.Shape, axes []int) {
	ndim := len(shape)
	srcStrides := shape.ComputeStrides()

	dstShape := make(tensor.Shape, ndim)
	for i, ax := range axes {
		dstShape[i] = shape[ax]
	}
	dstStrides := dstShape.ComputeStrides()

	coords := make([]int, ndim)
	for i := range src {
		idx := i
		for dim := 0; dim < ndim; dim++ {
			coords[dim] = idx / srcStrides[dim]
			idx %= srcStrides[dim]
		}

		dstIdx := 0
		for dstDim, srcDim := range axes {
			dstIdx += coords[srcDim] * dstStrides[dstDim]
		}
		dst[dstIdx] = src[i]
	}
}

// Dispatchers: one dtype switch per operation and path.

func addTensors(dst, a, b *tensor.RawTensor) {
	switch dst.DType() {
	case tensor.Float32:
		addInto(dst.AsFloat32(), a.AsFloat32(), b.AsFloat32())
	case tensor.Float64:
		addInto(dst.AsFloat64(), a.AsFloat64(), b.AsFloat64())
	case tensor.Int32:
		addInto(dst.AsInt32(), a.AsInt32(), b.AsInt32())
	case tensor.Int64:
		addInto(dst.AsInt64(), a.AsInt64(), b.AsInt64())
	default:
		panic("add: unsupported dtype " + dst.DType().String())
	}
}

func subTensors(dst, a, b *tensor.RawTensor) {
	switch dst.DType() {
	case tensor.Float32:
		subInto(dst.AsFloat32(), a.AsFloat32(), b.AsFloat32())
	case tensor.Float64:
		subInto(dst.AsFloat64(), a.AsFloat64(), b.AsFloat64())
	case tensor.Int32:
		subInto(dst.AsInt32(), a.AsInt32(), b.AsInt32())
	case tensor.Int64:
		subInto(dst.AsInt64(), a.AsInt64(), b.AsInt64())
	default:
		panic("sub: unsupported dtype " + dst.DType().String())
	}
}

func mulTensors(dst, a, b *tensor.RawTensor) {
	switch dst.DType() {
	case tensor.Float32:
		mulInto(dst.AsFloat32(), a.AsFloat32(), b.AsFloat32())
	case tensor.Float64:
		mulInto(dst.AsFloat64(), a.AsFloat64(), b.AsFloat64())
	case tensor.Int32:
		mulInto(dst.AsInt32(), a.AsInt32(), b.AsInt32())
	case tensor.Int64:
		mulInto(dst.AsInt64(), a.AsInt64(), b.AsInt64())
	default:
		panic("mul: unsupported dtype " + dst.DType().String())
	}
}

func divTensors(dst, a, b *tensor.RawTensor) {
	switch dst.DType() {
	case tensor.Float32:
		divInto(dst.AsFloat32(), a.AsFloat32(), b.AsFloat32())
	case tensor.Float64:
		divInto(dst.AsFloat64(), a.AsFloat64(), b.AsFloat64())
	case tensor.Int32:
		divInto(dst.AsInt32(), a.AsInt32(), b.AsInt32())
	case tensor.Int64:
		divInto(dst.AsInt64(), a.AsInt64(), b.AsInt64())
	default:
		panic("div: unsupported dtype " + dst.DType().String())
	}
}

func addTensorsBroadcast(dst, a, b *tensor.RawTensor, outShape tensor.Shape) {
	switch dst.DType() {
	case tensor.Float32:
		addBroadcastInto(dst.AsFloat32(), a.AsFloat32(), b.AsFloat32(), a.Shape(), b.Shape(), outShape)
	case tensor.Float64:
		addBroadcastInto(dst.AsFloat64(), a.AsFloat64(), b.AsFloat64(), a.Shape(), b.Shape(), outShape)
	case tensor.Int32:
		addBroadcastInto(dst.AsInt32(), a.AsInt32(), b.AsInt32(), a.Shape(), b.Shape(), outShape)
	case tensor.Int64:
		addBroadcastInto(dst.AsInt64(), a.AsInt64(), b.AsInt64(), a.Shape(), b.Shape(), outShape)
	default:
		panic("add: unsupported dtype " + dst.DType().String())
	}
}

func subTensorsBroadcast(dst, a, b *tensor.RawTensor, outShape tensor.Shape) {
	switch dst.DType() {
	case tensor.Float32:
		subBroadcastInto(dst.AsFloat32(), a.AsFloat32(), b.AsFloat32(), a.Shape(), b.Shape(), outShape)
	case tensor.Float64:
		subBroadcastInto(dst.AsFloat64(), a.AsFloat64(), b.AsFloat64(), a.Shape(), b.Shape(), outShape)
	case tensor.Int32:
		subBroadcastInto(dst.AsInt32(), a.AsInt32(), b.AsInt32(), a.Shape(), b.Shape(), outShape)
	case tensor.Int64:
		subBroadcastInto(dst.AsInt64(), a.AsInt64(), b.AsInt64(), a.Shape(), b.Shape(), outShape)
	default:
		panic("sub: unsupported dtype " + dst.DType().String())
	}
}

func mulTensorsBroadcast(dst, a, b *tensor.RawTensor, outShape tensor.Shape) {
	switch dst.DType() {
	case tensor.Float32:
		mulBroadcastInto(dst.AsFloat32(), a.AsFloat32(), b.AsFloat32(), a.Shape(), b.Shape(), outShape)
	case tensor.Float64:
		mulBroadcastInto(dst.AsFloat64(), a.AsFloat64(), b.AsFloat64(), a.Shape(), b.Shape(), outShape)
	case tensor.Int32:
		mulBroadcastInto(dst.AsInt32(), a.AsInt32(), b.AsInt32(), a.Shape(), b.Shape(), outShape)
	case tensor.Int64:
		mulBroadcastInto(dst.AsInt64(), a.AsInt64(), b.AsInt64(), a.Shape(), b.Shape(), outShape)
	default:
		panic("mul: unsupported dtype " + dst.DType().String())
	}
}

func divTensorsBroadcast(dst, a, b *tensor.RawTensor, outShape tensor.Shape) {
	switch dst.DType() {
	case tensor.Float32:
		divBroadcastInto(dst.AsFloat32(), a.AsFloat32(), b.AsFloat32(), a.Shape(), b.Shape(), outShape)
	case tensor.Float64:
		divBroadcastInto(dst.AsFloat64(), a.AsFloat64(), b.AsFloat64(), a.Shape(), b.Shape(), outShape)
	case tensor.Int32:
		divBroadcastInto(dst.AsInt32(), a.AsInt32(), b.AsInt32(), a.Shape(), b.Shape(), outShape)
	case tensor.Int64:
		divBroadcastInto(dst.AsInt64(), a.AsInt64(), b.AsInt64(), a.Shape(), b.Shape(), outShape)
	default:
		panic("div: unsupported dtype " + dst.DType().String())
	}
}

func transposeTensors(dst, src *tensor.RawTensor, axes []int) {
	switch src.DType() {
	case tensor.Float32:
		transposeInto(dst.AsFloat32(), src.AsFloat32(), src.Shape(), axes)
	case tensor.Float64:
		transposeInto(dst.AsFloat64(), src.AsFloat64(), src.Shape(), axes)
	case tensor.Int32:
		transposeInto(dst.AsInt32(), src.AsInt32(), src.Shape(), axes)
	case tensor.Int64:
		transposeInto(dst.AsInt64(), src.AsInt64(), src.Shape(), axes)
	default:
		panic("transpose: unsupported dtype " + src.DType().String())
	}
}
