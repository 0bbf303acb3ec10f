package tensor

import (
	"fmt"
	"math"
)

var _ Backend = (*MockBackend)(nil)

// MockBackend is a reference backend for testing the typed facade.
// Operands are staged into float64 buffers, broadcast up front, and
// combined with plain loops, so results are easy to trust and real
// backends can be checked against them.
type MockBackend struct{}

// NewMockBackend creates a new MockBackend.
func NewMockBackend() *MockBackend {
	return &MockBackend{}
}

// Name returns the backend name.
func (m *MockBackend) Name() string {
	return "mock"
}

// Device returns the device type.
func (m *MockBackend) Device() Device {
	return CPU
}

// Add performs element-wise addition with broadcasting.
func (m *MockBackend) Add(a, b *RawTensor) *RawTensor {
	return m.binary(a, b, func(x, y float64) float64 { return x + y })
}

// Sub performs element-wise subtraction with broadcasting.
func (m *MockBackend) Sub(a, b *RawTensor) *RawTensor {
	return m.binary(a, b, func(x, y float64) float64 { return x - y })
}

// Mul performs element-wise multiplication with broadcasting.
func (m *MockBackend) Mul(a, b *RawTensor) *RawTensor {
	return m.binary(a, b, func(x, y float64) float64 { return x * y })
}

// Div performs element-wise division with broadcasting.
func (m *MockBackend) Div(a, b *RawTensor) *RawTensor {
	return m.binary(a, b, func(x, y float64) float64 { return x / y })
}

// AddScalar adds a scalar to each element.
func (m *MockBackend) AddScalar(x *RawTensor, scalar any) *RawTensor {
	s := f64scalar(scalar)
	return m.unary(x, func(v float64) float64 { return v + s })
}

// SubScalar subtracts a scalar from each element.
func (m *MockBackend) SubScalar(x *RawTensor, scalar any) *RawTensor {
	s := f64scalar(scalar)
	return m.unary(x, func(v float64) float64 { return v - s })
}

// MulScalar multiplies each element by a scalar.
func (m *MockBackend) MulScalar(x *RawTensor, scalar any) *RawTensor {
	s := f64scalar(scalar)
	return m.unary(x, func(v float64) float64 { return v * s })
}

// DivScalar divides each element by a scalar.
func (m *MockBackend) DivScalar(x *RawTensor, scalar any) *RawTensor {
	s := f64scalar(scalar)
	return m.unary(x, func(v float64) float64 { return v / s })
}

func (m *MockBackend) binary(a, b *RawTensor, op func(float64, float64) float64) *RawTensor {
	outShape, _, err := BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(err)
	}
	result, err := NewRaw(outShape, a.DType(), m.Device())
	if err != nil {
		panic(err)
	}

	av := broadcastTo(m.stage(a), a.Shape(), outShape)
	bv := broadcastTo(m.stage(b), b.Shape(), outShape)
	out := make([]float64, len(av))
	for i := range out {
		out[i] = op(av[i], bv[i])
	}

	m.unstage(out, result)
	return result
}

func (m *MockBackend) unary(x *RawTensor, op func(float64) float64) *RawTensor {
	result, err := NewRaw(x.Shape(), x.DType(), m.Device())
	if err != nil {
		panic(err)
	}

	src := m.stage(x)
	out := make([]float64, len(src))
	for i, v := range src {
		out[i] = op(v)
	}

	m.unstage(out, result)
	return result
}

// MatMul performs naive 2D matrix multiplication.
func (m *MockBackend) MatMul(a, b *RawTensor) *RawTensor {
	aShape, bShape := a.Shape(), b.Shape()
	if len(aShape) != 2 || len(bShape) != 2 {
		panic(fmt.Sprintf("mock MatMul needs 2D operands, got %v @ %v", aShape, bShape))
	}
	if aShape[1] != bShape[0] {
		panic(fmt.Sprintf("incompatible shapes for MatMul: %v @ %v", aShape, bShape))
	}

	rows, inner, cols := aShape[0], aShape[1], bShape[1]
	result, err := NewRaw(Shape{rows, cols}, a.DType(), m.Device())
	if err != nil {
		panic(err)
	}

	av := m.stage(a)
	bv := m.stage(b)
	out := make([]float64, rows*cols)

	for i := 0; i < rows; i++ {
		for k := 0; k < inner; k++ {
			aik := av[i*inner+k]
			for j := 0; j < cols; j++ {
				out[i*cols+j] += aik * bv[k*cols+j]
			}
		}
	}

	m.unstage(out, result)
	return result
}

// Reshape reinterprets the buffer under a new shape.
func (m *MockBackend) Reshape(t *RawTensor, newShape Shape) *RawTensor {
	if err := newShape.Validate(); err != nil {
		panic(err)
	}
	if t.NumElements() != newShape.NumElements() {
		panic(fmt.Sprintf("cannot reshape tensor with %d elements to shape %v (%d elements)",
			t.NumElements(), newShape, newShape.NumElements()))
	}

	result, err := NewRaw(newShape, t.DType(), m.Device())
	if err != nil {
		panic(err)
	}
	copy(result.Data(), t.Data())
	return result
}

// Transpose permutes tensor dimensions.
func (m *MockBackend) Transpose(t *RawTensor, axes ...int) *RawTensor {
	shape := t.Shape()
	rank := len(shape)

	if len(axes) == 0 {
		axes = make([]int, rank)
		for i := range axes {
			axes[i] = rank - 1 - i
		}
	}
	if len(axes) != rank {
		panic(fmt.Sprintf("got %d axes for a rank-%d tensor", len(axes), rank))
	}

	newShape := make(Shape, rank)
	for i, axis := range axes {
		if axis < 0 || axis >= rank {
			panic(fmt.Sprintf("axis %d out of bounds for rank %d", axis, rank))
		}
		newShape[i] = shape[axis]
	}

	result, err := NewRaw(newShape, t.DType(), m.Device())
	if err != nil {
		panic(err)
	}

	src := m.stage(t)
	dst := make([]float64, len(src))

	// dstStride[j] is how far the flat output index moves when source
	// axis j advances by one.
	newStrides := newShape.ComputeStrides()
	dstStride := make([]int, rank)
	for outPos, srcAxis := range axes {
		dstStride[srcAxis] = newStrides[outPos]
	}

	coords := make([]int, rank)
	dstIdx := 0
	for _, v := range src {
		dst[dstIdx] = v
		for d := rank - 1; d >= 0; d-- {
			coords[d]++
			dstIdx += dstStride[d]
			if coords[d] < shape[d] {
				break
			}
			coords[d] = 0
			dstIdx -= dstStride[d] * shape[d]
		}
	}

	m.unstage(dst, result)
	return result
}

// Softmax computes softmax along the given dimension with max subtraction.
func (m *MockBackend) Softmax(x *RawTensor, dim int) *RawTensor {
	shape := x.Shape()
	ndim := len(shape)

	if dim < 0 {
		dim = ndim + dim
	}
	if dim < 0 || dim >= ndim {
		panic(fmt.Sprintf("softmax: dimension %d out of range for tensor of rank %d", dim, ndim))
	}

	result, err := NewRaw(shape, x.DType(), m.Device())
	if err != nil {
		panic(err)
	}

	src := m.stage(x)
	dst := make([]float64, len(src))

	strides := shape.ComputeStrides()
	dimSize := shape[dim]
	dimStride := strides[dim]

	numRows := 1
	for i := range shape {
		if i != dim {
			numRows *= shape[i]
		}
	}

	for row := 0; row < numRows; row++ {
		baseIdx := 0
		remaining := row
		for i := 0; i < ndim; i++ {
			if i == dim {
				continue
			}
			coord := remaining % shape[i]
			remaining /= shape[i]
			baseIdx += coord * strides[i]
		}

		maxVal := math.Inf(-1)
		for i := 0; i < dimSize; i++ {
			if v := src[baseIdx+i*dimStride]; v > maxVal {
				maxVal = v
			}
		}

		var sum float64
		for i := 0; i < dimSize; i++ {
			idx := baseIdx + i*dimStride
			e := math.Exp(src[idx] - maxVal)
			dst[idx] = e
			sum += e
		}

		for i := 0; i < dimSize; i++ {
			dst[baseIdx+i*dimStride] /= sum
		}
	}

	m.unstage(dst, result)
	return result
}

// Staging helpers.
//
// The mock does all arithmetic in float64. stage copies a tensor's
// values into a float64 buffer (the Float64 case aliases the live
// buffer, which is safe because staged slices are only read), unstage
// narrows the buffer back into the tensor's dtype.

func widen[T interface{ ~float32 | ~int32 | ~int64 }](src []T) []float64 {
	dst := make([]float64, len(src))
	for i, v := range src {
		dst[i] = float64(v)
	}
	return dst
}

func (m *MockBackend) stage(t *RawTensor) []float64 {
	switch t.DType() {
	case Float32:
		return widen(t.AsFloat32())
	case Float64:
		return t.AsFloat64()
	case Int32:
		return widen(t.AsInt32())
	case Int64:
		return widen(t.AsInt64())
	default:
		panic(fmt.Sprintf("mock backend does not stage dtype %s", t.DType()))
	}
}

func (m *MockBackend) unstage(src []float64, t *RawTensor) {
	switch t.DType() {
	case Float32:
		dst := t.AsFloat32()
		for i, v := range src {
			dst[i] = float32(v)
		}
	case Float64:
		copy(t.AsFloat64(), src)
	case Int32:
		dst := t.AsInt32()
		for i, v := range src {
			dst[i] = int32(v)
		}
	case Int64:
		dst := t.AsInt64()
		for i, v := range src {
			dst[i] = int64(v)
		}
	}
}

func f64scalar(scalar any) float64 {
	switch v := scalar.(type) {
	case float32:
		return float64(v)
	case float64:
		return v
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	default:
		panic(fmt.Sprintf("unsupported scalar type %T", scalar))
	}
}

// broadcastTo replicates src, laid out row-major with shape from, into
// the broadcast shape to. Missing leading dimensions and dimensions of
// size one get stride zero, so every output coordinate along them reads
// the same source element.
func broadcastTo(src []float64, from, to Shape) []float64 {
	if from.Equal(to) {
		return src
	}

	fromStrides := from.ComputeStrides()
	strides := make([]int, len(to))
	offset := len(to) - len(from)
	for i := offset; i < len(to); i++ {
		if from[i-offset] != 1 {
			strides[i] = fromStrides[i-offset]
		}
	}

	out := make([]float64, to.NumElements())
	coords := make([]int, len(to))
	srcIdx := 0
	for i := range out {
		out[i] = src[srcIdx]
		for d := len(to) - 1; d >= 0; d-- {
			coords[d]++
			srcIdx += strides[d]
			if coords[d] < to[d] {
				break
			}
			coords[d] = 0
			srcIdx -= strides[d] * to[d]
		}
	}
	return out
}
