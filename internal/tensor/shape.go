package tensor

import (
	"fmt"
	"slices"
)

// Shape represents the dimensions of a tensor.
type Shape []int

// NumElements returns the total number of elements in the tensor.
// A scalar (empty shape) has one element.
func (s Shape) NumElements() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks that every dimension is positive.
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim <= 0 {
			return fmt.Errorf("dimension %d is %d, want > 0", i, dim)
		}
	}
	return nil
}

// Equal reports whether two shapes have identical dimensions.
func (s Shape) Equal(other Shape) bool {
	return slices.Equal(s, other)
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	return slices.Clone(s)
}

// ComputeStrides calculates row-major strides for the shape:
// stride[i] is the product of all dimensions after i.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	stride := 1
	for i := len(s) - 1; i >= 0; i-- {
		strides[i] = stride
		stride *= s[i]
	}
	return strides
}

// BroadcastShapes implements NumPy-style broadcasting rules.
//
// Shapes are compared element-wise from the right; dimensions are compatible
// when they are equal or one of them is 1, and missing leading dimensions are
// treated as 1.
//
// Returns the broadcast shape, whether any stretching is required, and an
// error when the shapes are incompatible.
//
// Examples:
//
//	(3, 1) + (3, 5) → (3, 5), true, nil
//	(3, 5) + (3, 5) → (3, 5), false, nil
//	(3, 4) + (3, 5) → nil, false, error
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	ndim := max(len(a), len(b))
	result := make(Shape, ndim)
	stretched := false

	for i := range result {
		aDim := dimFromRight(a, ndim-1-i)
		bDim := dimFromRight(b, ndim-1-i)

		switch {
		case aDim == bDim:
			result[i] = aDim
		case aDim == 1:
			result[i] = bDim
			stretched = true
		case bDim == 1:
			result[i] = aDim
			stretched = true
		default:
			return nil, false, fmt.Errorf("cannot broadcast %v with %v: dimension %d is %d vs %d",
				a, b, i, aDim, bDim)
		}
	}

	return result, stretched, nil
}

// dimFromRight returns the i-th dimension counting from the right, treating
// missing leading dimensions as 1.
func dimFromRight(s Shape, i int) int {
	idx := len(s) - 1 - i
	if idx < 0 {
		return 1
	}
	return s[idx]
}
