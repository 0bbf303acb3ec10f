package cpu

import (
	"fmt"

	"github.com/scottkang123/online-deep-learning/internal/parallel"
	"github.com/scottkang123/online-deep-learning/internal/tensor"
)

// MatMul performs matrix multiplication.
// For 2D tensors: (M, K) @ (K, N) -> (M, N)
// Output rows are computed in parallel when the matrix is large enough.
func (cpu *CPUBackend) MatMul(a, b *tensor.RawTensor) *tensor.RawTensor {
	aShape := a.Shape()
	bShape := b.Shape()

	if len(aShape) != 2 || len(bShape) != 2 {
		panic(fmt.Sprintf("matmul: want 2D operands, got %dD and %dD", len(aShape), len(bShape)))
	}

	m, k := aShape[0], aShape[1]
	n := bShape[1]
	if bShape[0] != k {
		panic(fmt.Sprintf("matmul: inner dimensions differ: [%d,%d] @ [%d,%d]", m, k, bShape[0], n))
	}

	result := cpu.newResult("matmul", tensor.Shape{m, n}, a.DType())
	switch a.DType() {
	case tensor.Float32:
		matmulInto(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), m, k, n, cpu.parallel)
	case tensor.Float64:
		matmulInto(result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), m, k, n, cpu.parallel)
	case tensor.Int32:
		matmulInto(result.AsInt32(), a.AsInt32(), b.AsInt32(), m, k, n, cpu.parallel)
	case tensor.Int64:
		matmulInto(result.AsInt64(), a.AsInt64(), b.AsInt64(), m, k, n, cpu.parallel)
	default:
		panic(fmt.Sprintf("matmul: unsupported dtype %s", a.DType()))
	}
	return result
}

// matmulInto computes C[i,j] = sum_k A[i,k] * B[k,j] into a zeroed C.
// Each work item owns one output row, so rows can run concurrently. The
// inner loops run in i-k-j order to walk B and C contiguously.
// TODO: dispatch to gonum BLAS SGEMM for large matrices.
func matmulInto[T number](c, a, b []T, m, k, n int, cfg parallel.Config) {
	parallel.For(m, func(i int) {
		row := c[i*n : (i+1)*n]
		for kIdx := 0; kIdx < k; kIdx++ {
			aik := a[i*k+kIdx]
			bRow := b[kIdx*n : (kIdx+1)*n]
			for j := range row {
				row[j] += aik * bRow[j]
			}
		}
	}, cfg)
}
