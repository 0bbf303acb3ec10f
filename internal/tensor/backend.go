package tensor

// Backend is the compute contract behind Tensor operations. The classifier
// stack ships a single CPU implementation; the interface keeps layers
// decoupled from the kernels and matches how the models actually compute:
// broadcasted arithmetic, one affine matmul per layer, reshape/transpose for
// flattening and weight orientation, and softmax for the loss.
//
// Operations that cannot produce a valid result (rank or shape mismatch,
// unsupported dtype) panic; these are programmer errors, not runtime
// conditions to recover from.
type Backend interface {
	// Element-wise binary operations with NumPy-style broadcasting.
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor

	// Element-wise operations against a scalar. The scalar's dynamic type
	// must match the tensor's dtype.
	AddScalar(x *RawTensor, scalar any) *RawTensor
	SubScalar(x *RawTensor, scalar any) *RawTensor
	MulScalar(x *RawTensor, scalar any) *RawTensor
	DivScalar(x *RawTensor, scalar any) *RawTensor

	// MatMul performs 2D matrix multiplication: (M, K) @ (K, N) -> (M, N).
	MatMul(a, b *RawTensor) *RawTensor

	// Layout operations.
	Reshape(t *RawTensor, newShape Shape) *RawTensor
	Transpose(t *RawTensor, axes ...int) *RawTensor

	// Softmax along a dimension, computed with max subtraction for
	// numerical stability.
	Softmax(x *RawTensor, dim int) *RawTensor

	// Metadata.
	Name() string
	Device() Device
}
