package tensor

import (
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"unsafe"
)

// Device identifies where a tensor's memory lives. The classifier stack is
// CPU-only; the type exists so raw tensors and backends stay explicit about
// placement.
type Device int

// CPU is the only supported compute device.
const CPU Device = iota

// String returns a human-readable device name.
func (d Device) String() string {
	if d == CPU {
		return "CPU"
	}
	return "Unknown"
}

// tensorBuffer is a reference-counted shared buffer.
// Sharing makes Clone cheap and lets backends reuse memory in place
// when refCount == 1.
type tensorBuffer struct {
	data     []byte
	refCount atomic.Int32
	mu       sync.Mutex // guards deallocation
}

func newTensorBuffer(size int) *tensorBuffer {
	buf := &tensorBuffer{data: make([]byte, size)}
	buf.refCount.Store(1)
	return buf
}

func (tb *tensorBuffer) addRef() { tb.refCount.Add(1) }

func (tb *tensorBuffer) release() {
	if tb.refCount.Add(-1) != 0 {
		return
	}
	tb.mu.Lock()
	tb.data = nil
	tb.mu.Unlock()
}

func (tb *tensorBuffer) isUnique() bool { return tb.refCount.Load() == 1 }

// RawTensor is the low-level, untyped tensor representation: a shared byte
// buffer plus shape, strides, dtype, and device.
type RawTensor struct {
	buffer *tensorBuffer
	shape  Shape
	stride []int // row-major strides
	dtype  DataType
	device Device
	offset int
}

// NewRaw creates a RawTensor with the given shape and type.
// Memory is allocated zero-initialized.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}

	return &RawTensor{
		buffer: newTensorBuffer(shape.NumElements() * dtype.Size()),
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  dtype,
		device: device,
	}, nil
}

// Shape returns the tensor's shape.
func (r *RawTensor) Shape() Shape { return r.shape }

// Strides returns the tensor's memory strides.
func (r *RawTensor) Strides() []int { return r.stride }

// DType returns the tensor's data type.
func (r *RawTensor) DType() DataType { return r.dtype }

// Device returns the tensor's compute device.
func (r *RawTensor) Device() Device { return r.device }

// NumElements returns the total number of elements.
func (r *RawTensor) NumElements() int { return r.shape.NumElements() }

// ByteSize returns the total memory size in bytes.
func (r *RawTensor) ByteSize() int { return r.NumElements() * r.dtype.Size() }

// Data returns the raw byte slice.
// WARNING: direct access to underlying memory.
func (r *RawTensor) Data() []byte { return r.buffer.data[r.offset:] }

// view reinterprets the tensor's bytes as a []T after checking the
// runtime dtype tag. Shape validation guarantees at least one element,
// so taking the address of the first byte is safe.
func view[T any](r *RawTensor, want DataType) []T {
	if r.dtype != want {
		panic(fmt.Sprintf("tensor dtype is %s, not %s", r.dtype, want))
	}
	data := r.buffer.data[r.offset:]
	return unsafe.Slice((*T)(unsafe.Pointer(&data[0])), r.NumElements())
}

// AsFloat32 interprets the data as []float32.
// Panics if the tensor's dtype is not Float32.
func (r *RawTensor) AsFloat32() []float32 { return view[float32](r, Float32) }

// AsFloat64 interprets the data as []float64.
// Panics if the tensor's dtype is not Float64.
func (r *RawTensor) AsFloat64() []float64 { return view[float64](r, Float64) }

// AsInt32 interprets the data as []int32.
// Panics if the tensor's dtype is not Int32.
func (r *RawTensor) AsInt32() []int32 { return view[int32](r, Int32) }

// AsInt64 interprets the data as []int64.
// Panics if the tensor's dtype is not Int64.
func (r *RawTensor) AsInt64() []int64 { return view[int64](r, Int64) }

// AsUint8 interprets the data as []uint8.
// Panics if the tensor's dtype is not Uint8.
func (r *RawTensor) AsUint8() []uint8 { return view[uint8](r, Uint8) }

// AsBool interprets the data as []bool.
// Panics if the tensor's dtype is not Bool.
func (r *RawTensor) AsBool() []bool { return view[bool](r, Bool) }

// Clone creates a shallow copy sharing the same buffer (refcount is
// incremented). The data is only duplicated by backends that need to write
// while the buffer is shared.
func (r *RawTensor) Clone() *RawTensor {
	r.buffer.addRef()
	return &RawTensor{
		buffer: r.buffer,
		shape:  r.shape.Clone(),
		stride: slices.Clone(r.stride),
		dtype:  r.dtype,
		device: r.device,
		offset: r.offset,
	}
}

// Release decrements the reference count and deallocates when it reaches 0.
func (r *RawTensor) Release() { r.buffer.release() }

// IsUnique reports whether this tensor is the only reference to its buffer.
// When true, backends may safely compute in place.
func (r *RawTensor) IsUnique() bool { return r.buffer.isUnique() }
