// Package tensor provides the core tensor types used by the classifier models:
// shapes, dtypes, reference-counted raw buffers, and a generic typed facade
// that dispatches computation to a Backend.
package tensor

// DType is the compile-time constraint for supported tensor element types.
type DType interface {
	~float32 | ~float64 | ~int32 | ~int64 | ~uint8 | ~bool
}

// DataType carries runtime type information for raw tensors.
type DataType int

// Supported data types.
const (
	Float32 DataType = iota
	Float64
	Int32
	Int64
	Uint8
	Bool
	numDataTypes // sentinel, keep last
)

var dtypeSize = [numDataTypes]int{
	Float32: 4,
	Float64: 8,
	Int32:   4,
	Int64:   8,
	Uint8:   1,
	Bool:    1,
}

var dtypeName = [numDataTypes]string{
	Float32: "float32",
	Float64: "float64",
	Int32:   "int32",
	Int64:   "int64",
	Uint8:   "uint8",
	Bool:    "bool",
}

// Size returns the byte size of one element of the data type.
func (dt DataType) Size() int {
	if dt < 0 || dt >= numDataTypes {
		panic("unknown data type")
	}
	return dtypeSize[dt]
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	if dt < 0 || dt >= numDataTypes {
		return "unknown"
	}
	return dtypeName[dt]
}

// inferDataType maps a generic element type T to its DataType tag.
func inferDataType[T DType](dummy T) DataType {
	switch any(dummy).(type) {
	case float32:
		return Float32
	case float64:
		return Float64
	case int32:
		return Int32
	case int64:
		return Int64
	case uint8:
		return Uint8
	case bool:
		return Bool
	default:
		panic("unsupported type")
	}
}
