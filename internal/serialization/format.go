package serialization

import (
	"time"

	"github.com/scottkang123/online-deep-learning/internal/tensor"
)

// Format constants.
const (
	MagicBytes      = "ODLC"
	FormatVersion   = 1    // Current checkpoint format version
	HeaderAlignment = 64   // Align tensor data to 64 bytes
	FixedHeaderSize = 64   // Fixed header size (0x40 bytes)
	ChecksumSize    = 32   // SHA-256 checksum size (32 bytes)
	ChecksumOffset  = 0x20 // Checksum offset in the fixed header
)

// Wire names for tensor data types.
const (
	DTypeFloat32 = "float32"
	DTypeFloat64 = "float64"
	DTypeInt32   = "int32"
	DTypeInt64   = "int64"
	DTypeUint8   = "uint8"
	DTypeBool    = "bool"
)

// Flags for the checkpoint format.
const (
	FlagHasMetadata uint32 = 1 << 0 // bit 0: custom metadata included
)

// Header represents the JSON header in a checkpoint file.
type Header struct {
	FormatVersion    int               `json:"format_version"`    // Version of the checkpoint format
	FrameworkVersion string            `json:"framework_version"` // Version of the framework that created this file
	ModelType        string            `json:"model_type"`        // Type of model (e.g., "linear", "mlp")
	CreatedAt        time.Time         `json:"created_at"`        // When the file was created
	Tensors          []TensorMeta      `json:"tensors"`           // Tensor metadata
	Metadata         map[string]string `json:"metadata"`          // Custom metadata
}

// TensorMeta describes a tensor in the checkpoint file.
type TensorMeta struct {
	Name   string `json:"name"`   // Tensor name (e.g., "mlp.0.weight")
	DType  string `json:"dtype"`  // Data type (e.g., "float32", "float64")
	Shape  []int  `json:"shape"`  // Tensor shape
	Offset int64  `json:"offset"` // Offset in the data section (bytes from start of tensor data)
	Size   int64  `json:"size"`   // Size in bytes
}

// dtypeNames maps runtime dtypes to their wire names.
var dtypeNames = map[tensor.DataType]string{
	tensor.Float32: DTypeFloat32,
	tensor.Float64: DTypeFloat64,
	tensor.Int32:   DTypeInt32,
	tensor.Int64:   DTypeInt64,
	tensor.Uint8:   DTypeUint8,
	tensor.Bool:    DTypeBool,
}

// dtypeByName is the inverse of dtypeNames.
var dtypeByName = func() map[string]tensor.DataType {
	m := make(map[string]tensor.DataType, len(dtypeNames))
	for dt, name := range dtypeNames {
		m[name] = dt
	}
	return m
}()

// dtypeToString converts a runtime dtype to its wire name.
func dtypeToString(dt tensor.DataType) string {
	if name, ok := dtypeNames[dt]; ok {
		return name
	}
	return "unknown"
}

// stringToDtype converts a wire name back to a runtime dtype.
func stringToDtype(s string) (tensor.DataType, bool) {
	dt, ok := dtypeByName[s]
	return dt, ok
}
