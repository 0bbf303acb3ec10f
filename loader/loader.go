// Package loader provides model weight loading for the ODL framework.
//
// This package wraps the internal loader implementation and exports a clean
// public API for loading model weights from SafeTensors files, the exchange
// format used by the Hugging Face ecosystem and by PyTorch export tools.
//
// Example usage:
//
//	import (
//	    "github.com/scottkang123/online-deep-learning/backend/cpu"
//	    "github.com/scottkang123/online-deep-learning/loader"
//	)
//
//	// Open a SafeTensors file
//	reader, err := loader.Open("weights.safetensors")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer reader.Close()
//
//	// Load every tensor into a state dictionary
//	backend := cpu.New()
//	stateDict, err := reader.LoadStateDict(backend)
//	if err != nil {
//	    log.Fatal(err)
//	}
package loader

import (
	"github.com/scottkang123/online-deep-learning/internal/loader"
)

// DType identifies a tensor element type in a SafeTensors file.
type DType = loader.SafeTensorsDType

// Supported SafeTensors dtypes.
const (
	F16  DType = loader.SafeTensorsF16
	F32  DType = loader.SafeTensorsF32
	F64  DType = loader.SafeTensorsF64
	BF16 DType = loader.SafeTensorsBF16
	I32  DType = loader.SafeTensorsI32
	I64  DType = loader.SafeTensorsI64
	U8   DType = loader.SafeTensorsU8
	Bool DType = loader.SafeTensorsBool
)

// TensorInfo describes a single tensor entry in a SafeTensors header.
type TensorInfo = loader.SafeTensorInfo

// Reader reads tensors from a SafeTensors file.
//
// Note: This is a type alias because the LoadTensor and LoadStateDict method
// signatures reference internal tensor types that cannot be abstracted
// without a wrapper layer.
type Reader = loader.SafeTensorsReader

// Open opens a SafeTensors file and parses its header.
//
// The returned Reader gives access to the file's metadata and tensors.
// Tensor data is read lazily, so opening a large file is cheap.
//
// Example:
//
//	reader, err := loader.Open("mlp.safetensors")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer reader.Close()
//
//	// List all tensors
//	for _, name := range reader.TensorNames() {
//	    fmt.Println(name)
//	}
//
//	// Load a specific tensor
//	backend := cpu.New()
//	weight, err := reader.LoadTensor("mlp.0.weight", backend)
//	if err != nil {
//	    log.Fatal(err)
//	}
func Open(path string) (*Reader, error) {
	return loader.NewSafeTensorsReader(path)
}
