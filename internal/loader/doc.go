// Package loader reads model weights from interchange formats.
//
// The package implements a reader for SafeTensors, the Hugging Face
// weight format also written by PyTorch's safetensors library. Together
// with the serialization package's SafeTensors writer it gives the
// classifier checkpoints a round trip to and from the Python ecosystem:
// weights trained elsewhere can be imported, and exported weights can be
// inspected with standard tooling.
//
// Example:
//
//	reader, err := loader.NewSafeTensorsReader("weights.safetensors")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer reader.Close()
//
//	stateDict, err := reader.LoadStateDict(backend)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Tensors can also be loaded one at a time with LoadTensor, or read as
// raw bytes with ReadTensorData when the dtype needs manual conversion.
package loader
