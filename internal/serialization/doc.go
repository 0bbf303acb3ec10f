// Package serialization implements the binary checkpoint format used for
// saving and loading model weights.
//
// A checkpoint file has the following structure:
//
//	Format Structure:
//	  [64 bytes: fixed header]
//	    0x00-0x03: Magic "ODLC"
//	    0x04-0x07: Format version (uint32 LE)
//	    0x08-0x0B: Flags (uint32 LE)
//	    0x0C-0x0F: Reserved
//	    0x10-0x17: Header size (uint64 LE)
//	    0x18-0x1F: Data size (uint64 LE)
//	    0x20-0x3F: SHA-256 checksum of the tensor data
//	  [Header: JSON metadata]
//	  [Tensor data: raw bytes, 64-byte aligned, alphabetical name order]
//
// Tensors of any shape and of every engine dtype (float32, float64,
// int32, int64, uint8, bool) round-trip through the format, along with
// free-form string metadata. The checksum covers the whole data section,
// so truncation and bit corruption are detected on open.
//
// Example usage:
//
//	// Write a state dict
//	writer, err := serialization.NewWriter("linear.th")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := writer.WriteStateDict(model.StateDict(), "linear", nil); err != nil {
//	    log.Fatal(err)
//	}
//	writer.Close()
//
//	// Read it back
//	reader, err := serialization.NewReader("linear.th")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	stateDict, err := reader.ReadStateDict(backend)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	model.LoadStateDict(stateDict)
//	reader.Close()
//
// The SafeTensors writer provides an export path to the format used by the
// HuggingFace ecosystem, so weights can be inspected or loaded from Python.
package serialization
