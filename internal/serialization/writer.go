package serialization

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/scottkang123/online-deep-learning/internal/tensor"
)

const frameworkVersion = "0.1.0" // Current framework version

// Writer writes model checkpoints.
type Writer struct {
	file   *os.File
	closed bool
}

// NewWriter creates a new checkpoint file writer.
func NewWriter(path string) (*Writer, error) {
	//nolint:gosec // G304: the checkpoint path is caller-supplied
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	return &Writer{file: file}, nil
}

// WriteStateDict writes a state dictionary to the checkpoint file.
//
// The state dictionary is a map from parameter names to tensors. Tensors
// are written in alphabetical name order, so the same state dict always
// produces the same file layout.
func (w *Writer) WriteStateDict(stateDict map[string]*tensor.RawTensor, modelType string, metadata map[string]string) error {
	if w.closed {
		return fmt.Errorf("writer is closed")
	}
	return WriteTo(w.file, stateDict, modelType, metadata)
}

// Close releases the underlying file. Calling Close twice is a no-op.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	return w.file.Close()
}

// WriteTo writes a state dictionary to an io.Writer.
// This is useful for writing to buffers or network connections.
//
// Layout:
//
//	[64 bytes: fixed header]
//	  0x00-0x03: magic "ODLC"
//	  0x04-0x07: format version (uint32 LE)
//	  0x08-0x0B: flags (uint32 LE)
//	  0x0C-0x0F: reserved
//	  0x10-0x17: header size (uint64 LE)
//	  0x18-0x1F: data size (uint64 LE)
//	  0x20-0x3F: SHA-256 checksum of the tensor data
//	[header: JSON metadata]
//	[padding to 64-byte alignment]
//	[tensor data: raw bytes in alphabetical name order]
func WriteTo(out io.Writer, stateDict map[string]*tensor.RawTensor, modelType string, metadata map[string]string) error {
	header := Header{
		FormatVersion:    FormatVersion,
		FrameworkVersion: frameworkVersion,
		ModelType:        modelType,
		CreatedAt:        time.Now().UTC(),
		Tensors:          make([]TensorMeta, 0, len(stateDict)),
		Metadata:         metadata,
	}
	if header.Metadata == nil {
		header.Metadata = make(map[string]string)
	}

	// Alphabetical tensor order keeps the file layout deterministic.
	tensorOrder := make([]string, 0, len(stateDict))
	for name := range stateDict {
		tensorOrder = append(tensorOrder, name)
	}
	sort.Strings(tensorOrder)

	// Lay out tensors back to back, hashing each one as its offset is
	// assigned. The data section is never buffered as a whole.
	hasher := sha256.New()
	var dataSize int64
	for _, name := range tensorOrder {
		data := stateDict[name].Data()
		raw := stateDict[name]

		header.Tensors = append(header.Tensors, TensorMeta{
			Name:   name,
			DType:  dtypeToString(raw.DType()),
			Shape:  []int(raw.Shape()),
			Offset: dataSize,
			Size:   int64(len(data)),
		})

		hasher.Write(data)
		dataSize += int64(len(data))
	}
	var checksum [32]byte
	hasher.Sum(checksum[:0])

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}
	headerSize := uint64(len(headerJSON))

	// Build the 64-byte fixed header
	fixedHeader := make([]byte, FixedHeaderSize)

	// 0x00-0x03: Magic bytes "ODLC"
	copy(fixedHeader[0:4], MagicBytes)

	// 0x04-0x07: Format version
	binary.LittleEndian.PutUint32(fixedHeader[4:8], uint32(FormatVersion))

	// 0x08-0x0B: Flags
	flags := uint32(0)
	if len(metadata) > 0 {
		flags |= FlagHasMetadata
	}
	binary.LittleEndian.PutUint32(fixedHeader[8:12], flags)

	// 0x0C-0x0F: Reserved (zero)

	// 0x10-0x17: Header size
	binary.LittleEndian.PutUint64(fixedHeader[16:24], headerSize)

	// 0x18-0x1F: Data size
	//nolint:gosec // G115: dataSize is a sum of buffer lengths, never negative
	binary.LittleEndian.PutUint64(fixedHeader[24:32], uint64(dataSize))

	// 0x20-0x3F: SHA-256 checksum
	copy(fixedHeader[ChecksumOffset:ChecksumOffset+ChecksumSize], checksum[:])

	if _, err := out.Write(fixedHeader); err != nil {
		return fmt.Errorf("failed to write fixed header: %w", err)
	}
	if _, err := out.Write(headerJSON); err != nil {
		return fmt.Errorf("failed to write header JSON: %w", err)
	}

	// Pad so tensor data starts on a 64-byte boundary
	//nolint:gosec // G115: headerSize is bounded by MaxHeaderSize, conversion is safe
	currentPos := int64(FixedHeaderSize) + int64(headerSize)
	if padding := (HeaderAlignment - (currentPos % HeaderAlignment)) % HeaderAlignment; padding > 0 {
		if _, err := out.Write(make([]byte, padding)); err != nil {
			return fmt.Errorf("failed to write padding: %w", err)
		}
	}

	for _, name := range tensorOrder {
		if _, err := out.Write(stateDict[name].Data()); err != nil {
			return fmt.Errorf("failed to write tensor %s: %w", name, err)
		}
	}

	return nil
}
