package loader

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/scottkang123/online-deep-learning/internal/tensor"
)

// SafeTensors layout:
// [8 bytes: header_size (uint64 LE)]
// [header_size bytes: JSON header]
// [tensor data: raw bytes]

// maxHeaderSize caps the JSON header to guard against corrupt files.
const maxHeaderSize = 100 * 1024 * 1024

// SafeTensorsDType identifies a tensor element type in a SafeTensors file.
type SafeTensorsDType string

// Supported SafeTensors dtypes.
const (
	SafeTensorsF16  SafeTensorsDType = "F16"
	SafeTensorsF32  SafeTensorsDType = "F32"
	SafeTensorsF64  SafeTensorsDType = "F64"
	SafeTensorsBF16 SafeTensorsDType = "BF16"
	SafeTensorsI32  SafeTensorsDType = "I32"
	SafeTensorsI64  SafeTensorsDType = "I64"
	SafeTensorsU8   SafeTensorsDType = "U8"
	SafeTensorsBool SafeTensorsDType = "BOOL"
)

// dataTypeFor maps directly representable SafeTensors dtypes onto the
// internal DataType. F16 and BF16 are deliberately absent; they need
// widening before the backends can touch them.
var dataTypeFor = map[SafeTensorsDType]tensor.DataType{
	SafeTensorsF32:  tensor.Float32,
	SafeTensorsF64:  tensor.Float64,
	SafeTensorsI32:  tensor.Int32,
	SafeTensorsI64:  tensor.Int64,
	SafeTensorsU8:   tensor.Uint8,
	SafeTensorsBool: tensor.Bool,
}

// SafeTensorInfo describes one tensor entry in the JSON header.
type SafeTensorInfo struct {
	DType       SafeTensorsDType `json:"dtype"`
	Shape       []int            `json:"shape"`
	DataOffsets [2]int64         `json:"data_offsets"` // [start, end]
}

// SafeTensorsHeader is the parsed JSON header of a SafeTensors file.
// Tensor entries share the top-level JSON object with the reserved
// "__metadata__" key, so unmarshaling splits them apart.
type SafeTensorsHeader struct {
	Metadata map[string]string         `json:"__metadata__"`
	Tensors  map[string]SafeTensorInfo `json:"-"`
}

// UnmarshalJSON splits the flat header object into metadata and tensor entries.
func (h *SafeTensorsHeader) UnmarshalJSON(data []byte) error {
	var entries map[string]json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}

	if meta, ok := entries["__metadata__"]; ok {
		if err := json.Unmarshal(meta, &h.Metadata); err != nil {
			return fmt.Errorf("failed to unmarshal metadata: %w", err)
		}
		delete(entries, "__metadata__")
	}

	h.Tensors = make(map[string]SafeTensorInfo, len(entries))
	for name, entry := range entries {
		var info SafeTensorInfo
		if err := json.Unmarshal(entry, &info); err != nil {
			return fmt.Errorf("failed to unmarshal tensor %s: %w", name, err)
		}
		h.Tensors[name] = info
	}

	return nil
}

// SafeTensorsReader reads tensors from a SafeTensors file, such as a
// checkpoint exported from PyTorch or written by the serialization package.
type SafeTensorsReader struct {
	file       *os.File
	header     SafeTensorsHeader
	dataOffset int64 // offset where tensor data starts
	dataSize   int64 // bytes in the data section
}

// NewSafeTensorsReader opens path and parses its header. The caller must
// Close the reader when done.
//
// Header entries are not validated up front; a bad entry surfaces as an
// error from ReadTensorData or LoadTensor for that tensor.
func NewSafeTensorsReader(path string) (*SafeTensorsReader, error) {
	//nolint:gosec // G304: the checkpoint path is caller-supplied
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	header, dataOffset, err := readSafeTensorsHeader(file)
	if err != nil {
		_ = file.Close()
		return nil, err
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	return &SafeTensorsReader{
		file:       file,
		header:     header,
		dataOffset: dataOffset,
		dataSize:   info.Size() - dataOffset,
	}, nil
}

// readSafeTensorsHeader consumes the length prefix and JSON header and
// returns the parsed header along with the offset of the data section.
func readSafeTensorsHeader(file *os.File) (SafeTensorsHeader, int64, error) {
	var headerSize uint64
	if err := binary.Read(file, binary.LittleEndian, &headerSize); err != nil {
		return SafeTensorsHeader{}, 0, fmt.Errorf("failed to read header size: %w", err)
	}
	if headerSize > maxHeaderSize {
		return SafeTensorsHeader{}, 0, fmt.Errorf("invalid header size: %d (too large)", headerSize)
	}

	headerBytes := make([]byte, headerSize)
	if _, err := io.ReadFull(file, headerBytes); err != nil {
		return SafeTensorsHeader{}, 0, fmt.Errorf("failed to read header: %w", err)
	}

	var header SafeTensorsHeader
	if err := json.Unmarshal(headerBytes, &header); err != nil {
		return SafeTensorsHeader{}, 0, fmt.Errorf("failed to parse header JSON: %w", err)
	}

	//nolint:gosec // G115: headerSize is capped by maxHeaderSize
	return header, int64(8 + headerSize), nil
}

// Close releases the underlying file.
func (r *SafeTensorsReader) Close() error {
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// Metadata returns the "__metadata__" map from the header.
func (r *SafeTensorsReader) Metadata() map[string]string {
	return r.header.Metadata
}

// TensorNames returns the names of all tensors in the file, sorted.
func (r *SafeTensorsReader) TensorNames() []string {
	names := make([]string, 0, len(r.header.Tensors))
	for name := range r.header.Tensors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TensorInfo returns the header entry for a named tensor.
func (r *SafeTensorsReader) TensorInfo(name string) (*SafeTensorInfo, error) {
	info, ok := r.header.Tensors[name]
	if !ok {
		return nil, fmt.Errorf("tensor %s not found", name)
	}
	return &info, nil
}

// region bounds-checks a tensor's data_offsets against the data section
// and returns the start offset and length.
func (r *SafeTensorsReader) region(name string, info *SafeTensorInfo) (start, size int64, err error) {
	start, end := info.DataOffsets[0], info.DataOffsets[1]
	if start < 0 || end < start || end > r.dataSize {
		return 0, 0, fmt.Errorf("invalid data offsets for tensor %s: [%d, %d] with %d data bytes",
			name, start, end, r.dataSize)
	}
	return r.dataOffset + start, end - start, nil
}

// ReadTensorData reads the raw bytes of a named tensor. Reads go through
// ReadAt, so concurrent reads of different tensors are safe.
func (r *SafeTensorsReader) ReadTensorData(name string) ([]byte, error) {
	info, err := r.TensorInfo(name)
	if err != nil {
		return nil, err
	}

	start, size, err := r.region(name, info)
	if err != nil {
		return nil, err
	}

	data := make([]byte, size)
	if _, err := r.file.ReadAt(data, start); err != nil {
		return nil, fmt.Errorf("failed to read tensor data: %w", err)
	}
	return data, nil
}

// LoadTensor reads a named tensor into a RawTensor on the given backend.
// F16/BF16 entries return an error; use ReadTensorData and convert manually.
func (r *SafeTensorsReader) LoadTensor(name string, backend tensor.Backend) (*tensor.RawTensor, error) {
	info, err := r.TensorInfo(name)
	if err != nil {
		return nil, err
	}

	dtype, ok := dataTypeFor[info.DType]
	if !ok {
		if info.DType == SafeTensorsF16 || info.DType == SafeTensorsBF16 {
			return nil, fmt.Errorf("tensor %s: dtype %s requires conversion (not directly supported)", name, info.DType)
		}
		return nil, fmt.Errorf("tensor %s: unsupported dtype %s", name, info.DType)
	}

	shape := tensor.Shape(info.Shape)
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape for tensor %s: %w", name, err)
	}

	start, size, err := r.region(name, info)
	if err != nil {
		return nil, err
	}

	raw, err := tensor.NewRaw(shape, dtype, backend.Device())
	if err != nil {
		return nil, fmt.Errorf("failed to create tensor: %w", err)
	}

	// The data region must hold exactly shape x dtype bytes, or the header
	// is inconsistent with itself.
	if size != int64(raw.ByteSize()) {
		return nil, fmt.Errorf("tensor %s: data region is %d bytes, shape %v needs %d",
			name, size, shape, raw.ByteSize())
	}

	if _, err := r.file.ReadAt(raw.Data(), start); err != nil {
		return nil, fmt.Errorf("failed to read tensor data: %w", err)
	}
	return raw, nil
}

// LoadStateDict reads every tensor in the file into a state dict keyed by
// tensor name. Useful for importing PyTorch-exported weights wholesale.
func (r *SafeTensorsReader) LoadStateDict(backend tensor.Backend) (map[string]*tensor.RawTensor, error) {
	stateDict := make(map[string]*tensor.RawTensor, len(r.header.Tensors))
	for name := range r.header.Tensors {
		raw, err := r.LoadTensor(name, backend)
		if err != nil {
			return nil, fmt.Errorf("failed to load tensor %s: %w", name, err)
		}
		stateDict[name] = raw
	}
	return stateDict, nil
}
