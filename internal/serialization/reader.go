package serialization

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/scottkang123/online-deep-learning/internal/tensor"
)

// Reader reads model checkpoints.
type Reader struct {
	file       *os.File
	header     Header
	byName     map[string]int // tensor name -> index into header.Tensors
	flags      uint32
	version    uint32
	dataOffset int64    // Offset where tensor data starts
	dataSize   int64    // Size of the data section
	checksum   [32]byte // SHA-256 checksum from the fixed header
	opts       ReaderOptions
	closed     bool
}

// ReaderOptions configures the behavior of Reader.
type ReaderOptions struct {
	SkipChecksumValidation bool            // skip data-section checksum verification
	ValidationLevel        ValidationLevel // how much of the header to verify
}

// NewReader creates a new checkpoint file reader with default options
// (strict validation).
func NewReader(path string) (*Reader, error) {
	return NewReaderWithOptions(path, ReaderOptions{
		ValidationLevel: ValidationStrict,
	})
}

// NewReaderWithOptions creates a new checkpoint file reader with custom options.
func NewReaderWithOptions(path string, opts ReaderOptions) (*Reader, error) {
	//nolint:gosec // G304: the checkpoint path is caller-supplied
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	reader := &Reader{
		file: file,
		opts: opts,
	}

	if err := reader.parseHeader(); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to parse header: %w", err)
	}

	// The declared data size must match the actual file layout, or a
	// truncated or padded file would slip past the offset validation.
	fileInfo, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if got := fileInfo.Size() - reader.dataOffset; got != reader.dataSize {
		_ = file.Close()
		return nil, fmt.Errorf("data section is %d bytes, header declares %d", got, reader.dataSize)
	}

	if err := ValidateHeader(&reader.header, reader.dataSize, opts.ValidationLevel); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if !opts.SkipChecksumValidation {
		if err := reader.verifyChecksum(); err != nil {
			_ = file.Close()
			return nil, err
		}
	}

	return reader, nil
}

// parseHeader reads and parses the checkpoint file header.
func (r *Reader) parseHeader() error {
	fixedHeader := make([]byte, FixedHeaderSize)
	if _, err := io.ReadFull(r.file, fixedHeader); err != nil {
		return fmt.Errorf("failed to read fixed header: %w", err)
	}

	// 0x00-0x03: magic bytes
	if string(fixedHeader[0:4]) != MagicBytes {
		return ErrInvalidMagic
	}

	// 0x04-0x07: format version
	r.version = binary.LittleEndian.Uint32(fixedHeader[4:8])
	if r.version != FormatVersion {
		return fmt.Errorf("%w: got %d, expected %d", ErrUnsupportedVersion, r.version, FormatVersion)
	}

	// 0x08-0x0B: flags
	r.flags = binary.LittleEndian.Uint32(fixedHeader[8:12])

	// 0x10-0x17: header size
	headerSize := binary.LittleEndian.Uint64(fixedHeader[16:24])
	if headerSize > MaxHeaderSize {
		return ErrHeaderTooLarge
	}

	// 0x18-0x1F: data size
	//nolint:gosec // G115: verified against the real file size before use
	r.dataSize = int64(binary.LittleEndian.Uint64(fixedHeader[24:32]))

	// 0x20-0x3F: SHA-256 checksum
	copy(r.checksum[:], fixedHeader[ChecksumOffset:ChecksumOffset+ChecksumSize])

	// Read header JSON (positioned right after the fixed header)
	headerBytes := make([]byte, headerSize)
	if _, err := io.ReadFull(r.file, headerBytes); err != nil {
		return fmt.Errorf("failed to read header JSON: %w", err)
	}

	if err := json.Unmarshal(headerBytes, &r.header); err != nil {
		return fmt.Errorf("failed to parse header JSON: %w", err)
	}

	r.byName = make(map[string]int, len(r.header.Tensors))
	for i, meta := range r.header.Tensors {
		r.byName[meta.Name] = i
	}

	// Tensor data starts at the next alignment boundary after the JSON header.
	//nolint:gosec // G115: headerSize is bounded by MaxHeaderSize, conversion is safe
	headerEnd := int64(FixedHeaderSize) + int64(headerSize)
	padding := (HeaderAlignment - (headerEnd % HeaderAlignment)) % HeaderAlignment
	r.dataOffset = headerEnd + padding

	return nil
}

// verifyChecksum streams the data section through SHA-256 and compares the
// digest against the one stored in the fixed header.
func (r *Reader) verifyChecksum() error {
	if _, err := r.file.Seek(r.dataOffset, io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek to tensor data: %w", err)
	}

	computed, err := ComputeChecksumReader(io.LimitReader(r.file, r.dataSize))
	if err != nil {
		return fmt.Errorf("failed to hash tensor data: %w", err)
	}

	return ValidateChecksum(computed, r.checksum)
}

// Header returns the file header.
func (r *Reader) Header() Header {
	return r.header
}

// Metadata returns the metadata map from the header.
func (r *Reader) Metadata() map[string]string {
	return r.header.Metadata
}

// TensorNames returns a list of all tensor names in the file.
func (r *Reader) TensorNames() []string {
	names := make([]string, len(r.header.Tensors))
	for i, meta := range r.header.Tensors {
		names[i] = meta.Name
	}
	return names
}

// TensorInfo returns information about a specific tensor.
func (r *Reader) TensorInfo(name string) (*TensorMeta, error) {
	i, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("tensor %s not found", name)
	}
	return &r.header.Tensors[i], nil
}

// ReadTensorData reads raw tensor data for a given tensor name.
//
// Reads go through ReadAt, so they do not disturb the file position and
// concurrent reads of different tensors are safe.
func (r *Reader) ReadTensorData(name string) ([]byte, error) {
	if r.closed {
		return nil, fmt.Errorf("reader is closed")
	}

	meta, err := r.TensorInfo(name)
	if err != nil {
		return nil, err
	}

	data := make([]byte, meta.Size)
	if _, err := r.file.ReadAt(data, r.dataOffset+meta.Offset); err != nil {
		return nil, fmt.Errorf("failed to read tensor data: %w", err)
	}
	return data, nil
}

// LoadTensor loads a single tensor from the file.
//
// The tensor data is read directly into the allocated buffer, without
// an intermediate copy.
func (r *Reader) LoadTensor(name string, backend tensor.Backend) (*tensor.RawTensor, error) {
	if r.closed {
		return nil, fmt.Errorf("reader is closed")
	}

	meta, err := r.TensorInfo(name)
	if err != nil {
		return nil, err
	}

	raw, err := r.allocTensor(meta, backend)
	if err != nil {
		return nil, err
	}

	if _, err := r.file.ReadAt(raw.Data(), r.dataOffset+meta.Offset); err != nil {
		return nil, fmt.Errorf("failed to read tensor data: %w", err)
	}
	return raw, nil
}

// allocTensor allocates an empty RawTensor matching a header entry,
// checking that the declared byte size is consistent with shape and dtype.
func (r *Reader) allocTensor(meta *TensorMeta, backend tensor.Backend) (*tensor.RawTensor, error) {
	dtype, ok := stringToDtype(meta.DType)
	if !ok {
		return nil, fmt.Errorf("unsupported dtype: %s", meta.DType)
	}

	shape := tensor.Shape(meta.Shape)
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape for tensor %s: %w", meta.Name, err)
	}

	raw, err := tensor.NewRaw(shape, dtype, backend.Device())
	if err != nil {
		return nil, fmt.Errorf("failed to create tensor: %w", err)
	}

	if int64(raw.ByteSize()) != meta.Size {
		return nil, fmt.Errorf("tensor %s: header declares %d bytes, shape %v needs %d",
			meta.Name, meta.Size, shape, raw.ByteSize())
	}
	return raw, nil
}

// ReadStateDict reads all tensors into a state dictionary.
func (r *Reader) ReadStateDict(backend tensor.Backend) (map[string]*tensor.RawTensor, error) {
	if r.closed {
		return nil, fmt.Errorf("reader is closed")
	}

	stateDict := make(map[string]*tensor.RawTensor, len(r.header.Tensors))
	for _, meta := range r.header.Tensors {
		raw, err := r.LoadTensor(meta.Name, backend)
		if err != nil {
			return nil, fmt.Errorf("failed to load tensor %s: %w", meta.Name, err)
		}
		stateDict[meta.Name] = raw
	}
	return stateDict, nil
}

// Close releases the underlying file. Calling Close twice is a no-op.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return r.file.Close()
}

// ReadFrom reads a state dictionary from an io.Reader.
// This is useful for reading from buffers or network connections.
//
// Tensor bytes are hashed as they stream past, so the checksum check at
// the end costs no extra pass and no buffered copy of the data section.
func ReadFrom(reader io.Reader, backend tensor.Backend) (map[string]*tensor.RawTensor, Header, error) {
	fixedHeader := make([]byte, FixedHeaderSize)
	if _, err := io.ReadFull(reader, fixedHeader); err != nil {
		return nil, Header{}, fmt.Errorf("failed to read fixed header: %w", err)
	}

	if string(fixedHeader[0:4]) != MagicBytes {
		return nil, Header{}, ErrInvalidMagic
	}

	version := binary.LittleEndian.Uint32(fixedHeader[4:8])
	if version != FormatVersion {
		return nil, Header{}, fmt.Errorf("%w: got %d, expected %d", ErrUnsupportedVersion, version, FormatVersion)
	}

	headerSize := binary.LittleEndian.Uint64(fixedHeader[16:24])
	if headerSize > MaxHeaderSize {
		return nil, Header{}, ErrHeaderTooLarge
	}

	var checksum [32]byte
	copy(checksum[:], fixedHeader[ChecksumOffset:ChecksumOffset+ChecksumSize])

	headerBytes := make([]byte, headerSize)
	if _, err := io.ReadFull(reader, headerBytes); err != nil {
		return nil, Header{}, fmt.Errorf("failed to read header: %w", err)
	}

	var header Header
	if err := json.Unmarshal(headerBytes, &header); err != nil {
		return nil, Header{}, fmt.Errorf("failed to parse header JSON: %w", err)
	}

	// Skip alignment padding before the data section
	//nolint:gosec // G115: headerSize is bounded by MaxHeaderSize, conversion is safe
	currentPos := int64(FixedHeaderSize) + int64(headerSize)
	if padding := (HeaderAlignment - (currentPos % HeaderAlignment)) % HeaderAlignment; padding > 0 {
		if _, err := io.CopyN(io.Discard, reader, padding); err != nil {
			return nil, Header{}, fmt.Errorf("failed to read padding: %w", err)
		}
	}

	// Tensors are stored back to back in header order. Everything read
	// from here on is part of the checksummed data section.
	hasher := sha256.New()
	data := io.TeeReader(reader, hasher)

	stateDict := make(map[string]*tensor.RawTensor, len(header.Tensors))
	for i := range header.Tensors {
		meta := &header.Tensors[i]

		dtype, ok := stringToDtype(meta.DType)
		if !ok {
			return nil, Header{}, fmt.Errorf("unsupported dtype: %s", meta.DType)
		}

		shape := tensor.Shape(meta.Shape)
		if err := shape.Validate(); err != nil {
			return nil, Header{}, fmt.Errorf("invalid shape for tensor %s: %w", meta.Name, err)
		}

		raw, err := tensor.NewRaw(shape, dtype, backend.Device())
		if err != nil {
			return nil, Header{}, fmt.Errorf("failed to create tensor: %w", err)
		}
		if int64(raw.ByteSize()) != meta.Size {
			return nil, Header{}, fmt.Errorf("tensor %s: header declares %d bytes, shape %v needs %d",
				meta.Name, meta.Size, shape, raw.ByteSize())
		}

		if _, err := io.ReadFull(data, raw.Data()); err != nil {
			return nil, Header{}, fmt.Errorf("failed to read tensor %s: %w", meta.Name, err)
		}
		stateDict[meta.Name] = raw
	}

	var computed [32]byte
	hasher.Sum(computed[:0])
	if err := ValidateChecksum(computed, checksum); err != nil {
		return nil, Header{}, err
	}

	return stateDict, header, nil
}
