package serialization

import (
	"fmt"
	"sort"
	"strings"
)

// Limits on header fields read from untrusted files.
const (
	MaxHeaderSize    = 100 * 1024 * 1024 // JSON header bytes
	MaxTensorCount   = 100_000           // tensors per file
	MaxTensorNameLen = 4096              // bytes per tensor name
	MaxMetadataSize  = 10 * 1024 * 1024  // combined metadata key/value bytes
)

// ValidationLevel selects how much of a header to verify.
type ValidationLevel int

const (
	// ValidationStrict performs all validation checks (default).
	ValidationStrict ValidationLevel = iota
	// ValidationNormal performs basic validation checks only.
	ValidationNormal
	// ValidationNone skips validation. Use only with trusted input.
	ValidationNone
)

// ValidateTensorOffsets checks that every tensor region lies inside the data
// section and that no two regions overlap. A malformed file must not be able
// to read outside the data section or alias two tensors onto the same bytes.
func ValidateTensorOffsets(tensors []TensorMeta, dataSize int64) error {
	if len(tensors) > MaxTensorCount {
		return &ValidationError{
			Type:    "too_many_tensors",
			Details: fmt.Sprintf("got %d, max %d", len(tensors), MaxTensorCount),
		}
	}

	for _, t := range tensors {
		if t.Offset < 0 || t.Size < 0 {
			return &ValidationError{
				Type:    "negative_offset",
				Tensor:  t.Name,
				Details: fmt.Sprintf("offset=%d, size=%d", t.Offset, t.Size),
			}
		}

		// Written as a subtraction so hostile offsets cannot overflow int64.
		if t.Size > dataSize || t.Offset > dataSize-t.Size {
			return &ValidationError{
				Type:    "out_of_bounds",
				Tensor:  t.Name,
				Details: fmt.Sprintf("offset %d + size %d > data_size %d", t.Offset, t.Size, dataSize),
			}
		}
	}

	sorted := make([]TensorMeta, len(tensors))
	copy(sorted, tensors)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})

	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		if prev.Offset+prev.Size > cur.Offset {
			return &ValidationError{
				Type:    "offset_overlap",
				Tensor:  prev.Name,
				Tensor2: cur.Name,
				Details: fmt.Sprintf("regions [%d-%d] and [%d-%d] overlap",
					prev.Offset, prev.Offset+prev.Size, cur.Offset, cur.Offset+cur.Size),
			}
		}
	}

	return nil
}

// ValidateTensorName rejects empty or oversized names and names that could
// smuggle path components into downstream tooling.
func ValidateTensorName(name string) error {
	if name == "" {
		return &ValidationError{
			Type:    "invalid_name",
			Details: "empty tensor name",
		}
	}

	if len(name) > MaxTensorNameLen {
		return &ValidationError{
			Type:    "name_too_long",
			Tensor:  name,
			Details: fmt.Sprintf("length %d > max %d", len(name), MaxTensorNameLen),
		}
	}

	for _, bad := range []struct{ substr, reason string }{
		{"..", "path traversal sequence"},
		{"/", "path separator"},
		{`\`, "path separator"},
		{"\x00", "null byte"},
	} {
		if strings.Contains(name, bad.substr) {
			return &ValidationError{
				Type:    "invalid_name",
				Tensor:  name,
				Details: "contains " + bad.reason,
			}
		}
	}

	return nil
}

// ValidateHeader runs name, metadata, and (in strict mode) offset checks
// against a parsed header.
func ValidateHeader(h *Header, dataSize int64, level ValidationLevel) error {
	if level == ValidationNone {
		return nil
	}

	if len(h.Tensors) > MaxTensorCount {
		return &ValidationError{
			Type:    "too_many_tensors",
			Details: fmt.Sprintf("got %d, max %d", len(h.Tensors), MaxTensorCount),
		}
	}

	metadataSize := 0
	for k, v := range h.Metadata {
		metadataSize += len(k) + len(v)
	}
	if metadataSize > MaxMetadataSize {
		return &ValidationError{
			Type:    "metadata_too_large",
			Details: fmt.Sprintf("got %d bytes, max %d", metadataSize, MaxMetadataSize),
		}
	}

	for i := range h.Tensors {
		if err := ValidateTensorName(h.Tensors[i].Name); err != nil {
			return err
		}
	}

	// The pairwise offset sweep is the expensive part; normal mode skips it.
	if level == ValidationStrict {
		return ValidateTensorOffsets(h.Tensors, dataSize)
	}

	return nil
}
