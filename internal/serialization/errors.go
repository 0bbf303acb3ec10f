package serialization

import (
	"errors"
	"fmt"
)

// Sentinel errors for structural checkpoint failures.
var (
	ErrInvalidMagic       = errors.New("not a checkpoint file (bad magic bytes)")
	ErrUnsupportedVersion = errors.New("unsupported format version")
	ErrHeaderTooLarge     = errors.New("header size exceeds limit")
	ErrChecksumMismatch   = errors.New("checksum mismatch: tensor data corrupted or truncated")
)

// ValidationError describes a malformed header or tensor table entry.
type ValidationError struct {
	Type    string // failure class, e.g. "offset_overlap" or "out_of_bounds"
	Tensor  string // offending tensor, if any
	Tensor2 string // second tensor for pairwise failures
	Details string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	switch {
	case e.Tensor2 != "":
		return fmt.Sprintf("%s: tensors %q and %q: %s", e.Type, e.Tensor, e.Tensor2, e.Details)
	case e.Tensor != "":
		return fmt.Sprintf("%s: tensor %q: %s", e.Type, e.Tensor, e.Details)
	default:
		return fmt.Sprintf("%s: %s", e.Type, e.Details)
	}
}
