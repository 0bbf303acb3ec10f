package serialization

import (
	"crypto/sha256"
	"io"
)

// ComputeChecksum returns the SHA-256 digest of data.
func ComputeChecksum(data []byte) [32]byte {
	return sha256.Sum256(data)
}

// ComputeChecksumReader hashes everything remaining in r without buffering
// it in memory.
func ComputeChecksumReader(r io.Reader) ([32]byte, error) {
	var sum [32]byte
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return sum, err
	}
	h.Sum(sum[:0])
	return sum, nil
}

// ValidateChecksum returns ErrChecksumMismatch when the computed and stored
// digests differ.
func ValidateChecksum(computed, stored [32]byte) error {
	if computed != stored {
		return ErrChecksumMismatch
	}
	return nil
}
