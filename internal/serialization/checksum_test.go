package serialization

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"
	"testing/iotest"
)

func TestComputeChecksum(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		data := []byte("tensor data payload")
		if ComputeChecksum(data) != ComputeChecksum(data) {
			t.Errorf("Same input produced different checksums")
		}
	})

	t.Run("single byte flip changes digest", func(t *testing.T) {
		data := bytes.Repeat([]byte{0xAB}, 1024)
		flipped := bytes.Clone(data)
		flipped[512] ^= 0x01
		if ComputeChecksum(data) == ComputeChecksum(flipped) {
			t.Errorf("Corrupted input produced the same checksum")
		}
	})

	// Pinned digests make sure this stays SHA-256 and never silently
	// changes algorithm between releases.
	t.Run("known vectors", func(t *testing.T) {
		vectors := []struct {
			input string
			want  string
		}{
			{"", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
			{"abc", "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
		}
		for _, v := range vectors {
			sum := ComputeChecksum([]byte(v.input))
			if got := hex.EncodeToString(sum[:]); got != v.want {
				t.Errorf("Checksum(%q) = %s, want %s", v.input, got, v.want)
			}
		}
	})
}

func TestComputeChecksumReader(t *testing.T) {
	// Large enough that the reader is consumed in multiple chunks.
	data := make([]byte, 1<<20)
	for i := range data {
		data[i] = byte(i * 31)
	}

	streamed, err := ComputeChecksumReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ComputeChecksumReader failed: %v", err)
	}
	if streamed != ComputeChecksum(data) {
		t.Errorf("Streamed checksum differs from in-memory checksum")
	}
}

func TestComputeChecksumReaderPropagatesError(t *testing.T) {
	readErr := errors.New("disk gone")
	if _, err := ComputeChecksumReader(iotest.ErrReader(readErr)); !errors.Is(err, readErr) {
		t.Errorf("Expected read error to propagate, got %v", err)
	}
}

func TestValidateChecksum(t *testing.T) {
	data := []byte("model weights")
	sum := ComputeChecksum(data)

	if err := ValidateChecksum(ComputeChecksum(data), sum); err != nil {
		t.Errorf("Expected matching checksum to validate, got: %v", err)
	}

	var wrong [ChecksumSize]byte
	copy(wrong[:], sum[:])
	wrong[0] ^= 0xFF
	if err := ValidateChecksum(ComputeChecksum(data), wrong); !errors.Is(err, ErrChecksumMismatch) {
		t.Errorf("Expected ErrChecksumMismatch, got %v", err)
	}
}
