package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
)

// Calculator is an interface for computing content hashes.
// This abstraction keeps the hash algorithm in one place should the
// manifest schema ever grow a second one.
type Calculator interface {
	// Sum computes the hash of in-memory content.
	Sum(content []byte) string

	// SumReader computes the hash of a stream without buffering it.
	SumReader(r io.Reader) (string, error)

	// Algorithm names the hash for the manifest header.
	Algorithm() string
}

// SHA256 implements Calculator using SHA-256 with lower-case hex output.
//
// SHA256 is a zero-size type and is safe for concurrent use by multiple
// goroutines. Using value semantics (pass by value) eliminates heap
// allocations.
type SHA256 struct{}

// New creates a new SHA-256 based calculator.
// Returns by value to avoid heap allocation (SHA256 is a zero-size type).
func New() SHA256 {
	return SHA256{}
}

// Sum computes SHA-256 of content.
func (c SHA256) Sum(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// SumReader computes SHA-256 of everything readable from r.
// Large subjects hash in constant memory.
func (c SHA256) SumReader(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Algorithm returns the manifest identifier for this calculator.
func (c SHA256) Algorithm() string {
	return "sha256"
}
