// Package hashing computes deterministic content fingerprints used for
// cache identity and output versioning.
package hashing

import (
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash/crc32"
	"io"
)

// Strategy produces a deterministic digest of byte content. The digest
// must be stable across processes and architectures.
type Strategy interface {
	Hash(r io.Reader) (string, error)
}

// SHA1 is the default fingerprint strategy.
type SHA1 struct{}

// Hash implements Strategy: hex-encoded sha1 of the content.
func (SHA1) Hash(r io.Reader) (string, error) {
	h := sha1.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// SHA256 fingerprints with sha256 for consumers that need a
// collision-resistant digest.
type SHA256 struct{}

// Hash implements Strategy: hex-encoded sha256 of the content.
func (SHA256) Hash(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// CRC32 is a short, cheap fingerprint for debug setups where digest
// strength does not matter.
type CRC32 struct{}

// Hash implements Strategy: lowercase hex crc32 (IEEE) of the content.
func (CRC32) Hash(r io.Reader) (string, error) {
	h := crc32.NewIEEE()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return fmt.Sprintf("%08x", h.Sum32()), nil
}
