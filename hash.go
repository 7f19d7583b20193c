package glyph

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// Digest selects the hash function used for content fingerprints.
type Digest uint8

const (
	// DigestSHA256 hashes with SHA-256. It is the default.
	DigestSHA256 Digest = iota
	// DigestBLAKE2b hashes with 256-bit BLAKE2b.
	DigestBLAKE2b
)

func (d Digest) String() string {
	switch d {
	case DigestSHA256:
		return "sha256"
	case DigestBLAKE2b:
		return "blake2b"
	default:
		return fmt.Sprintf("Digest(%d)", uint8(d))
	}
}

// ParseDigest returns the digest named s ("sha256" or "blake2b").
func ParseDigest(s string) (Digest, error) {
	switch strings.ToLower(s) {
	case "", "sha256":
		return DigestSHA256, nil
	case "blake2b":
		return DigestBLAKE2b, nil
	}
	return 0, fmt.Errorf("glyph: unknown digest %q", s)
}

// Sum returns the lowercase hex digest of s.
func (d Digest) Sum(s string) string {
	if d == DigestBLAKE2b {
		sum := blake2b.Sum256([]byte(s))
		return hex.EncodeToString(sum[:])
	}
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// Fingerprint returns the SHA-256 content fingerprint of g. ok is false when
// g has no shape string and so cannot be cached.
func Fingerprint(g Geometry) (string, bool) {
	return FingerprintWith(g, DigestSHA256)
}

// FingerprintWith returns the content fingerprint of g under d.
func FingerprintWith(g Geometry, d Digest) (string, bool) {
	s, ok := g.ShapeString()
	if !ok {
		return "", false
	}
	return d.Sum(s), true
}
