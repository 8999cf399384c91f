package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// Version suffix enables future algorithm migration.
const (
	DomainInput   = "fissure/input/v1"
	DomainSegment = "fissure/segments/v1"
)

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
// The null byte separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// InputDigest computes the content-addressed identity of raw input lines.
// Lines are NFC normalized during canonical encoding, so visually identical
// inputs with different Unicode compositions share a digest.
func InputDigest(lines []string) (string, error) {
	arr := make([]any, len(lines))
	for i, l := range lines {
		arr[i] = l
	}
	canonical, err := MarshalCanonical(map[string]any{
		"lines": arr,
	})
	if err != nil {
		return "", fmt.Errorf("InputDigest: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainInput, canonical), nil
}

// SegmentsDigest computes the identity of a parsed segment list.
// Two inputs that differ only in dropped lines share a SegmentsDigest.
func SegmentsDigest(segments []Segment) (string, error) {
	arr := make([]any, len(segments))
	for i, s := range segments {
		arr[i] = []any{s.P1.X, s.P1.Y, s.P2.X, s.P2.Y}
	}
	canonical, err := MarshalCanonical(map[string]any{
		"segments": arr,
	})
	if err != nil {
		return "", fmt.Errorf("SegmentsDigest: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainSegment, canonical), nil
}

// MustInputDigest is like InputDigest but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustInputDigest(lines []string) string {
	d, err := InputDigest(lines)
	if err != nil {
		panic(err)
	}
	return d
}
