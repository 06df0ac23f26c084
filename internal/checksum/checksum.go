// Package checksum computes and verifies SHA-1/SHA-256 digests of in-memory
// byte buffers, used to confirm a downloaded archive matches its declared
// hash before extraction.
package checksum

import (
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// SHA256 returns the lowercase hex-encoded SHA-256 digest of data.
func SHA256(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// SHA1 returns the lowercase hex-encoded SHA-1 digest of data.
func SHA1(data []byte) string {
	sum := sha1.Sum(data)
	return hex.EncodeToString(sum[:])
}

// Verify checks data against an expected checksum. A supplied SHA-256 is
// authoritative; if absent, SHA-1 is used instead. If neither is supplied,
// verification is considered satisfied (no checksum means nothing to check).
// Hex comparison is case-insensitive.
func Verify(data []byte, sha256Hex, sha1Hex *string) bool {
	if sha256Hex != nil && *sha256Hex != "" {
		return strings.EqualFold(SHA256(data), *sha256Hex)
	}
	if sha1Hex != nil && *sha1Hex != "" {
		return strings.EqualFold(SHA1(data), *sha1Hex)
	}
	return true
}
