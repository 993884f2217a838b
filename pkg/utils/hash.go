package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// SumSHA256 returns the hex-encoded SHA-256 checksum of the provided data.
// Used as a weak ETag for exported document payloads.
func SumSHA256(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
