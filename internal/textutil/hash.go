package textutil

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// ContentHash returns the hex-encoded SHA-256 digest of the trimmed text.
// Used as the analysis cache key so identical entries hit the cache
// regardless of surrounding whitespace.
func ContentHash(text string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(text)))
	return hex.EncodeToString(sum[:])
}
