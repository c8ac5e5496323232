package digest

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// Hex returns the sha256 digest of content as 64 lowercase hex characters.
func Hex(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// Verify reports whether content still hashes to the recorded digest.
func Verify(recorded, content string) bool {
	return subtle.ConstantTimeCompare([]byte(recorded), []byte(Hex(content))) == 1
}
