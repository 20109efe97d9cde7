package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// SecretDigest returns the lowercase hex-encoded SHA-256 digest of the shared
// secret word. The server configuration stores only this digest, never the
// word itself.
func SecretDigest(word string) string {
	sum := sha256.Sum256([]byte(word))
	return hex.EncodeToString(sum[:])
}

// VerifySecret reports whether the submitted secret word digests to
// expectedDigest. The comparison is constant-time so the digest check leaks
// nothing about how much of the digest matched.
func VerifySecret(word, expectedDigest string) bool {
	digest := SecretDigest(word)
	return subtle.ConstantTimeCompare([]byte(digest), []byte(expectedDigest)) == 1
}
