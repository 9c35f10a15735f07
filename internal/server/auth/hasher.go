// Package auth implements the credential hasher and the JWT session tokens.
package auth

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
)

// Hasher produces deterministic one-way digests of plaintext passwords.
// The salt is a process-wide secret fixed at startup; the same plaintext
// and salt always yield the same digest.
type Hasher struct {
	salt string
}

func NewHasher(salt string) *Hasher {
	return &Hasher{salt: salt}
}

// Hash returns the hex-encoded SHA-512 digest of plaintext concatenated
// with the salt. An empty plaintext is a valid input.
func (h *Hasher) Hash(plaintext string) string {
	sum := sha512.Sum512([]byte(plaintext + h.salt))
	return hex.EncodeToString(sum[:])
}

// Compare reports whether two digests are equal. Comparison is
// constant-time.
func (h *Hasher) Compare(digest string, candidate string) bool {
	return subtle.ConstantTimeCompare([]byte(digest), []byte(candidate)) == 1
}
