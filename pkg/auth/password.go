// Package auth holds the credential primitives of the admin gate: bcrypt
// password hashing and the SHA-256 shared-secret digest check performed
// before any credential lookup happens.
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword derives a salted one-way bcrypt hash of the given password.
// Each call generates a fresh random salt, so hashing the same password twice
// yields two different hash strings that are both independently verifiable.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches the stored bcrypt hash.
// It fails closed: a malformed or truncated stored hash yields false rather
// than an error the caller could mistake for success. Timing resistance of
// the comparison is bcrypt's responsibility.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
