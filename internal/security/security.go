// Package security provides password hashing and opaque token generation.
package security

import (
	"crypto/rand"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

// tokenBytes is the number of random bytes per admin token. 32 bytes hex
// encoded yields a 64-character token with 256 bits of entropy.
const tokenBytes = 32

// HashPassword hashes a plaintext password with bcrypt. The salt is embedded
// in the returned hash, so verification needs no extra input.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword reports whether plain matches the bcrypt hash. bcrypt's
// comparison runs in constant time relative to the hash contents.
func VerifyPassword(plain, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}

// GenerateToken returns a cryptographically random hex token.
func GenerateToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
