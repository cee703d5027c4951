// Package auth implements password hashing for dashboard accounts.
// Hashes are pbkdf2-hmac-sha256 over the hex salt string, stored as
// "salt$hash" with both parts hex-encoded, compatible with the records
// already present in existing databases.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	pbkdf2Iterations = 200_000
	saltBytes        = 16
)

// HashPassword derives a salted hash in the stored "salt$hash" format.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	saltHex := hex.EncodeToString(salt)
	hash := pbkdf2.Key([]byte(password), []byte(saltHex), pbkdf2Iterations, sha256.Size, sha256.New)
	return saltHex + "$" + hex.EncodeToString(hash), nil
}

// VerifyPassword reports whether password matches the stored hash.
// Malformed stored values verify as false rather than erroring.
func VerifyPassword(stored, password string) bool {
	salt, hashHex, ok := strings.Cut(stored, "$")
	if !ok || salt == "" || hashHex == "" {
		return false
	}
	want, err := hex.DecodeString(hashHex)
	if err != nil {
		return false
	}
	got := pbkdf2.Key([]byte(password), []byte(salt), pbkdf2Iterations, len(want), sha256.New)
	return subtle.ConstantTimeCompare(want, got) == 1
}
