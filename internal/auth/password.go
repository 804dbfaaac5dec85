package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the salt rounds used when the existing password hashes
// were produced. Raising it only affects newly stored hashes.
const bcryptCost = 10

// HashPassword hashes a plaintext password with a fresh random salt. The
// salt and cost factor are embedded in the returned hash string.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether the plaintext matches the stored hash.
// Comparison is delegated to bcrypt's own constant-time routine; a malformed
// hash verifies as false rather than erroring.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
