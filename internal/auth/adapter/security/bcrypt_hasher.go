package security

import (
	"session-auth/internal/auth/domain/repository"

	"golang.org/x/crypto/bcrypt"
)

// BcryptHasher implements password hashing with bcrypt. The salt is embedded
// in the produced hash, so two hashes of the same plaintext differ.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a hasher with the default bcrypt cost.
func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: bcrypt.DefaultCost}
}

// Hash derives a salted one-way hash of the plaintext.
func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches the stored hash. Comparison is
// delegated to bcrypt, which is constant-time; a malformed stored hash
// yields false, never an error.
func (h *BcryptHasher) Verify(plaintext, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)) == nil
}

// Ensure BcryptHasher implements the PasswordHasher interface
var _ repository.PasswordHasher = (*BcryptHasher)(nil)
