package repository

// PasswordHasher defines the interface for one-way password hashing. Hash
// embeds a per-call salt, so equal plaintexts produce different hashes.
// Verify must return false for malformed stored hashes rather than fail.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hashed string) bool
}
