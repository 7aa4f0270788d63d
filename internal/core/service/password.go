package service

import (
	"golang.org/x/crypto/bcrypt"
)

// MinBcryptCost is the floor for the hashing work factor. Configured costs
// below it are raised, never honored.
const MinBcryptCost = 12

// PasswordHasher wraps bcrypt with a fixed work factor. The plaintext is
// never stored, logged, or recoverable from the produced record.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < MinBcryptCost {
		cost = MinBcryptCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash derives a salted one-way digest of plaintext.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches the stored record. bcrypt's
// comparison is constant-time with respect to where a mismatch occurs.
func (h *PasswordHasher) Verify(plaintext, record string) bool {
	return bcrypt.CompareHashAndPassword([]byte(record), []byte(plaintext)) == nil
}
