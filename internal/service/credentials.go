package service

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

const (
	credentialLength = 8

	studentIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	passwordAlphabet  = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// CredentialService mints student ids and passwords and handles password
// hashing. Generated values are drawn from a cryptographically secure
// source because they double as shareable identifiers.
type CredentialService struct{}

// NewCredentialService constructs a CredentialService.
func NewCredentialService() *CredentialService {
	return &CredentialService{}
}

// HashPassword derives a bcrypt hash for storage.
func (s *CredentialService) HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether plaintext matches the stored hash.
func (s *CredentialService) VerifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// GenerateStudentID returns an 8-character id over A-Z0-9. Uniqueness is
// enforced by the store; callers retry on a collision.
func (s *CredentialService) GenerateStudentID() (string, error) {
	return randomString(studentIDAlphabet, credentialLength)
}

// GeneratePassword returns an 8-character password over a-zA-Z0-9.
func (s *CredentialService) GeneratePassword() (string, error) {
	return randomString(passwordAlphabet, credentialLength)
}

func randomString(alphabet string, length int) (string, error) {
	max := big.NewInt(int64(len(alphabet)))
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("random draw: %w", err)
		}
		buf[i] = alphabet[n.Int64()]
	}
	return string(buf), nil
}
