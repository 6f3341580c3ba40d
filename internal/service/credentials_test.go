package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialServiceHashAndVerify(t *testing.T) {
	svc := NewCredentialService()

	hash, err := svc.HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, svc.VerifyPassword("s3cret-pass", hash))
	assert.False(t, svc.VerifyPassword("wrong-pass", hash))
}

func TestCredentialServiceGenerateStudentID(t *testing.T) {
	svc := NewCredentialService()

	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		id, err := svc.GenerateStudentID()
		require.NoError(t, err)
		require.Len(t, id, 8)
		for _, r := range id {
			assert.True(t, strings.ContainsRune(studentIDAlphabet, r), "unexpected rune %q", r)
		}
		seen[id] = struct{}{}
	}
	// 50 draws from a 36^8 space should never collide.
	assert.Len(t, seen, 50)
}

func TestCredentialServiceGeneratePassword(t *testing.T) {
	svc := NewCredentialService()

	password, err := svc.GeneratePassword()
	require.NoError(t, err)
	require.Len(t, password, 8)
	for _, r := range password {
		assert.True(t, strings.ContainsRune(passwordAlphabet, r), "unexpected rune %q", r)
	}
}
