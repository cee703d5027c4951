package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("DemoPass123")
	require.NoError(t, err)

	salt, _, ok := strings.Cut(hash, "$")
	require.True(t, ok)
	assert.Len(t, salt, 32) // 16 random bytes, hex-encoded

	assert.True(t, VerifyPassword(hash, "DemoPass123"))
	assert.False(t, VerifyPassword(hash, "WrongPass"))
}

func TestHashPasswordSalted(t *testing.T) {
	h1, err := HashPassword("same")
	require.NoError(t, err)
	h2, err := HashPassword("same")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

func TestVerifyPasswordMalformedStored(t *testing.T) {
	assert.False(t, VerifyPassword("", "x"))
	assert.False(t, VerifyPassword("no-separator", "x"))
	assert.False(t, VerifyPassword("salt$not-hex", "x"))
}
