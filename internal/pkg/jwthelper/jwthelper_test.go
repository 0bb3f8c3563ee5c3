package jwthelper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundtrip(t *testing.T) {
	key := []byte("test-signing-key")

	token, err := GenerateToken(key, 42, "artisan", "go-test-agent")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(key, token)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "artisan", claims.Role)
	assert.Equal(t, "go-test-agent", claims.UserAgent)
}

func TestParseToken(t *testing.T) {
	key := []byte("test-signing-key")

	t.Run("wrong key", func(t *testing.T) {
		token, err := GenerateToken(key, 1, "user", "agent")
		require.NoError(t, err)

		_, err = ParseToken([]byte("other-key"), token)
		require.Error(t, err)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := ParseToken(key, "not.a.token")
		require.Error(t, err)
	})
}
