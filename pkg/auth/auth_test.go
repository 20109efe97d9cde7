package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordVerifies(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.True(t, VerifyPassword("correct horse battery staple", hash))
	assert.False(t, VerifyPassword("incorrect horse", hash))
}

func TestHashPasswordFreshSalt(t *testing.T) {
	first, err := HashPassword("same password")
	require.NoError(t, err)
	second, err := HashPassword("same password")
	require.NoError(t, err)

	// Fresh salt per call: different hash strings, both verifiable.
	assert.NotEqual(t, first, second)
	assert.True(t, VerifyPassword("same password", first))
	assert.True(t, VerifyPassword("same password", second))
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	assert.False(t, VerifyPassword("anything", ""))
	assert.False(t, VerifyPassword("anything", "not-a-bcrypt-hash"))
	assert.False(t, VerifyPassword("anything", "$2a$10$truncated"))
}

func TestVerifySecret(t *testing.T) {
	digest := SecretDigest("open sesame")
	require.Len(t, digest, 64)

	assert.True(t, VerifySecret("open sesame", digest))
	assert.False(t, VerifySecret("open says me", digest))
	assert.False(t, VerifySecret("open sesame", "0000"))
	assert.False(t, VerifySecret("open sesame", ""))
}

func TestSecretDigestDeterministic(t *testing.T) {
	assert.Equal(t, SecretDigest("word"), SecretDigest("word"))
	assert.NotEqual(t, SecretDigest("word"), SecretDigest("Word"))
}
