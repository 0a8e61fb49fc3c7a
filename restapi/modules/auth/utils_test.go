package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong-pass", hash))
}

func TestGenerateAndValidateJWT(t *testing.T) {
	token, err := GenerateJWT("12345", "taro@example.com", "manager")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "12345", claims.Subject)
	assert.Equal(t, "taro@example.com", claims.Email)
	assert.Equal(t, "manager", claims.Role)
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	_, err := ValidateJWT("not-a-token")
	assert.Error(t, err)
}

func TestRefreshJWTKeepsIdentity(t *testing.T) {
	token, err := GenerateJWT("67890", "hanako@example.com", "member")
	require.NoError(t, err)

	refreshed, err := RefreshJWT(token)
	require.NoError(t, err)

	claims, err := ValidateJWT(refreshed)
	require.NoError(t, err)
	assert.Equal(t, "67890", claims.Subject)
	assert.Equal(t, "member", claims.Role)
}

func TestRefreshJWTRejectsInvalidToken(t *testing.T) {
	_, err := RefreshJWT("bogus")
	assert.Error(t, err)
}

func TestValidatePasswordStrength(t *testing.T) {
	assert.Error(t, ValidatePasswordStrength("short"))
	assert.NoError(t, ValidatePasswordStrength("long-enough-password"))
}

func TestGenerateSecureToken(t *testing.T) {
	a, err := GenerateSecureToken(32)
	require.NoError(t, err)
	b, err := GenerateSecureToken(32)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	// Zero length falls back to the default size.
	c, err := GenerateSecureToken(0)
	require.NoError(t, err)
	assert.NotEmpty(t, c)
}
