package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")

	token, refreshToken, err := GenerateAllTokens("ana@example.com", "Ana", "u1", "WAITER")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, refreshToken)

	claims, msg := ValidateToken(token)
	require.Empty(t, msg)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, "Ana", claims.Name)
	assert.Equal(t, "u1", claims.Uid)
	assert.Equal(t, "WAITER", claims.User_role)
}

func TestValidateToken_Garbage(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")

	_, msg := ValidateToken("not.a.token")
	assert.NotEmpty(t, msg)
}

func TestValidateToken_WrongKey(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")
	token, _, err := GenerateAllTokens("ana@example.com", "Ana", "u1", "WAITER")
	require.NoError(t, err)

	t.Setenv("SECRET_KEY", "other-secret")
	_, msg := ValidateToken(token)
	assert.NotEmpty(t, msg)
}
