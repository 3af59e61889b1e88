package middleware

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	tokenStr, err := GenerateToken(42)
	require.NoError(t, err)
	require.NotEmpty(t, tokenStr)

	token, err := ValidateToken(tokenStr)
	require.NoError(t, err)
	assert.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	// JSON numbers decode as float64.
	assert.Equal(t, float64(42), claims["user_id"])
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestValidateTokenRejectsWrongKey(t *testing.T) {
	claims := jwt.MapClaims{"user_id": 1}
	other := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := other.SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	_, err = ValidateToken(signed)
	assert.Error(t, err)
}
