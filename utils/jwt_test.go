package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("secret", "owner", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "owner", claims.Subject)
	require.NotNil(t, claims.ExpiresAt)

	_, err = ParseToken("other", token)
	assert.Error(t, err)
}

func TestTokenWithoutExpiry(t *testing.T) {
	token, err := GenerateToken("secret", "owner", 0)
	require.NoError(t, err)
	claims, err := ParseToken("secret", token)
	require.NoError(t, err)
	assert.Nil(t, claims.ExpiresAt)
}

func TestExpiredTokenRejected(t *testing.T) {
	claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "owner",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = ParseToken("secret", token)
	assert.Error(t, err)
}

func TestGenerateTokenRequiresSecret(t *testing.T) {
	_, err := GenerateToken("", "owner", time.Hour)
	assert.Error(t, err)
}

func TestParseID(t *testing.T) {
	id, err := ParseID("17")
	require.NoError(t, err)
	assert.Equal(t, uint(17), id)

	for _, raw := range []string{"", "0", "-1", "abc", "1.5"} {
		_, err := ParseID(raw)
		assert.Error(t, err, raw)
	}
}
