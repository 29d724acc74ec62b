package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baotran/docqa-be/database"
)

func TestGenerateAndParseUserToken(t *testing.T) {
	user := &database.User{
		ID:    "user-42",
		Email: "bao@example.com",
	}

	token, err := GenerateUserToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseUserToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", claims.UserID)
	assert.Equal(t, "bao@example.com", claims.Email)
	assert.Equal(t, "user-42", claims.Subject)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestParseUserTokenMalformed(t *testing.T) {
	claims, err := ParseUserToken("not-a-token")

	require.Error(t, err)
	assert.Nil(t, claims)
}

func TestParseUserTokenExpired(t *testing.T) {
	expired := UserClaims{
		UserID: "user-42",
		Email:  "bao@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, expired).SignedString(jwtSecret())
	require.NoError(t, err)

	claims, err := ParseUserToken(token)

	require.Error(t, err)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseUserTokenWrongSigningMethod(t *testing.T) {
	// A token signed with "none" must be rejected.
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, UserClaims{UserID: "user-42"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	claims, err := ParseUserToken(token)

	require.Error(t, err)
	assert.Nil(t, claims)
}

func TestParseUserTokenWrongSecret(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, UserClaims{
		UserID: "user-42",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	claims, err := ParseUserToken(token)

	require.Error(t, err)
	assert.Nil(t, claims)
}
