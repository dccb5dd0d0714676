package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_AccessTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("access-secret", "refresh-secret")

	token, err := svc.GenerateAccessToken(42, "test@example.com", "admin")
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "test@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
}

func TestJWTService_RefreshTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("access-secret", "refresh-secret")

	token, err := svc.GenerateRefreshToken(42, "test@example.com", "user")
	require.NoError(t, err)

	claims, err := svc.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.NotEmpty(t, claims.ID)
}

func TestJWTService_SecretsAreDistinct(t *testing.T) {
	svc := NewJWTService("access-secret", "refresh-secret")

	accessToken, err := svc.GenerateAccessToken(1, "a@x.com", "user")
	require.NoError(t, err)
	refreshToken, err := svc.GenerateRefreshToken(1, "a@x.com", "user")
	require.NoError(t, err)

	_, err = svc.ValidateRefreshToken(accessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateAccessToken(refreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_WrongSecretRejected(t *testing.T) {
	issuer := NewJWTService("access-secret", "refresh-secret")
	verifier := NewJWTService("other-access", "other-refresh")

	token, err := issuer.GenerateAccessToken(1, "a@x.com", "user")
	require.NoError(t, err)

	_, err = verifier.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_MalformedTokenRejected(t *testing.T) {
	svc := NewJWTService("access-secret", "refresh-secret")

	_, err := svc.ValidateAccessToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_ExpiredTokenRejected(t *testing.T) {
	svc := NewJWTService("access-secret", "refresh-secret")

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID: 1,
		Email:  "a@x.com",
		Role:   "user",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	tokenString, err := expired.SignedString([]byte("access-secret"))
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(tokenString)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RefreshTokensAreUnique(t *testing.T) {
	svc := NewJWTService("access-secret", "refresh-secret")

	first, err := svc.GenerateRefreshToken(1, "a@x.com", "user")
	require.NoError(t, err)
	second, err := svc.GenerateRefreshToken(1, "a@x.com", "user")
	require.NoError(t, err)

	// Identical claims issued back to back must still produce distinct
	// tokens, otherwise rotation could not supersede the previous one.
	assert.NotEqual(t, first, second)
}

func TestRandomToken(t *testing.T) {
	first, err := RandomToken()
	require.NoError(t, err)
	assert.Len(t, first, 64)

	second, err := RandomToken()
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
