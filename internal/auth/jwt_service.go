package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// AccessTokenExpiry is the duration for which access tokens are valid.
	AccessTokenExpiry = 15 * time.Minute
	// RefreshTokenExpiry is the duration for which refresh tokens are valid.
	// It also bounds the TTL of the cached session entry.
	RefreshTokenExpiry = 7 * 24 * time.Hour
)

// ErrInvalidToken is returned for any signature, format or expiry
// failure. Callers must not distinguish between the causes.
var ErrInvalidToken = errors.New("invalid token")

// Claims represents the identity carried by both token kinds.
type Claims struct {
	UserID uint   `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// JWTService signs and validates access and refresh tokens. The two
// kinds use distinct secrets so one can never pass for the other.
type JWTService struct {
	accessSecret  []byte
	refreshSecret []byte
}

// NewJWTService creates a JWT service with the given secrets.
func NewJWTService(accessSecret, refreshSecret string) *JWTService {
	return &JWTService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
	}
}

// GenerateAccessToken signs a short-lived access token.
func (s *JWTService) GenerateAccessToken(userID uint, email, role string) (string, error) {
	return s.generate(userID, email, role, "", AccessTokenExpiry, s.accessSecret)
}

// GenerateRefreshToken signs a long-lived refresh token. The UUID
// token ID makes every issued refresh token distinct, so rotation
// always supersedes the cached value even within one clock second.
func (s *JWTService) GenerateRefreshToken(userID uint, email, role string) (string, error) {
	return s.generate(userID, email, role, uuid.New().String(), RefreshTokenExpiry, s.refreshSecret)
}

func (s *JWTService) generate(userID uint, email, role, tokenID string, expiry time.Duration, secret []byte) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateAccessToken validates an access token and returns its claims.
func (s *JWTService) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.validate(tokenString, s.accessSecret)
}

// ValidateRefreshToken validates a refresh token and returns its
// claims. It does not consult the session store; pairing the token
// with the single cached session entry is the caller's job.
func (s *JWTService) ValidateRefreshToken(tokenString string) (*Claims, error) {
	return s.validate(tokenString, s.refreshSecret)
}

func (s *JWTService) validate(tokenString string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
