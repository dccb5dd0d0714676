package auth

import (
	"context"
	"fmt"
	"time"

	"userhub/internal/cache"
)

const refreshTokenKeyPrefix = "refresh_token:"

// SessionStoreInterface defines the single-session refresh token store.
//
// The store holds at most one refresh token per user. Storing a new
// one atomically supersedes the previous entry, so the old token is
// unusable even before its embedded expiry. Deleting the entry is the
// sole revocation mechanism.
type SessionStoreInterface interface {
	StoreRefreshToken(ctx context.Context, userID uint, token string, ttl time.Duration) error
	GetRefreshToken(ctx context.Context, userID uint) (string, error)
	DeleteRefreshToken(ctx context.Context, userID uint) error
}

// SessionStore keeps refresh tokens in Redis keyed by user ID.
type SessionStore struct {
	cache *cache.Client
}

// Ensure SessionStore implements SessionStoreInterface.
var _ SessionStoreInterface = (*SessionStore)(nil)

// NewSessionStore creates a new session store.
func NewSessionStore(cache *cache.Client) *SessionStore {
	return &SessionStore{cache: cache}
}

func sessionKey(userID uint) string {
	return fmt.Sprintf("%s%d", refreshTokenKeyPrefix, userID)
}

// StoreRefreshToken stores the token, overwriting any prior entry for
// the user and resetting the TTL.
func (s *SessionStore) StoreRefreshToken(ctx context.Context, userID uint, token string, ttl time.Duration) error {
	return s.cache.Set(ctx, sessionKey(userID), []byte(token), ttl)
}

// GetRefreshToken returns the current token, or "" when no session
// exists for the user.
func (s *SessionStore) GetRefreshToken(ctx context.Context, userID uint) (string, error) {
	data, err := s.cache.Get(ctx, sessionKey(userID))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DeleteRefreshToken removes the session entry. Idempotent.
func (s *SessionStore) DeleteRefreshToken(ctx context.Context, userID uint) error {
	return s.cache.Delete(ctx, sessionKey(userID))
}
