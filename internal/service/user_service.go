package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"userhub/internal/auth"
	"userhub/internal/cache"
	apperrors "userhub/internal/errors"
	"userhub/internal/model"
	"userhub/internal/repository"
)

const (
	userCacheTTL     = 5 * time.Minute
	userListCacheKey = "users:*"
)

// Pagination describes a page of a list response.
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// UserListResult is a page of users with its pagination envelope.
type UserListResult struct {
	Users      []model.User `json:"users"`
	Pagination Pagination   `json:"pagination"`
}

// UpdateProfileInput carries optional profile changes; empty fields
// are left untouched.
type UpdateProfileInput struct {
	FirstName    string
	LastName     string
	ProfileImage string
}

// UserService exposes user read and profile operations.
type UserService interface {
	ListUsers(ctx context.Context, page, limit int, search string) (*UserListResult, error)
	GetUser(ctx context.Context, id uint) (*model.User, error)
	UpdateProfile(ctx context.Context, userID uint, in UpdateProfileInput) (*model.User, error)
	DeleteUser(ctx context.Context, id uint) error
}

type userService struct {
	repo     repository.UserRepository
	cache    *cache.Client
	sessions auth.SessionStoreInterface
}

// NewUserService builds a UserService with repository, cache and
// session store. Deleting a user must also revoke their session.
func NewUserService(repo repository.UserRepository, cache *cache.Client, sessions auth.SessionStoreInterface) UserService {
	return &userService{repo: repo, cache: cache, sessions: sessions}
}

func (s *userService) userKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

func (s *userService) listKey(page, limit int, search string) string {
	return fmt.Sprintf("users:page:%d:limit:%d:search:%s", page, limit, search)
}

// ListUsers returns a page of users, read-through cached for 5 minutes.
func (s *userService) ListUsers(ctx context.Context, page, limit int, search string) (*UserListResult, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	key := s.listKey(page, limit, search)
	if data, _ := s.cache.Get(ctx, key); data != nil {
		var cached UserListResult
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	users, total, err := s.repo.List(ctx, (page-1)*limit, limit, search)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	result := &UserListResult{
		Users: users,
		Pagination: Pagination{
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: totalPages,
		},
	}

	if payload, err := json.Marshal(result); err == nil {
		_ = s.cache.Set(ctx, key, payload, userCacheTTL)
	}
	return result, nil
}

// GetUser retrieves a user by ID, read-through cached for 5 minutes.
func (s *userService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, s.userKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.userKey(id), payload, userCacheTTL)
	}
	return user, nil
}

// UpdateProfile applies the provided name and avatar changes and
// invalidates the per-user and list caches.
func (s *userService) UpdateProfile(ctx context.Context, userID uint, in UpdateProfileInput) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if in.FirstName != "" {
		user.FirstName = in.FirstName
	}
	if in.LastName != "" {
		user.LastName = in.LastName
	}
	if in.ProfileImage != "" {
		user.ProfileImage = in.ProfileImage
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	_ = s.cache.Delete(ctx, s.userKey(userID))
	_ = s.cache.DeleteMatching(ctx, userListCacheKey)
	return user, nil
}

// DeleteUser removes the user, their cache entries and their cached
// session, so a still-unexpired refresh token dies with the account.
func (s *userService) DeleteUser(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	_ = s.cache.Delete(ctx, s.userKey(id))
	_ = s.cache.DeleteMatching(ctx, userListCacheKey)
	if err := s.sessions.DeleteRefreshToken(ctx, id); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}
