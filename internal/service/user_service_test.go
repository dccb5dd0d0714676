package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"userhub/internal/cache"
	apperrors "userhub/internal/errors"
	"userhub/internal/model"
)

// A nil cache client behaves as an always-empty cache, so these tests
// exercise the service without a Redis instance.
var noCache *cache.Client

func TestUserService_ListUsers(t *testing.T) {
	users := make([]model.User, 10)
	for i := range users {
		users[i] = model.User{ID: uint(i + 11), Email: "u@example.com"}
	}

	mockRepo := new(MockUserRepository)
	mockRepo.On("List", mock.Anything, 10, 10, "smith").Return(users, int64(25), nil)

	svc := NewUserService(mockRepo, noCache, new(MockSessionStore))
	result, err := svc.ListUsers(context.Background(), 2, 10, "smith")

	require.NoError(t, err)
	assert.Len(t, result.Users, 10)
	assert.Equal(t, int64(25), result.Pagination.Total)
	assert.Equal(t, 2, result.Pagination.Page)
	assert.Equal(t, 10, result.Pagination.Limit)
	assert.Equal(t, 3, result.Pagination.TotalPages)
	mockRepo.AssertExpectations(t)
}

func TestUserService_ListUsers_Defaults(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("List", mock.Anything, 0, 10, "").Return([]model.User{}, int64(0), nil)

	svc := NewUserService(mockRepo, noCache, new(MockSessionStore))
	result, err := svc.ListUsers(context.Background(), 0, 0, "")

	require.NoError(t, err)
	assert.Equal(t, 1, result.Pagination.Page)
	assert.Equal(t, 10, result.Pagination.Limit)
	assert.Equal(t, 0, result.Pagination.TotalPages)
}

func TestUserService_GetUser_NotFound(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, uint(42)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewUserService(mockRepo, noCache, new(MockSessionStore))
	user, err := svc.GetUser(context.Background(), 42)

	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	assert.Nil(t, user)
}

func TestUserService_UpdateProfile_PartialUpdate(t *testing.T) {
	existing := &model.User{ID: 5, FirstName: "Old", LastName: "Name", ProfileImage: "/uploads/old.png"}

	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, uint(5)).Return(existing, nil)
	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.FirstName == "New" && u.LastName == "Name" && u.ProfileImage == "/uploads/old.png"
	})).Return(nil)

	svc := NewUserService(mockRepo, noCache, new(MockSessionStore))
	user, err := svc.UpdateProfile(context.Background(), 5, UpdateProfileInput{FirstName: "New"})

	require.NoError(t, err)
	assert.Equal(t, "New", user.FirstName)
	assert.Equal(t, "Name", user.LastName)
	mockRepo.AssertExpectations(t)
}

func TestUserService_DeleteUser_RevokesSession(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, uint(9)).Return(&model.User{ID: 9}, nil)
	mockRepo.On("Delete", mock.Anything, uint(9)).Return(nil)

	mockSessions := new(MockSessionStore)
	mockSessions.On("DeleteRefreshToken", mock.Anything, uint(9)).Return(nil)

	svc := NewUserService(mockRepo, noCache, mockSessions)
	err := svc.DeleteUser(context.Background(), 9)

	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockSessions.AssertExpectations(t)
}

func TestUserService_DeleteUser_NotFound(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, uint(9)).Return(nil, gorm.ErrRecordNotFound)

	mockSessions := new(MockSessionStore)

	svc := NewUserService(mockRepo, noCache, mockSessions)
	err := svc.DeleteUser(context.Background(), 9)

	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	mockSessions.AssertNotCalled(t, "DeleteRefreshToken", mock.Anything, mock.Anything)
}
