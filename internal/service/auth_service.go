package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"userhub/internal/auth"
	apperrors "userhub/internal/errors"
	"userhub/internal/mailer"
	"userhub/internal/model"
	"userhub/internal/repository"
)

const (
	bcryptCost       = 10
	resetTokenExpiry = time.Hour
)

// TokenPair bundles a freshly issued access and refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// RegisterInput carries validated registration data.
type RegisterInput struct {
	Email        string
	Password     string
	FirstName    string
	LastName     string
	ProfileImage string
}

// AuthService handles the authentication lifecycle.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	VerifyEmail(ctx context.Context, token string) error
	Login(ctx context.Context, email, password string) (TokenPair, *model.User, error)
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)
	Logout(ctx context.Context, userID uint) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	sessions   auth.SessionStoreInterface
	mailer     mailer.Mailer
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, sessions auth.SessionStoreInterface, mail mailer.Mailer) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		sessions:   sessions,
		mailer:     mail,
	}
}

// Register creates an unverified local user and dispatches the
// verification email. The created record is not rolled back when the
// email dispatch fails; the caller sees the failure and the record
// stays unverified and unusable for login.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	existing, err := s.userRepo.FindByEmail(ctx, in.Email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrEmailAlreadyRegistered
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	verificationToken, err := auth.RandomToken()
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:                  in.Email,
		PasswordHash:           string(hashedPassword),
		FirstName:              in.FirstName,
		LastName:               in.LastName,
		ProfileImage:           in.ProfileImage,
		Role:                   model.RoleUser,
		Provider:               model.ProviderLocal,
		EmailVerificationToken: &verificationToken,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	if err := s.mailer.SendVerificationEmail(ctx, user.Email, verificationToken); err != nil {
		return nil, fmt.Errorf("send verification email: %w", err)
	}

	return user, nil
}

// VerifyEmail consumes a verification token. The token is single use
// by virtue of being cleared here.
func (s *authService) VerifyEmail(ctx context.Context, token string) error {
	user, err := s.userRepo.FindByVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrInvalidVerificationToken
		}
		return fmt.Errorf("find by verification token: %w", err)
	}

	user.IsEmailVerified = true
	user.EmailVerificationToken = nil
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("mark user verified: %w", err)
	}
	return nil
}

// Login authenticates a user and issues a fresh token pair, making it
// the user's single valid session.
func (s *authService) Login(ctx context.Context, email, password string) (TokenPair, *model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return TokenPair{}, nil, apperrors.ErrInvalidCredentials
	}

	// Externally-authenticated identities carry no password hash and
	// cannot log in with credentials.
	if user.PasswordHash == "" {
		return TokenPair{}, nil, apperrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return TokenPair{}, nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsEmailVerified {
		return TokenPair{}, nil, apperrors.ErrEmailNotVerified
	}

	pair, err := s.issueTokens(ctx, user.ID, user.Email, user.Role)
	if err != nil {
		return TokenPair{}, nil, err
	}
	return pair, user, nil
}

// Refresh rotates a valid refresh token. The presented token must
// both verify against the refresh secret and equal the single cached
// session entry; rotation overwrites that entry, so the presented
// token is unusable afterwards.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, apperrors.ErrInvalidRefreshToken
	}

	stored, err := s.sessions.GetRefreshToken(ctx, claims.UserID)
	if err != nil {
		return TokenPair{}, fmt.Errorf("load session: %w", err)
	}
	if stored == "" || stored != refreshToken {
		return TokenPair{}, apperrors.ErrInvalidRefreshToken
	}

	return s.issueTokens(ctx, claims.UserID, claims.Email, claims.Role)
}

// Logout revokes the caller's session. Absence of a session entry is
// not an error.
func (s *authService) Logout(ctx context.Context, userID uint) error {
	return s.sessions.DeleteRefreshToken(ctx, userID)
}

// ForgotPassword stores a reset token valid for one hour and mails the
// reset link.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	resetToken, err := auth.RandomToken()
	if err != nil {
		return err
	}
	expires := time.Now().Add(resetTokenExpiry)

	user.PasswordResetToken = &resetToken
	user.PasswordResetExpires = &expires
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	if err := s.mailer.SendPasswordResetEmail(ctx, user.Email, resetToken); err != nil {
		return fmt.Errorf("send password reset email: %w", err)
	}
	return nil
}

// ResetPassword consumes a reset token. A token whose stored expiry
// has passed is rejected even when it was never cleared from storage.
func (s *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	user, err := s.userRepo.FindByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrInvalidResetToken
		}
		return fmt.Errorf("find by reset token: %w", err)
	}

	if user.PasswordResetExpires == nil || time.Now().After(*user.PasswordResetExpires) {
		return apperrors.ErrInvalidResetToken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user.PasswordHash = string(hashedPassword)
	user.PasswordResetToken = nil
	user.PasswordResetExpires = nil
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func (s *authService) issueTokens(ctx context.Context, userID uint, email, role string) (TokenPair, error) {
	accessToken, err := s.jwtService.GenerateAccessToken(userID, email, role)
	if err != nil {
		return TokenPair{}, fmt.Errorf("generate access token: %w", err)
	}

	refreshToken, err := s.jwtService.GenerateRefreshToken(userID, email, role)
	if err != nil {
		return TokenPair{}, fmt.Errorf("generate refresh token: %w", err)
	}

	if err := s.sessions.StoreRefreshToken(ctx, userID, refreshToken, auth.RefreshTokenExpiry); err != nil {
		return TokenPair{}, fmt.Errorf("store refresh token: %w", err)
	}

	return TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
