package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailAlreadyRegistered is returned when registering an email that exists.
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailNotVerified is returned when logging in before email verification.
	ErrEmailNotVerified = errors.New("please verify your email before logging in")
	// ErrInvalidVerificationToken is returned for unknown verification tokens.
	ErrInvalidVerificationToken = errors.New("invalid verification token")
	// ErrInvalidResetToken covers unknown and expired reset tokens alike.
	ErrInvalidResetToken = errors.New("invalid or expired reset token")
	// ErrInvalidRefreshToken covers malformed, expired and superseded refresh tokens alike.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, ErrUserNotFound.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrEmailAlreadyRegistered):
		return NewHTTPError(http.StatusBadRequest, ErrEmailAlreadyRegistered.Error(), "EMAIL_ALREADY_REGISTERED")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidCredentials.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrEmailNotVerified):
		return NewHTTPError(http.StatusForbidden, ErrEmailNotVerified.Error(), "EMAIL_NOT_VERIFIED")
	case errors.Is(err, ErrInvalidVerificationToken):
		return NewHTTPError(http.StatusBadRequest, ErrInvalidVerificationToken.Error(), "INVALID_VERIFICATION_TOKEN")
	case errors.Is(err, ErrInvalidResetToken):
		return NewHTTPError(http.StatusBadRequest, ErrInvalidResetToken.Error(), "INVALID_RESET_TOKEN")
	case errors.Is(err, ErrInvalidRefreshToken):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidRefreshToken.Error(), "INVALID_REFRESH_TOKEN")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
