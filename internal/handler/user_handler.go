package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"userhub/internal/auth"
	"userhub/internal/service"
	"userhub/internal/upload"
)

// UserHandler handles user listing and profile endpoints.
type UserHandler struct {
	svc    service.UserService
	images *upload.ImageStore
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService, images *upload.ImageStore) *UserHandler {
	return &UserHandler{svc: svc, images: images}
}

// UpdateProfileRequest represents the multipart profile update fields.
type UpdateProfileRequest struct {
	FirstName string `form:"firstName" validate:"omitempty,min=1"`
	LastName  string `form:"lastName" validate:"omitempty,min=1"`
}

// ListUsers godoc
// @Summary List users with pagination and search
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 10)"
// @Param search query string false "Substring match on name or email"
// @Success 200 {object} service.UserListResult
// @Failure 401 {object} errors.ErrorResponse
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit < 1 {
		limit = 10
	}
	search := c.QueryParam("search")

	result, err := h.svc.ListUsers(c.Request().Context(), page, limit, search)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, result)
}

// GetUser godoc
// @Summary Get user by id
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	user, err := h.svc.GetUser(c.Request().Context(), uint(id))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// GetProfile godoc
// @Summary Get the authenticated user's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /profile [get]
func (h *UserHandler) GetProfile(c echo.Context) error {
	claims := auth.ClaimsFromContext(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	user, err := h.svc.GetUser(c.Request().Context(), claims.UserID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile godoc
// @Summary Update the authenticated user's profile
// @Tags users
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param firstName formData string false "First name"
// @Param lastName formData string false "Last name"
// @Param profileImage formData file false "Profile image (jpeg/jpg/png/gif, max 5MB)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /profile [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	claims := auth.ClaimsFromContext(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	in := service.UpdateProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}

	if file, err := c.FormFile("profileImage"); err == nil && file != nil {
		path, err := h.images.Save(file)
		if err != nil {
			if err == upload.ErrInvalidImage {
				return echo.NewHTTPError(http.StatusBadRequest, err.Error())
			}
			return httpError(err)
		}
		in.ProfileImage = path
	}

	user, err := h.svc.UpdateProfile(c.Request().Context(), claims.UserID, in)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Profile updated successfully",
		"user":    user.Public(),
	})
}

// DeleteUser godoc
// @Summary Delete a user (admin only)
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.svc.DeleteUser(c.Request().Context(), uint(id)); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "User deleted successfully",
	})
}
