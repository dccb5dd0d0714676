package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"userhub/internal/auth"
	"userhub/internal/config"
	"userhub/internal/handler"
	"userhub/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.Static("/uploads", cfg.UploadDir)

	// Public auth routes
	e.POST("/auth/register", authHandler.Register)
	e.GET("/auth/verify-email", authHandler.VerifyEmail)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/refresh-token", authHandler.Refresh)
	e.POST("/auth/forgot-password", authHandler.ForgotPassword)
	e.POST("/auth/reset-password", authHandler.ResetPassword)

	// Routes requiring a valid access token
	bearer := requireAccessToken(cfg.JWTAccessSecret)

	e.POST("/auth/logout", authHandler.Logout, bearer)

	e.GET("/users", userHandler.ListUsers, bearer)
	e.GET("/users/:id", userHandler.GetUser, bearer)
	e.GET("/profile", userHandler.GetProfile, bearer)
	e.PUT("/profile", userHandler.UpdateProfile, bearer)
	e.DELETE("/users/:id", userHandler.DeleteUser, bearer, RequireRoles(model.RoleAdmin))
}

// requireAccessToken validates the bearer access token and attaches
// the decoded claims to the request context.
func requireAccessToken(secret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(secret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	})
}

// RequireRoles rejects authenticated requests whose role is not in the
// allowed set.
func RequireRoles(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := auth.ClaimsFromContext(c)
			if claims == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			for _, role := range roles {
				if claims.Role == role {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "insufficient permissions")
		}
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
