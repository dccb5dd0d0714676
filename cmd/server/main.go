package main

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"userhub/internal/auth"
	"userhub/internal/cache"
	"userhub/internal/config"
	"userhub/internal/db"
	"userhub/internal/handler"
	"userhub/internal/mailer"
	"userhub/internal/model"
	"userhub/internal/repository"
	"userhub/internal/router"
	"userhub/internal/service"
	"userhub/internal/upload"
)

// @title User Account API
// @version 1.0
// @description User accounts with registration, email verification, JWT sessions and profile management.
// @host localhost:8080
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	smtpMailer, err := mailer.NewSMTPMailer(cfg)
	if err != nil {
		log.Fatalf("mailer init: %v", err)
	}

	images, err := upload.NewImageStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("upload dir init: %v", err)
	}

	userRepo := repository.NewUserRepository(gormDB)

	jwtService := auth.NewJWTService(cfg.JWTAccessSecret, cfg.JWTRefreshSecret)
	sessionStore := auth.NewSessionStore(cacheClient)

	authService := service.NewAuthService(userRepo, jwtService, sessionStore, smtpMailer)
	userService := service.NewUserService(userRepo, cacheClient, sessionStore)

	authHandler := handler.NewAuthHandler(authService, images)
	userHandler := handler.NewUserHandler(userService, images)

	router.Register(e, cfg, authHandler, userHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
