package main

import (
	"context"
	"errors"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"userhub/internal/config"
	"userhub/internal/db"
	"userhub/internal/model"
	"userhub/internal/repository"
)

// Seeds the initial admin account. The admin role is never assignable
// through the API, so a fresh deployment bootstraps it here.
func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	email := getEnv("ADMIN_EMAIL", "admin@localhost")
	password := getEnv("ADMIN_PASSWORD", "admin-change-me")
	firstName := getEnv("ADMIN_FIRST_NAME", "Admin")
	lastName := getEnv("ADMIN_LAST_NAME", "User")

	userRepo := repository.NewUserRepository(gormDB)
	ctx := context.Background()

	existing, err := userRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("Failed to check for existing admin: %v", err)
	}

	if existing != nil {
		// Keep the account but make sure it is an admin and usable.
		existing.Role = model.RoleAdmin
		existing.IsEmailVerified = true
		if err := userRepo.Update(ctx, existing); err != nil {
			log.Fatalf("Failed to update admin account: %v", err)
		}
		log.Printf("Admin account %s already exists, role and verification ensured", email)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}

	admin := &model.User{
		Email:           email,
		PasswordHash:    string(hashedPassword),
		FirstName:       firstName,
		LastName:        lastName,
		Role:            model.RoleAdmin,
		Provider:        model.ProviderLocal,
		IsEmailVerified: true,
	}

	if err := userRepo.Create(ctx, admin); err != nil {
		log.Fatalf("Failed to create admin account: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Admin account created: %s (id %d)", admin.Email, admin.ID)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
