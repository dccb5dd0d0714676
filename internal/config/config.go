package config

import (
	"os"
	"strconv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string
	MySQLDSN   string
	RedisAddr  string
	RedisDB    int
	RedisPass  string

	// Access and refresh tokens are signed with distinct secrets.
	JWTAccessSecret  string
	JWTRefreshSecret string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	EmailFrom    string

	// FrontendURL is the SPA origin used to build verification and
	// password reset links.
	FrontendURL string
	UploadDir   string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		MySQLDSN:         getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/app?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:          getEnvInt("REDIS_DB", 0),
		RedisPass:        os.Getenv("REDIS_PASSWORD"),
		JWTAccessSecret:  getEnv("JWT_SECRET", "change-me"),
		JWTRefreshSecret: getEnv("JWT_REFRESH_SECRET", "change-me-too"),
		SMTPHost:         getEnv("EMAIL_HOST", "localhost"),
		SMTPPort:         getEnvInt("EMAIL_PORT", 587),
		SMTPUser:         os.Getenv("EMAIL_USER"),
		SMTPPassword:     os.Getenv("EMAIL_PASSWORD"),
		EmailFrom:        getEnv("EMAIL_FROM", "no-reply@localhost"),
		FrontendURL:      getEnv("FRONTEND_URL", "http://localhost:3000"),
		UploadDir:        getEnv("UPLOAD_DIR", "uploads"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
