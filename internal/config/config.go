// Package config provides application configuration loaded from
// environment variables, optionally seeded by a .env file.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// DatabaseDSN selects the storage backend: a postgres:// URL or
	// key=value list opens PostgreSQL, anything else is treated as a
	// SQLite file path. Empty means the default SQLite file.
	DatabaseDSN string
	// PermissionsFile overrides the compiled-in permission table.
	PermissionsFile string
	JWTSecret       string
	JWTExpiration   time.Duration
	// TokenDir is where the CLI session token is stored.
	TokenDir string
	LogLevel string
	LogDev   bool
	// AdminEmail and AdminPassword seed the first ADMIN account when the
	// users table is empty.
	AdminEmail    string
	AdminPassword string
}

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first; explicit env vars win over it.
func Load() Config {
	_ = godotenv.Load()
	return Config{
		DatabaseDSN:     getEnv("DATABASE_DSN", "epicevents.db"),
		PermissionsFile: getEnv("PERMISSIONS_FILE", ""),
		JWTSecret:       getEnv("JWT_SECRET_KEY", "dev-secret-change-me"),
		JWTExpiration:   time.Duration(getEnvInt("JWT_EXPIRATION_HOURS", 24)) * time.Hour,
		TokenDir:        getEnv("TOKEN_DIR", defaultTokenDir()),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogDev:          getEnvBool("LOG_DEV", false),
		AdminEmail:      getEnv("ADMIN_EMAIL", "admin@epicevents.local"),
		AdminPassword:   getEnv("ADMIN_PASSWORD", "changez-moi"),
	}
}

func defaultTokenDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".epicevents"
	}
	return filepath.Join(home, ".epicevents")
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the integer value of an environment variable or a default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

// getEnvBool accepts "1", "true", "yes" as true; everything else is false.
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "1" || value == "true" || value == "yes"
}
