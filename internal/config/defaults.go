package config

import (
	"os"
	"time"
)

// DefaultConfig returns the configuration used when no file overrides
// are present. Addr and database path also honor the environment, same
// as the flags the server historically took.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: envOrDefault("TASKIFY_ADDR", ":8080"),
		},
		Database: DatabaseConfig{
			Path: envOrDefault("TASKIFY_DB_PATH", "data/taskify.db"),
		},
		Auth: AuthConfig{
			CookieName: "session_token",
			SessionTTL: 30 * 24 * time.Hour,
			SignInPath: "/sign-in",
			SignUpPath: "/sign-up",
			HomePath:   "/",
			PublicRoutes: []string{
				"/sign-in",
				"/sign-up",
				"/api/auth",
				"/api/healthz",
			},
		},
	}
}

// envOrDefault returns the environment variable value or fallback when
// it is empty.
func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
