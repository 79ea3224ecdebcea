package config

import "time"

// Config is the full application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// DatabaseConfig configures the sqlite store.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// AuthConfig configures the access gate and the session provider.
type AuthConfig struct {
	CookieName   string        `mapstructure:"cookie_name"`
	SessionTTL   time.Duration `mapstructure:"session_ttl"`
	SignInPath   string        `mapstructure:"sign_in_path"`
	SignUpPath   string        `mapstructure:"sign_up_path"`
	HomePath     string        `mapstructure:"home_path"`
	PublicRoutes []string      `mapstructure:"public_routes"`
}
