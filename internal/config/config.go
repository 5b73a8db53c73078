// Package config loads and validates application configuration.
package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
// The URL carries the TLS mode (sslmode); certificate verification policy is
// a connection-string concern, never code.
type DatabaseConfig struct {
	URL                string `mapstructure:"url"                   validate:"required"`
	MaxOpenConns       int    `mapstructure:"max_open_conns"        validate:"gte=0"`
	MaxIdleConns       int    `mapstructure:"max_idle_conns"        validate:"gte=0"`
	ConnMaxLifetimeMin int    `mapstructure:"conn_max_lifetime_min" validate:"gte=0"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}
