package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ConfigRequirements defines required configuration for each environment
type ConfigRequirements struct {
	RequiredFields  []string
	RequiredSecrets []string
}

var (
	// Environment-specific requirements
	requirements = map[Environment]ConfigRequirements{
		Development: {
			RequiredFields: []string{"SERVER_PORT"},
		},
		Test: {
			RequiredFields: []string{"SERVER_PORT"},
		},
		CI: {
			RequiredFields: []string{
				"SERVER_PORT",
				"DB_HOST",
				"DB_PORT",
				"DB_USER",
				"DB_NAME",
				"JWT_SECRET",
				"DB_PASSWORD",
			},
		},
		Production: {
			RequiredFields: []string{
				"SERVER_PORT",
				"SERVER_HOST",
				"DB_HOST",
				"DB_PORT",
				"DB_USER",
				"DB_NAME",
				"DB_SSL_MODE",
				"REDIS_HOST",
			},
			RequiredSecrets: []string{
				"db_password",
				"jwt_secret",
			},
		},
	}
)

// postgresFields are not needed when running on sqlite
var postgresFields = map[string]bool{
	"DB_HOST":     true,
	"DB_PORT":     true,
	"DB_USER":     true,
	"DB_NAME":     true,
	"DB_SSL_MODE": true,
	"DB_PASSWORD": true,
}

func (c *Config) fieldValue(name string) string {
	switch name {
	case "SERVER_PORT":
		return c.ServerPort
	case "SERVER_HOST":
		return c.ServerHost
	case "DB_HOST":
		return c.DBHost
	case "DB_PORT":
		return c.DBPort
	case "DB_USER":
		return c.DBUser
	case "DB_NAME":
		return c.DBName
	case "DB_SSL_MODE":
		return c.DBSSLMode
	case "DB_PASSWORD":
		return c.DBPassword
	case "REDIS_HOST":
		return c.RedisHost
	case "JWT_SECRET":
		return c.JWTSecret
	}
	return ""
}

// ValidateConfig checks if the configuration meets the requirements for the current environment
func ValidateConfig(cfg *Config) error {
	env := GetEnvironment()
	reqs := requirements[env]

	var errs []ValidationError

	for _, field := range reqs.RequiredFields {
		if cfg.DBDriver == "sqlite" && postgresFields[field] {
			continue
		}
		if cfg.fieldValue(field) == "" {
			errs = append(errs, ValidationError{Field: field, Message: "is required"})
		}
	}

	for _, secret := range reqs.RequiredSecrets {
		if value := readSecret(secret); value == "" {
			errs = append(errs, ValidationError{Field: secret, Message: "secret is required"})
		}
	}

	switch cfg.DBDriver {
	case "postgres":
	case "sqlite":
		if env == Production {
			errs = append(errs, ValidationError{Field: "DB_DRIVER", Message: "sqlite is not supported in production"})
		}
		if cfg.SQLitePath == "" {
			errs = append(errs, ValidationError{Field: "SQLITE_PATH", Message: "is required for the sqlite driver"})
		}
	default:
		errs = append(errs, ValidationError{Field: "DB_DRIVER", Message: fmt.Sprintf("unsupported driver %q", cfg.DBDriver)})
	}

	if cfg.JWTSecret == "" && env != CI && env != Production {
		errs = append(errs, ValidationError{Field: "JWT_SECRET", Message: "is required"})
	}

	switch strings.ToLower(cfg.LogFormat) {
	case "", "json", "console":
	default:
		errs = append(errs, ValidationError{Field: "LOG_FORMAT", Message: "must be json or console"})
	}

	if cfg.SyncRateLimit < 0 {
		errs = append(errs, ValidationError{Field: "SYNC_RATE_LIMIT", Message: "must be a non-negative integer"})
	}

	if len(errs) > 0 {
		lines := make([]string, 0, len(errs))
		for _, e := range errs {
			lines = append(lines, e.Error())
		}
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(lines, "\n"))
	}

	return nil
}
