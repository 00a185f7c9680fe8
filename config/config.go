package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort  string
	ServerHost  string
	CORSOrigins []string

	// Database configuration
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// Logging
	LogLevel  string
	LogFormat string

	// Export storage. Export is disabled when S3BucketName is empty.
	S3BucketName string
	AWSRegion    string

	// SyncRateLimit is the number of shopping list syncs allowed per user per minute
	SyncRateLimit int
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{}

	// Load configuration based on environment
	switch env {
	case CI:
		if err := loadCIConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to load CI configuration: %w", err)
		}
	case Development, Test:
		if err := loadDevConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to load development configuration: %w", err)
		}
	case Production:
		if err := loadProdConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to load production configuration: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	// Validate the configuration
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadCIConfig loads configuration for CI from environment variables only
func loadCIConfig(cfg *Config) error {
	loadCommon(cfg, os.Getenv)

	cfg.DBPassword = os.Getenv("TEST_DB_PASSWORD")
	if cfg.DBPassword == "" {
		cfg.DBPassword = os.Getenv("DB_PASSWORD")
	}
	cfg.JWTSecret = os.Getenv("TEST_JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = os.Getenv("JWT_SECRET")
	}
	cfg.RedisPassword = os.Getenv("TEST_REDIS_PASSWORD")
	if url := os.Getenv("TEST_REDIS_URL"); url != "" {
		cfg.RedisURL = url
	}
	return nil
}

// loadDevConfig loads configuration for development. Docker secrets win over
// environment variables, then the .env file, then local defaults.
func loadDevConfig(cfg *Config) error {
	dotenv := readDotEnv()
	lookup := func(key string) string {
		if v := readSecret(strings.ToLower(key)); v != "" {
			return v
		}
		if v := os.Getenv(key); v != "" {
			return v
		}
		if v := dotenv[key]; v != "" {
			return v
		}
		return devDefaults[key]
	}
	loadCommon(cfg, lookup)
	cfg.DBPassword = lookup("DB_PASSWORD")
	cfg.JWTSecret = lookup("JWT_SECRET")
	cfg.RedisPassword = lookup("REDIS_PASSWORD")
	return nil
}

// loadProdConfig loads configuration for production. Sensitive values come
// only from Docker secrets.
func loadProdConfig(cfg *Config) error {
	lookup := func(key string) string {
		if v := readSecret(strings.ToLower(key)); v != "" {
			return v
		}
		return os.Getenv(key)
	}
	loadCommon(cfg, lookup)
	cfg.DBPassword = readSecret("db_password")
	cfg.JWTSecret = readSecret("jwt_secret")
	cfg.RedisPassword = readSecret("redis_password")
	return nil
}

var devDefaults = map[string]string{
	"SERVER_PORT":     "8080",
	"SERVER_HOST":     "0.0.0.0",
	"DB_DRIVER":       "postgres",
	"DB_HOST":         "localhost",
	"DB_PORT":         "5432",
	"DB_USER":         "postgres",
	"DB_PASSWORD":     "postgres",
	"DB_NAME":         "alchemorsel",
	"DB_SSL_MODE":     "disable",
	"SQLITE_PATH":     "alchemorsel.db",
	"REDIS_HOST":      "localhost",
	"REDIS_PORT":      "6379",
	"JWT_SECRET":      "your-secret-key",
	"LOG_LEVEL":       "debug",
	"LOG_FORMAT":      "console",
	"CORS_ORIGINS":    "http://localhost:5173",
	"SYNC_RATE_LIMIT": "30",
}

func loadCommon(cfg *Config, lookup func(string) string) {
	cfg.ServerPort = lookup("SERVER_PORT")
	cfg.ServerHost = lookup("SERVER_HOST")
	cfg.CORSOrigins = splitList(lookup("CORS_ORIGINS"))

	cfg.DBDriver = lookup("DB_DRIVER")
	if cfg.DBDriver == "" {
		cfg.DBDriver = "postgres"
	}
	cfg.DBHost = lookup("DB_HOST")
	cfg.DBPort = lookup("DB_PORT")
	cfg.DBUser = lookup("DB_USER")
	cfg.DBName = lookup("DB_NAME")
	cfg.DBSSLMode = lookup("DB_SSL_MODE")
	cfg.SQLitePath = lookup("SQLITE_PATH")

	cfg.RedisHost = lookup("REDIS_HOST")
	cfg.RedisPort = lookup("REDIS_PORT")
	cfg.RedisURL = lookup("REDIS_URL")
	cfg.RedisDB = 0 // This is a constant, not a secret

	cfg.LogLevel = lookup("LOG_LEVEL")
	cfg.LogFormat = lookup("LOG_FORMAT")

	cfg.S3BucketName = lookup("S3_BUCKET_NAME")
	cfg.AWSRegion = lookup("AWS_REGION")

	cfg.SyncRateLimit = 30
	if v := lookup("SYNC_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.SyncRateLimit = n
		} else {
			cfg.SyncRateLimit = -1 // rejected by ValidateConfig
		}
	}
}

// DatabaseDSN returns the PostgreSQL connection string
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// RedisAddr returns host:port, or "" when Redis is not configured
func (c *Config) RedisAddr() string {
	if c.RedisHost == "" {
		return ""
	}
	port := c.RedisPort
	if port == "" {
		port = "6379"
	}
	return c.RedisHost + ":" + port
}

// readDotEnv parses ENV_FILE (default .env) without touching the process
// environment. A missing file yields nil.
func readDotEnv() map[string]string {
	path := os.Getenv("ENV_FILE")
	if path == "" {
		path = ".env"
	}
	values, err := godotenv.Read(path)
	if err != nil {
		return nil
	}
	return values
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
