package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type DatabaseType string

const (
	Postgres DatabaseType = "postgres"
	SQLite   DatabaseType = "sqlite"
)

// Config is the runtime configuration shared by every service. Each service
// passes its own defaults to Load; environment variables override them.
type Config struct {
	Port string

	DatabaseType DatabaseType
	DatabaseURL  string // Postgres DSN
	SQLitePath   string

	// RedisAddr empty disables the read-model cache and event publishing.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret    []byte
	TokenTTL     time.Duration
	AuthRequired bool

	GinMode string
}

// Load reads an optional .env file from the working directory, then builds a
// Config from the environment, falling back to defaults for unset keys.
func Load(defaults Config) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &Config{
		Port:          getEnv("PORT", defaults.Port),
		DatabaseType:  DatabaseType(strings.ToLower(getEnv("DATABASE_TYPE", string(defaults.DatabaseType)))),
		DatabaseURL:   getEnv("DATABASE_URL", defaults.DatabaseURL),
		SQLitePath:    getEnv("SQLITE_PATH", defaults.SQLitePath),
		RedisAddr:     getEnv("REDIS_ADDR", defaults.RedisAddr),
		RedisPassword: getEnv("REDIS_PASSWORD", defaults.RedisPassword),
		JWTSecret:     []byte(getEnv("JWT_SECRET", string(defaults.JWTSecret))),
		GinMode:       getEnv("GIN_MODE", defaults.GinMode),
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = Postgres
	}
	switch cfg.DatabaseType {
	case Postgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is not set")
		}
	case SQLite:
		if cfg.SQLitePath == "" {
			return nil, fmt.Errorf("SQLITE_PATH is not set")
		}
	default:
		return nil, fmt.Errorf("unsupported DATABASE_TYPE: %s", cfg.DatabaseType)
	}

	var err error
	if cfg.RedisDB, err = getEnvInt("REDIS_DB", defaults.RedisDB); err != nil {
		return nil, err
	}
	if cfg.TokenTTL, err = getEnvDuration("TOKEN_TTL", defaults.TokenTTL); err != nil {
		return nil, err
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	if cfg.AuthRequired, err = getEnvBool("AUTH_REQUIRED", defaults.AuthRequired); err != nil {
		return nil, err
	}

	if len(cfg.JWTSecret) == 0 && cfg.AuthRequired {
		return nil, fmt.Errorf("JWT_SECRET is required when AUTH_REQUIRED is set")
	}

	return cfg, nil
}

// MustLoad is Load for main packages.
func MustLoad(defaults Config) *Config {
	cfg, err := Load(defaults)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

// GatewayConfig configures the api-gateway, which owns no database.
type GatewayConfig struct {
	Port              string
	GinMode           string
	BankServiceURL    string
	LibraryServiceURL string
	AuthServiceURL    string
}

// LoadGateway reads the gateway settings the same way Load does. Service
// URLs lose any trailing slash.
func LoadGateway() (*GatewayConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}
	return &GatewayConfig{
		Port:              getEnv("PORT", "8080"),
		GinMode:           getEnv("GIN_MODE", ""),
		BankServiceURL:    strings.TrimSuffix(getEnv("BANK_SERVICE_URL", "http://localhost:8081"), "/"),
		LibraryServiceURL: strings.TrimSuffix(getEnv("LIBRARY_SERVICE_URL", "http://localhost:8082"), "/"),
		AuthServiceURL:    strings.TrimSuffix(getEnv("AUTH_SERVICE_URL", "http://localhost:8083"), "/"),
	}, nil
}
