package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Engine   EngineConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration. ClientID and ClientSecret are the
// credentials machine clients exchange for access tokens.
type JWTConfig struct {
	Secret           string
	AccessExpiration string
	ClientID         string
	ClientSecret     string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// EngineConfig holds the tunable defaults of the reconciliation engine.
// Per-request overrides take precedence over these.
type EngineConfig struct {
	TimezoneOffsetMinutes    int
	GraceMinutes             int
	DefaultPermissionMinutes int
	DefaultHalfDayMinutes    int
}

func Load() (*Config, error) {
	// .env is optional; real deployments configure through the environment
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "attendance-engine"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
		ClientID:         getEnv("API_CLIENT_ID", ""),
		ClientSecret:     getEnv("API_CLIENT_SECRET", ""),
	}

	// Engine configuration
	engineInts := map[string]struct {
		fallback int
		dst      *int
	}{
		"ENGINE_TIMEZONE_OFFSET_MINUTES":    {120, &config.Engine.TimezoneOffsetMinutes},
		"ENGINE_GRACE_MINUTES":              {15, &config.Engine.GraceMinutes},
		"ENGINE_PERMISSION_MINUTES":         {60, &config.Engine.DefaultPermissionMinutes},
		"ENGINE_HALF_DAY_MINUTES":           {240, &config.Engine.DefaultHalfDayMinutes},
	}
	for key, e := range engineInts {
		v, err := strconv.Atoi(getEnv(key, strconv.Itoa(e.fallback)))
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", key, err)
		}
		*e.dst = v
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.JWT.ClientID == "" || c.JWT.ClientSecret == "" {
		return fmt.Errorf("API_CLIENT_ID and API_CLIENT_SECRET are required")
	}
	if c.Engine.GraceMinutes < 0 {
		return fmt.Errorf("ENGINE_GRACE_MINUTES must not be negative")
	}
	if c.Engine.DefaultPermissionMinutes <= 0 {
		return fmt.Errorf("ENGINE_PERMISSION_MINUTES must be positive")
	}
	if c.Engine.DefaultHalfDayMinutes <= 0 {
		return fmt.Errorf("ENGINE_HALF_DAY_MINUTES must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
