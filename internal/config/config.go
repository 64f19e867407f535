package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Rate limit backends
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Database configuration
	Database DatabaseConfig

	// Rate limiting configuration
	RateLimit RateLimitConfig

	// Redis configuration (used by the redis rate limit backend)
	Redis RedisConfig

	// Admin authentication configuration
	Auth AuthConfig

	// New entry notification configuration
	Notify NotifyConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	RequestTimeout  time.Duration
	AllowedOrigin   string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host           string
	Port           string
	User           string
	Password       string
	Name           string
	SSLMode        string
	MaxOpenConns   int
	MaxIdleConns   int
	MaxLifetime    time.Duration
	MigrationsPath string
}

// RateLimitConfig holds the fixed-window limiter settings.
// Write limits guard create/update/delete, general limits guard the whole API.
type RateLimitConfig struct {
	Backend        string
	WriteMax       int
	WriteWindow    time.Duration
	GeneralMax     int
	GeneralWindow  time.Duration
	GeneralEnabled bool
	SweepInterval  time.Duration
}

// RedisConfig holds redis connection settings
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// AuthConfig holds admin login settings
type AuthConfig struct {
	AdminKey  string
	JWTSecret string
	TokenTTL  time.Duration
	Issuer    string
}

// NotifyConfig holds SMTP settings for new entry emails
type NotifyConfig struct {
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	From         string
	To           string
	RatePerSec   float64
	Burst        int
	Timeout      time.Duration
}

// Enabled reports whether enough SMTP settings are present to send mail.
func (n NotifyConfig) Enabled() bool {
	return n.SMTPHost != "" && n.From != "" && n.To != ""
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

// Load reads configuration from environment variables.
// A .env file in the working directory is loaded first if present;
// variables already set in the environment take precedence.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
			RequestTimeout:  getDurationEnv("REQUEST_TIMEOUT", 10*time.Second),
			AllowedOrigin:   getEnv("CORS_ALLOWED_ORIGIN", "*"),
		},
		Database: DatabaseConfig{
			Host:           getEnv("DB_HOST", "localhost"),
			Port:           getEnv("DB_PORT", "5432"),
			User:           getEnv("DB_USER", "postgres"),
			Password:       getEnv("DB_PASSWORD", "postgres"),
			Name:           getEnv("DB_NAME", "guestbook"),
			SSLMode:        getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:   getIntEnv("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:   getIntEnv("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:    getDurationEnv("DB_MAX_LIFETIME", 5*time.Minute),
			MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),
		},
		RateLimit: RateLimitConfig{
			Backend:        getEnv("RATE_LIMIT_BACKEND", BackendMemory),
			WriteMax:       getIntEnv("RATE_LIMIT_WRITE_MAX", 5),
			WriteWindow:    getDurationEnv("RATE_LIMIT_WRITE_WINDOW", 15*time.Minute),
			GeneralMax:     getIntEnv("RATE_LIMIT_GENERAL_MAX", 100),
			GeneralWindow:  getDurationEnv("RATE_LIMIT_GENERAL_WINDOW", time.Minute),
			GeneralEnabled: getBoolEnv("RATE_LIMIT_GENERAL_ENABLED", false),
			SweepInterval:  getDurationEnv("RATE_LIMIT_SWEEP_INTERVAL", time.Minute),
		},
		Redis: RedisConfig{
			Addr:      getEnv("REDIS_ADDR", ""),
			Password:  getEnv("REDIS_PASSWORD", ""),
			DB:        getIntEnv("REDIS_DB", 0),
			KeyPrefix: getEnv("REDIS_KEY_PREFIX", "guestbook:ratelimit"),
		},
		Auth: AuthConfig{
			AdminKey:  getEnv("ADMIN_KEY", ""),
			JWTSecret: getEnv("JWT_SECRET", ""),
			TokenTTL:  getDurationEnv("JWT_TTL", 12*time.Hour),
			Issuer:    getEnv("JWT_ISSUER", "guestbook-api"),
		},
		Notify: NotifyConfig{
			SMTPHost:     getEnv("SMTP_HOST", ""),
			SMTPPort:     getEnv("SMTP_PORT", "587"),
			SMTPUsername: getEnv("SMTP_USERNAME", ""),
			SMTPPassword: getEnv("SMTP_PASSWORD", ""),
			From:         getEnv("EMAIL_FROM", ""),
			To:           getEnv("EMAIL_TO", ""),
			RatePerSec:   getFloatEnv("NOTIFY_RATE_PER_SEC", 1),
			Burst:        getIntEnv("NOTIFY_BURST", 5),
			Timeout:      getDurationEnv("NOTIFY_TIMEOUT", 10*time.Second),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if c.RateLimit.WriteMax <= 0 || c.RateLimit.WriteWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WRITE_MAX and RATE_LIMIT_WRITE_WINDOW must be positive")
	}
	if c.RateLimit.GeneralMax <= 0 || c.RateLimit.GeneralWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_GENERAL_MAX and RATE_LIMIT_GENERAL_WINDOW must be positive")
	}
	switch c.RateLimit.Backend {
	case BackendMemory:
	case BackendRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("REDIS_ADDR is required when RATE_LIMIT_BACKEND=redis")
		}
	default:
		return fmt.Errorf("RATE_LIMIT_BACKEND must be one of: memory, redis")
	}
	if c.Auth.AdminKey != "" && len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 bytes when ADMIN_KEY is set")
	}
	return nil
}

// GetDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
